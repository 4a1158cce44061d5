package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, "./data", cfg.Storage.LocalPath)
	assert.Equal(t, 7, cfg.Schedule.LookaheadDays)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  type: sqlite
  sqlite_path: /var/lib/juriscrm/crm.db
schedule:
  lookahead_days: 14
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Type)
	assert.Equal(t, "/var/lib/juriscrm/crm.db", cfg.Storage.SQLitePath)
	assert.Equal(t, 14, cfg.Schedule.LookaheadDays)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("JURISCRM_STORAGE_TYPE", "s3")
	t.Setenv("JURISCRM_STORAGE_S3_BUCKET", "juriscrm-snapshots")
	t.Setenv("JURISCRM_GEMINI_API_KEY", "test-key")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "s3", cfg.Storage.Type)
	assert.Equal(t, "juriscrm-snapshots", cfg.Storage.S3Bucket)
	assert.Equal(t, "test-key", cfg.Gemini.APIKey)
}

func TestLoadRejectsUnknownStorageType(t *testing.T) {
	t.Setenv("JURISCRM_STORAGE_TYPE", "ftp")

	_, err := Load("")
	assert.Error(t, err)
}
