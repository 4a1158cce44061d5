package repository

import (
	"context"
	"testing"

	"juriscrm/models"
	"juriscrm/storage"

	"github.com/stretchr/testify/require"
)

func newTestDatabase(t *testing.T) (*Database, *storage.MemoryStorage) {
	t.Helper()
	store := storage.NewMemoryStorage()
	db, err := NewDatabase(context.Background(), store)
	require.NoError(t, err)
	return db, store
}

func addTestClient(t *testing.T, db *Database, name string) models.Client {
	t.Helper()
	client, err := NewClientRepository(db).Add(context.Background(), models.Client{
		Name: name,
		CPF:  "111.111.111-11",
	})
	require.NoError(t, err)
	return client
}

func addTestCase(t *testing.T, db *Database, clientID string) models.Case {
	t.Helper()
	kase, err := NewCaseRepository(db).Add(context.Background(), models.Case{
		CaseNumber:  "0001/2024",
		ClientID:    clientID,
		BenefitType: models.BenefitAposentadoriaIdade,
		Status:      models.StatusAnaliseInicial,
	})
	require.NoError(t, err)
	return kase
}

func TestDatabaseReloadsPersistedSnapshot(t *testing.T) {
	db, store := newTestDatabase(t)
	ctx := context.Background()

	client := addTestClient(t, db, "Maria Silva")
	kase := addTestCase(t, db, client.ID)

	// A fresh database over the same storage must see the same data
	reloaded, err := NewDatabase(ctx, store)
	require.NoError(t, err)

	got, err := NewClientRepository(reloaded).GetByID(ctx, client.ID)
	require.NoError(t, err)
	require.Equal(t, "Maria Silva", got.Name)

	gotCase, err := NewCaseRepository(reloaded).GetByID(ctx, kase.ID)
	require.NoError(t, err)
	require.Equal(t, "0001/2024", gotCase.CaseNumber)
}

func TestDatabaseCorruptSnapshotFails(t *testing.T) {
	store := storage.NewMemoryStorage()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, KeyClients, []byte("not json")))

	_, err := NewDatabase(ctx, store)
	require.Error(t, err)
}
