package main

import (
	"context"
	"errors"
	"log"
	"os"

	"juriscrm/config"
	"juriscrm/repository"
	"juriscrm/service"
	"juriscrm/storage"

	"github.com/joho/godotenv"
)

// Copies every collection blob from the primary storage to a backup
// storage, typically S3. Keys that were never written are skipped.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load(os.Getenv("JURISCRM_CONFIG"))
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	source, err := storage.NewStorage(cfg.StorageConfig())
	if err != nil {
		log.Fatal("Failed to initialize source storage:", err)
	}

	backupCfg := cfg.StorageConfig()
	backupCfg.Type = storage.StorageTypeS3
	if bucket := os.Getenv("BACKUP_S3_BUCKET"); bucket != "" {
		backupCfg.S3Bucket = bucket
	}
	if backupCfg.S3Bucket == "" {
		log.Fatal("BACKUP_S3_BUCKET (or storage.s3_bucket) is required")
	}

	target, err := storage.NewStorage(backupCfg)
	if err != nil {
		log.Fatal("Failed to initialize backup storage:", err)
	}

	ctx := context.Background()
	keys := append([]string{}, repository.CollectionKeys...)
	keys = append(keys, service.KeyAlertDismissed)

	copied := 0
	for _, key := range keys {
		data, err := source.Load(ctx, key)
		if errors.Is(err, storage.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			log.Fatalf("Failed to read %s: %v", key, err)
		}
		if err := target.Save(ctx, key, data); err != nil {
			log.Fatalf("Failed to back up %s: %v", key, err)
		}
		log.Printf("Backed up %s (%d bytes)", key, len(data))
		copied++
	}

	log.Printf("Done: %d collections backed up to s3://%s", copied, backupCfg.S3Bucket)
}
