package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"juriscrm/models"
	"juriscrm/storage"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// Namespace keys under which each collection is persisted.
const (
	KeyClients   = "crm_clients"
	KeyCases     = "crm_cases"
	KeyFees      = "crm_fees"
	KeyExpenses  = "crm_expenses"
	KeyTemplates = "crm_document_templates"
)

// CollectionKeys lists every namespace the database persists, in load order.
var CollectionKeys = []string{KeyClients, KeyCases, KeyFees, KeyExpenses, KeyTemplates}

var (
	ErrClientNotFound      = errors.New("client not found")
	ErrCaseNotFound        = errors.New("case not found")
	ErrFeeNotFound         = errors.New("fee not found")
	ErrExpenseNotFound     = errors.New("expense not found")
	ErrTemplateNotFound    = errors.New("document template not found")
	ErrTaskNotFound        = errors.New("task not found")
	ErrInstallmentNotFound = errors.New("installment not found")
)

// Database is the single authoritative holder of all entity collections.
// Every mutation goes through it and triggers a best-effort persist of the
// touched collection; a failed persist is logged and the in-memory state
// stands, since the next successful mutation rewrites the full blob.
//
// The mutex exists because AI completions resolve on their own goroutines
// while the interactive session keeps reading.
type Database struct {
	mu       sync.RWMutex
	store    storage.Storage
	validate *validator.Validate

	clients   []models.Client
	cases     []models.Case
	fees      []models.Fee
	expenses  []models.Expense
	templates []models.DocumentTemplate
}

// NewDatabase loads the snapshot from storage and returns a ready database.
// Missing collections start empty; a corrupt blob is an error.
func NewDatabase(ctx context.Context, store storage.Storage) (*Database, error) {
	db := &Database{
		store:    store,
		validate: validator.New(),
	}

	for key, dst := range map[string]interface{}{
		KeyClients:   &db.clients,
		KeyCases:     &db.cases,
		KeyFees:      &db.fees,
		KeyExpenses:  &db.expenses,
		KeyTemplates: &db.templates,
	} {
		if err := db.loadCollection(ctx, key, dst); err != nil {
			return nil, err
		}
	}

	return db, nil
}

func (db *Database) loadCollection(ctx context.Context, key string, dst interface{}) error {
	data, err := db.store.Load(ctx, key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load collection %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode collection %s: %w", key, err)
	}
	return nil
}

// persist serializes one collection and writes it to storage. Callers must
// hold the write lock. Persistence is fire-and-forget: the mutation is not
// rolled back when the write fails.
func (db *Database) persist(ctx context.Context, key string, collection interface{}) {
	data, err := json.Marshal(collection)
	if err != nil {
		log.Printf("Warning: failed to encode collection %s: %v", key, err)
		return
	}
	if err := db.store.Save(ctx, key, data); err != nil {
		log.Printf("Warning: failed to persist collection %s: %v", key, err)
	}
}

// checkValid runs store-boundary validation on an entity before it is
// admitted into a collection.
func (db *Database) checkValid(entity interface{}) error {
	if err := db.validate.Struct(entity); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
