package repository

import (
	"context"

	"juriscrm/models"

	"github.com/google/uuid"
)

// TemplateRepository handles store operations for document templates
type TemplateRepository struct {
	db *Database
}

// NewTemplateRepository creates a new template repository
func NewTemplateRepository(db *Database) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Add assigns a fresh identity and persists
func (r *TemplateRepository) Add(ctx context.Context, template models.DocumentTemplate) (models.DocumentTemplate, error) {
	if err := r.db.checkValid(template); err != nil {
		return models.DocumentTemplate{}, err
	}

	template.ID = uuid.NewString()

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.templates = append(r.db.templates, template)
	r.db.persist(ctx, KeyTemplates, r.db.templates)

	return template, nil
}

// Update replaces the stored template matching the given identity. Titles
// already copied into case legal-document records are left as they were.
func (r *TemplateRepository) Update(ctx context.Context, template models.DocumentTemplate) error {
	if err := r.db.checkValid(template); err != nil {
		return err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.templates {
		if r.db.templates[i].ID == template.ID {
			r.db.templates[i] = template
			r.db.persist(ctx, KeyTemplates, r.db.templates)
			return nil
		}
	}
	return ErrTemplateNotFound
}

// Delete removes the template
func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.templates {
		if r.db.templates[i].ID == id {
			r.db.templates = append(r.db.templates[:i], r.db.templates[i+1:]...)
			r.db.persist(ctx, KeyTemplates, r.db.templates)
			return nil
		}
	}
	return ErrTemplateNotFound
}

// GetByID retrieves a template by ID
func (r *TemplateRepository) GetByID(ctx context.Context, id string) (models.DocumentTemplate, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, t := range r.db.templates {
		if t.ID == id {
			return t, nil
		}
	}
	return models.DocumentTemplate{}, ErrTemplateNotFound
}

// List returns all templates
func (r *TemplateRepository) List(ctx context.Context) []models.DocumentTemplate {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]models.DocumentTemplate, len(r.db.templates))
	copy(out, r.db.templates)
	return out
}
