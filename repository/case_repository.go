package repository

import (
	"context"
	"time"

	"juriscrm/models"

	"github.com/google/uuid"
)

// CaseRepository handles store operations for cases and their embedded
// tasks, documents and legal-document records.
type CaseRepository struct {
	db *Database
}

// NewCaseRepository creates a new case repository
func NewCaseRepository(db *Database) *CaseRepository {
	return &CaseRepository{db: db}
}

func cloneCase(k models.Case) models.Case {
	out := k
	out.Documents = append([]models.Document(nil), k.Documents...)
	out.Tasks = append([]models.Task(nil), k.Tasks...)
	out.LegalDocuments = append([]models.LegalDocument(nil), k.LegalDocuments...)
	return out
}

// Add assigns a fresh identity, initializes the embedded lists and persists
func (r *CaseRepository) Add(ctx context.Context, kase models.Case) (models.Case, error) {
	if err := r.db.checkValid(kase); err != nil {
		return models.Case{}, err
	}

	now := time.Now()
	kase.ID = uuid.NewString()
	kase.LastUpdate = now
	if kase.StartDate == "" {
		kase.StartDate = now.Format(time.DateOnly)
	}
	if kase.Documents == nil {
		kase.Documents = []models.Document{}
	}
	if kase.Tasks == nil {
		kase.Tasks = []models.Task{}
	}
	if kase.LegalDocuments == nil {
		kase.LegalDocuments = []models.LegalDocument{}
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.cases = append(r.db.cases, kase)
	r.db.persist(ctx, KeyCases, r.db.cases)

	return cloneCase(kase), nil
}

// Update replaces the stored case matching the given identity and stamps
// LastUpdate. Replace-whole-object semantics: nested task and legal-document
// edits arrive through this path as well.
func (r *CaseRepository) Update(ctx context.Context, kase models.Case) error {
	if err := r.db.checkValid(kase); err != nil {
		return err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.cases {
		if r.db.cases[i].ID == kase.ID {
			kase.LastUpdate = time.Now()
			r.db.cases[i] = cloneCase(kase)
			r.db.persist(ctx, KeyCases, r.db.cases)
			return nil
		}
	}
	return ErrCaseNotFound
}

// Delete removes the case and cascades to its fees and expenses
func (r *CaseRepository) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	found := false
	cases := r.db.cases[:0]
	for _, k := range r.db.cases {
		if k.ID == id {
			found = true
			continue
		}
		cases = append(cases, k)
	}
	if !found {
		return ErrCaseNotFound
	}
	r.db.cases = cases

	fees := r.db.fees[:0]
	for _, f := range r.db.fees {
		if f.CaseID == id {
			continue
		}
		fees = append(fees, f)
	}
	r.db.fees = fees

	expenses := r.db.expenses[:0]
	for _, e := range r.db.expenses {
		if e.CaseID == id {
			continue
		}
		expenses = append(expenses, e)
	}
	r.db.expenses = expenses

	r.db.persist(ctx, KeyCases, r.db.cases)
	r.db.persist(ctx, KeyFees, r.db.fees)
	r.db.persist(ctx, KeyExpenses, r.db.expenses)

	return nil
}

// GetByID retrieves a case by ID
func (r *CaseRepository) GetByID(ctx context.Context, id string) (models.Case, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, k := range r.db.cases {
		if k.ID == id {
			return cloneCase(k), nil
		}
	}
	return models.Case{}, ErrCaseNotFound
}

// List returns all cases
func (r *CaseRepository) List(ctx context.Context) []models.Case {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]models.Case, 0, len(r.db.cases))
	for _, k := range r.db.cases {
		out = append(out, cloneCase(k))
	}
	return out
}

// ListByClientID returns all cases belonging to a client
func (r *CaseRepository) ListByClientID(ctx context.Context, clientID string) []models.Case {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var out []models.Case
	for _, k := range r.db.cases {
		if k.ClientID == clientID {
			out = append(out, cloneCase(k))
		}
	}
	return out
}

// AddTask appends a task with a generated identity and the owning case
// reference, and stamps the case's LastUpdate.
func (r *CaseRepository) AddTask(ctx context.Context, caseID string, task models.Task) (models.Task, error) {
	if err := r.db.checkValid(task); err != nil {
		return models.Task{}, err
	}

	task.ID = uuid.NewString()
	task.CaseID = caseID

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.cases {
		if r.db.cases[i].ID == caseID {
			r.db.cases[i].Tasks = append(r.db.cases[i].Tasks, task)
			r.db.cases[i].LastUpdate = time.Now()
			r.db.persist(ctx, KeyCases, r.db.cases)
			return task, nil
		}
	}
	return models.Task{}, ErrCaseNotFound
}

// UpdateTask replaces the matching task inside its owning case
func (r *CaseRepository) UpdateTask(ctx context.Context, task models.Task) error {
	if err := r.db.checkValid(task); err != nil {
		return err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.cases {
		if r.db.cases[i].ID != task.CaseID {
			continue
		}
		for j := range r.db.cases[i].Tasks {
			if r.db.cases[i].Tasks[j].ID == task.ID {
				r.db.cases[i].Tasks[j] = task
				r.db.cases[i].LastUpdate = time.Now()
				r.db.persist(ctx, KeyCases, r.db.cases)
				return nil
			}
		}
		return ErrTaskNotFound
	}
	return ErrCaseNotFound
}

// AddDocument appends an uploaded document record to a case
func (r *CaseRepository) AddDocument(ctx context.Context, caseID string, doc models.Document) (models.Document, error) {
	doc.ID = uuid.NewString()
	doc.UploadedAt = time.Now()

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.cases {
		if r.db.cases[i].ID == caseID {
			r.db.cases[i].Documents = append(r.db.cases[i].Documents, doc)
			r.db.cases[i].LastUpdate = time.Now()
			r.db.persist(ctx, KeyCases, r.db.cases)
			return doc, nil
		}
	}
	return models.Document{}, ErrCaseNotFound
}

// UpdateLegalDocumentStatus updates the lifecycle status of the legal
// document tied to a template. When the case has no record for that template
// yet, one is inserted with the template's current title; the title is
// frozen at that point and never re-synced.
func (r *CaseRepository) UpdateLegalDocumentStatus(ctx context.Context, caseID, templateID string, status models.LegalDocumentStatus) error {
	if status == "" {
		status = models.LegalDocPendente
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.cases {
		if r.db.cases[i].ID != caseID {
			continue
		}

		for j := range r.db.cases[i].LegalDocuments {
			if r.db.cases[i].LegalDocuments[j].TemplateID == templateID {
				r.db.cases[i].LegalDocuments[j].Status = status
				r.db.cases[i].LastUpdate = time.Now()
				r.db.persist(ctx, KeyCases, r.db.cases)
				return nil
			}
		}

		title := templateID
		for _, t := range r.db.templates {
			if t.ID == templateID {
				title = t.Title
				break
			}
		}
		r.db.cases[i].LegalDocuments = append(r.db.cases[i].LegalDocuments, models.LegalDocument{
			TemplateID: templateID,
			Title:      title,
			Status:     status,
		})
		r.db.cases[i].LastUpdate = time.Now()
		r.db.persist(ctx, KeyCases, r.db.cases)
		return nil
	}
	return ErrCaseNotFound
}

// AppendNote appends a timestamped entry to the case's notes log
func (r *CaseRepository) AppendNote(ctx context.Context, caseID, text string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.cases {
		if r.db.cases[i].ID == caseID {
			r.db.cases[i].AppendNote(text, time.Now())
			r.db.persist(ctx, KeyCases, r.db.cases)
			return nil
		}
	}
	return ErrCaseNotFound
}

// SetAISummary stores the AI-generated summary on a case
func (r *CaseRepository) SetAISummary(ctx context.Context, caseID, summary string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.cases {
		if r.db.cases[i].ID == caseID {
			r.db.cases[i].AISummary = summary
			r.db.cases[i].LastUpdate = time.Now()
			r.db.persist(ctx, KeyCases, r.db.cases)
			return nil
		}
	}
	return ErrCaseNotFound
}
