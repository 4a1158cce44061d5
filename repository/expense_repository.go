package repository

import (
	"context"
	"time"

	"juriscrm/models"

	"github.com/google/uuid"
)

// ExpenseRepository handles store operations for expenses
type ExpenseRepository struct {
	db *Database
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *Database) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Add assigns a fresh identity and persists. Expenses have no status; they
// count as settled from creation.
func (r *ExpenseRepository) Add(ctx context.Context, expense models.Expense) (models.Expense, error) {
	if err := r.db.checkValid(expense); err != nil {
		return models.Expense{}, err
	}

	expense.ID = uuid.NewString()
	if expense.Date == "" {
		expense.Date = time.Now().Format(time.DateOnly)
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.expenses = append(r.db.expenses, expense)
	r.db.persist(ctx, KeyExpenses, r.db.expenses)

	return expense, nil
}

// Update replaces the stored expense matching the given identity
func (r *ExpenseRepository) Update(ctx context.Context, expense models.Expense) error {
	if err := r.db.checkValid(expense); err != nil {
		return err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.expenses {
		if r.db.expenses[i].ID == expense.ID {
			r.db.expenses[i] = expense
			r.db.persist(ctx, KeyExpenses, r.db.expenses)
			return nil
		}
	}
	return ErrExpenseNotFound
}

// Delete removes the expense
func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.expenses {
		if r.db.expenses[i].ID == id {
			r.db.expenses = append(r.db.expenses[:i], r.db.expenses[i+1:]...)
			r.db.persist(ctx, KeyExpenses, r.db.expenses)
			return nil
		}
	}
	return ErrExpenseNotFound
}

// GetByID retrieves an expense by ID
func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (models.Expense, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, e := range r.db.expenses {
		if e.ID == id {
			return e, nil
		}
	}
	return models.Expense{}, ErrExpenseNotFound
}

// List returns all expenses
func (r *ExpenseRepository) List(ctx context.Context) []models.Expense {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]models.Expense, len(r.db.expenses))
	copy(out, r.db.expenses)
	return out
}

// ListByCaseID returns all expenses tied to a case
func (r *ExpenseRepository) ListByCaseID(ctx context.Context, caseID string) []models.Expense {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var out []models.Expense
	for _, e := range r.db.expenses {
		if e.CaseID == caseID {
			out = append(out, e)
		}
	}
	return out
}
