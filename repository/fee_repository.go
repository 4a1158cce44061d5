package repository

import (
	"context"

	"juriscrm/models"

	"github.com/google/uuid"
)

// FeeRepository handles store operations for fees and their installments
type FeeRepository struct {
	db *Database
}

// NewFeeRepository creates a new fee repository
func NewFeeRepository(db *Database) *FeeRepository {
	return &FeeRepository{db: db}
}

func cloneFee(f models.Fee) models.Fee {
	out := f
	out.Installments = append([]models.Installment(nil), f.Installments...)
	return out
}

// Add assigns identities to the fee and its installments, derives the
// initial status for installment-bearing fees, and persists.
func (r *FeeRepository) Add(ctx context.Context, fee models.Fee) (models.Fee, error) {
	if err := r.db.checkValid(fee); err != nil {
		return models.Fee{}, err
	}

	fee.ID = uuid.NewString()
	if fee.Status == "" {
		fee.Status = models.FeePendente
	}
	for i := range fee.Installments {
		if fee.Installments[i].ID == "" {
			fee.Installments[i].ID = uuid.NewString()
		}
		if fee.Installments[i].Status == "" {
			fee.Installments[i].Status = models.InstallmentPendente
		}
	}
	fee.RecomputeStatus()

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.fees = append(r.db.fees, fee)
	r.db.persist(ctx, KeyFees, r.db.fees)

	return cloneFee(fee), nil
}

// Update replaces the stored fee matching the given identity. The status of
// an installment-bearing fee is re-derived so the stored field can never
// contradict the installment list.
func (r *FeeRepository) Update(ctx context.Context, fee models.Fee) error {
	if err := r.db.checkValid(fee); err != nil {
		return err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.fees {
		if r.db.fees[i].ID == fee.ID {
			fee.RecomputeStatus()
			r.db.fees[i] = cloneFee(fee)
			r.db.persist(ctx, KeyFees, r.db.fees)
			return nil
		}
	}
	return ErrFeeNotFound
}

// Delete removes the fee
func (r *FeeRepository) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.fees {
		if r.db.fees[i].ID == id {
			r.db.fees = append(r.db.fees[:i], r.db.fees[i+1:]...)
			r.db.persist(ctx, KeyFees, r.db.fees)
			return nil
		}
	}
	return ErrFeeNotFound
}

// GetByID retrieves a fee by ID
func (r *FeeRepository) GetByID(ctx context.Context, id string) (models.Fee, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, f := range r.db.fees {
		if f.ID == id {
			return cloneFee(f), nil
		}
	}
	return models.Fee{}, ErrFeeNotFound
}

// List returns all fees
func (r *FeeRepository) List(ctx context.Context) []models.Fee {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]models.Fee, 0, len(r.db.fees))
	for _, f := range r.db.fees {
		out = append(out, cloneFee(f))
	}
	return out
}

// ListByCaseID returns all fees tied to a case
func (r *FeeRepository) ListByCaseID(ctx context.Context, caseID string) []models.Fee {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var out []models.Fee
	for _, f := range r.db.fees {
		if f.CaseID == caseID {
			out = append(out, cloneFee(f))
		}
	}
	return out
}

// SetInstallmentStatus flips one installment and recomputes the parent
// fee's status in the same locked mutation, so no reader ever observes a
// fee whose status contradicts its installments.
func (r *FeeRepository) SetInstallmentStatus(ctx context.Context, feeID, installmentID string, status models.InstallmentStatus) (models.Fee, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i := range r.db.fees {
		if r.db.fees[i].ID != feeID {
			continue
		}
		for j := range r.db.fees[i].Installments {
			if r.db.fees[i].Installments[j].ID == installmentID {
				r.db.fees[i].Installments[j].Status = status
				r.db.fees[i].RecomputeStatus()
				r.db.persist(ctx, KeyFees, r.db.fees)
				return cloneFee(r.db.fees[i]), nil
			}
		}
		return models.Fee{}, ErrInstallmentNotFound
	}
	return models.Fee{}, ErrFeeNotFound
}
