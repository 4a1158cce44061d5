package service

import (
	"context"

	"juriscrm/models"
	"juriscrm/repository"
)

// Financials is the money aggregate consumed by the case view and the
// financial overview.
type Financials struct {
	TotalFees     float64 `json:"totalFees"`
	TotalExpenses float64 `json:"totalExpenses"`
	Balance       float64 `json:"balance"`
}

// FinancialService computes money aggregates over the store without
// mutating it.
type FinancialService struct {
	feeRepo     *repository.FeeRepository
	expenseRepo *repository.ExpenseRepository
}

// NewFinancialService creates a new financial service
func NewFinancialService(feeRepo *repository.FeeRepository, expenseRepo *repository.ExpenseRepository) *FinancialService {
	return &FinancialService{
		feeRepo:     feeRepo,
		expenseRepo: expenseRepo,
	}
}

// aggregate applies the received-versus-spent policy: only fees whose status
// is Pago count as received, expenses always count in full.
func aggregate(fees []models.Fee, expenses []models.Expense) Financials {
	var f Financials
	for _, fee := range fees {
		if fee.Status == models.FeePago {
			f.TotalFees += fee.Amount
		}
	}
	for _, e := range expenses {
		f.TotalExpenses += e.Amount
	}
	f.Balance = f.TotalFees - f.TotalExpenses
	return f
}

// CaseFinancials returns the aggregates for a single case
func (s *FinancialService) CaseFinancials(ctx context.Context, caseID string) Financials {
	return aggregate(
		s.feeRepo.ListByCaseID(ctx, caseID),
		s.expenseRepo.ListByCaseID(ctx, caseID),
	)
}

// GlobalFinancials returns the aggregates across all cases
func (s *FinancialService) GlobalFinancials(ctx context.Context) Financials {
	return aggregate(
		s.feeRepo.List(ctx),
		s.expenseRepo.List(ctx),
	)
}
