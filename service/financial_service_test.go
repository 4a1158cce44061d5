package service

import (
	"context"
	"testing"

	"juriscrm/models"
	"juriscrm/repository"
	"juriscrm/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDatabase(t *testing.T) (*repository.Database, *storage.MemoryStorage) {
	t.Helper()
	store := storage.NewMemoryStorage()
	db, err := repository.NewDatabase(context.Background(), store)
	require.NoError(t, err)
	return db, store
}

func seedClientAndCase(t *testing.T, db *repository.Database) (models.Client, models.Case) {
	t.Helper()
	ctx := context.Background()

	client, err := repository.NewClientRepository(db).Add(ctx, models.Client{
		Name: "Maria Silva",
		CPF:  "111.111.111-11",
	})
	require.NoError(t, err)

	kase, err := repository.NewCaseRepository(db).Add(ctx, models.Case{
		CaseNumber:  "0001/2024",
		ClientID:    client.ID,
		BenefitType: models.BenefitAposentadoriaIdade,
		Status:      models.StatusAnaliseInicial,
	})
	require.NoError(t, err)
	return client, kase
}

func TestCaseFinancialsCountsOnlyPaidFees(t *testing.T) {
	db, _ := newTestDatabase(t)
	ctx := context.Background()

	feeRepo := repository.NewFeeRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	svc := NewFinancialService(feeRepo, expenseRepo)

	_, kase := seedClientAndCase(t, db)

	_, err := feeRepo.Add(ctx, models.Fee{
		CaseID: kase.ID, Type: models.FeeInicial, Description: "Entrada",
		Amount: 300, Status: models.FeePago,
	})
	require.NoError(t, err)
	_, err = feeRepo.Add(ctx, models.Fee{
		CaseID: kase.ID, Type: models.FeeExito, Description: "Êxito",
		Amount: 900, Status: models.FeePendente,
	})
	require.NoError(t, err)
	_, err = expenseRepo.Add(ctx, models.Expense{
		CaseID: kase.ID, Description: "Certidões", Amount: 50,
	})
	require.NoError(t, err)

	got := svc.CaseFinancials(ctx, kase.ID)
	assert.Equal(t, 300.0, got.TotalFees, "pending fees do not count as received")
	assert.Equal(t, 50.0, got.TotalExpenses)
	assert.Equal(t, 250.0, got.Balance)
}

func TestGlobalFinancials(t *testing.T) {
	db, _ := newTestDatabase(t)
	ctx := context.Background()

	feeRepo := repository.NewFeeRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	svc := NewFinancialService(feeRepo, expenseRepo)

	_, caseA := seedClientAndCase(t, db)
	_, caseB := seedClientAndCase(t, db)

	for _, f := range []models.Fee{
		{CaseID: caseA.ID, Type: models.FeeInicial, Description: "A", Amount: 100, Status: models.FeePago},
		{CaseID: caseB.ID, Type: models.FeeInicial, Description: "B", Amount: 200, Status: models.FeePago},
		{CaseID: caseB.ID, Type: models.FeeExito, Description: "C", Amount: 999, Status: models.FeeAtrasado},
	} {
		_, err := feeRepo.Add(ctx, f)
		require.NoError(t, err)
	}
	_, err := expenseRepo.Add(ctx, models.Expense{CaseID: caseA.ID, Description: "D", Amount: 80})
	require.NoError(t, err)

	got := svc.GlobalFinancials(ctx)
	assert.Equal(t, 300.0, got.TotalFees)
	assert.Equal(t, 80.0, got.TotalExpenses)
	assert.Equal(t, 220.0, got.Balance)
}

// Full walkthrough: an installment fee only reaches the received total once
// every installment is paid.
func TestInstallmentFeeScenario(t *testing.T) {
	db, _ := newTestDatabase(t)
	ctx := context.Background()

	feeRepo := repository.NewFeeRepository(db)
	svc := NewFinancialService(feeRepo, repository.NewExpenseRepository(db))

	_, kase := seedClientAndCase(t, db)

	fee, err := feeRepo.Add(ctx, models.Fee{
		CaseID:      kase.ID,
		Type:        models.FeeParcelado,
		Description: "Honorários parcelados",
		Amount:      1000,
		DueDate:     "2024-07-01",
		Installments: []models.Installment{
			{Amount: 500, DueDate: "2024-06-01"},
			{Amount: 500, DueDate: "2024-07-01"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, svc.CaseFinancials(ctx, kase.ID).TotalFees)

	updated, err := feeRepo.SetInstallmentStatus(ctx, fee.ID, fee.Installments[0].ID, models.InstallmentPago)
	require.NoError(t, err)
	assert.Equal(t, models.FeeParcialmentePago, updated.Status)
	assert.Equal(t, 0.0, svc.CaseFinancials(ctx, kase.ID).TotalFees,
		"partially paid fee still contributes nothing")

	updated, err = feeRepo.SetInstallmentStatus(ctx, fee.ID, fee.Installments[1].ID, models.InstallmentPago)
	require.NoError(t, err)
	assert.Equal(t, models.FeePago, updated.Status)
	assert.Equal(t, 1000.0, svc.CaseFinancials(ctx, kase.ID).TotalFees)
}
