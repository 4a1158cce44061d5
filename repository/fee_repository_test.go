package repository

import (
	"context"
	"testing"

	"juriscrm/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addInstallmentFee(t *testing.T, db *Database, caseID string) models.Fee {
	t.Helper()
	fee, err := NewFeeRepository(db).Add(context.Background(), models.Fee{
		CaseID:      caseID,
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
	return fee
}

func TestFeeAddDefaults(t *testing.T) {
	db, _ := newTestDatabase(t)

	client := addTestClient(t, db, "Maria Silva")
	kase := addTestCase(t, db, client.ID)
	fee := addInstallmentFee(t, db, kase.ID)

	assert.NotEmpty(t, fee.ID)
	assert.Equal(t, models.FeePendente, fee.Status)
	for _, inst := range fee.Installments {
		assert.NotEmpty(t, inst.ID)
		assert.Equal(t, models.InstallmentPendente, inst.Status)
	}
}

func TestInstallmentRollup(t *testing.T) {
	db, _ := newTestDatabase(t)
	ctx := context.Background()
	repo := NewFeeRepository(db)

	client := addTestClient(t, db, "Maria Silva")
	kase := addTestCase(t, db, client.ID)
	fee := addInstallmentFee(t, db, kase.ID)

	// One of two paid: Parcialmente Pago
	updated, err := repo.SetInstallmentStatus(ctx, fee.ID, fee.Installments[0].ID, models.InstallmentPago)
	require.NoError(t, err)
	assert.Equal(t, models.FeeParcialmentePago, updated.Status)

	// All paid: Pago
	updated, err = repo.SetInstallmentStatus(ctx, fee.ID, fee.Installments[1].ID, models.InstallmentPago)
	require.NoError(t, err)
	assert.Equal(t, models.FeePago, updated.Status)

	// Back to one paid: Parcialmente Pago again
	updated, err = repo.SetInstallmentStatus(ctx, fee.ID, fee.Installments[1].ID, models.InstallmentPendente)
	require.NoError(t, err)
	assert.Equal(t, models.FeeParcialmentePago, updated.Status)
}

func TestInstallmentRollupPreservesExogenousStatus(t *testing.T) {
	db, _ := newTestDatabase(t)
	ctx := context.Background()
	repo := NewFeeRepository(db)

	client := addTestClient(t, db, "Maria Silva")
	kase := addTestCase(t, db, client.ID)
	fee := addInstallmentFee(t, db, kase.ID)

	// Overdue is set from outside; with zero installments paid the rollup
	// must leave it alone.
	fee.Status = models.FeeAtrasado
	require.NoError(t, repo.Update(ctx, fee))
	stored, err := repo.GetByID(ctx, fee.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FeeAtrasado, stored.Status)
}

func TestSetInstallmentStatusNotFound(t *testing.T) {
	db, _ := newTestDatabase(t)
	ctx := context.Background()
	repo := NewFeeRepository(db)

	client := addTestClient(t, db, "Maria Silva")
	kase := addTestCase(t, db, client.ID)
	fee := addInstallmentFee(t, db, kase.ID)

	_, err := repo.SetInstallmentStatus(ctx, "missing", fee.Installments[0].ID, models.InstallmentPago)
	assert.ErrorIs(t, err, ErrFeeNotFound)

	_, err = repo.SetInstallmentStatus(ctx, fee.ID, "missing", models.InstallmentPago)
	assert.ErrorIs(t, err, ErrInstallmentNotFound)
}

func TestFeeUpdateRederivesInstallmentStatus(t *testing.T) {
	db, _ := newTestDatabase(t)
	ctx := context.Background()
	repo := NewFeeRepository(db)

	client := addTestClient(t, db, "Maria Silva")
	kase := addTestCase(t, db, client.ID)
	fee := addInstallmentFee(t, db, kase.ID)

	// A caller trying to force Pago while installments are pending loses:
	// the stored status is re-derived from the installment list.
	fee.Status = models.FeePago
	fee.Installments[0].Status = models.InstallmentPago
	require.NoError(t, repo.Update(ctx, fee))

	stored, err := repo.GetByID(ctx, fee.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FeeParcialmentePago, stored.Status)
}
