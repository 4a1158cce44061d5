package models

import "time"

// FeeStatus represents the payment status of a fee
type FeeStatus string

const (
	FeePendente         FeeStatus = "Pendente"
	FeePago             FeeStatus = "Pago"
	FeeAtrasado         FeeStatus = "Atrasado"
	FeeParcialmentePago FeeStatus = "Parcialmente Pago"
)

// FeeType represents the billing modality of a fee
type FeeType string

const (
	FeeExito     FeeType = "Êxito"
	FeeInicial   FeeType = "Inicial"
	FeeParcelado FeeType = "Parcelado"
	FeeConsulta  FeeType = "Consulta"
	FeeRPV       FeeType = "RPV"
)

// InstallmentStatus is the binary payment state of a single installment
type InstallmentStatus string

const (
	InstallmentPendente InstallmentStatus = "Pendente"
	InstallmentPago     InstallmentStatus = "Pago"
)

// Installment is a single parcel of an installment-bearing fee
type Installment struct {
	ID      string            `json:"id"`
	Amount  float64           `json:"amount"`
	DueDate string            `json:"dueDate"` // YYYY-MM-DD
	Status  InstallmentStatus `json:"status"`
}

// Fee represents a billable charge tied to a case
type Fee struct {
	ID           string        `json:"id"`
	CaseID       string        `json:"caseId" validate:"required"`
	Type         FeeType       `json:"type" validate:"required"`
	Description  string        `json:"description" validate:"required"`
	Amount       float64       `json:"amount" validate:"gt=0"`
	DueDate      string        `json:"dueDate"` // YYYY-MM-DD
	Status       FeeStatus     `json:"status"`
	Installments []Installment `json:"installments,omitempty"`
}

// PaidInstallments counts installments whose status is Pago
func (f *Fee) PaidInstallments() int {
	paid := 0
	for _, inst := range f.Installments {
		if inst.Status == InstallmentPago {
			paid++
		}
	}
	return paid
}

// RecomputeStatus derives the status of an installment-bearing fee from its
// installments: Pago when all are paid, Parcialmente Pago when some are.
// With zero paid installments the current status is preserved, since
// Pendente/Atrasado are driven by the due date, not by the installment list.
// Fees without installments are left untouched.
func (f *Fee) RecomputeStatus() {
	if f.Type != FeeParcelado || len(f.Installments) == 0 {
		return
	}

	switch paid := f.PaidInstallments(); {
	case paid == len(f.Installments):
		f.Status = FeePago
	case paid > 0:
		f.Status = FeeParcialmentePago
	}
}

// MarkOverdue flips a still-pending fee to Atrasado once its due date has
// passed. This is the exogenous date-driven transition; installment rollups
// never produce Atrasado.
func (f *Fee) MarkOverdue(today time.Time) {
	if f.Status != FeePendente || f.DueDate == "" {
		return
	}

	due, err := time.Parse(time.DateOnly, f.DueDate)
	if err != nil {
		return
	}
	if due.Before(today.Truncate(24 * time.Hour)) {
		f.Status = FeeAtrasado
	}
}
