package models

// Expense represents a case-related cost. Expenses carry no status: they are
// settled at creation time.
type Expense struct {
	ID          string  `json:"id"`
	CaseID      string  `json:"caseId" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	Date        string  `json:"date"` // YYYY-MM-DD
}
