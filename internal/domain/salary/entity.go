package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusDraft    Status = "draft"
	StatusApproved Status = "approved"
	StatusPaid     Status = "paid"
	StatusCanceled Status = "canceled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusApproved, StatusPaid, StatusCanceled:
		return true
	}
	return false
}

// DeductionLine is one manually entered deduction. Order is preserved as
// entered; the list is stored as a JSON array.
type DeductionLine struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Record - one employee's salary for one pay period
type Record struct {
	ID              string
	CompanyID       string
	EmployeeID      string
	PeriodStart     time.Time
	PeriodEnd       time.Time
	TotalHours      decimal.Decimal
	TotalPay        decimal.Decimal
	Bonus           decimal.Decimal
	TaxDeduction    decimal.Decimal
	OtherDeductions []DeductionLine
	NetPay          decimal.Decimal
	Notes           *string
	Status          Status
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsPaid reports whether the record has been paid out. Paid records are
// immutable: updates and deletes must be refused.
func (r *Record) IsPaid() bool {
	return r.Status == StatusPaid
}
