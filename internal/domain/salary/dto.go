package salary

import (
	"time"

	"github.com/nexora-hq/nexora-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	EmployeeID      string          `json:"employee_id"`
	PeriodStart     string          `json:"period_start"`
	PeriodEnd       string          `json:"period_end"`
	TotalHours      decimal.Decimal `json:"total_hours"`
	TotalPay        decimal.Decimal `json:"total_pay"`
	Bonus           decimal.Decimal `json:"bonus"`
	TaxDeduction    decimal.Decimal `json:"tax_deduction"`
	OtherDeductions []DeductionLine `json:"other_deductions,omitempty"`
	NetPay          decimal.Decimal `json:"net_pay"`
	Notes           *string         `json:"notes,omitempty"`
	Status          *Status         `json:"status,omitempty"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	start, startOK := validator.IsValidDate(r.PeriodStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, endOK := validator.IsValidDate(r.PeriodEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must not precede period_start"})
	}
	if r.TotalHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "total_hours", Message: "must be non-negative"})
	}
	if r.TotalPay.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "total_pay", Message: "must be non-negative"})
	}
	if r.Bonus.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "bonus", Message: "must be non-negative"})
	}
	if r.TaxDeduction.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "tax_deduction", Message: "must be non-negative"})
	}
	for _, d := range r.OtherDeductions {
		if d.Amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "other_deductions", Message: "amounts must be non-negative"})
			break
		}
	}
	if r.NetPay.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "net_pay", Message: "must be non-negative"})
	}
	if r.Status != nil && !r.Status.IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be draft, approved, paid or canceled"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateRequest struct {
	ID              string           `json:"-"`
	EmployeeID      *string          `json:"employee_id,omitempty"`
	PeriodStart     *string          `json:"period_start,omitempty"`
	PeriodEnd       *string          `json:"period_end,omitempty"`
	TotalHours      *decimal.Decimal `json:"total_hours,omitempty"`
	TotalPay        *decimal.Decimal `json:"total_pay,omitempty"`
	Bonus           *decimal.Decimal `json:"bonus,omitempty"`
	TaxDeduction    *decimal.Decimal `json:"tax_deduction,omitempty"`
	OtherDeductions *[]DeductionLine `json:"other_deductions,omitempty"`
	NetPay          *decimal.Decimal `json:"net_pay,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
	Status          *Status          `json:"status,omitempty"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != nil && validator.IsEmpty(*r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must not be empty"})
	}
	if r.PeriodStart != nil {
		if _, ok := validator.IsValidDate(*r.PeriodStart); !ok {
			errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.PeriodEnd != nil {
		if _, ok := validator.IsValidDate(*r.PeriodEnd); !ok {
			errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.TotalHours != nil && r.TotalHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "total_hours", Message: "must be non-negative"})
	}
	if r.TotalPay != nil && r.TotalPay.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "total_pay", Message: "must be non-negative"})
	}
	if r.Bonus != nil && r.Bonus.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "bonus", Message: "must be non-negative"})
	}
	if r.TaxDeduction != nil && r.TaxDeduction.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "tax_deduction", Message: "must be non-negative"})
	}
	if r.OtherDeductions != nil {
		for _, d := range *r.OtherDeductions {
			if d.Amount.IsNegative() {
				errs = append(errs, validator.ValidationError{Field: "other_deductions", Message: "amounts must be non-negative"})
				break
			}
		}
	}
	if r.NetPay != nil && r.NetPay.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "net_pay", Message: "must be non-negative"})
	}
	if r.Status != nil && !r.Status.IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be draft, approved, paid or canceled"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID              string          `json:"id"`
	CompanyID       string          `json:"company_id"`
	EmployeeID      string          `json:"employee_id"`
	PeriodStart     string          `json:"period_start"`
	PeriodEnd       string          `json:"period_end"`
	TotalHours      decimal.Decimal `json:"total_hours"`
	TotalPay        decimal.Decimal `json:"total_pay"`
	Bonus           decimal.Decimal `json:"bonus"`
	TaxDeduction    decimal.Decimal `json:"tax_deduction"`
	OtherDeductions []DeductionLine `json:"other_deductions"`
	NetPay          decimal.Decimal `json:"net_pay"`
	Notes           *string         `json:"notes,omitempty"`
	Status          Status          `json:"status"`
	Version         int64           `json:"version"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func ToResponse(r Record) RecordResponse {
	return RecordResponse{
		ID:              r.ID,
		CompanyID:       r.CompanyID,
		EmployeeID:      r.EmployeeID,
		PeriodStart:     r.PeriodStart.Format("2006-01-02"),
		PeriodEnd:       r.PeriodEnd.Format("2006-01-02"),
		TotalHours:      r.TotalHours,
		TotalPay:        r.TotalPay,
		Bonus:           r.Bonus,
		TaxDeduction:    r.TaxDeduction,
		OtherDeductions: r.OtherDeductions,
		NetPay:          r.NetPay,
		Notes:           r.Notes,
		Status:          r.Status,
		Version:         r.Version,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// Filter narrows ListRecords
type Filter struct {
	EmployeeID *string
	Status     *Status
	Page       int
	Limit      int
}
