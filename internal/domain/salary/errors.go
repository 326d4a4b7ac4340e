package salary

import "errors"

var (
	ErrSalaryNotFound    = errors.New("salary record not found")
	ErrSalaryForbidden   = errors.New("salary record belongs to another company")
	ErrInvalidPeriod     = errors.New("period end precedes period start")
	ErrVersionConflict   = errors.New("salary record was modified concurrently")
	ErrSalaryAlreadyPaid = errors.New("salary record already paid, cannot modify")
	ErrCannotDeletePaid  = errors.New("cannot delete paid salary record")
)
