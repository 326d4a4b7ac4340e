package salary

import "context"

// Repository defines data access for salary records.
//
// GetByID intentionally takes no company filter: services load the record,
// then compare its CompanyID against the caller's tenant so a mismatch can
// be reported as forbidden rather than not found. Every mutating method is
// company-scoped in its WHERE clause as a second line of defense.
type Repository interface {
	Create(ctx context.Context, record Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	ListByCompany(ctx context.Context, companyID string, filter Filter) ([]Record, int64, error)
	ListByEmployee(ctx context.Context, companyID string, employeeID string) ([]Record, error)

	// UpdateVersioned persists the record only if the stored version still
	// equals expectedVersion, incrementing it on success. A row that exists
	// at a different version yields ErrVersionConflict.
	UpdateVersioned(ctx context.Context, record Record, expectedVersion int64) (Record, error)

	Delete(ctx context.Context, id string, companyID string) error
}
