package salary

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nexora-hq/nexora-backend-go/internal/domain/identity"
	"github.com/nexora-hq/nexora-backend-go/internal/domain/salary"
	"github.com/nexora-hq/nexora-backend-go/internal/pkg/validator"
)

// maxConflictRetries bounds how often a losing concurrent writer re-reads
// and reapplies its patch before the conflict is surfaced to the caller.
const maxConflictRetries = 3

type SalaryServiceImpl struct {
	salaryRepo salary.Repository
}

func NewSalaryService(salaryRepo salary.Repository) salary.SalaryService {
	return &SalaryServiceImpl{salaryRepo: salaryRepo}
}

func (s *SalaryServiceImpl) Create(ctx context.Context, req salary.CreateRequest) (salary.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.RecordResponse{}, err
	}

	ident, err := identity.FromContext(ctx)
	if err != nil {
		return salary.RecordResponse{}, err
	}

	periodStart, _ := validator.IsValidDate(req.PeriodStart)
	periodEnd, _ := validator.IsValidDate(req.PeriodEnd)

	status := salary.StatusDraft
	if req.Status != nil {
		status = *req.Status
	}

	record := salary.Record{
		ID:              uuid.NewString(),
		CompanyID:       ident.TenantID,
		EmployeeID:      req.EmployeeID,
		PeriodStart:     periodStart,
		PeriodEnd:       periodEnd,
		TotalHours:      req.TotalHours,
		TotalPay:        req.TotalPay,
		Bonus:           req.Bonus,
		TaxDeduction:    req.TaxDeduction,
		OtherDeductions: req.OtherDeductions,
		NetPay:          req.NetPay,
		Notes:           req.Notes,
		Status:          status,
	}

	created, err := s.salaryRepo.Create(ctx, record)
	if err != nil {
		return salary.RecordResponse{}, err
	}

	return salary.ToResponse(created), nil
}

func (s *SalaryServiceImpl) GetByID(ctx context.Context, id string) (salary.RecordResponse, error) {
	ident, err := identity.FromContext(ctx)
	if err != nil {
		return salary.RecordResponse{}, err
	}

	record, err := s.salaryRepo.GetByID(ctx, id)
	if err != nil {
		return salary.RecordResponse{}, err
	}
	if record.CompanyID != ident.TenantID {
		return salary.RecordResponse{}, salary.ErrSalaryForbidden
	}

	// Employees may only see their own records
	if !ident.Role.CanManagePayroll() && record.EmployeeID != ident.EmployeeID {
		return salary.RecordResponse{}, salary.ErrSalaryForbidden
	}

	return salary.ToResponse(record), nil
}

func (s *SalaryServiceImpl) List(ctx context.Context, filter salary.Filter) ([]salary.RecordResponse, int64, error) {
	ident, err := identity.FromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	records, total, err := s.salaryRepo.ListByCompany(ctx, ident.TenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]salary.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, salary.ToResponse(rec))
	}

	return responses, total, nil
}

func (s *SalaryServiceImpl) ListMine(ctx context.Context) ([]salary.RecordResponse, error) {
	ident, err := identity.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.salaryRepo.ListByEmployee(ctx, ident.TenantID, ident.EmployeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]salary.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, salary.ToResponse(rec))
	}

	return responses, nil
}

// Update applies a partial update through the reconciliation rule and
// persists it with a versioned conditional write. On a version conflict the
// patch is reapplied against the freshly re-read record, never against the
// stale totals, up to maxConflictRetries attempts.
func (s *SalaryServiceImpl) Update(ctx context.Context, req salary.UpdateRequest) (salary.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.RecordResponse{}, err
	}

	ident, err := identity.FromContext(ctx)
	if err != nil {
		return salary.RecordResponse{}, err
	}

	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		existing, err := s.salaryRepo.GetByID(ctx, req.ID)
		if err != nil {
			return salary.RecordResponse{}, err
		}
		if existing.CompanyID != ident.TenantID {
			return salary.RecordResponse{}, salary.ErrSalaryForbidden
		}
		if existing.IsPaid() {
			return salary.RecordResponse{}, salary.ErrSalaryAlreadyPaid
		}

		merged := salary.Reconcile(existing, req)
		if merged.PeriodEnd.Before(merged.PeriodStart) {
			return salary.RecordResponse{}, salary.ErrInvalidPeriod
		}

		updated, err := s.salaryRepo.UpdateVersioned(ctx, merged, existing.Version)
		if err == nil {
			return salary.ToResponse(updated), nil
		}
		if !errors.Is(err, salary.ErrVersionConflict) {
			return salary.RecordResponse{}, err
		}
	}

	return salary.RecordResponse{}, salary.ErrVersionConflict
}

func (s *SalaryServiceImpl) Delete(ctx context.Context, id string) error {
	ident, err := identity.FromContext(ctx)
	if err != nil {
		return err
	}

	existing, err := s.salaryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.CompanyID != ident.TenantID {
		return salary.ErrSalaryForbidden
	}
	if existing.IsPaid() {
		return salary.ErrCannotDeletePaid
	}

	return s.salaryRepo.Delete(ctx, id, ident.TenantID)
}
