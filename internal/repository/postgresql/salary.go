package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nexora-hq/nexora-backend-go/internal/domain/salary"
	"github.com/nexora-hq/nexora-backend-go/internal/pkg/database"
)

type salaryRepository struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.Repository {
	return &salaryRepository{db: db}
}

const salaryColumns = `
	id, company_id, employee_id, period_start, period_end, total_hours,
	total_pay, bonus, tax_deduction, other_deductions, net_pay, notes,
	status, version, created_at, updated_at
`

func scanSalary(row pgx.Row) (salary.Record, error) {
	var rec salary.Record
	var deductionsBytes []byte
	err := row.Scan(
		&rec.ID, &rec.CompanyID, &rec.EmployeeID, &rec.PeriodStart, &rec.PeriodEnd, &rec.TotalHours,
		&rec.TotalPay, &rec.Bonus, &rec.TaxDeduction, &deductionsBytes, &rec.NetPay, &rec.Notes,
		&rec.Status, &rec.Version, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return salary.Record{}, err
	}
	if len(deductionsBytes) > 0 {
		_ = json.Unmarshal(deductionsBytes, &rec.OtherDeductions)
	}
	return rec, nil
}

func (r *salaryRepository) Create(ctx context.Context, record salary.Record) (salary.Record, error) {
	q := GetQuerier(ctx, r.db)

	deductionsJSON, _ := json.Marshal(record.OtherDeductions)

	query := `
		INSERT INTO salaries (
			id, company_id, employee_id, period_start, period_end, total_hours,
			total_pay, bonus, tax_deduction, other_deductions, net_pay, notes, status, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 1)
		RETURNING ` + salaryColumns

	rec, err := scanSalary(q.QueryRow(ctx, query,
		record.ID, record.CompanyID, record.EmployeeID, record.PeriodStart, record.PeriodEnd, record.TotalHours,
		record.TotalPay, record.Bonus, record.TaxDeduction, deductionsJSON, record.NetPay, record.Notes, record.Status,
	))
	if err != nil {
		return salary.Record{}, fmt.Errorf("failed to create salary record: %w", err)
	}

	return rec, nil
}

func (r *salaryRepository) GetByID(ctx context.Context, id string) (salary.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryColumns + ` FROM salaries WHERE id = $1`

	rec, err := scanSalary(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Record{}, salary.ErrSalaryNotFound
		}
		return salary.Record{}, fmt.Errorf("failed to get salary record: %w", err)
	}

	return rec, nil
}

func (r *salaryRepository) ListByCompany(ctx context.Context, companyID string, filter salary.Filter) ([]salary.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := ` FROM salaries WHERE company_id = $1`
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil {
		baseQuery += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+baseQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count salary records: %w", err)
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`SELECT %s %s ORDER BY period_start DESC, created_at DESC LIMIT $%d OFFSET $%d`,
		salaryColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list salary records: %w", err)
	}
	defer rows.Close()

	var records []salary.Record
	for rows.Next() {
		rec, err := scanSalary(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan salary record: %w", err)
		}
		records = append(records, rec)
	}

	return records, totalCount, nil
}

func (r *salaryRepository) ListByEmployee(ctx context.Context, companyID string, employeeID string) ([]salary.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryColumns + `
		FROM salaries
		WHERE company_id = $1 AND employee_id = $2
		ORDER BY period_start DESC`

	rows, err := q.Query(ctx, query, companyID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee salary records: %w", err)
	}
	defer rows.Close()

	var records []salary.Record
	for rows.Next() {
		rec, err := scanSalary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// UpdateVersioned writes the merged record only if nobody else wrote since
// it was read. The version predicate makes the write conditional; a miss is
// reported as ErrVersionConflict when the row still exists so the service
// can re-read and reapply the patch.
func (r *salaryRepository) UpdateVersioned(ctx context.Context, record salary.Record, expectedVersion int64) (salary.Record, error) {
	q := GetQuerier(ctx, r.db)

	deductionsJSON, _ := json.Marshal(record.OtherDeductions)

	query := `
		UPDATE salaries SET
			employee_id = $4, period_start = $5, period_end = $6, total_hours = $7,
			total_pay = $8, bonus = $9, tax_deduction = $10, other_deductions = $11,
			net_pay = $12, notes = $13, status = $14,
			version = version + 1, updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND version = $3
		RETURNING ` + salaryColumns

	rec, err := scanSalary(q.QueryRow(ctx, query,
		record.ID, record.CompanyID, expectedVersion,
		record.EmployeeID, record.PeriodStart, record.PeriodEnd, record.TotalHours,
		record.TotalPay, record.Bonus, record.TaxDeduction, deductionsJSON,
		record.NetPay, record.Notes, record.Status,
	))
	if err == nil {
		return rec, nil
	}
	if err != pgx.ErrNoRows {
		return salary.Record{}, fmt.Errorf("failed to update salary record: %w", err)
	}

	// Distinguish a stale version from a vanished record
	var currentVersion int64
	checkErr := q.QueryRow(ctx, `SELECT version FROM salaries WHERE id = $1 AND company_id = $2`,
		record.ID, record.CompanyID).Scan(&currentVersion)
	if checkErr == pgx.ErrNoRows {
		return salary.Record{}, salary.ErrSalaryNotFound
	}
	if checkErr != nil {
		return salary.Record{}, fmt.Errorf("failed to check salary record version: %w", checkErr)
	}

	return salary.Record{}, salary.ErrVersionConflict
}

func (r *salaryRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM salaries WHERE id = $1 AND company_id = $2 RETURNING id`

	var deletedID string
	err := q.QueryRow(ctx, query, id, companyID).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.ErrSalaryNotFound
		}
		return fmt.Errorf("failed to delete salary record: %w", err)
	}

	return nil
}
