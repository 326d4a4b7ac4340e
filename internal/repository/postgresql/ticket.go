package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/nexora-hq/nexora-backend-go/internal/domain/ticket"
	"github.com/nexora-hq/nexora-backend-go/internal/pkg/database"
)

type ticketRepository struct {
	db *database.DB
}

func NewTicketRepository(db *database.DB) ticket.Repository {
	return &ticketRepository{db: db}
}

const ticketColumns = `
	id, company_id, ticket_number, customer_id, title, description,
	priority, status, created_by, created_at, updated_at
`

func scanTicket(row pgx.Row) (ticket.Ticket, error) {
	var t ticket.Ticket
	err := row.Scan(
		&t.ID, &t.CompanyID, &t.TicketNumber, &t.CustomerID, &t.Title, &t.Description,
		&t.Priority, &t.Status, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *ticketRepository) Create(ctx context.Context, t ticket.Ticket) (ticket.Ticket, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tickets (
			id, company_id, ticket_number, customer_id, title, description,
			priority, status, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + ticketColumns

	created, err := scanTicket(q.QueryRow(ctx, query,
		t.ID, t.CompanyID, t.TicketNumber, t.CustomerID, t.Title, t.Description,
		t.Priority, t.Status, t.CreatedBy,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_ticket_number") {
			return ticket.Ticket{}, ticket.ErrTicketNumberExists
		}
		return ticket.Ticket{}, fmt.Errorf("failed to create ticket: %w", err)
	}

	return created, nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (ticket.Ticket, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	t, err := scanTicket(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return ticket.Ticket{}, ticket.ErrTicketNotFound
		}
		return ticket.Ticket{}, fmt.Errorf("failed to get ticket: %w", err)
	}

	return t, nil
}

func (r *ticketRepository) ListByCompany(ctx context.Context, companyID string, filter ticket.TicketFilter) ([]ticket.Ticket, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := ` FROM tickets WHERE company_id = $1`
	args := []interface{}{companyID}
	argIdx := 2

	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Priority != nil {
		baseQuery += fmt.Sprintf(" AND priority = $%d", argIdx)
		args = append(args, *filter.Priority)
		argIdx++
	}
	if filter.CustomerID != nil {
		baseQuery += fmt.Sprintf(" AND customer_id = $%d", argIdx)
		args = append(args, *filter.CustomerID)
		argIdx++
	}

	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+baseQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`SELECT %s %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		ticketColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []ticket.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}

	return tickets, totalCount, nil
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id string, companyID string, status ticket.TicketStatus) (ticket.Ticket, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tickets SET status = $3, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING ` + ticketColumns

	t, err := scanTicket(q.QueryRow(ctx, query, id, companyID, status))
	if err != nil {
		if err == pgx.ErrNoRows {
			return ticket.Ticket{}, ticket.ErrTicketNotFound
		}
		return ticket.Ticket{}, fmt.Errorf("failed to update ticket status: %w", err)
	}

	return t, nil
}

// Delete removes the ticket row only. The sequence counter that minted its
// number is untouched, so the number is never reissued.
func (r *ticketRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM tickets WHERE id = $1 AND company_id = $2 RETURNING id`

	var deletedID string
	err := q.QueryRow(ctx, query, id, companyID).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ticket.ErrTicketNotFound
		}
		return fmt.Errorf("failed to delete ticket: %w", err)
	}

	return nil
}
