package ticket

import "context"

// Repository defines data access for tickets. GetByID loads without a
// company filter so services can distinguish forbidden from not found, same
// as the salary repository.
type Repository interface {
	Create(ctx context.Context, t Ticket) (Ticket, error)
	GetByID(ctx context.Context, id string) (Ticket, error)
	ListByCompany(ctx context.Context, companyID string, filter TicketFilter) ([]Ticket, int64, error)
	UpdateStatus(ctx context.Context, id string, companyID string, status TicketStatus) (Ticket, error)
	Delete(ctx context.Context, id string, companyID string) error
}
