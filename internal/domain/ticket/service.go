package ticket

import "context"

type TicketService interface {
	Create(ctx context.Context, req CreateTicketRequest) (TicketResponse, error)
	GetByID(ctx context.Context, id string) (TicketResponse, error)
	List(ctx context.Context, filter TicketFilter) ([]TicketResponse, int64, error)
	UpdateStatus(ctx context.Context, req UpdateTicketStatusRequest) (TicketResponse, error)
	Delete(ctx context.Context, id string) error
}
