package ticket

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nexora-hq/nexora-backend-go/internal/domain/identity"
	"github.com/nexora-hq/nexora-backend-go/internal/domain/sequence"
	"github.com/nexora-hq/nexora-backend-go/internal/domain/ticket"
	"github.com/nexora-hq/nexora-backend-go/internal/pkg/database"
	"github.com/nexora-hq/nexora-backend-go/internal/repository/postgresql"
)

type TicketServiceImpl struct {
	ticketRepo   ticket.Repository
	sequenceRepo sequence.Repository
	inTx         func(ctx context.Context, fn func(ctx context.Context) error) error
	now          func() time.Time
}

func NewTicketService(db *database.DB, ticketRepo ticket.Repository, sequenceRepo sequence.Repository) ticket.TicketService {
	return &TicketServiceImpl{
		ticketRepo:   ticketRepo,
		sequenceRepo: sequenceRepo,
		inTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
				return fn(context.WithValue(ctx, "tx", tx))
			})
		},
		now: time.Now,
	}
}

// Create mints the ticket number and persists the ticket in one transaction.
// If the insert fails the allocation rolls back with it, so a number is never
// duplicated and never burned by a failed creation. The row lock taken by the
// counter upsert serializes creations within one tenant and year until the
// transaction ends.
func (s *TicketServiceImpl) Create(ctx context.Context, req ticket.CreateTicketRequest) (ticket.TicketResponse, error) {
	if err := req.Validate(); err != nil {
		return ticket.TicketResponse{}, err
	}

	ident, err := identity.FromContext(ctx)
	if err != nil {
		return ticket.TicketResponse{}, err
	}

	year := s.now().Year()

	priority := ticket.PriorityMedium
	if req.Priority != nil {
		priority = *req.Priority
	}

	var created ticket.Ticket
	err = s.inTx(ctx, func(txCtx context.Context) error {
		seq, err := s.sequenceRepo.AllocateNext(txCtx, ident.TenantID, sequence.KindTicket, year)
		if err != nil {
			return err
		}

		number, err := sequence.Format(sequence.KindTicket.Prefix(), year, seq)
		if err != nil {
			return err
		}

		created, err = s.ticketRepo.Create(txCtx, ticket.Ticket{
			ID:           uuid.NewString(),
			CompanyID:    ident.TenantID,
			TicketNumber: number,
			CustomerID:   req.CustomerID,
			Title:        req.Title,
			Description:  req.Description,
			Priority:     priority,
			Status:       ticket.StatusOpen,
			CreatedBy:    ident.PrincipalID,
		})
		return err
	})
	if err != nil {
		return ticket.TicketResponse{}, err
	}

	return ticket.ToResponse(created), nil
}

func (s *TicketServiceImpl) GetByID(ctx context.Context, id string) (ticket.TicketResponse, error) {
	ident, err := identity.FromContext(ctx)
	if err != nil {
		return ticket.TicketResponse{}, err
	}

	t, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return ticket.TicketResponse{}, err
	}
	if t.CompanyID != ident.TenantID {
		return ticket.TicketResponse{}, ticket.ErrTicketForbidden
	}

	return ticket.ToResponse(t), nil
}

func (s *TicketServiceImpl) List(ctx context.Context, filter ticket.TicketFilter) ([]ticket.TicketResponse, int64, error) {
	ident, err := identity.FromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	tickets, total, err := s.ticketRepo.ListByCompany(ctx, ident.TenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ticket.TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		responses = append(responses, ticket.ToResponse(t))
	}

	return responses, total, nil
}

func (s *TicketServiceImpl) UpdateStatus(ctx context.Context, req ticket.UpdateTicketStatusRequest) (ticket.TicketResponse, error) {
	if err := req.Validate(); err != nil {
		return ticket.TicketResponse{}, err
	}

	ident, err := identity.FromContext(ctx)
	if err != nil {
		return ticket.TicketResponse{}, err
	}

	existing, err := s.ticketRepo.GetByID(ctx, req.ID)
	if err != nil {
		return ticket.TicketResponse{}, err
	}
	if existing.CompanyID != ident.TenantID {
		return ticket.TicketResponse{}, ticket.ErrTicketForbidden
	}

	updated, err := s.ticketRepo.UpdateStatus(ctx, req.ID, ident.TenantID, req.Status)
	if err != nil {
		return ticket.TicketResponse{}, err
	}

	return ticket.ToResponse(updated), nil
}

func (s *TicketServiceImpl) Delete(ctx context.Context, id string) error {
	ident, err := identity.FromContext(ctx)
	if err != nil {
		return err
	}

	existing, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.CompanyID != ident.TenantID {
		return ticket.ErrTicketForbidden
	}

	return s.ticketRepo.Delete(ctx, id, ident.TenantID)
}
