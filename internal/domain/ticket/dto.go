package ticket

import (
	"time"

	"github.com/nexora-hq/nexora-backend-go/internal/pkg/validator"
)

type CreateTicketRequest struct {
	CustomerID  string    `json:"customer_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    *Priority `json:"priority,omitempty"`
}

func (r *CreateTicketRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CustomerID) {
		errs = append(errs, validator.ValidationError{Field: "customer_id", Message: "is required"})
	}
	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "is required"})
	}
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "is required"})
	}
	if r.Priority != nil && !r.Priority.IsValid() {
		errs = append(errs, validator.ValidationError{Field: "priority", Message: "must be low, medium, high or urgent"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateTicketStatusRequest struct {
	ID     string       `json:"-"`
	Status TicketStatus `json:"status"`
}

func (r *UpdateTicketStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Status.IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be open, in_progress, resolved or closed"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TicketResponse struct {
	ID           string       `json:"id"`
	CompanyID    string       `json:"company_id"`
	TicketNumber string       `json:"ticket_number"`
	CustomerID   string       `json:"customer_id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Priority     Priority     `json:"priority"`
	Status       TicketStatus `json:"status"`
	CreatedBy    string       `json:"created_by"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func ToResponse(t Ticket) TicketResponse {
	return TicketResponse{
		ID:           t.ID,
		CompanyID:    t.CompanyID,
		TicketNumber: t.TicketNumber,
		CustomerID:   t.CustomerID,
		Title:        t.Title,
		Description:  t.Description,
		Priority:     t.Priority,
		Status:       t.Status,
		CreatedBy:    t.CreatedBy,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// TicketFilter narrows ListTickets
type TicketFilter struct {
	Status     *TicketStatus
	Priority   *Priority
	CustomerID *string
	Page       int
	Limit      int
}
