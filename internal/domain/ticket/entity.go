package ticket

import "time"

// TicketStatus enum
type TicketStatus string

const (
	StatusOpen       TicketStatus = "open"
	StatusInProgress TicketStatus = "in_progress"
	StatusResolved   TicketStatus = "resolved"
	StatusClosed     TicketStatus = "closed"
)

func (s TicketStatus) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// Priority enum
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Ticket - customer service ticket. TicketNumber is the permanent
// human-readable identifier ("TKT-2024-000001"); it is minted once at
// creation and survives the ticket itself: deleting a ticket never frees
// its number for reuse.
type Ticket struct {
	ID           string
	CompanyID    string
	TicketNumber string
	CustomerID   string
	Title        string
	Description  string
	Priority     Priority
	Status       TicketStatus
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
