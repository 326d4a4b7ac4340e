package sequence

import "time"

// EntityKind scopes a counter to one class of numbered records.
type EntityKind string

const (
	KindTicket EntityKind = "ticket"
)

// Prefix returns the display prefix used in formatted record numbers.
func (k EntityKind) Prefix() string {
	switch k {
	case KindTicket:
		return "TKT"
	}
	return ""
}

// Counter is a tenant's sequence state for one entity kind and year.
// LastIssued only ever grows; issued integers stay allocated even when the
// record they were minted for is later deleted.
type Counter struct {
	TenantID   string
	EntityKind EntityKind
	Year       int
	LastIssued int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
