package response

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nexora-hq/nexora-backend-go/internal/domain/auth"
	"github.com/nexora-hq/nexora-backend-go/internal/domain/identity"
	"github.com/nexora-hq/nexora-backend-go/internal/domain/salary"
	"github.com/nexora-hq/nexora-backend-go/internal/domain/sequence"
	"github.com/nexora-hq/nexora-backend-go/internal/domain/ticket"
	"github.com/nexora-hq/nexora-backend-go/internal/domain/user"
	"github.com/nexora-hq/nexora-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	if isStoreUnavailable(err) {
		ServiceUnavailable(w, "Datastore temporarily unavailable, retry later", err)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, identity.ErrNoIdentity):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrManagerRoleRequired):
		Forbidden(w, "Manager or owner role required")

	// Salary domain errors
	case errors.Is(err, salary.ErrSalaryNotFound):
		NotFound(w, "Salary record not found")
	case errors.Is(err, salary.ErrSalaryForbidden):
		Forbidden(w, "Salary record belongs to another company")
	case errors.Is(err, salary.ErrInvalidPeriod):
		BadRequest(w, "period_end must not precede period_start", nil)
	case errors.Is(err, salary.ErrVersionConflict):
		Conflict(w, "Salary record was modified concurrently, retry the update")
	case errors.Is(err, salary.ErrSalaryAlreadyPaid):
		Conflict(w, "Paid salary records cannot be modified")
	case errors.Is(err, salary.ErrCannotDeletePaid):
		Conflict(w, "Paid salary records cannot be deleted")

	// Ticket domain errors
	case errors.Is(err, ticket.ErrTicketNotFound):
		NotFound(w, "Ticket not found")
	case errors.Is(err, ticket.ErrTicketForbidden):
		Forbidden(w, "Ticket belongs to another company")
	case errors.Is(err, ticket.ErrTicketNumberExists):
		Conflict(w, "Ticket number already exists")
	case errors.Is(err, sequence.ErrInvalidSequence):
		BadRequest(w, "Sequence number must be positive", nil)
	case errors.Is(err, sequence.ErrMalformedNumber):
		BadRequest(w, "Malformed record number", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred", err)
	}
}

// isStoreUnavailable reports whether err indicates the datastore could not
// be reached at all, as opposed to a query it rejected.
func isStoreUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
