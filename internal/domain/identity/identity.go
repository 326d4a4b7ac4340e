package identity

import (
	"context"
	"errors"

	"github.com/go-chi/jwtauth/v5"
	"github.com/nexora-hq/nexora-backend-go/internal/domain/user"
)

var ErrNoIdentity = errors.New("no authenticated identity in request context")

// Identity is the resolved tenant and principal for one request. The auth
// layer decodes it from the verified access token before any business code
// runs; services trust these values and do not re-verify them.
type Identity struct {
	TenantID    string
	PrincipalID string
	EmployeeID  string
	Role        user.Role
}

// FromContext extracts the identity from the JWT claims placed in the
// request context by jwtauth.Verifier.
func FromContext(ctx context.Context) (Identity, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Identity{}, ErrNoIdentity
	}

	tenantID, ok := claims["company_id"].(string)
	if !ok || tenantID == "" {
		return Identity{}, ErrNoIdentity
	}

	ident := Identity{TenantID: tenantID}
	ident.PrincipalID, _ = claims["user_id"].(string)
	ident.EmployeeID, _ = claims["employee_id"].(string)
	if role, ok := claims["role"].(string); ok {
		ident.Role = user.Role(role)
	}

	return ident, nil
}
