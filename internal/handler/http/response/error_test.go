package response

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nexora-hq/nexora-backend-go/internal/domain/auth"
	"github.com/nexora-hq/nexora-backend-go/internal/domain/identity"
	"github.com/nexora-hq/nexora-backend-go/internal/domain/salary"
	"github.com/nexora-hq/nexora-backend-go/internal/domain/sequence"
	"github.com/nexora-hq/nexora-backend-go/internal/domain/ticket"
	"github.com/nexora-hq/nexora-backend-go/internal/domain/user"
	"github.com/nexora-hq/nexora-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handle(t *testing.T, err error) (int, Response) {
	t.Helper()
	rec := httptest.NewRecorder()
	HandleError(rec, err)

	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec.Code, resp
}

func TestHandleError_StatusMapping(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{salary.ErrSalaryNotFound, http.StatusNotFound, "NOT_FOUND"},
		{ticket.ErrTicketNotFound, http.StatusNotFound, "NOT_FOUND"},
		{salary.ErrSalaryForbidden, http.StatusForbidden, "FORBIDDEN"},
		{ticket.ErrTicketForbidden, http.StatusForbidden, "FORBIDDEN"},
		{user.ErrManagerRoleRequired, http.StatusForbidden, "FORBIDDEN"},
		{salary.ErrVersionConflict, http.StatusConflict, "CONFLICT"},
		{salary.ErrSalaryAlreadyPaid, http.StatusConflict, "CONFLICT"},
		{salary.ErrCannotDeletePaid, http.StatusConflict, "CONFLICT"},
		{ticket.ErrTicketNumberExists, http.StatusConflict, "CONFLICT"},
		{salary.ErrInvalidPeriod, http.StatusBadRequest, "BAD_REQUEST"},
		{sequence.ErrInvalidSequence, http.StatusBadRequest, "BAD_REQUEST"},
		{sequence.ErrMalformedNumber, http.StatusBadRequest, "BAD_REQUEST"},
		{auth.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{auth.ErrInvalidToken, http.StatusUnauthorized, "UNAUTHORIZED"},
		{identity.ErrNoIdentity, http.StatusUnauthorized, "UNAUTHORIZED"},
		{errors.New("something broke"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, c := range cases {
		status, resp := handle(t, c.err)
		assert.Equal(t, c.wantStatus, status, "error %v", c.err)
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error, "error %v", c.err)
		assert.Equal(t, c.wantCode, resp.Error.Code, "error %v", c.err)
	}
}

func TestHandleError_ValidationErrors(t *testing.T) {
	err := validator.ValidationErrors{
		{Field: "bonus", Message: "must be non-negative"},
	}

	status, resp := handle(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "must be non-negative", resp.Error.Details["bonus"])
}

func TestHandleError_StoreUnavailable(t *testing.T) {
	status, resp := handle(t, context.DeadlineExceeded)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "STORE_UNAVAILABLE", resp.Error.Code)
}

func TestHandleError_DebugGatesCause(t *testing.T) {
	cause := errors.New("pq: relation does not exist")

	SetDebug(false)
	_, resp := handle(t, cause)
	assert.Empty(t, resp.Error.Details, "cause must be hidden outside debug mode")

	SetDebug(true)
	defer SetDebug(false)
	_, resp = handle(t, cause)
	assert.Equal(t, cause.Error(), resp.Error.Details["cause"])
}
