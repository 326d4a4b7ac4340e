package ticket

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/nexora-hq/nexora-backend-go/internal/domain/sequence"
	"github.com/nexora-hq/nexora-backend-go/internal/domain/ticket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSequenceRepo struct {
	mu       sync.Mutex
	counters map[string]int64
	failNext error
}

func newFakeSequenceRepo() *fakeSequenceRepo {
	return &fakeSequenceRepo{counters: map[string]int64{}}
}

func (f *fakeSequenceRepo) AllocateNext(ctx context.Context, tenantID string, kind sequence.EntityKind, year int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return 0, err
	}
	key := fmt.Sprintf("%s/%s/%d", tenantID, kind, year)
	f.counters[key]++
	return f.counters[key], nil
}

func (f *fakeSequenceRepo) Current(ctx context.Context, tenantID string, kind sequence.EntityKind, year int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counters[fmt.Sprintf("%s/%s/%d", tenantID, kind, year)], nil
}

type fakeTicketRepo struct {
	mu      sync.Mutex
	tickets map[string]ticket.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[string]ticket.Ticket{}}
}

func (f *fakeTicketRepo) Create(ctx context.Context, t ticket.Ticket) (ticket.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.tickets {
		if existing.CompanyID == t.CompanyID && existing.TicketNumber == t.TicketNumber {
			return ticket.Ticket{}, ticket.ErrTicketNumberExists
		}
	}
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	f.tickets[t.ID] = t
	return t, nil
}

func (f *fakeTicketRepo) GetByID(ctx context.Context, id string) (ticket.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tickets[id]
	if !ok {
		return ticket.Ticket{}, ticket.ErrTicketNotFound
	}
	return t, nil
}

func (f *fakeTicketRepo) ListByCompany(ctx context.Context, companyID string, filter ticket.TicketFilter) ([]ticket.Ticket, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []ticket.Ticket
	for _, t := range f.tickets {
		if t.CompanyID == companyID {
			out = append(out, t)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeTicketRepo) UpdateStatus(ctx context.Context, id string, companyID string, status ticket.TicketStatus) (ticket.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tickets[id]
	if !ok || t.CompanyID != companyID {
		return ticket.Ticket{}, ticket.ErrTicketNotFound
	}
	t.Status = status
	t.UpdatedAt = time.Now()
	f.tickets[id] = t
	return t, nil
}

func (f *fakeTicketRepo) Delete(ctx context.Context, id string, companyID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tickets[id]
	if !ok || t.CompanyID != companyID {
		return ticket.ErrTicketNotFound
	}
	delete(f.tickets, id)
	return nil
}

var testTokenAuth = jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil)

func authedContext(t *testing.T, companyID, userID string) context.Context {
	t.Helper()
	token, _, err := testTokenAuth.Encode(map[string]interface{}{
		"user_id":    userID,
		"company_id": companyID,
		"role":       "employee",
		"type":       "access",
		"exp":        time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(ticketRepo ticket.Repository, sequenceRepo sequence.Repository) *TicketServiceImpl {
	return &TicketServiceImpl{
		ticketRepo:   ticketRepo,
		sequenceRepo: sequenceRepo,
		inTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
		now: func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) },
	}
}

func TestTicketService_Create_MintsFirstNumber(t *testing.T) {
	svc := newTestService(newFakeTicketRepo(), newFakeSequenceRepo())
	ctx := authedContext(t, "company-1", "user-1")

	resp, err := svc.Create(ctx, ticket.CreateTicketRequest{
		CustomerID:  "cust-1",
		Title:       "Printer on fire",
		Description: "It is actually on fire",
	})

	require.NoError(t, err)
	assert.Equal(t, "TKT-2024-000001", resp.TicketNumber)
	assert.Equal(t, ticket.StatusOpen, resp.Status)
	assert.Equal(t, ticket.PriorityMedium, resp.Priority)
	assert.Equal(t, "user-1", resp.CreatedBy)
}

func TestTicketService_Create_SequentialNumbers(t *testing.T) {
	svc := newTestService(newFakeTicketRepo(), newFakeSequenceRepo())
	ctx := authedContext(t, "company-1", "user-1")

	for i := 1; i <= 3; i++ {
		resp, err := svc.Create(ctx, ticket.CreateTicketRequest{
			CustomerID:  "cust-1",
			Title:       "Issue",
			Description: "Details",
		})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("TKT-2024-%06d", i), resp.TicketNumber)
	}
}

func TestTicketService_Create_TenantsGetIndependentSeries(t *testing.T) {
	svc := newTestService(newFakeTicketRepo(), newFakeSequenceRepo())

	respA, err := svc.Create(authedContext(t, "company-a", "user-1"), ticket.CreateTicketRequest{
		CustomerID: "cust-1", Title: "A", Description: "a",
	})
	require.NoError(t, err)

	respB, err := svc.Create(authedContext(t, "company-b", "user-2"), ticket.CreateTicketRequest{
		CustomerID: "cust-2", Title: "B", Description: "b",
	})
	require.NoError(t, err)

	assert.Equal(t, "TKT-2024-000001", respA.TicketNumber)
	assert.Equal(t, "TKT-2024-000001", respB.TicketNumber)
}

type ctxKey string

// Create must run the allocation and the insert inside the same transaction
// scope so a failed insert rolls the allocated number back with it.
func TestTicketService_Create_AllocatesAndInsertsInOneTransaction(t *testing.T) {
	ticketRepo := newFakeTicketRepo()
	seqRepo := newFakeSequenceRepo()
	svc := newTestService(ticketRepo, seqRepo)

	const marker ctxKey = "tx-scope"
	var allocCtx, insertCtx context.Context

	svc.inTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return fn(context.WithValue(ctx, marker, true))
	}
	svc.sequenceRepo = allocObserver{seqRepo, func(ctx context.Context) { allocCtx = ctx }}
	svc.ticketRepo = createObserver{ticketRepo, func(ctx context.Context) { insertCtx = ctx }}

	_, err := svc.Create(authedContext(t, "company-1", "user-1"), ticket.CreateTicketRequest{
		CustomerID:  "cust-1",
		Title:       "Issue",
		Description: "Details",
	})

	require.NoError(t, err)
	assert.Equal(t, true, allocCtx.Value(marker), "allocation ran outside the transaction scope")
	assert.Equal(t, true, insertCtx.Value(marker), "insert ran outside the transaction scope")
}

type allocObserver struct {
	sequence.Repository
	observe func(ctx context.Context)
}

func (o allocObserver) AllocateNext(ctx context.Context, tenantID string, kind sequence.EntityKind, year int) (int64, error) {
	o.observe(ctx)
	return o.Repository.AllocateNext(ctx, tenantID, kind, year)
}

type createObserver struct {
	ticket.Repository
	observe func(ctx context.Context)
}

func (o createObserver) Create(ctx context.Context, tk ticket.Ticket) (ticket.Ticket, error) {
	o.observe(ctx)
	return o.Repository.Create(ctx, tk)
}

func TestTicketService_Create_AllocationFailureCreatesNothing(t *testing.T) {
	ticketRepo := newFakeTicketRepo()
	seqRepo := newFakeSequenceRepo()
	seqRepo.failNext = errors.New("connection refused")

	svc := newTestService(ticketRepo, seqRepo)
	ctx := authedContext(t, "company-1", "user-1")

	_, err := svc.Create(ctx, ticket.CreateTicketRequest{
		CustomerID:  "cust-1",
		Title:       "Issue",
		Description: "Details",
	})

	assert.Error(t, err)
	assert.Empty(t, ticketRepo.tickets)
}

func TestTicketService_Create_ConcurrentDistinctNumbers(t *testing.T) {
	svc := newTestService(newFakeTicketRepo(), newFakeSequenceRepo())
	ctx := authedContext(t, "company-1", "user-1")

	const workers = 50
	numbers := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := svc.Create(ctx, ticket.CreateTicketRequest{
				CustomerID:  "cust-1",
				Title:       "Issue",
				Description: "Details",
			})
			assert.NoError(t, err)
			numbers <- resp.TicketNumber
		}()
	}
	wg.Wait()
	close(numbers)

	seen := map[string]bool{}
	for n := range numbers {
		assert.False(t, seen[n], "duplicate ticket number %s", n)
		seen[n] = true
	}
	assert.Len(t, seen, workers)
}

func TestTicketService_Create_NumberNotReissuedAfterDelete(t *testing.T) {
	svc := newTestService(newFakeTicketRepo(), newFakeSequenceRepo())
	ctx := authedContext(t, "company-1", "user-1")

	first, err := svc.Create(ctx, ticket.CreateTicketRequest{
		CustomerID: "cust-1", Title: "First", Description: "d",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, first.ID))

	second, err := svc.Create(ctx, ticket.CreateTicketRequest{
		CustomerID: "cust-1", Title: "Second", Description: "d",
	})
	require.NoError(t, err)
	assert.Equal(t, "TKT-2024-000002", second.TicketNumber)
}

func TestTicketService_GetByID_CrossTenantForbidden(t *testing.T) {
	svc := newTestService(newFakeTicketRepo(), newFakeSequenceRepo())

	created, err := svc.Create(authedContext(t, "company-1", "user-1"), ticket.CreateTicketRequest{
		CustomerID: "cust-1", Title: "Mine", Description: "d",
	})
	require.NoError(t, err)

	_, err = svc.GetByID(authedContext(t, "company-2", "user-9"), created.ID)
	assert.ErrorIs(t, err, ticket.ErrTicketForbidden)
}

func TestTicketService_UpdateStatus(t *testing.T) {
	svc := newTestService(newFakeTicketRepo(), newFakeSequenceRepo())
	ctx := authedContext(t, "company-1", "user-1")

	created, err := svc.Create(ctx, ticket.CreateTicketRequest{
		CustomerID: "cust-1", Title: "Issue", Description: "d",
	})
	require.NoError(t, err)

	resp, err := svc.UpdateStatus(ctx, ticket.UpdateTicketStatusRequest{
		ID:     created.ID,
		Status: ticket.StatusResolved,
	})
	require.NoError(t, err)
	assert.Equal(t, ticket.StatusResolved, resp.Status)
	// The minted number never changes
	assert.Equal(t, created.TicketNumber, resp.TicketNumber)
}

func TestTicketService_UpdateStatus_InvalidStatus(t *testing.T) {
	svc := newTestService(newFakeTicketRepo(), newFakeSequenceRepo())
	ctx := authedContext(t, "company-1", "user-1")

	_, err := svc.UpdateStatus(ctx, ticket.UpdateTicketStatusRequest{
		ID:     "whatever",
		Status: ticket.TicketStatus("exploded"),
	})
	assert.Error(t, err)
}
