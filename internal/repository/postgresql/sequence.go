package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nexora-hq/nexora-backend-go/internal/domain/sequence"
	"github.com/nexora-hq/nexora-backend-go/internal/pkg/database"
)

type sequenceRepository struct {
	db *database.DB
}

func NewSequenceRepository(db *database.DB) sequence.Repository {
	return &sequenceRepository{db: db}
}

// AllocateNext increments and returns the counter for (tenant, kind, year)
// in one statement. The upsert makes the first allocation of a new key and
// every later allocation the same atomic operation, so two concurrent
// callers can never read the same value; the row lock taken by the insert
// or update serializes them. The counter never derives its value from
// existing ticket rows.
func (r *sequenceRepository) AllocateNext(ctx context.Context, tenantID string, kind sequence.EntityKind, year int) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO sequence_counters (tenant_id, entity_kind, year, last_issued)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (tenant_id, entity_kind, year)
		DO UPDATE SET last_issued = sequence_counters.last_issued + 1, updated_at = NOW()
		RETURNING last_issued
	`

	var issued int64
	err := q.QueryRow(ctx, query, tenantID, string(kind), year).Scan(&issued)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate sequence number: %w", err)
	}

	return issued, nil
}

// Current returns the last issued value, 0 when nothing was allocated yet.
func (r *sequenceRepository) Current(ctx context.Context, tenantID string, kind sequence.EntityKind, year int) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT last_issued FROM sequence_counters
		WHERE tenant_id = $1 AND entity_kind = $2 AND year = $3
	`

	var issued int64
	err := q.QueryRow(ctx, query, tenantID, string(kind), year).Scan(&issued)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read sequence counter: %w", err)
	}

	return issued, nil
}
