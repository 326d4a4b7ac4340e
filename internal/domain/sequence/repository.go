package sequence

import "context"

// Repository hands out sequence numbers.
//
// AllocateNext must be a single atomic increment-and-fetch against the
// store: for a fixed (tenantID, kind, year) key, concurrent calls across any
// number of processes return distinct integers starting at 1. Deriving the
// next value from existing records is not an acceptable implementation.
// On store failure no number is considered issued; the caller retries the
// whole surrounding creation.
type Repository interface {
	AllocateNext(ctx context.Context, tenantID string, kind EntityKind, year int) (int64, error)

	// Current reports the last issued value without allocating, 0 when the
	// counter does not exist yet. It is a diagnostic read; request paths
	// only ever allocate.
	Current(ctx context.Context, tenantID string, kind EntityKind, year int) (int64, error)
}
