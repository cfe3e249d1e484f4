package notes

import (
	"context"

	"github.com/apetrov/notewise/internal/client/api"
)

// Repository is the local read-through cache of the user's notes. It
// mirrors whatever the last successful server round-trip returned;
// last write wins, with no conflict detection.
type Repository interface {
	// ReplaceAll swaps the entire cache for the given list.
	ReplaceAll(ctx context.Context, notes []api.Note) error
	// List returns cached notes, newest update first.
	List(ctx context.Context) ([]api.Note, error)
	// Get returns the cached note or api-level absence as (nil, nil).
	Get(ctx context.Context, id string) (*api.Note, error)
	// Upsert inserts or overwrites one cached note.
	Upsert(ctx context.Context, note api.Note) error
	// Delete removes one cached note; absent ids are a no-op.
	Delete(ctx context.Context, id string) error
}
