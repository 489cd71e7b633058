// Package store persists generated batches of hpss.OutputSet values,
// grounded on the reference implementation's IconSetRepository/IconSet
// entities. The hpss core never imports this package: persistence is an
// external collaborator (spec.md §1), wired in only by the HTTP service and
// CLI layers.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/jcalabro/hpss"
)

// ErrNotFound is returned when a requested requestID (or requestID,
// setIndex pair) has no matching record.
var ErrNotFound = errors.New("store: not found")

// Record is one persisted batch: the sets generated for a single request,
// plus the metadata the original service attached to each
// (IconSet.metadata in the reference implementation).
type Record struct {
	RequestID string
	Sets      []hpss.OutputSet
	CreatedAt time.Time
}

// SetStore persists and retrieves generated batches, uniqued on
// requestID. Implementations must reject a second Save for a requestID
// that already exists rather than silently overwriting it, matching the
// reference schema's uniqueness constraint on (requestId, setIndex).
type SetStore interface {
	Save(ctx context.Context, requestID string, sets []hpss.OutputSet) error
	Sets(ctx context.Context, requestID string) ([]hpss.OutputSet, error)
	Set(ctx context.Context, requestID string, setIndex int) (hpss.OutputSet, error)
	Delete(ctx context.Context, requestID string) error
}

// ErrAlreadyExists is returned by Save when requestID has already been
// persisted.
var ErrAlreadyExists = errors.New("store: requestID already exists")
