package ports

import (
	"context"
	"time"

	"github.com/seqplan/seqplan/pkg/domain"
)

// SolveResult is a stored outcome of one sequence solve.
type SolveResult struct {
	ID           string               `json:"id"`
	Trajectories []*domain.Trajectory `json:"trajectories"`
	CreatedAt    time.Time            `json:"created_at"`
}

// ResultStore persists solve results so the service layer can hand out an ID
// immediately and serve the trajectories on demand.
type ResultStore interface {
	// Save persists a result under its ID.
	Save(ctx context.Context, result *SolveResult) error

	// Load retrieves a result by ID.
	// Returns domain.ErrResultNotFound if the ID does not exist.
	Load(ctx context.Context, id string) (*SolveResult, error)

	// Delete removes a result by ID.
	Delete(ctx context.Context, id string) error
}
