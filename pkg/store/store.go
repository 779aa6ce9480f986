// Package store persists benchmark reports so runs can be compared later.
//
// Two backends are provided:
//   - [FileStore]: one JSON file per report, for the CLI
//   - [MongoStore]: a MongoDB collection, for shared history across machines
//
// Both satisfy [Store], and therefore bench.Saver.
package store

import (
	"context"
	"slices"
	"time"

	"github.com/matzehuels/teasort/pkg/bench"
	"github.com/matzehuels/teasort/pkg/errors"
)

// DefaultListLimit caps List when the caller passes limit <= 0.
const DefaultListLimit = 20

// Store persists benchmark reports.
type Store interface {
	// Save inserts or replaces a report, keyed by its ID.
	Save(ctx context.Context, r *bench.Report) error

	// Get returns the report with the given ID or an error with
	// ErrCodeReportNotFound.
	Get(ctx context.Context, id string) (*bench.Report, error)

	// List returns summaries of the most recent reports, newest first.
	List(ctx context.Context, limit int) ([]Summary, error)

	// Delete removes a report. Deleting a missing report is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// Summary describes a stored report without its rows.
type Summary struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Seed      uint64    `json:"seed"`
	MinSize   int       `json:"min_size"`
	MaxSize   int       `json:"max_size"`
	Rows      int       `json:"rows"`
	Growth    float64   `json:"growth"`
}

// Summarize builds the summary of r.
func Summarize(r *bench.Report) Summary {
	return Summary{
		ID:        r.ID,
		StartedAt: r.StartedAt,
		Seed:      r.Seed,
		MinSize:   r.Options.MinSize,
		MaxSize:   r.Options.MaxSize,
		Rows:      len(r.Rows),
		Growth:    r.Growth(),
	}
}

func sortNewestFirst(s []Summary) {
	slices.SortFunc(s, func(a, b Summary) int {
		return b.StartedAt.Compare(a.StartedAt)
	})
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeReportNotFound, "report %s not found", id)
}

var _ bench.Saver = Store(nil)
