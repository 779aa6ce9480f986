package bench

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// Row is the measurement for one input size.
type Row struct {
	N          int           `json:"n"`
	Iterations int           `json:"iterations"`
	TotalCost  uint64        `json:"total_cost"`
	AvgCost    float64       `json:"avg_cost"`
	PerElement float64       `json:"per_element"`
	PerNLogN   float64       `json:"per_nlogn"`
	Duration   time.Duration `json:"duration"`

	// Cached is set when the row was served from the cache instead of
	// being measured.
	Cached bool `json:"cached,omitempty"`
}

// String formats the row as "n<TAB>cost/nN".
func (r Row) String() string {
	return fmt.Sprintf("%8d\t%8.2fN", r.N, r.PerElement)
}

// Report is the result of one benchmark run.
type Report struct {
	ID        string        `json:"id"`
	Seed      uint64        `json:"seed"`
	Options   Options       `json:"options"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Rows      []Row         `json:"rows"`

	// Deterministic is false when the seed was picked from the clock.
	Deterministic bool `json:"deterministic"`
}

func newReport(opts Options, seed uint64) *Report {
	return &Report{
		ID:            uuid.NewString(),
		Seed:          seed,
		Options:       opts,
		StartedAt:     time.Now().UTC(),
		Deterministic: opts.Seed != 0,
	}
}

// Growth returns PerNLogN of the last row divided by PerNLogN of the first.
// A value near 1 means the cost grows like n log n over the measured range.
// It returns 0 with fewer than two rows.
func (r *Report) Growth() float64 {
	if len(r.Rows) < 2 || r.Rows[0].PerNLogN == 0 {
		return 0
	}
	return r.Rows[len(r.Rows)-1].PerNLogN / r.Rows[0].PerNLogN
}

// WriteText writes one line per row in [Row.String] format.
func (r *Report) WriteText(w io.Writer) error {
	for _, row := range r.Rows {
		if _, err := fmt.Fprintln(w, row); err != nil {
			return err
		}
	}
	return nil
}
