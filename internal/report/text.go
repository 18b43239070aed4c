// internal/report/text.go
package report

import (
	"fmt"
	"io"

	"github.com/rovshanmuradov/betsim/internal/sim"
)

// WriteBatch prints one batch as two lines:
//
//	Wins: <n>
//	Losses: <n>
func WriteBatch(w io.Writer, r sim.BatchResult) error {
	if _, err := fmt.Fprintf(w, "Wins: %d\nLosses: %d\n", r.Wins, r.Losses); err != nil {
		return fmt.Errorf("write batch %d: %w", r.Index, err)
	}
	return nil
}

// Summary totals a whole run.
type Summary struct {
	Batches int `json:"batches"`
	Trials  int `json:"trials"`
	Wins    int `json:"wins"`
	Losses  int `json:"losses"`
}

// Summarize adds up batch results.
func Summarize(results []sim.BatchResult) Summary {
	s := Summary{Batches: len(results)}
	for _, r := range results {
		s.Trials += r.Trials
		s.Wins += r.Wins
		s.Losses += r.Losses
	}
	return s
}
