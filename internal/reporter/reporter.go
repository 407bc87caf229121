package reporter

import (
	"github.com/pthm/airtriage/internal/triage"
)

// Reporter defines the interface for rendering a finished triage run
type Reporter interface {
	// Report renders the final state. The state is read-only by the
	// time a reporter sees it.
	Report(state *triage.State) error
}

// Summary holds summary statistics for a triage run
type Summary struct {
	Lines     int `json:"lines"`
	Matched   int `json:"matched"`
	Counts    int `json:"counts"`
	Errors    int `json:"errors"`
	Unmatched int `json:"unmatched"`
}

// ComputeSummary computes summary statistics from a triage state
func ComputeSummary(state *triage.State) Summary {
	s := Summary{
		Lines:     state.Lines,
		Matched:   state.Matched(),
		Unmatched: len(state.Unmatched),
	}
	for _, n := range state.Counts {
		s.Counts += n
	}
	for _, n := range state.Errors {
		s.Errors += n
	}
	return s
}
