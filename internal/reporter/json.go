package reporter

import (
	"encoding/json"
	"io"

	"github.com/pthm/airtriage/internal/triage"
)

// JSONReporter outputs the triage report as JSON
type JSONReporter struct {
	w io.Writer
}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{w: w}
}

// JSONOutput represents the JSON output format. Counts and errors carry
// only non-zero categories; empty collections are omitted, mirroring the
// terminal report's section omission.
type JSONOutput struct {
	Counts    map[string]int      `json:"counts,omitempty"`
	Errors    map[string]int      `json:"errors,omitempty"`
	Items     map[string][]string `json:"items,omitempty"`
	Unmatched []string            `json:"unmatched,omitempty"`
	Summary   Summary             `json:"summary"`
}

// Report outputs the state as JSON
func (r *JSONReporter) Report(state *triage.State) error {
	output := JSONOutput{
		Summary: ComputeSummary(state),
	}

	if len(state.Counts) > 0 {
		output.Counts = state.Counts
	}
	if len(state.Errors) > 0 {
		output.Errors = state.Errors
	}
	for label, lines := range state.Items {
		if len(lines) == 0 {
			continue
		}
		if output.Items == nil {
			output.Items = make(map[string][]string)
		}
		output.Items[label] = lines
	}
	if len(state.Unmatched) > 0 {
		output.Unmatched = state.Unmatched
	}

	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
