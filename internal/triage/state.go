// Package triage holds the per-run aggregation state and the single-pass
// stream consumer that populates it.
//
// Retention is unbounded: itemized and unmatched lines are kept verbatim
// for the report, so memory grows with the number of retained lines. A
// pathological input (a connection failure repeating for days) grows the
// run's footprint accordingly. Capping retention would silently change
// report semantics, so the tool does not.
package triage

import "github.com/pthm/airtriage/internal/category"

// State is the aggregation state for one run. It is created empty,
// populated by exactly one writer while the stream is consumed, and read
// only once reporting begins. Nothing persists across runs.
type State struct {
	// Counts maps count-category labels to occurrence tallies.
	// Absent keys are implicitly zero.
	Counts map[string]int

	// Errors maps error-category labels (itemized included) to tallies
	Errors map[string]int

	// Items maps itemized-category labels to retained lines in
	// encounter order
	Items map[string][]string

	// Unmatched holds lines that matched no rule, in encounter order
	Unmatched []string

	// Lines is the total number of lines consumed
	Lines int

	categories *category.Registry
}

// NewState creates an empty state over the given category registry
func NewState(reg *category.Registry) *State {
	return &State{
		Counts:     make(map[string]int),
		Errors:     make(map[string]int),
		Items:      make(map[string][]string),
		categories: reg,
	}
}

// Increment adds one occurrence of the named category, routed to the
// count or error store by the category's group. There is no decrement
// and no reset; a category's value only ever grows.
func (s *State) Increment(label string) {
	switch s.categories.GroupOf(label) {
	case category.GroupCount:
		s.Counts[label]++
	case category.GroupError, category.GroupItemized:
		s.Errors[label]++
	}
}

// Record retains the verbatim line for an itemized category and counts
// the occurrence in the error store
func (s *State) Record(label, line string) {
	s.Errors[label]++
	s.Items[label] = append(s.Items[label], line)
}

// AddUnmatched appends a line that matched no rule
func (s *State) AddUnmatched(line string) {
	s.Unmatched = append(s.Unmatched, line)
}

// Categories returns the category registry this state was built over
func (s *State) Categories() *category.Registry {
	return s.categories
}

// Matched returns the number of lines that matched a reporting rule
func (s *State) Matched() int {
	n := 0
	for _, c := range s.Counts {
		n += c
	}
	for _, c := range s.Errors {
		n += c
	}
	return n
}
