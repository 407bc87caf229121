package triage

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pthm/airtriage/internal/rules"
)

// Classifier applies an ordered rule table to log lines and folds the
// outcomes into a State
type Classifier struct {
	table *rules.Table

	// Progress, when set, is called every ProgressEvery lines during
	// Consume with the running line count. Used by the interactive UI;
	// nil in piped and test runs.
	Progress      func(lines int)
	ProgressEvery int
}

// NewClassifier creates a classifier over the given rule table
func NewClassifier(table *rules.Table) *Classifier {
	return &Classifier{table: table, ProgressEvery: 1000}
}

// NewState creates an empty state over the classifier's categories
func (c *Classifier) NewState() *State {
	return NewState(c.table.Categories())
}

// Apply classifies one line and applies its outcome to the state. Every
// line resolves to exactly one of: count increment, error increment with
// optional item retention, ignored, or unmatched. There is no failure
// mode.
func (c *Classifier) Apply(state *State, line string) {
	state.Lines++

	rule, ok := c.table.Classify(line)
	if !ok {
		state.AddUnmatched(line)
		return
	}

	switch rule.Outcome {
	case rules.OutcomeCount, rules.OutcomeError:
		state.Increment(rule.Category)
	case rules.OutcomeErrorItem:
		state.Record(rule.Category, line)
	case rules.OutcomeIgnore:
		// no observable effect
	}
}

// Consume reads the stream line by line until end-of-stream, classifying
// each line into the state. End-of-stream is the normal termination
// signal; only a read failure returns an error.
func (c *Classifier) Consume(state *State, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	// Lines embed whole JSON sensor records when readings go insane;
	// the default 64K token limit is too small for comfort.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		c.Apply(state, scanner.Text())
		if c.Progress != nil && c.ProgressEvery > 0 && state.Lines%c.ProgressEvery == 0 {
			c.Progress(state.Lines)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading log stream: %w", err)
	}

	if c.Progress != nil {
		c.Progress(state.Lines)
	}
	return nil
}
