package reporter

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/pthm/airtriage/internal/triage"
	"github.com/pthm/airtriage/internal/ui"
)

// minValueWidth keeps single-digit tallies visually separated from the
// longest label in the section
const minValueWidth = 6

// TerminalReporter renders the triage report as plain text. Section order
// is fixed: counts, errors, one section per non-empty itemized category,
// unmatched lines. Sections with no content are omitted entirely,
// headers included.
type TerminalReporter struct {
	w      io.Writer
	styles *ui.Styles

	// Frequencies optionally maps exact line text to a known occurrence
	// count. When a retained line appears here with a count above one,
	// its first occurrence renders with an "(N times)" suffix and later
	// duplicates are suppressed. Nothing populates this by default, so
	// every occurrence normally renders as its own line.
	Frequencies map[string]int
}

// NewTerminalReporter creates a new terminal reporter
func NewTerminalReporter(w io.Writer, u *ui.UI) *TerminalReporter {
	styles := u.Styles
	if styles == nil {
		styles = ui.NewStyles(false)
	}
	return &TerminalReporter{w: w, styles: styles}
}

// Report renders the state to the writer
func (r *TerminalReporter) Report(state *triage.State) error {
	wroteSection := false

	if len(state.Counts) > 0 {
		r.printTallies("Counts:", state.Counts, r.styles.Count, &wroteSection)
	}

	if len(state.Errors) > 0 {
		r.printTallies("Errors:", state.Errors, r.styles.Error, &wroteSection)
	}

	var itemized []string
	for label, lines := range state.Items {
		if len(lines) > 0 {
			itemized = append(itemized, label)
		}
	}
	sort.Strings(itemized)

	for _, label := range itemized {
		r.sectionBreak(&wroteSection)
		fmt.Fprintf(r.w, "%s\n", r.styles.Header.Render(label+":"))
		r.printItems(state.Items[label])
	}

	if len(state.Unmatched) > 0 {
		r.sectionBreak(&wroteSection)
		fmt.Fprintf(r.w, "%s\n", r.styles.Header.Render("Unmatched Lines:"))
		for _, line := range state.Unmatched {
			fmt.Fprintf(r.w, "  %s\n", line)
		}
	}

	return nil
}

// printTallies prints one counts/errors section: non-zero categories
// sorted by label, labels padded to a common width, values right-justified
func (r *TerminalReporter) printTallies(header string, tallies map[string]int, valueStyle lipgloss.Style, wroteSection *bool) {
	labels := make([]string, 0, len(tallies))
	labelWidth := 0
	valueWidth := minValueWidth
	for label, n := range tallies {
		if n == 0 {
			continue
		}
		labels = append(labels, label)
		if len(label) > labelWidth {
			labelWidth = len(label)
		}
		if w := len(fmt.Sprintf("%d", n)); w > valueWidth {
			valueWidth = w
		}
	}
	if len(labels) == 0 {
		return
	}
	sort.Strings(labels)

	r.sectionBreak(wroteSection)
	fmt.Fprintf(r.w, "%s\n", r.styles.Header.Render(header))
	for _, label := range labels {
		value := fmt.Sprintf("%*d", valueWidth, tallies[label])
		fmt.Fprintf(r.w, "  %-*s%s\n", labelWidth, label, valueStyle.Render(value))
	}
}

// printItems prints retained lines in encounter order, applying the
// optional repetition annotation
func (r *TerminalReporter) printItems(lines []string) {
	printed := make(map[string]bool)
	for _, line := range lines {
		if n, ok := r.Frequencies[line]; ok && n > 1 {
			if printed[line] {
				continue
			}
			printed[line] = true
			fmt.Fprintf(r.w, "  %s (%d times)\n", line, n)
			continue
		}
		fmt.Fprintf(r.w, "  %s\n", line)
	}
}

// sectionBreak writes the blank line separating sections
func (r *TerminalReporter) sectionBreak(wroteSection *bool) {
	if *wroteSection {
		fmt.Fprintln(r.w)
	}
	*wroteSection = true
}
