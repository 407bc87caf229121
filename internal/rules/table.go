package rules

import "github.com/pthm/airtriage/internal/category"

// Table is an ordered rule list evaluated top to bottom per line. Order is
// significant: several patterns are near-substrings of each other, so the
// more specific rule must sit above the one it refines. Ignore rules are
// appended after all reporting rules.
type Table struct {
	rules      []Rule
	categories *category.Registry
}

// NewTable creates a table from rules in priority order. The category
// registry is derived from the reporting rules as they are added.
func NewTable(rules []Rule) *Table {
	t := &Table{categories: category.NewRegistry()}
	for _, r := range rules {
		t.Append(r)
	}
	return t
}

// Append adds a rule at the lowest priority position
func (t *Table) Append(r Rule) {
	t.rules = append(t.rules, r)
	if r.Outcome != OutcomeIgnore {
		t.categories.Add(category.Category{Label: r.Category, Group: r.Outcome.Group()})
	}
}

// Classify returns the first rule matching the line. The second return is
// false when no rule matched, which places the line in the unmatched
// bucket. Classification is line-local and total: it never fails, it only
// declines to match.
func (t *Table) Classify(line string) (Rule, bool) {
	for _, r := range t.rules {
		if r.Matches(line) {
			return r, true
		}
	}
	return Rule{}, false
}

// Rules returns the rules in priority order
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Categories returns the category registry derived from the table
func (t *Table) Categories() *category.Registry {
	return t.categories
}
