package rules

import (
	"regexp"

	"github.com/pthm/airtriage/internal/category"
)

// Outcome is the effect a matching rule has on the triage state
type Outcome int

const (
	// OutcomeCount increments the rule's category in the count store
	OutcomeCount Outcome = iota
	// OutcomeError increments the rule's category in the error store
	OutcomeError
	// OutcomeErrorItem increments the error store and retains the line
	// verbatim in the category's item list
	OutcomeErrorItem
	// OutcomeIgnore discards the line with no observable effect
	OutcomeIgnore
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCount:
		return "count"
	case OutcomeError:
		return "error"
	case OutcomeErrorItem:
		return "error+item"
	case OutcomeIgnore:
		return "ignore"
	default:
		return "unknown"
	}
}

// Group returns the category group implied by the outcome. Ignore rules
// carry no category.
func (o Outcome) Group() category.Group {
	switch o {
	case OutcomeCount:
		return category.GroupCount
	case OutcomeError:
		return category.GroupError
	case OutcomeErrorItem:
		return category.GroupItemized
	default:
		return category.GroupUnknown
	}
}

// Rule binds a text matcher to an outcome. A rule matches a line when
// Match matches it and, if Also is set, Also matches it too. The second
// matcher distinguishes lines sharing a generic prefix (the producer's
// connection failures all begin with the same phrase and differ only in
// the OS error appended to it).
type Rule struct {
	Name     string
	Match    *regexp.Regexp
	Also     *regexp.Regexp
	Outcome  Outcome
	Category string
}

// Matches reports whether the rule matches the given line
func (r Rule) Matches(line string) bool {
	if !r.Match.MatchString(line) {
		return false
	}
	if r.Also != nil && !r.Also.MatchString(line) {
		return false
	}
	return true
}
