package category

// Group describes how lines classified into a category are recorded
type Group int

const (
	// GroupCount categories tally routine, informational events
	GroupCount Group = iota
	// GroupError categories tally error conditions
	GroupError
	// GroupItemized categories tally error conditions and additionally
	// retain the verbatim text of every matching line
	GroupItemized
	// GroupUnknown is returned for labels not present in the registry
	GroupUnknown
)

func (g Group) String() string {
	switch g {
	case GroupCount:
		return "count"
	case GroupError:
		return "error"
	case GroupItemized:
		return "itemized"
	default:
		return "unknown"
	}
}

// Category is a named classification bucket for log lines
type Category struct {
	Label string
	Group Group
}

// IsError reports whether lines in this category count toward the error
// store. Itemized categories are error categories that also retain text.
func (c Category) IsError() bool {
	return c.Group == GroupError || c.Group == GroupItemized
}

// Registry is the fixed set of categories for one triage run. Labels and
// groups are set when the rule profile is loaded and never change.
type Registry struct {
	order  []Category
	byName map[string]Category
}

// NewRegistry creates an empty category registry
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Category)}
}

// Add registers a category. Registering the same label twice is a no-op
// as long as the group agrees; an itemized registration upgrades a plain
// error registration for the same label.
func (r *Registry) Add(c Category) {
	existing, ok := r.byName[c.Label]
	if ok {
		if existing.Group == GroupError && c.Group == GroupItemized {
			r.byName[c.Label] = c
			for i := range r.order {
				if r.order[i].Label == c.Label {
					r.order[i] = c
				}
			}
		}
		return
	}
	r.byName[c.Label] = c
	r.order = append(r.order, c)
}

// Get returns the category for a label
func (r *Registry) Get(label string) (Category, bool) {
	c, ok := r.byName[label]
	return c, ok
}

// GroupOf returns the group for a label, or GroupUnknown if unregistered
func (r *Registry) GroupOf(label string) Group {
	if c, ok := r.byName[label]; ok {
		return c.Group
	}
	return GroupUnknown
}

// All returns the categories in registration order
func (r *Registry) All() []Category {
	out := make([]Category, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered categories
func (r *Registry) Len() int {
	return len(r.order)
}
