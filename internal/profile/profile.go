// Package profile loads rule profiles: the ordered matcher/outcome table
// describing one log-producing daemon. Profiles are data, not code, so a
// pattern can be added or reprioritized without touching classification
// or report logic.
package profile

import (
	"embed"
	"fmt"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/pthm/airtriage/internal/rules"
)

//go:embed profiles/*.yaml
var profileFS embed.FS

// builtinProfiles maps profile names to their parsed configurations
var builtinProfiles = map[string]*Profile{}

func init() {
	entries, err := profileFS.ReadDir("profiles")
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		data, err := profileFS.ReadFile(filepath.Join("profiles", entry.Name()))
		if err != nil {
			continue
		}

		var p Profile
		if err := yaml.Unmarshal(data, &p); err != nil {
			continue
		}
		if err := p.Compile(); err != nil {
			continue
		}

		builtinProfiles[p.Name] = &p
	}
}

// PatternRule is one rule as declared in a profile file. Match and Also
// are uncompiled regular expressions; Also, when present, must co-match
// for the rule to fire.
type PatternRule struct {
	Name     string `yaml:"name"`
	Match    string `yaml:"match"`
	Also     string `yaml:"also,omitempty"`
	Outcome  string `yaml:"outcome"`
	Category string `yaml:"category"`

	match *regexp.Regexp
	also  *regexp.Regexp
}

// Profile describes the log dialect of one daemon: the reporting rules in
// priority order and the configuration-echo/lifecycle patterns to ignore.
type Profile struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Rules       []PatternRule `yaml:"rules"`
	Ignore      []string      `yaml:"ignore"`

	ignore []*regexp.Regexp
}

// Compile compiles every pattern in the profile and validates outcomes.
// Patterns are case-sensitive, unanchored regular expressions matched
// against whole log lines.
func (p *Profile) Compile() error {
	for i := range p.Rules {
		r := &p.Rules[i]
		if _, err := parseOutcome(r.Outcome); err != nil {
			return fmt.Errorf("rule %q: %w", r.Name, err)
		}
		if r.Category == "" {
			return fmt.Errorf("rule %q: missing category", r.Name)
		}
		m, err := regexp.Compile(r.Match)
		if err != nil {
			return fmt.Errorf("rule %q: bad match pattern: %w", r.Name, err)
		}
		r.match = m
		if r.Also != "" {
			a, err := regexp.Compile(r.Also)
			if err != nil {
				return fmt.Errorf("rule %q: bad also pattern: %w", r.Name, err)
			}
			r.also = a
		}
	}

	p.ignore = make([]*regexp.Regexp, 0, len(p.Ignore))
	for _, pat := range p.Ignore {
		m, err := regexp.Compile(pat)
		if err != nil {
			return fmt.Errorf("ignore pattern %q: %w", pat, err)
		}
		p.ignore = append(p.ignore, m)
	}

	return nil
}

// Table builds the ordered rule table for this profile. Reporting rules
// keep their declared order; ignore rules follow at lower priority.
func (p *Profile) Table() *rules.Table {
	list := make([]rules.Rule, 0, len(p.Rules)+len(p.ignore))
	for i := range p.Rules {
		r := &p.Rules[i]
		outcome, _ := parseOutcome(r.Outcome)
		list = append(list, rules.Rule{
			Name:     r.Name,
			Match:    r.match,
			Also:     r.also,
			Outcome:  outcome,
			Category: r.Category,
		})
	}
	for i, m := range p.ignore {
		list = append(list, rules.Rule{
			Name:    fmt.Sprintf("ignore-%d", i+1),
			Match:   m,
			Outcome: rules.OutcomeIgnore,
		})
	}
	return rules.NewTable(list)
}

func parseOutcome(s string) (rules.Outcome, error) {
	switch s {
	case "count":
		return rules.OutcomeCount, nil
	case "error":
		return rules.OutcomeError, nil
	case "error+item":
		return rules.OutcomeErrorItem, nil
	default:
		return 0, fmt.Errorf("unknown outcome %q", s)
	}
}

// Load loads a profile by name
func Load(name string) (*Profile, error) {
	if p, ok := builtinProfiles[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("unknown profile: %s", name)
}

// Available returns the names of all built-in profiles
func Available() []string {
	names := make([]string, 0, len(builtinProfiles))
	for name := range builtinProfiles {
		names = append(names, name)
	}
	return names
}
