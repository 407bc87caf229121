package profile

import (
	"testing"

	"github.com/pthm/airtriage/internal/category"
	"github.com/pthm/airtriage/internal/rules"
)

func TestLoadAirlink(t *testing.T) {
	p, err := Load("airlink")
	if err != nil {
		t.Fatalf("Load(airlink) error: %v", err)
	}

	if len(p.Rules) != 14 {
		t.Errorf("len(Rules) = %d, want 14", len(p.Rules))
	}
	if len(p.Ignore) != 16 {
		t.Errorf("len(Ignore) = %d, want 16", len(p.Ignore))
	}
}

func TestLoadUnknown(t *testing.T) {
	if _, err := Load("no-such-profile"); err == nil {
		t.Error("Load(no-such-profile) did not error")
	}
}

func TestAvailable(t *testing.T) {
	names := Available()
	found := false
	for _, n := range names {
		if n == "airlink" {
			found = true
		}
	}
	if !found {
		t.Errorf("Available() = %v, missing airlink", names)
	}
}

func TestAirlinkTableShape(t *testing.T) {
	p, err := Load("airlink")
	if err != nil {
		t.Fatalf("Load(airlink) error: %v", err)
	}
	table := p.Table()

	// Ignore rules follow all reporting rules
	list := table.Rules()
	if len(list) != len(p.Rules)+len(p.Ignore) {
		t.Fatalf("len(Rules()) = %d, want %d", len(list), len(p.Rules)+len(p.Ignore))
	}
	for i, r := range list {
		reporting := i < len(p.Rules)
		if reporting && r.Outcome == rules.OutcomeIgnore {
			t.Errorf("rule %d (%s) is an ignore rule above the reporting rules", i, r.Name)
		}
		if !reporting && r.Outcome != rules.OutcomeIgnore {
			t.Errorf("rule %d (%s) is a reporting rule below the ignore rules", i, r.Name)
		}
	}

	groups := map[string]category.Group{
		"Startups":                      category.GroupCount,
		"Archive Records Added":         category.GroupCount,
		"Long Sensor Reads":             category.GroupError,
		"Skipped Sensor Readings":       category.GroupError,
		"Tmp Name Resolution Errors":    category.GroupError,
		"No Route to Host":              category.GroupError,
		"Skipped archive records":       category.GroupError,
		"Connection refused":            category.GroupError,
		"Connection timed out":          category.GroupError,
		"Name or service not known":     category.GroupError,
		"Archive Insert Errors":         category.GroupItemized,
		"Current Insert Errors":         category.GroupItemized,
		"Insane Sensor Readings":        category.GroupItemized,
		"Old (Insane?) Sensor Readings": category.GroupItemized,
	}

	reg := table.Categories()
	if reg.Len() != len(groups) {
		t.Errorf("Categories().Len() = %d, want %d", reg.Len(), len(groups))
	}
	for label, group := range groups {
		if got := reg.GroupOf(label); got != group {
			t.Errorf("GroupOf(%q) = %v, want %v", label, got, group)
		}
	}
}

func TestCompileRejectsBadProfiles(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
	}{
		{
			name: "unknown outcome",
			profile: Profile{
				Rules: []PatternRule{{Name: "r", Match: "x", Outcome: "tally", Category: "X"}},
			},
		},
		{
			name: "missing category",
			profile: Profile{
				Rules: []PatternRule{{Name: "r", Match: "x", Outcome: "count"}},
			},
		},
		{
			name: "bad match pattern",
			profile: Profile{
				Rules: []PatternRule{{Name: "r", Match: "(", Outcome: "count", Category: "X"}},
			},
		},
		{
			name: "bad also pattern",
			profile: Profile{
				Rules: []PatternRule{{Name: "r", Match: "x", Also: "(", Outcome: "count", Category: "X"}},
			},
		},
		{
			name: "bad ignore pattern",
			profile: Profile{
				Ignore: []string{"("},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.profile.Compile(); err == nil {
				t.Error("Compile() did not error")
			}
		})
	}
}
