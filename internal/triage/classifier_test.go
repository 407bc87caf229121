package triage

import (
	"strings"
	"testing"

	"github.com/pthm/airtriage/internal/profile"
)

func airlinkClassifier(t *testing.T) *Classifier {
	t.Helper()
	p, err := profile.Load("airlink")
	if err != nil {
		t.Fatalf("Load(airlink) error: %v", err)
	}
	return NewClassifier(p.Table())
}

func TestApplyPerRule(t *testing.T) {
	// One representative producer line per reporting rule. Each line must
	// update exactly the store belonging to its rule and nothing else.
	tests := []struct {
		name     string
		line     string
		count    string
		errLabel string
		itemized bool
	}{
		{
			name:  "startup",
			line:  "Version        : 0.1",
			count: "Startups",
		},
		{
			name:     "long sensor read",
			line:     "Event took longer than expected: 1.43 seconds.",
			errLabel: "Long Sensor Reads",
		},
		{
			name:  "archive record added",
			line:  "Added record 2020-10-10 21:11:38 PDT (1602389498) to archive.",
			count: "Archive Records Added",
		},
		{
			name:     "archive insert failed",
			line:     "Could not save archive reading to database: /home/proxy/archive.sdb: database is locked",
			errLabel: "Archive Insert Errors",
			itemized: true,
		},
		{
			name:     "current insert failed",
			line:     "Could not save current reading to database: /home/proxy/archive.sdb: database is locked",
			errLabel: "Current Insert Errors",
			itemized: true,
		},
		{
			name:     "skipped reading",
			line:     "Skipping reading because of: HTTPConnectionPool(host='airlink', port=80): Max retries exceeded",
			errLabel: "Skipped Sensor Readings",
		},
		{
			name:     "insane reading",
			line:     `Reading not sane:  Missing or malformed "temp" field ({'data': None})`,
			errLabel: "Insane Sensor Readings",
			itemized: true,
		},
		{
			name:     "old reading",
			line:     "Ignoring reading from airlink--age: 125 seconds.  Record: {'data': {}}",
			errLabel: "Old (Insane?) Sensor Readings",
			itemized: true,
		},
		{
			name:     "temporary name resolution failure",
			line:     "Failed to establish a new connection: [Errno -3] Temporary failure in name resolution: Retrying request.",
			errLabel: "Tmp Name Resolution Errors",
		},
		{
			name:     "no route to host",
			line:     "Failed to establish a new connection: [Errno 113] No route to host: Retrying request.",
			errLabel: "No Route to Host",
		},
		{
			name:     "skipped archive record",
			line:     "Skipping archive record.",
			errLabel: "Skipped archive records",
		},
		{
			name:     "connection refused",
			line:     "HTTPConnectionPool(host='airlink', port=80): [Errno 111] Connection refused: Retrying request.",
			errLabel: "Connection refused",
		},
		{
			name:     "connection timed out",
			line:     "Connection to airlink timed out. (connect timeout=15): Retrying request.",
			errLabel: "Connection timed out",
		},
		{
			name:     "name or service not known",
			line:     "Failed to establish a new connection: [Errno -2] Name or service not known: Retrying request.",
			errLabel: "Name or service not known",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := airlinkClassifier(t)
			state := c.NewState()
			c.Apply(state, tt.line)

			if len(state.Unmatched) != 0 {
				t.Fatalf("line went unmatched: %q", tt.line)
			}

			wantCounts, wantErrors := 0, 0
			if tt.count != "" {
				wantCounts = 1
				if state.Counts[tt.count] != 1 {
					t.Errorf("Counts[%q] = %d, want 1", tt.count, state.Counts[tt.count])
				}
			}
			if tt.errLabel != "" {
				wantErrors = 1
				if state.Errors[tt.errLabel] != 1 {
					t.Errorf("Errors[%q] = %d, want 1", tt.errLabel, state.Errors[tt.errLabel])
				}
			}
			if len(state.Counts) != wantCounts {
				t.Errorf("Counts = %v, want %d entries", state.Counts, wantCounts)
			}
			if len(state.Errors) != wantErrors {
				t.Errorf("Errors = %v, want %d entries", state.Errors, wantErrors)
			}

			if tt.itemized {
				items := state.Items[tt.errLabel]
				if len(items) != 1 || items[0] != tt.line {
					t.Errorf("Items[%q] = %v, want the verbatim line", tt.errLabel, items)
				}
			} else if len(state.Items) != 0 {
				t.Errorf("Items = %v, want empty", state.Items)
			}
		})
	}
}

func TestApplyPriorityShadowing(t *testing.T) {
	// The connection-failure rules share a generic phrase and differ only
	// in the OS error appended to it. A line carrying a known suffix must
	// classify as the specific rule even though lower-priority patterns
	// also occur in the text.
	c := airlinkClassifier(t)
	state := c.NewState()

	line := "HTTPConnectionPool(host='airlink', port=80): Max retries exceeded " +
		"(Caused by NewConnectionError('Failed to establish a new connection: " +
		"[Errno -3] Temporary failure in name resolution')): Retrying request."
	c.Apply(state, line)

	if state.Errors["Tmp Name Resolution Errors"] != 1 {
		t.Errorf("Errors[Tmp Name Resolution Errors] = %d, want 1", state.Errors["Tmp Name Resolution Errors"])
	}
	if state.Errors["Connection refused"] != 0 {
		t.Errorf("Errors[Connection refused] = %d, want 0", state.Errors["Connection refused"])
	}
	if len(state.Errors) != 1 {
		t.Errorf("Errors = %v, want a single entry", state.Errors)
	}
}

func TestApplyGenericConnectionFailureUnmatched(t *testing.T) {
	// The generic phrase with none of the known suffixes matches no rule;
	// it surfaces in the unmatched bucket rather than being misclassified
	// or silently dropped.
	c := airlinkClassifier(t)
	state := c.NewState()

	line := "Failed to establish a new connection: [Errno 22] Invalid argument"
	c.Apply(state, line)

	if len(state.Unmatched) != 1 || state.Unmatched[0] != line {
		t.Errorf("Unmatched = %v, want the verbatim line", state.Unmatched)
	}
	if len(state.Counts) != 0 || len(state.Errors) != 0 || len(state.Items) != 0 {
		t.Errorf("stores changed for an unmatched line: %v %v %v", state.Counts, state.Errors, state.Items)
	}
}

func TestApplyIgnoreHasNoEffect(t *testing.T) {
	ignored := []string{
		"host:port       : airlink:80",
		"host:port: foo:80",
		"conf_file       : /home/proxy/airlink.conf",
		"server_port     : 8000",
		"db_file         : /home/proxy/archive.sdb",
		"timeout_secs    : 15",
		"pollfreq_secs   : 5",
		"pollfreq_offset : 5",
		"arcint_secs     : 60",
		"service_name    : airlink-proxy",
		"pidfile         : /var/run/airlink-proxy.pid",
		"log_to_stdout   : 0",
		"debug           : 0",
		"Starting airlink-proxy daemon:",
		"Stopping airlink-proxy daemon:",
	}

	c := airlinkClassifier(t)
	state := c.NewState()
	for _, line := range ignored {
		c.Apply(state, line)
	}

	if len(state.Counts) != 0 || len(state.Errors) != 0 || len(state.Items) != 0 || len(state.Unmatched) != 0 {
		t.Errorf("ignored lines changed state: counts=%v errors=%v items=%v unmatched=%v",
			state.Counts, state.Errors, state.Items, state.Unmatched)
	}
	if state.Lines != len(ignored) {
		t.Errorf("Lines = %d, want %d", state.Lines, len(ignored))
	}
}

func TestApplyUnmatchedRepeats(t *testing.T) {
	c := airlinkClassifier(t)
	state := c.NewState()

	for i := 0; i < 3; i++ {
		c.Apply(state, "garbled nonsense line")
	}

	if len(state.Unmatched) != 3 {
		t.Fatalf("len(Unmatched) = %d, want 3 separate entries", len(state.Unmatched))
	}
	for _, line := range state.Unmatched {
		if line != "garbled nonsense line" {
			t.Errorf("Unmatched entry = %q, want verbatim line", line)
		}
	}
}

func TestConsume(t *testing.T) {
	input := strings.Join([]string{
		"Version        : 0.1",
		"Added record 2020-10-10 21:10:05 PDT (1602389405) to archive.",
		"Added record 2020-10-10 21:11:05 PDT (1602389465) to archive.",
		"Event took longer than expected: 2.10 seconds.",
		"Reading not sane:  Error: sensor offline",
		"debug           : 0",
		"what even is this",
	}, "\n")

	c := airlinkClassifier(t)
	state := c.NewState()
	if err := c.Consume(state, strings.NewReader(input)); err != nil {
		t.Fatalf("Consume() error: %v", err)
	}

	if state.Lines != 7 {
		t.Errorf("Lines = %d, want 7", state.Lines)
	}
	if state.Counts["Startups"] != 1 {
		t.Errorf("Counts[Startups] = %d, want 1", state.Counts["Startups"])
	}
	if state.Counts["Archive Records Added"] != 2 {
		t.Errorf("Counts[Archive Records Added] = %d, want 2", state.Counts["Archive Records Added"])
	}
	if state.Errors["Long Sensor Reads"] != 1 {
		t.Errorf("Errors[Long Sensor Reads] = %d, want 1", state.Errors["Long Sensor Reads"])
	}
	if got := state.Items["Insane Sensor Readings"]; len(got) != 1 || got[0] != "Reading not sane:  Error: sensor offline" {
		t.Errorf("Items[Insane Sensor Readings] = %v", got)
	}
	if len(state.Unmatched) != 1 || state.Unmatched[0] != "what even is this" {
		t.Errorf("Unmatched = %v", state.Unmatched)
	}
	if state.Matched() != 5 {
		t.Errorf("Matched() = %d, want 5", state.Matched())
	}
}

func TestConsumeProgress(t *testing.T) {
	c := airlinkClassifier(t)
	c.ProgressEvery = 2

	var calls []int
	c.Progress = func(lines int) { calls = append(calls, lines) }

	input := strings.Repeat("Added record to archive.\n", 5)
	state := c.NewState()
	if err := c.Consume(state, strings.NewReader(input)); err != nil {
		t.Fatalf("Consume() error: %v", err)
	}

	// Every second line plus the final total
	want := []int{2, 4, 5}
	if len(calls) != len(want) {
		t.Fatalf("progress calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("progress call %d = %d, want %d", i, calls[i], want[i])
		}
	}
}
