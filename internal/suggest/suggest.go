// Package suggest proposes rule-table additions for unmatched log lines.
// Growth of the unmatched section is the diagnostic signal that the rule
// table has fallen behind the daemon; this package turns a sample of those
// lines into candidate patterns for a maintainer to review. Suggestions
// never feed back into classification.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// maxSampleLines caps how many unmatched lines are sent per request
const maxSampleLines = 50

// Suggestion is one proposed rule-table addition
type Suggestion struct {
	Pattern  string `json:"pattern"`
	Category string `json:"category"`
	Outcome  string `json:"outcome"`
	Note     string `json:"note,omitempty"`
}

// Suggester asks Claude to propose patterns for unmatched lines
type Suggester struct {
	client anthropic.Client
}

// New creates a Suggester. Returns nil when ANTHROPIC_API_KEY is unset.
func New() *Suggester {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &Suggester{client: client}
}

// Propose sends a sample of unmatched lines and returns proposed rules
func (s *Suggester) Propose(ctx context.Context, unmatched []string) ([]Suggestion, error) {
	if s == nil {
		return nil, fmt.Errorf("suggester not initialized (missing ANTHROPIC_API_KEY)")
	}
	if len(unmatched) == 0 {
		return nil, nil
	}

	sample := unmatched
	if len(sample) > maxSampleLines {
		sample = sample[:maxSampleLines]
	}

	prompt := fmt.Sprintf(`These log lines from a sensor-proxy daemon matched no rule in a
log-triage rule table. Group similar lines and propose one rule per group.

Lines:
%s

Provide a JSON response with the following structure:
{
  "suggestions": [
    {
      "pattern": "Go regexp matching the whole group, with variable parts generalized",
      "category": "short human-readable category label",
      "outcome": "count|error|error+item",
      "note": "one sentence on what the lines mean"
    }
  ]
}

Use "count" for routine events, "error" for failures, "error+item" for
failures whose full text a maintainer would want retained.
Return ONLY the JSON, no other text.`, strings.Join(sample, "\n"))

	resp, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.ModelClaude3_5Haiku20241022,
		MaxTokens: 2000,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("Claude API error: %w", err)
	}

	var responseText string
	for _, block := range resp.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	var result struct {
		Suggestions []Suggestion `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(ExtractJSON(responseText)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse Claude response: %w", err)
	}

	return result.Suggestions, nil
}

// ExtractJSON attempts to extract JSON from a response that might be
// wrapped in markdown
func ExtractJSON(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "{") {
		return s
	}

	if idx := strings.Index(s, "```json"); idx != -1 {
		start := idx + 7
		if end := strings.Index(s[start:], "```"); end != -1 {
			return strings.TrimSpace(s[start : start+end])
		}
	}

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end > start {
			return s[start : end+1]
		}
	}

	return s
}
