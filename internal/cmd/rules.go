package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pthm/airtriage/internal/profile"
	"github.com/pthm/airtriage/internal/rules"
	"github.com/pthm/airtriage/internal/ui"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the active rule table in priority order",
	Long: `Print the rule table of the active profile: reporting rules in
priority order with their outcome and category, followed by the ignore
patterns.

Rules are evaluated top to bottom and the first match wins, so the listed
order is the classification priority.`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

func init() {
	RootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	prof, err := profile.Load(profileName)
	if err != nil {
		return fmt.Errorf("failed to load rule profile: %w", err)
	}

	u := ui.New(os.Stdout, os.Stderr, format)

	fmt.Printf("%s\n", u.Styles.Header.Render(fmt.Sprintf("Profile: %s", prof.Name)))
	if prof.Description != "" {
		fmt.Printf("%s\n", u.Styles.Muted.Render(prof.Description))
	}
	fmt.Println()

	fmt.Printf("%s\n", u.Styles.Header.Render("Rules:"))
	priority := 0
	for _, r := range prof.Table().Rules() {
		if r.Outcome == rules.OutcomeIgnore {
			continue
		}
		priority++
		fmt.Printf("  %2d. %-24s %-10s %s\n", priority, r.Name, r.Outcome, r.Category)
		fmt.Printf("      %s\n", u.Styles.Muted.Render(describeMatch(r)))
	}

	if len(prof.Ignore) > 0 {
		fmt.Println()
		fmt.Printf("%s\n", u.Styles.Header.Render("Ignored:"))
		for _, pat := range prof.Ignore {
			fmt.Printf("  %s\n", pat)
		}
	}

	return nil
}

func describeMatch(r rules.Rule) string {
	if r.Also != nil {
		return fmt.Sprintf("%s && %s", r.Match, r.Also)
	}
	return r.Match.String()
}
