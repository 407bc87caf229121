package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pthm/airtriage/internal/profile"
	"github.com/pthm/airtriage/internal/suggest"
	"github.com/pthm/airtriage/internal/triage"
	"github.com/pthm/airtriage/internal/ui"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [logfile]",
	Short: "Propose rule-table additions for unmatched lines",
	Long: `Classify a log and send a sample of the unmatched lines to the
Anthropic API, asking for candidate patterns and category labels.

Suggestions are printed for a maintainer to review; nothing is added to
the rule table automatically. Requires ANTHROPIC_API_KEY.`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runSuggest,
	SilenceUsage: true,
}

func init() {
	RootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	suggester := suggest.New()
	if suggester == nil {
		return fmt.Errorf("ANTHROPIC_API_KEY is not set")
	}

	prof, err := profile.Load(profileName)
	if err != nil {
		return fmt.Errorf("failed to load rule profile: %w", err)
	}

	in, source, err := openInput(args)
	if err != nil {
		return err
	}
	if closer, ok := in.(io.Closer); ok && in != os.Stdin {
		defer closer.Close()
	}

	classifier := triage.NewClassifier(prof.Table())
	state := classifier.NewState()
	if err := classifier.Consume(state, in); err != nil {
		return err
	}

	u := ui.New(os.Stdout, os.Stderr, format)

	if len(state.Unmatched) == 0 {
		fmt.Println(u.Styles.Success.Render("No unmatched lines; the rule table covers " + source))
		return nil
	}

	spinner := u.StartSimpleSpinner(os.Stderr,
		fmt.Sprintf("Asking Claude about %d unmatched lines...", len(state.Unmatched)))
	suggestions, err := suggester.Propose(cmd.Context(), state.Unmatched)
	spinner.Stop()
	if err != nil {
		return err
	}

	if len(suggestions) == 0 {
		fmt.Println("No suggestions returned.")
		return nil
	}

	fmt.Printf("%s\n", u.Styles.Header.Render("Suggested rules:"))
	for _, s := range suggestions {
		fmt.Printf("  - match:    %s\n", s.Pattern)
		fmt.Printf("    outcome:  %s\n", s.Outcome)
		fmt.Printf("    category: %s\n", s.Category)
		if s.Note != "" {
			fmt.Printf("    %s\n", u.Styles.Muted.Render("# "+s.Note))
		}
	}

	return nil
}
