package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pthm/airtriage/internal/profile"
	"github.com/pthm/airtriage/internal/reporter"
	"github.com/pthm/airtriage/internal/triage"
	"github.com/pthm/airtriage/internal/ui"
)

var triageCmd = &cobra.Command{
	Use:   "triage [logfile]",
	Short: "Classify a daemon log and print the triage report",
	Long: `Read a sensor-proxy daemon log from a file or stdin, classify every
line against the active rule profile, and print the triage report.

Examples:
  airtriage triage /var/log/airlink-proxy.log
  journalctl -u airlink-proxy | airtriage triage
  airtriage triage --format json proxy.log > report.json`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runTriage,
	SilenceUsage: true,
}

func init() {
	RootCmd.AddCommand(triageCmd)
}

func runTriage(cmd *cobra.Command, args []string) error {
	u := ui.New(os.Stdout, os.Stderr, format)

	progress := u.StartProgress()
	defer func() {
		if progress != nil {
			progress.Done(nil)
		}
	}()

	progress.SetStage(ui.StageLoadProfile)

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

	progress.SetStage(ui.StageScan)
	progress.SetSource(source)

	classifier := triage.NewClassifier(prof.Table())
	classifier.Progress = progress.SetLineCount

	state := classifier.NewState()
	if err := classifier.Consume(state, in); err != nil {
		return err
	}

	progress.SetStage(ui.StageReport)
	progress.Done(nil)
	progress = nil // Prevent double-done in defer

	if verbose {
		summary := reporter.ComputeSummary(state)
		fmt.Fprintf(os.Stderr, "Scanned %d lines from %s: %d matched, %d unmatched\n",
			summary.Lines, source, summary.Matched, summary.Unmatched)
	}

	var rep reporter.Reporter
	switch format {
	case "json":
		rep = reporter.NewJSONReporter(os.Stdout)
	default:
		rep = reporter.NewTerminalReporter(os.Stdout, u)
	}

	return rep.Report(state)
}

// openInput returns the log stream and a display name for it. With no
// argument the stream is stdin.
func openInput(args []string) (io.Reader, string, error) {
	if len(args) == 0 {
		return os.Stdin, "stdin", nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("failed to open log file: %w", err)
	}
	return f, args[0], nil
}
