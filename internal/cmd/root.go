package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose     bool
	format      string
	profileName string
)

var RootCmd = &cobra.Command{
	Use:   "airtriage",
	Short: "A triage tool for sensor-proxy daemon logs",
	Long: `airtriage digests the operational log of a sensor-proxy daemon and
produces a structured triage report: counts of routine events, counts of
error conditions, the verbatim text of the most actionable error lines,
and an unmatched bucket for anything the rule table does not recognize.

Classification is an ordered rule table evaluated first-match-wins, so
unmatched lines are a signal for rule-table maintainers, never a failure.`,
}

func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	RootCmd.PersistentFlags().StringVarP(&format, "format", "f", "terminal", "Output format (terminal, json)")
	RootCmd.PersistentFlags().StringVarP(&profileName, "profile", "p", "airlink", "Rule profile to triage with")
}
