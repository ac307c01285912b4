package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "osint-surface",
	Short: "External attack-surface reconnaissance for a target organization",
	Long: `osint-surface discovers exposed infrastructure, public code repositories
and the real-world identities of employees associated with a target
organization, correlates the findings across sources, and produces a
risk-scored report. Results are cached so a rate-limited source degrades
to the last known good snapshot instead of failing the scan.`,
}

var DebugMode bool

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&DebugMode, "debug", false, "Enable debug logging")
}
