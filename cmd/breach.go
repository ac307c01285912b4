package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/osint-surface/pkg/collectors"
	"github.com/user/osint-surface/pkg/config"
	"github.com/user/osint-surface/pkg/logging"
)

var breachCmd = &cobra.Command{
	Use:   "breach EMAIL",
	Short: "Check an email address against known breach data",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logging.DebugEnabled = DebugMode
		email := args[0]

		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		checker := collectors.NewBreachChecker(cfg.HIBPAPIKey)
		result, err := checker.CheckEmail(context.Background(), email)
		if err != nil {
			fmt.Printf("Breach lookup failed: %v\n", err)
			os.Exit(1)
		}

		switch result.Status {
		case collectors.BreachLeaked:
			fmt.Printf("%s appears in %d known breaches: %s\n",
				email, result.Count, strings.Join(result.Sources, ", "))
		case collectors.BreachSafe:
			fmt.Printf("%s does not appear in any known breach.\n", email)
		case collectors.BreachRateLimited:
			fmt.Println("Breach source is rate limited, try again later.")
		case collectors.BreachSkipped:
			fmt.Println("No breach API key configured. Set one with:")
			fmt.Println("  osint-surface config set-key --name hibp_api_key --value KEY")
		default:
			fmt.Printf("Breach lookup returned status %d.\n", result.Code)
		}
	},
}

func init() {
	rootCmd.AddCommand(breachCmd)
}
