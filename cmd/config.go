package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/osint-surface/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage source credentials",
}

var setKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Set a credential for one source",
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("name")
		value, _ := cmd.Flags().GetString("value")

		if name == "" || value == "" {
			fmt.Println("Error: --name and --value are required")
			return
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		if err := cfg.Set(strings.ToLower(name), value); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := config.SaveConfig(cfg); err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			return
		}
		fmt.Printf("Credential saved: %s\n", name)
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show configured credentials (redacted)",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		for _, key := range config.Keys {
			fmt.Printf("%-16s %s\n", key, config.Redact(cfg.Get(key)))
		}
	},
}

func init() {
	setKeyCmd.Flags().StringP("name", "n", "", "Config key ("+strings.Join(config.Keys, ", ")+")")
	setKeyCmd.Flags().StringP("value", "v", "", "Credential value")

	configCmd.AddCommand(setKeyCmd)
	configCmd.AddCommand(showCmd)
	rootCmd.AddCommand(configCmd)
}
