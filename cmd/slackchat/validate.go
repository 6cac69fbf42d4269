package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zostay/slackchat/internal/core"
	"github.com/zostay/slackchat/internal/slackapi"
)

var (
	validateConfigFile string

	validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		Long:  "Load and validate the configuration file without connecting to Slack",
		Run: func(cmd *cobra.Command, args []string) {
			config, err := core.LoadConfig(validateConfigFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Config validation failed: %v\n", err)
				os.Exit(1)
			}

			fmt.Printf("Config OK: %s\n", validateConfigFile)
			fmt.Printf("  Token:              %s\n", slackapi.MaskToken(config.Slack.Token))
			if config.Slack.Nickname != "" {
				fmt.Printf("  Nickname:           %s\n", config.Slack.Nickname)
			} else {
				fmt.Printf("  Nickname:           (from whoami)\n")
			}
			fmt.Printf("  Cache TTL:          %s\n", config.CacheTTL())
			fmt.Printf("  Read-mark interval: %s\n", config.MarkInterval())
			fmt.Printf("  Log level:          %s\n", config.Logging.Level)
		},
	}
)

func init() {
	validateCmd.Flags().StringVarP(&validateConfigFile, "config", "c", "slackchat.yaml", "Configuration file path")
}
