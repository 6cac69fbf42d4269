package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "slackchat",
	Short: "slackchat is a Slack connector for bot-dispatch frameworks",
	Long: `slackchat maintains a live real-time session to Slack, translates
inbound events into normalized messages, resolves Slack identities through a
short-TTL cache, and translates replies back into Slack send calls.`,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	Execute()
}
