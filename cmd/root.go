package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "purr",
	Short: "An AI pull-request reviewer in your terminal.",
	Long: `purr fetches a pull request, parses its diffs into line-addressable
hunks, asks an AI provider to review them and posts the findings back
as inline comments.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("provider", "", "AI provider (openai, anthropic, ...)")
	rootCmd.PersistentFlags().String("model", "", "model override for the selected provider")
	rootCmd.PersistentFlags().String("vcs", "", "VCS backend (github, gitlab)")
	rootCmd.PersistentFlags().Bool("debug", false, "print debug information")
}
