package cmd

import (
	"github.com/purr-dev/purr/internal/cmd/version"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version of purr",
		Run: func(cmd *cobra.Command, args []string) {
			version.Print()
		},
	})
}
