package cmd

import (
	"fmt"
	"os"

	"github.com/purr-dev/purr/internal/config"
	"github.com/purr-dev/purr/internal/provider"
	"github.com/spf13/cobra"
)

func init() {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the purr configuration file",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented sample config to ~/.config/purr/config.yml",
		Run: func(cmd *cobra.Command, args []string) {
			path, err := config.WriteSampleConfig(provider.SampleConfigYAML())
			if err != nil {
				fatalf("%v", err)
			}
			fmt.Printf("Config written to %s\n", path)
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current config file, or the sample when none exists",
		Run: func(cmd *cobra.Command, args []string) {
			path, err := config.FilePath()
			if err != nil {
				fatalf("%v", err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				fmt.Printf("# no config file at %s, showing defaults\n\n", path)
				fmt.Print(provider.SampleConfigYAML())
				return
			}
			fmt.Print(string(data))
		},
	}

	configCmd.AddCommand(initCmd, showCmd)
	rootCmd.AddCommand(configCmd)
}
