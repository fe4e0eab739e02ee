package cmd

import (
	"fmt"

	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:    "man",
		Short:  "Generate the purr man page",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := mcobra.NewManPage(1, rootCmd)
			if err != nil {
				return err
			}
			fmt.Println(page.Build(roff.NewDocument()))
			return nil
		},
	}

	rootCmd.AddCommand(cmd)
}
