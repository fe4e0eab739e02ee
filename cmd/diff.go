package cmd

import (
	"fmt"
	"strings"

	"github.com/purr-dev/purr/internal/config"
	"github.com/purr-dev/purr/internal/filter"
	"github.com/purr-dev/purr/internal/patch"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "diff [project] <number>",
		Short: "Show a pull request's hunks with absolute line numbers",
		Long: `diff fetches the pull request's per-file patches and prints each
hunk the way the reviewer sees it: the post-change side with absolute
line numbers, so a "42-45:" comment can be traced back by eye.`,
		Args: cobra.RangeArgs(1, 2),
		Run:  runDiff,
	}

	cmd.Flags().String("path-filter", "", "comma-separated globs, prefix with ! to exclude")
	cmd.Flags().Bool("old", false, "also print the pre-change side of each hunk")

	rootCmd.AddCommand(cmd)
}

func runDiff(cmd *cobra.Command, args []string) {
	conf := config.NewDefaultConfig()
	applyFlags(cmd.Flags(), &conf)

	project, number, err := resolveProjectAndNumber(args)
	if err != nil {
		fatalf("%v", err)
	}

	vcsProvider, err := resolveVCSProvider(cmd, conf)
	if err != nil {
		fatalf("%v", err)
	}

	files, err := vcsProvider.FetchPRFiles(project, number)
	if err != nil {
		fatalf("fetching files: %v", err)
	}

	pathFilter, _ := cmd.Flags().GetString("path-filter")
	showOld, _ := cmd.Flags().GetBool("old")
	flt := filter.New(pathFilter)

	for _, f := range files {
		if f.DeletedFile || !flt.Match(f.Path()) {
			continue
		}
		chunks := patch.ParsePatch(f.Path(), f.Patch)
		if len(chunks) == 0 {
			continue
		}

		fmt.Printf("=== %s\n", f.Path())
		for _, c := range chunks {
			fmt.Printf("@@ -%d,%d +%d,%d @@\n", c.From.StartLine, c.From.LineCount, c.To.StartLine, c.To.LineCount)
			if c.To.Branch != "" {
				fmt.Printf("!! unresolved conflict: %s vs %s\n", c.From.Branch, c.To.Branch)
			}
			fmt.Println(strings.Join(c.To.Content, "\n"))
			if showOld {
				fmt.Println("--- before:")
				fmt.Println(strings.Join(c.From.Content, "\n"))
			}
			fmt.Println()
		}
	}
}
