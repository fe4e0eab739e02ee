package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/purr-dev/purr/internal/commenter"
	"github.com/purr-dev/purr/internal/common"
	"github.com/purr-dev/purr/internal/config"
	"github.com/purr-dev/purr/internal/renders"
	"github.com/purr-dev/purr/internal/review"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "review [project] <number>",
		Short: "Review a pull request using AI",
		Example: "purr review acme/blog 42\n" +
			"purr review 42                     # project detected from origin remote\n" +
			"purr review acme/blog 42 --dry-run --provider anthropic",
		Args: cobra.RangeArgs(1, 2),
		Run:  runReview,
	}

	cmd.Flags().Bool("dry-run", false, "print the review instead of posting it")
	cmd.Flags().Bool("summary-only", false, "skip the per-file review pass")
	cmd.Flags().Bool("yes", false, "post without asking for confirmation")
	cmd.Flags().Bool("copy", false, "copy the review report to the clipboard")
	cmd.Flags().String("path-filter", "", "comma-separated globs, prefix with ! to exclude")
	cmd.Flags().Int("max-tokens", 0, "token budget per summary batch")

	rootCmd.AddCommand(cmd)
}

func runReview(cmd *cobra.Command, args []string) {
	conf := config.NewDefaultConfig()
	applyFlags(cmd.Flags(), &conf)

	project, number, err := resolveProjectAndNumber(args)
	if err != nil {
		fatalf("%v", err)
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	summaryOnly, _ := cmd.Flags().GetBool("summary-only")
	yes, _ := cmd.Flags().GetBool("yes")
	copyOut, _ := cmd.Flags().GetBool("copy")
	pathFilter, _ := cmd.Flags().GetString("path-filter")
	maxTokens, _ := cmd.Flags().GetInt("max-tokens")

	// Flags win over the review.* block of the config file.
	if pathFilter == "" {
		pathFilter = conf.PathFilter
	}
	if maxTokens == 0 {
		maxTokens = conf.MaxBatchTokens
	}
	dryRun = dryRun || conf.DryRun

	vcsProvider, err := resolveVCSProvider(cmd, conf)
	if err != nil {
		fatalf("%v", err)
	}
	aiProvider, err := resolveProvider(conf)
	if err != nil {
		fatalf("resolving provider: %v", err)
	}

	cfg := review.Config{
		ProjectID:      project,
		Number:         number,
		Model:          conf.Model,
		MaxBatchTokens: maxTokens,
		PathFilter:     pathFilter,
		SummaryOnly:    summaryOnly,
		// Posting happens below, after the user has seen the result.
		DryRun: dryRun || !yes,
	}

	poster := commenter.New(vcsProvider)
	pipeline := review.NewPipeline(vcsProvider, aiProvider, poster, cfg)

	spin := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	spin.Start()
	pipeline.OnProgress(func(stage, detail string) {
		spin.Suffix = fmt.Sprintf(" %s %s", stage, detail)
	})

	result, err := pipeline.Run(context.Background())
	spin.Stop()
	if err != nil {
		fatalf("%v", err)
	}

	report := formatReport(result)
	fmt.Print(renders.RenderMarkdown(report))

	if copyOut {
		if err := common.SetClipboardValue(report); err != nil {
			fmt.Fprintf(os.Stderr, "warning: clipboard copy failed: %v\n", err)
		}
	}

	reportPostErrors(result)
	if dryRun || yes {
		return
	}

	n := result.CommentCount()
	if n == 0 && result.Summary == "" {
		fmt.Println("Nothing to post.")
		return
	}
	msg := fmt.Sprintf("Post the summary and %d inline comment(s) to %s!%d?", n, project, number)
	if !conf.Printers.Confirm(msg) {
		fmt.Println("Aborted, nothing posted.")
		return
	}

	if result.Summary != "" {
		if err := vcsProvider.PostSummary(project, number, result.Summary); err != nil {
			fmt.Fprintf(os.Stderr, "warning: posting summary failed: %v\n", err)
		}
	}
	for _, f := range result.Files {
		for _, e := range poster.PostAll(project, number, result.PR.DiffRefs, f.Comments) {
			fmt.Fprintf(os.Stderr, "warning: %v\n", e)
		}
	}
	fmt.Println("Review posted.")
}

// formatReport renders a pipeline result as a markdown report.
func formatReport(result *review.Result) string {
	var sb strings.Builder

	if result.PR != nil {
		sb.WriteString(fmt.Sprintf("# PR #%d: %s\n\n", result.PR.Number, result.PR.Title))
	}
	if result.Summary != "" {
		sb.WriteString("## Summary\n\n")
		sb.WriteString(result.Summary)
		sb.WriteString("\n\n")
	}

	for _, f := range result.Files {
		sb.WriteString(fmt.Sprintf("## %s\n\n", f.Path))
		if len(f.Comments) == 0 {
			sb.WriteString("_No structured findings extracted._\n\n")
			continue
		}
		for _, c := range f.Comments {
			if c.IsLGTM {
				sb.WriteString("- LGTM\n\n")
				continue
			}
			sb.WriteString(fmt.Sprintf("**Lines %d-%d**\n\n%s\n\n", c.StartLine, c.EndLine, c.Body))
		}
	}

	if len(result.Skipped) > 0 {
		sb.WriteString(fmt.Sprintf("_Skipped: %s_\n", strings.Join(result.Skipped, ", ")))
	}

	return sb.String()
}

func reportPostErrors(result *review.Result) {
	for _, e := range result.PostErrors {
		fmt.Fprintf(os.Stderr, "warning: %v\n", e)
	}
}
