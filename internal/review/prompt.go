package review

import (
	"fmt"
	"strings"

	"github.com/purr-dev/purr/internal/vcs"
)

// SystemPrompt is the shared system message for every review request.
const SystemPrompt = `You are purr, an expert code reviewer. You review pull request diffs
hunk by hunk, focusing on bugs, security vulnerabilities, race conditions,
error handling and logic errors. You are concise and concrete; you skip
trivial style nits.`

// BuildSummaryPrompt builds the walkthrough prompt that asks for a
// high-level summary of one batch of changed files.
func BuildSummaryPrompt(pr *vcs.PullRequest, batch Batch) string {
	var sb strings.Builder

	sb.WriteString("Summarize the following pull request changes.\n\n")
	writePRHeader(&sb, pr)

	sb.WriteString("## Changed Files\n\n")
	for _, f := range batch.Files {
		sb.WriteString(fmt.Sprintf("- %s (%d chunks)\n", f.Path(), len(f.Chunks)))
	}
	sb.WriteString("\n")

	for _, f := range batch.Files {
		sb.WriteString(fmt.Sprintf("### %s\n\n", f.Path()))
		writeHunks(&sb, f)
	}

	sb.WriteString(`## Your Task

Provide:
1. A 2-3 sentence overview of what these changes do.
2. A markdown table | File | Summary | with a one-line description per file.

Respond in Markdown. Do not review individual lines here.
`)

	return sb.String()
}

// BuildFileReviewPrompt builds the per-file review prompt. The hunks are
// rendered as fenced new_hunk / old_hunk blocks; new_hunk lines carry
// absolute line numbers in the post-change file, and the response format
// instructions teach the model the section protocol that
// ParseReviewComment consumes.
func BuildFileReviewPrompt(pr *vcs.PullRequest, f ReviewFile) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Review the changes to `%s` in the following pull request.\n\n", f.Path()))
	writePRHeader(&sb, pr)

	sb.WriteString("## Changes\n\n")
	writeHunks(&sb, f)

	sb.WriteString("## Response Format\n\n")
	sb.WriteString("Respond with one section per finding, sections separated by a line\n")
	sb.WriteString("containing only `---`. Each section must start with the line range it\n")
	sb.WriteString("refers to, using the line numbers shown in the new_hunk blocks:\n\n")
	sb.WriteString("```\n<start_line>-<end_line>:\n<your comment>\n```\n\n")
	sb.WriteString("Comments may contain fenced code blocks. Only comment on lines that\n")
	sb.WriteString("appear in a new_hunk block. If the changes look good and you have\n")
	sb.WriteString("nothing to flag, respond with a single section covering the first\n")
	sb.WriteString("changed line whose text is exactly `lgtm!`.\n")

	return sb.String()
}

func writePRHeader(sb *strings.Builder, pr *vcs.PullRequest) {
	if pr == nil {
		return
	}
	sb.WriteString(fmt.Sprintf("## PR #%d: %s\n\n", pr.Number, pr.Title))
	if pr.SourceBranch != "" || pr.TargetBranch != "" {
		sb.WriteString(fmt.Sprintf("Branch: %s → %s\n\n", pr.SourceBranch, pr.TargetBranch))
	}
	if desc := strings.TrimSpace(pr.Description); desc != "" {
		sb.WriteString("### Description\n\n")
		sb.WriteString(desc)
		sb.WriteString("\n\n")
	}
}

// writeHunks renders each parsed chunk of a file as an old_hunk /
// new_hunk fence pair. Chunks without deletions omit the old_hunk fence.
func writeHunks(sb *strings.Builder, f ReviewFile) {
	for i, chunk := range f.Chunks {
		sb.WriteString(fmt.Sprintf("#### Chunk %d (new file lines %d-%d)\n\n",
			i+1, chunk.To.StartLine, chunk.To.StartLine+chunk.To.LineCount-1))

		if chunk.From.Branch != "" || chunk.To.Branch != "" {
			sb.WriteString(fmt.Sprintf(
				"Note: this chunk contains an unresolved merge conflict (%s vs %s).\n\n",
				chunk.From.Branch, chunk.To.Branch))
		}

		sb.WriteString("```new_hunk\n")
		for _, line := range chunk.To.Content {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString("```\n\n")

		if hasDeletions(chunk.From.Content) {
			sb.WriteString("```old_hunk\n")
			for _, line := range chunk.From.Content {
				sb.WriteString(line)
				sb.WriteString("\n")
			}
			sb.WriteString("```\n\n")
		}
	}
}

func hasDeletions(fromContent []string) bool {
	for _, line := range fromContent {
		if strings.HasPrefix(line, "-") {
			return true
		}
	}
	return false
}
