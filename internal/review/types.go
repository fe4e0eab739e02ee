package review

import (
	"github.com/purr-dev/purr/internal/patch"
	"github.com/purr-dev/purr/internal/vcs"
)

// Config holds configuration for the review pipeline.
type Config struct {
	ProjectID      string // "owner/repo" or GitLab project path
	Number         int64  // PR / MR number
	Model          string // override the provider's default model
	MaxBatchTokens int    // token budget per summary batch, default 80000
	PathFilter     string // comma-separated globs, "!" prefix excludes
	SummaryOnly    bool   // skip the per-file review pass
	DryRun         bool   // never post, return results only
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxBatchTokens: 80000,
	}
}

// ReviewFile is one changed file prepared for review: its raw diff plus
// the parsed, renumbered chunks.
type ReviewFile struct {
	Diff          vcs.FileDiff
	Chunks        []patch.DiffResult
	TokenEstimate int
}

// Path returns the post-change path of the file.
func (f ReviewFile) Path() string {
	return f.Diff.Path()
}

// FileReview holds the review output for a single file.
type FileReview struct {
	Path     string
	Comments []Comment
	Raw      string // the model's raw reply, kept for dry-run display
}

// Result is the complete output of a pipeline run.
type Result struct {
	PR         *vcs.PullRequest
	Summary    string
	Files      []FileReview
	Skipped    []string // paths excluded by filter or with no parseable chunks
	PostErrors []error  // best-effort posting failures, never fatal
}

// CommentCount returns the number of non-LGTM comments across all files.
func (r *Result) CommentCount() int {
	n := 0
	for _, f := range r.Files {
		for _, c := range f.Comments {
			if !c.IsLGTM {
				n++
			}
		}
	}
	return n
}

// ProgressFunc receives pipeline stage updates for CLI feedback.
type ProgressFunc func(stage, detail string)

// CommentPoster posts a single inline comment. Implemented by the
// commenter package; kept as an interface here to keep posting optional
// (dry runs pass nil).
type CommentPoster interface {
	PostInline(projectID string, number int64, refs vcs.DiffRefs, c Comment) error
}
