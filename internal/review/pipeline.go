package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/purr-dev/purr/internal/filter"
	"github.com/purr-dev/purr/internal/patch"
	"github.com/purr-dev/purr/internal/provider"
	"github.com/purr-dev/purr/internal/vcs"
)

// Pipeline orchestrates a full PR review: fetch, parse, summarize,
// review file by file, post.
type Pipeline struct {
	vcs      vcs.VCSProvider
	ai       provider.AIProvider
	poster   CommentPoster
	cfg      Config
	progress ProgressFunc
}

// NewPipeline wires a pipeline. poster may be nil; posting is then
// skipped regardless of cfg.DryRun.
func NewPipeline(v vcs.VCSProvider, ai provider.AIProvider, poster CommentPoster, cfg Config) *Pipeline {
	if cfg.MaxBatchTokens <= 0 {
		cfg.MaxBatchTokens = DefaultConfig().MaxBatchTokens
	}
	return &Pipeline{vcs: v, ai: ai, poster: poster, cfg: cfg}
}

// OnProgress registers a stage callback for CLI feedback.
func (p *Pipeline) OnProgress(fn ProgressFunc) {
	p.progress = fn
}

func (p *Pipeline) report(stage, detail string) {
	if p.progress != nil {
		p.progress(stage, detail)
	}
}

// Run executes the pipeline. Provider and VCS fetch errors are fatal;
// posting errors are collected in Result.PostErrors.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	p.report("fetch", fmt.Sprintf("%s!%d", p.cfg.ProjectID, p.cfg.Number))
	pr, err := p.vcs.FetchPR(p.cfg.ProjectID, p.cfg.Number)
	if err != nil {
		return nil, fmt.Errorf("review: failed to fetch PR: %w", err)
	}

	diffs, err := p.vcs.FetchPRFiles(p.cfg.ProjectID, p.cfg.Number)
	if err != nil {
		return nil, fmt.Errorf("review: failed to fetch PR files: %w", err)
	}

	result := &Result{PR: pr}
	files := p.prepareFiles(diffs, result)
	if len(files) == 0 {
		return result, nil
	}

	p.report("summarize", fmt.Sprintf("%d files", len(files)))
	if err := p.summarize(ctx, pr, files, result); err != nil {
		return nil, err
	}

	if !p.cfg.SummaryOnly {
		if err := p.reviewFiles(ctx, pr, files, result); err != nil {
			return nil, err
		}
	}

	if !p.cfg.DryRun {
		p.post(pr, result)
	}

	return result, nil
}

// prepareFiles filters the changed files and parses their patches.
// Files with no parseable chunks (deleted, binary, renames without
// content changes) are recorded as skipped.
func (p *Pipeline) prepareFiles(diffs []vcs.FileDiff, result *Result) []ReviewFile {
	match := filter.New(p.cfg.PathFilter)

	var files []ReviewFile
	for _, d := range diffs {
		if d.DeletedFile || !match.Match(d.Path()) {
			result.Skipped = append(result.Skipped, d.Path())
			continue
		}
		chunks := patch.ParsePatch(d.Path(), d.Patch)
		if len(chunks) == 0 {
			result.Skipped = append(result.Skipped, d.Path())
			continue
		}
		files = append(files, ReviewFile{
			Diff:          d,
			Chunks:        chunks,
			TokenEstimate: estimateTokens(d.Patch),
		})
	}
	return files
}

func (p *Pipeline) summarize(ctx context.Context, pr *vcs.PullRequest, files []ReviewFile, result *Result) error {
	batches := BatchFiles(files, p.cfg.MaxBatchTokens)

	var summaries []string
	for i, batch := range batches {
		p.report("summarize", fmt.Sprintf("batch %d/%d", i+1, len(batches)))
		resp, err := p.complete(ctx, BuildSummaryPrompt(pr, batch))
		if err != nil {
			return fmt.Errorf("review: summary request failed: %w", err)
		}
		if s := strings.TrimSpace(resp); s != "" {
			summaries = append(summaries, s)
		}
	}

	result.Summary = strings.Join(summaries, "\n\n")
	return nil
}

func (p *Pipeline) reviewFiles(ctx context.Context, pr *vcs.PullRequest, files []ReviewFile, result *Result) error {
	for i, f := range files {
		p.report("review", fmt.Sprintf("%s (%d/%d)", f.Path(), i+1, len(files)))

		resp, err := p.complete(ctx, BuildFileReviewPrompt(pr, f))
		if err != nil {
			return fmt.Errorf("review: review of %s failed: %w", f.Path(), err)
		}

		result.Files = append(result.Files, FileReview{
			Path:     f.Path(),
			Comments: ParseReviewComment(f.Path(), resp),
			Raw:      resp,
		})
	}
	return nil
}

func (p *Pipeline) complete(ctx context.Context, userPrompt string) (string, error) {
	resp, err := p.ai.Complete(ctx, provider.CompletionRequest{
		Model: p.cfg.Model,
		Messages: []provider.Message{
			{Role: provider.RoleSystem, Content: SystemPrompt},
			{Role: provider.RoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// post publishes the summary and the inline comments. Failures are
// best-effort: collected, never fatal.
func (p *Pipeline) post(pr *vcs.PullRequest, result *Result) {
	if result.Summary != "" {
		p.report("post", "summary")
		if err := p.vcs.PostSummary(p.cfg.ProjectID, p.cfg.Number, result.Summary); err != nil {
			result.PostErrors = append(result.PostErrors,
				fmt.Errorf("post summary: %w", err))
		}
	}

	if p.poster == nil {
		return
	}

	for _, f := range result.Files {
		for _, c := range f.Comments {
			if c.IsLGTM {
				continue
			}
			p.report("post", fmt.Sprintf("%s:%d", c.Filename, c.EndLine))
			if err := p.poster.PostInline(p.cfg.ProjectID, p.cfg.Number, pr.DiffRefs, c); err != nil {
				result.PostErrors = append(result.PostErrors,
					fmt.Errorf("post %s:%d-%d: %w", c.Filename, c.StartLine, c.EndLine, err))
			}
		}
	}
}
