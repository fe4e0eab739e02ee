// Package commenter translates parsed review comments into inline
// comment calls against a VCS provider.
package commenter

import (
	"fmt"

	"github.com/purr-dev/purr/internal/review"
	"github.com/purr-dev/purr/internal/vcs"
)

// Commenter posts review comments through a VCSProvider. It implements
// review.CommentPoster.
type Commenter struct {
	vcs vcs.VCSProvider
}

// New creates a Commenter backed by the given provider.
func New(p vcs.VCSProvider) *Commenter {
	return &Commenter{vcs: p}
}

// PostInline posts a single comment as an inline annotation. The range
// start is only meaningful when it differs from the end line; the
// provider layer drops start_line for single-line comments.
func (c *Commenter) PostInline(projectID string, number int64, refs vcs.DiffRefs, cm review.Comment) error {
	if cm.IsLGTM {
		return nil
	}
	return c.vcs.PostInlineComment(projectID, number, refs, vcs.InlineComment{
		Path:      cm.Filename,
		StartLine: cm.StartLine,
		Line:      cm.EndLine,
		Body:      cm.Body,
	})
}

// PostAll posts every non-LGTM comment, best-effort. It returns the
// per-comment errors; a non-empty slice does not mean nothing was
// posted.
func (c *Commenter) PostAll(projectID string, number int64, refs vcs.DiffRefs, comments []review.Comment) []error {
	var errs []error
	for _, cm := range comments {
		if cm.IsLGTM {
			continue
		}
		if err := c.PostInline(projectID, number, refs, cm); err != nil {
			errs = append(errs, fmt.Errorf("%s:%d-%d: %w", cm.Filename, cm.StartLine, cm.EndLine, err))
		}
	}
	return errs
}
