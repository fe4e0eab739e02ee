package commenter

import (
	"errors"
	"testing"

	"github.com/purr-dev/purr/internal/review"
	"github.com/purr-dev/purr/internal/vcs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingVCS struct {
	posted []vcs.InlineComment
	err    error
}

func (r *recordingVCS) Info() vcs.ProviderInfo                        { return vcs.ProviderInfo{Name: "rec"} }
func (r *recordingVCS) FetchPR(string, int64) (*vcs.PullRequest, error) { return nil, nil }
func (r *recordingVCS) FetchPRFiles(string, int64) ([]vcs.FileDiff, error) {
	return nil, nil
}
func (r *recordingVCS) PostSummary(string, int64, string) error { return nil }
func (r *recordingVCS) PostInlineComment(_ string, _ int64, _ vcs.DiffRefs, c vcs.InlineComment) error {
	if r.err != nil {
		return r.err
	}
	r.posted = append(r.posted, c)
	return nil
}
func (r *recordingVCS) Validate() error { return nil }

func TestCommenter_PostInline(t *testing.T) {
	rec := &recordingVCS{}
	c := New(rec)

	err := c.PostInline("acme/blog", 7, vcs.DiffRefs{HeadSHA: "sha"}, review.Comment{
		Filename:  "main.go",
		StartLine: 2,
		EndLine:   5,
		Body:      "Use a logger.",
	})
	require.NoError(t, err)
	require.Len(t, rec.posted, 1)
	assert.Equal(t, "main.go", rec.posted[0].Path)
	assert.Equal(t, 2, rec.posted[0].StartLine)
	assert.Equal(t, 5, rec.posted[0].Line)
	assert.Equal(t, "Use a logger.", rec.posted[0].Body)
}

func TestCommenter_SkipsLGTM(t *testing.T) {
	rec := &recordingVCS{}
	c := New(rec)

	err := c.PostInline("acme/blog", 7, vcs.DiffRefs{}, review.Comment{
		Filename: "main.go",
		Body:     "lgtm!",
		IsLGTM:   true,
	})
	require.NoError(t, err)
	assert.Empty(t, rec.posted)
}

func TestCommenter_PostAllBestEffort(t *testing.T) {
	rec := &recordingVCS{err: errors.New("403")}
	c := New(rec)

	errs := c.PostAll("acme/blog", 7, vcs.DiffRefs{}, []review.Comment{
		{Filename: "a.go", StartLine: 1, EndLine: 1, Body: "x"},
		{Filename: "b.go", StartLine: 2, EndLine: 3, Body: "y"},
		{Filename: "c.go", Body: "lgtm!", IsLGTM: true},
	})
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "a.go:1-1")
	assert.Contains(t, errs[1].Error(), "b.go:2-3")
}
