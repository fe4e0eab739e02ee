package cmd

import (
	"testing"

	"github.com/purr-dev/purr/internal/review"
	"github.com/purr-dev/purr/internal/vcs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveProjectAndNumber_TwoArgs(t *testing.T) {
	project, number, err := resolveProjectAndNumber([]string{"acme/blog", "42"})
	require.NoError(t, err)
	assert.Equal(t, "acme/blog", project)
	assert.Equal(t, int64(42), number)
}

func TestResolveProjectAndNumber_BadNumber(t *testing.T) {
	_, _, err := resolveProjectAndNumber([]string{"acme/blog", "forty-two"})
	assert.Error(t, err)
}

func TestFormatReport_FullResult(t *testing.T) {
	result := &review.Result{
		PR:      &vcs.PullRequest{Number: 7, Title: "Add caching layer"},
		Summary: "Adds an LRU cache in front of the store.",
		Files: []review.FileReview{
			{
				Path: "cache.go",
				Comments: []review.Comment{
					{Filename: "cache.go", StartLine: 10, EndLine: 12, Body: "Missing mutex around map access."},
				},
			},
			{Path: "store.go"},
		},
		Skipped: []string{"vendor/lib.go"},
	}

	out := formatReport(result)

	assert.Contains(t, out, "# PR #7: Add caching layer")
	assert.Contains(t, out, "## Summary")
	assert.Contains(t, out, "**Lines 10-12**")
	assert.Contains(t, out, "Missing mutex around map access.")
	assert.Contains(t, out, "_No structured findings extracted._")
	assert.Contains(t, out, "_Skipped: vendor/lib.go_")
}

func TestFormatReport_LGTMComment(t *testing.T) {
	result := &review.Result{
		Files: []review.FileReview{
			{
				Path: "main.go",
				Comments: []review.Comment{
					{Filename: "main.go", IsLGTM: true},
				},
			},
		},
	}

	out := formatReport(result)
	assert.Contains(t, out, "- LGTM")
	assert.NotContains(t, out, "Lines 0-0")
}
