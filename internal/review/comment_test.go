package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReviewComment(t *testing.T) {
	raw := "10-15:\nConsider handling the error here."
	comments := ParseReviewComment("f.ts", raw)
	require.Len(t, comments, 1)

	c := comments[0]
	assert.Equal(t, "f.ts", c.Filename)
	assert.Equal(t, 10, c.StartLine)
	assert.Equal(t, 15, c.EndLine)
	assert.Equal(t, "Consider handling the error here.", c.Body)
	assert.False(t, c.IsLGTM)
}

func TestParseReviewComment_Empty(t *testing.T) {
	assert.Empty(t, ParseReviewComment("f.ts", ""))
	assert.Empty(t, ParseReviewComment("f.ts", "   "))
	assert.Empty(t, ParseReviewComment("f.ts", "\n\n"))
}

func TestParseReviewComment_InvalidRangeDiscarded(t *testing.T) {
	assert.Empty(t, ParseReviewComment("f.ts", "15-10:\nBad range"))

	comments := ParseReviewComment("f.ts", "10-15:\nGood")
	require.Len(t, comments, 1)
	assert.Equal(t, 10, comments[0].StartLine)
	assert.Equal(t, 15, comments[0].EndLine)
}

func TestParseReviewComment_MalformedSectionsSkipped(t *testing.T) {
	raw := "10-15:\nGood\n---\nInvalid format\n---\n20-25:\nAnother"
	comments := ParseReviewComment("f.ts", raw)
	require.Len(t, comments, 2)

	assert.Equal(t, "Good", comments[0].Body)
	assert.Equal(t, 20, comments[1].StartLine)
	assert.Equal(t, "Another", comments[1].Body)
}

func TestParseReviewComment_RangeWithoutTextSkipped(t *testing.T) {
	assert.Empty(t, ParseReviewComment("f.ts", "10-15:"))
	assert.Empty(t, ParseReviewComment("f.ts", "10-15:\n   \n"))
}

func TestParseReviewComment_LGTMCaseInsensitive(t *testing.T) {
	for _, raw := range []string{
		"1-1:\nlgtm!",
		"1-1:\nLGTM!",
		"1-1:\nLgTm! nice refactor",
	} {
		comments := ParseReviewComment("f.ts", raw)
		require.Len(t, comments, 1, raw)
		assert.True(t, comments[0].IsLGTM, raw)
	}

	comments := ParseReviewComment("f.ts", "1-1:\nlooks good to me")
	require.Len(t, comments, 1)
	assert.False(t, comments[0].IsLGTM)
}

func TestParseReviewComment_MultilineBodyWithCodeFence(t *testing.T) {
	raw := "12-18:\nThe retry loop drops the last error.\n\n```diff\n-    return nil\n+    return lastErr\n```\n---\n30-30:\nlgtm!"
	comments := ParseReviewComment("svc.go", raw)
	require.Len(t, comments, 2)

	first := comments[0]
	assert.Equal(t, 12, first.StartLine)
	assert.Equal(t, 18, first.EndLine)
	assert.Contains(t, first.Body, "```diff")
	assert.Contains(t, first.Body, "-    return nil")
	assert.Contains(t, first.Body, "+    return lastErr")
	assert.False(t, first.IsLGTM)

	assert.True(t, comments[1].IsLGTM)
}

func TestParseReviewComment_OrderPreserved(t *testing.T) {
	raw := "5-6:\nfirst\n---\n1-2:\nsecond"
	comments := ParseReviewComment("f.ts", raw)
	require.Len(t, comments, 2)
	assert.Equal(t, 5, comments[0].StartLine)
	assert.Equal(t, 1, comments[1].StartLine)
}
