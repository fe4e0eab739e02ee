package review

import (
	"testing"

	"github.com/purr-dev/purr/internal/patch"
	"github.com/purr-dev/purr/internal/vcs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const promptSampleDiff = `@@ -1,3 +1,4 @@
 func main() {
+	fmt.Println("hi")
 	run()
 }`

func samplePR() *vcs.PullRequest {
	return &vcs.PullRequest{
		Number:       7,
		Title:        "Add greeting",
		Description:  "Prints a greeting on startup.",
		SourceBranch: "feature/greeting",
		TargetBranch: "main",
	}
}

func sampleReviewFile(t *testing.T) ReviewFile {
	chunks := patch.ParsePatch("main.go", promptSampleDiff)
	require.NotEmpty(t, chunks)
	return ReviewFile{
		Diff:          vcs.FileDiff{NewPath: "main.go", Patch: promptSampleDiff},
		Chunks:        chunks,
		TokenEstimate: estimateTokens(promptSampleDiff),
	}
}

func TestBuildFileReviewPrompt(t *testing.T) {
	prompt := BuildFileReviewPrompt(samplePR(), sampleReviewFile(t))

	assert.Contains(t, prompt, "PR #7: Add greeting")
	assert.Contains(t, prompt, "feature/greeting → main")
	assert.Contains(t, prompt, "```new_hunk")

	// new_hunk lines carry absolute line numbers in the new file.
	assert.Contains(t, prompt, "1  func main() {")
	assert.Contains(t, prompt, "2 +\tfmt.Println(\"hi\")")

	// The response protocol must be taught to the model.
	assert.Contains(t, prompt, "<start_line>-<end_line>:")
	assert.Contains(t, prompt, "---")
	assert.Contains(t, prompt, "lgtm!")
}

func TestBuildFileReviewPrompt_OldHunkOnlyWithDeletions(t *testing.T) {
	// Pure addition: no old_hunk fence.
	prompt := BuildFileReviewPrompt(samplePR(), sampleReviewFile(t))
	assert.NotContains(t, prompt, "```old_hunk")

	// With a deletion the old_hunk fence appears.
	diff := "@@ -1,2 +1,2 @@\n-old := 1\n+new := 1\n ctx\n"
	chunks := patch.ParsePatch("f.go", diff)
	require.NotEmpty(t, chunks)
	prompt = BuildFileReviewPrompt(samplePR(), ReviewFile{
		Diff:   vcs.FileDiff{NewPath: "f.go", Patch: diff},
		Chunks: chunks,
	})
	assert.Contains(t, prompt, "```old_hunk")
	assert.Contains(t, prompt, "-old := 1")
}

func TestBuildFileReviewPrompt_ConflictNote(t *testing.T) {
	diff := "@@ -1,3 +1,3 @@\n<<<<<<< HEAD\n a := 1\n=======\n a := 2\n>>>>>>> 9b50671 (wip)\n"
	chunks := patch.ParsePatch("f.go", diff)
	require.NotEmpty(t, chunks)

	prompt := BuildFileReviewPrompt(samplePR(), ReviewFile{
		Diff:   vcs.FileDiff{NewPath: "f.go", Patch: diff},
		Chunks: chunks,
	})
	assert.Contains(t, prompt, "unresolved merge conflict (HEAD vs wip)")
}

func TestBuildSummaryPrompt(t *testing.T) {
	batch := Batch{Files: []ReviewFile{sampleReviewFile(t)}}
	prompt := BuildSummaryPrompt(samplePR(), batch)

	assert.Contains(t, prompt, "PR #7")
	assert.Contains(t, prompt, "- main.go (1 chunks)")
	assert.Contains(t, prompt, "Do not review individual lines")
}
