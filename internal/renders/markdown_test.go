package renders

import (
	"testing"

	"github.com/purr-dev/purr/internal/provider"
	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	result := RenderMarkdown("# Hello\n\nThis is **bold** text.")
	assert.NotEmpty(t, result)
}

func TestRenderMarkdown_Empty(t *testing.T) {
	// Should not panic on empty input.
	result := RenderMarkdown("")
	assert.Empty(t, result)
}

func TestRenderMarkdown_CodeBlock(t *testing.T) {
	input := "```go\nfunc main() {\n    fmt.Println(\"hello\")\n}\n```"
	result := RenderMarkdown(input)
	assert.NotEmpty(t, result)
}

func TestRenderStream_CollectsError(t *testing.T) {
	chunks := make(chan provider.StreamChunk, 1)
	errCh := make(chan error, 1)
	chunks <- provider.StreamChunk{Content: "partial"}
	close(chunks)
	errCh <- assert.AnError
	close(errCh)

	err := RenderStream(provider.StreamResult{Chunks: chunks, Err: errCh})
	assert.ErrorIs(t, err, assert.AnError)
}
