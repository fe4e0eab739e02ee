package renders

import (
	"fmt"
	"os"

	"github.com/purr-dev/purr/internal/provider"
	"golang.org/x/term"
)

// RenderStream reads chunks from a StreamResult, printing content
// progressively. On a TTY chunks are printed as they arrive; otherwise
// content is accumulated and rendered as markdown at the end.
func RenderStream(result provider.StreamResult) error {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return renderStreamTTY(result)
	}
	return renderStreamRaw(result)
}

func renderStreamTTY(result provider.StreamResult) error {
	for chunk := range result.Chunks {
		if chunk.Content != "" {
			fmt.Print(chunk.Content)
		}
	}
	fmt.Println()

	return <-result.Err
}

func renderStreamRaw(result provider.StreamResult) error {
	var content string
	for chunk := range result.Chunks {
		content += chunk.Content
	}

	if err := <-result.Err; err != nil {
		return err
	}

	if content != "" {
		fmt.Print(RenderMarkdown(content))
	}
	return nil
}
