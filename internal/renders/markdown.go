// Package renders formats model output for the terminal.
package renders

import (
	"os"

	markdown "github.com/MichaelMure/go-term-markdown"
	"golang.org/x/term"
)

const (
	defaultWidth = 100
	leftPad      = 2
)

// RenderMarkdown renders markdown text for the terminal, sized to the
// current terminal width when stdout is a TTY.
func RenderMarkdown(content string) string {
	if content == "" {
		return ""
	}

	width := defaultWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	return string(markdown.Render(content, width, leftPad))
}
