// Package review turns model output into structured review feedback and
// builds the prompts that teach the model the expected output protocol.
//
// The reply protocol is "---"-separated sections, each opening with a
// "start-end:" line range followed by free-form comment text. Parsing is
// deliberately lenient: sections that do not follow the protocol are
// dropped silently, so a partially garbled reply still yields every
// well-formed comment it contains.
package review

import (
	"regexp"
	"strconv"
	"strings"
)

// Comment is one piece of review feedback anchored to a file/line range.
type Comment struct {
	// Filename is supplied by the caller, never parsed from the text.
	Filename string

	// StartLine and EndLine form a 1-based inclusive range with
	// StartLine <= EndLine; sections violating this are discarded.
	StartLine int
	EndLine   int

	// Body is the trimmed comment text. It may contain fenced code
	// blocks, including diff fences with their own +/- lines.
	Body string

	// IsLGTM is true when the body contains the substring "lgtm!" in any
	// case. LGTM comments acknowledge a clean hunk and are not posted.
	IsLGTM bool
}

// sectionPattern anchors each candidate section: a numeric line range,
// an optional colon, then comment text that must end in a non-blank
// character. Sections are matched individually, never the whole reply,
// so scanning stays linear.
var sectionPattern = regexp.MustCompile(`(?s)^(\d+)-(\d+):?\s*(.*\S)$`)

// ParseReviewComment extracts structured comments from a raw model
// reply. Empty or whitespace-only input yields no comments, and
// malformed sections are skipped without error: a shorter-than-expected
// result is the only failure signal.
func ParseReviewComment(filename, raw string) []Comment {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var comments []Comment
	for _, section := range strings.Split(raw, "---") {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}

		m := sectionPattern.FindStringSubmatch(section)
		if m == nil {
			// Non-numeric markers, a range with no comment text, or a
			// stray separator inside a code fence splitting mid-section.
			continue
		}

		start, _ := strconv.Atoi(m[1])
		end, _ := strconv.Atoi(m[2])
		if start > end {
			// Invalid range: discard rather than swap.
			continue
		}

		body := strings.TrimSpace(m[3])
		comments = append(comments, Comment{
			Filename:  filename,
			StartLine: start,
			EndLine:   end,
			Body:      body,
			IsLGTM:    strings.Contains(strings.ToLower(body), "lgtm!"),
		})
	}

	return comments
}
