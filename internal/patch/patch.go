// Package patch converts unified-diff patch text into structured,
// line-addressable hunks. For every @@ chunk it produces a before/after
// pair whose "after" side carries recomputed absolute line numbers, so a
// review comment can point at any displayed line in the resulting file.
//
// The parser is tolerant: unrecognized chunk headers are
// skipped, patches captured mid-merge-conflict (with <<<<<<< / ======= /
// >>>>>>> markers in the body) still yield sensible before/after hunks,
// and no input ever produces an error. The absence of a DiffResult is
// the only failure signal.
package patch

import (
	"regexp"
	"strconv"
	"strings"
)

// Hunk is one side (before or after) of a diff chunk for one file.
type Hunk struct {
	// Filename is the path this hunk belongs to, supplied by the caller.
	// It is never derived from the patch text.
	Filename string

	// StartLine and LineCount come straight from the @@ header for this
	// side. They are trusted as declared, never recomputed.
	StartLine int
	LineCount int

	// Content holds the chunk body lines attributed to this side. On the
	// "from" side each entry is the raw marker-prefixed line. On the "to"
	// side each entry is the absolute line number in the resulting file,
	// a space, then the raw marker-prefixed line.
	Content []string

	// Branch is set only when the chunk contains unresolved conflict
	// markers; it carries the conflicting branch/ref label.
	Branch string

	// CommitID is set only on the "to" side when the closing conflict
	// marker names a short commit hash.
	CommitID string
}

// DiffResult pairs the before and after hunks of one @@ chunk.
type DiffResult struct {
	From Hunk
	To   Hunk
}

var (
	chunkHeaderPattern   = regexp.MustCompile(`^@@ -(\d+),(\d+) \+(\d+),(\d+) @@`)
	closingMarkerPattern = regexp.MustCompile(`^>>>>>>>\s+(\S+)\s+\((.+)\)`)
)

const (
	openingMarker   = "<<<<<<<"
	separatorMarker = "======="
	closingMarker   = ">>>>>>>"
)

// chunk accumulates one DiffResult while its body is scanned. lineNo is
// the running output line number; it starts at toStart-1 and is
// pre-incremented before each use, so the first body line lands on
// toStart.
type chunk struct {
	fromStart, fromCount int
	toStart, toCount     int
	fromContent          []string
	toContent            []string
	fromBranch           string
	toBranch             string
	commitID             string
	lineNo               int
}

// ParsePatch scans a raw unified-diff patch for one file and returns its
// chunks in order of appearance. An empty patch yields no results, and
// malformed input never yields an error: chunks whose header does not
// match the @@ -a,b +c,d @@ form are skipped entirely.
func ParsePatch(filename, patch string) []DiffResult {
	if patch == "" {
		return nil
	}

	lines := strings.Split(patch, "\n")
	var results []DiffResult

	i := 0
	for i < len(lines) {
		m := chunkHeaderPattern.FindStringSubmatch(lines[i])
		if m == nil {
			// Noise before the first header, or a header we cannot
			// make sense of. Resume at the next line.
			i++
			continue
		}

		c := &chunk{}
		c.fromStart, _ = strconv.Atoi(m[1])
		c.fromCount, _ = strconv.Atoi(m[2])
		c.toStart, _ = strconv.Atoi(m[3])
		c.toCount, _ = strconv.Atoi(m[4])
		c.lineNo = c.toStart - 1

		i++
		for i < len(lines) && !strings.HasPrefix(lines[i], "@@") {
			i = scanNormal(lines, i, c)
		}

		results = append(results, c.result(filename))
	}

	return results
}

// scanNormal classifies one body line in the NORMAL state and returns
// the index of the next line to scan. Conflict markers hand control to
// scanConflict, which consumes the whole marker block.
func scanNormal(lines []string, i int, c *chunk) int {
	line := lines[i]

	switch {
	case strings.Contains(line, openingMarker):
		// The conflict block occupies one position in the output file.
		c.lineNo++
		return scanConflict(lines, i, c)

	case strings.HasPrefix(line, "+"):
		c.lineNo++
		c.toContent = append(c.toContent, numbered(c.lineNo, line))

	case strings.HasPrefix(line, "-"):
		// Deleted lines do not exist in the resulting file: no number,
		// no counter advance.
		c.fromContent = append(c.fromContent, line)

	default:
		c.fromContent = append(c.fromContent, line)
		c.lineNo++
		c.toContent = append(c.toContent, numbered(c.lineNo, line))
	}

	return i + 1
}

// scanConflict consumes a <<<<<<< ... ======= ... >>>>>>> block starting
// at lines[i] (the opening marker) and returns the index of the line
// following the closing marker. Lines before the separator belong to the
// original branch ("from"), lines after it to the incoming branch ("to").
func scanConflict(lines []string, i int, c *chunk) int {
	if idx := strings.Index(lines[i], openingMarker); idx >= 0 {
		fields := strings.Fields(lines[i][idx+len(openingMarker):])
		if len(fields) > 0 {
			c.fromBranch = fields[0]
		}
	}
	i++

	for i < len(lines) && !strings.HasPrefix(stripMarker(lines[i]), separatorMarker) {
		c.fromContent = append(c.fromContent, lines[i])
		i++
	}
	if i < len(lines) {
		i++ // separator line itself is consumed, not emitted
	}

	for i < len(lines) && !strings.HasPrefix(stripMarker(lines[i]), closingMarker) {
		c.toContent = append(c.toContent, numbered(c.lineNo, lines[i]))
		i++
	}
	if i < len(lines) {
		// ">>>>>>> <commitId> (<branch>)". A closing marker in any other
		// shape leaves commit and branch unset.
		if m := closingMarkerPattern.FindStringSubmatch(stripMarker(lines[i])); m != nil {
			c.commitID = m[1]
			c.toBranch = m[2]
		}
		i++
	}

	return i
}

// stripMarker removes a single leading diff marker character so that
// conflict markers are recognized whether the patch records them as
// context, added or deleted lines.
func stripMarker(line string) string {
	if len(line) > 0 && (line[0] == '+' || line[0] == '-' || line[0] == ' ') {
		return line[1:]
	}
	return line
}

func numbered(n int, line string) string {
	return strconv.Itoa(n) + " " + line
}

func (c *chunk) result(filename string) DiffResult {
	return DiffResult{
		From: Hunk{
			Filename:  filename,
			StartLine: c.fromStart,
			LineCount: c.fromCount,
			Content:   c.fromContent,
			Branch:    c.fromBranch,
		},
		To: Hunk{
			Filename:  filename,
			StartLine: c.toStart,
			LineCount: c.toCount,
			Content:   c.toContent,
			Branch:    c.toBranch,
			CommitID:  c.commitID,
		},
	}
}
