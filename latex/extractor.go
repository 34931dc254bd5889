// Package latex extracts question blocks from exam source files.
//
// A question block is a brace-delimited region whose opening line starts
// with {% followed by an identifier, and whose body contains \rtask. The
// scanner is strictly line-by-line: it counts braces per line and keeps a
// stack of open frames, so it never needs to understand LaTeX beyond the
// markers it looks for.
package latex

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/examtools/quizshuffle/models"
	"github.com/examtools/quizshuffle/utils"
)

// blockID matches an opening brace followed by % and an identifier, with
// optional spaces: {% Q12345, { %Q12345, {%Q12345.
var blockID = regexp.MustCompile(`\{\s*%\s*(\S+)`)

// frame is one open brace on the scanner stack. Only the outermost frame
// can be promoted; promotion is permanent until the frame closes or the
// scanner resets.
type frame struct {
	startLine int
	promoted  bool
	id        string
}

// Parse scans text and returns the promoted question blocks in document
// order, together with the verbatim text before the first block (header)
// and after the last one (footer). When no block is promoted the whole
// text becomes the header and the footer is empty.
func Parse(text string) *models.Exam {
	lines := splitKeepEnds(text)

	// offsets[i] is the byte offset where line i starts (0-based).
	offsets := make([]int, len(lines)+1)
	for i, line := range lines {
		offsets[i+1] = offsets[i] + len(line)
	}

	var (
		stack      []*frame
		accLines   []string
		questions  []*models.Question
		startLine  int
		currentID  string
		inside     bool
		firstStart = -1
		lastEnd    int
	)

	for i, line := range lines {
		num := i + 1
		hasPromote := strings.Contains(line, `\rtask`)
		idMatch := blockID.FindStringSubmatch(line)
		opens := strings.Count(line, "{")
		closes := strings.Count(line, "}")

		// A new block ID while frames are still open means the previous
		// block never closed. Drop all open state and start clean.
		if opens > 0 && idMatch != nil && len(stack) > 0 {
			utils.LogParse("Unclosed block at line %d (ID: %s) discarded, new block at line %d",
				stack[0].startLine, stack[0].id, num)
			stack = stack[:0]
			inside = false
			accLines = nil
		}

		idUsed := false // only the first { of a line claims the ID
		for k := 0; k < opens; k++ {
			f := &frame{startLine: num}
			if idMatch != nil && !idUsed {
				f.id = idMatch[1]
				idUsed = true
			}
			stack = append(stack, f)
		}

		if len(stack) > 0 && hasPromote && !stack[0].promoted {
			stack[0].promoted = true
		}

		// Once the outermost frame is promoted, collect lines from its
		// opening line onward.
		if len(stack) > 0 && stack[0].promoted {
			if !inside {
				inside = true
				startLine = stack[0].startLine
				currentID = stack[0].id
				accLines = append([]string(nil), lines[startLine-1:num]...)
			} else {
				accLines = append(accLines, line)
			}
		}

		for k := 0; k < closes; k++ {
			if len(stack) == 0 {
				continue
			}
			closed := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if closed.promoted && len(stack) == 0 {
				if firstStart < 0 {
					firstStart = offsets[startLine-1]
				}
				lastEnd = offsets[num]
				questions = append(questions, &models.Question{Content: strings.Join(accLines, "")})
				utils.LogDebug("Extracted block %s (lines %d-%d)", currentID, startLine, num)
				inside = false
				accLines = nil
			}
		}
	}

	if inside && len(stack) > 0 {
		utils.LogParse("Unterminated question block at line %d (ID: %s), skipped", startLine, currentID)
	}

	header, footer := text, ""
	if firstStart >= 0 {
		header = text[:firstStart]
		footer = text[lastEnd:]
	}
	return &models.Exam{Header: header, Questions: questions, Footer: footer}
}

// ParseFile reads path and parses its contents.
func ParseFile(path string) (*models.Exam, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(string(data)), nil
}

// splitKeepEnds splits text into lines, each keeping its trailing newline.
func splitKeepEnds(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
