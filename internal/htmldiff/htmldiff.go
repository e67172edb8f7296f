// Package htmldiff reports the difference between two renderings of a
// document, line by line with optional character-level spans.
package htmldiff

import (
	"strings"

	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

const NoChanges = "No changes\n"

// Unified renders a line diff of before and after. Unchanged lines are
// prefixed with two spaces, removed lines with "- " and added lines with
// "+ ". Blank unchanged lines are skipped.
func Unified(before, after string) string {
	if before == after {
		return NoChanges
	}

	d := dmp.New()
	a, b, lines := d.DiffLinesToChars(before, after)
	diffs := d.DiffMain(a, b, false)
	diffs = d.DiffCharsToLines(diffs, lines)

	var sb strings.Builder
	for _, df := range diffs {
		prefix := "  "
		switch df.Type {
		case dmp.DiffDelete:
			prefix = "- "
		case dmp.DiffInsert:
			prefix = "+ "
		}
		for _, line := range splitLines(df.Text) {
			if df.Type == dmp.DiffEqual && strings.TrimSpace(line) == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Inline marks character-level changes in a single string, wrapping removed
// text in [-...-] and added text in {+...+}.
func Inline(before, after string) string {
	if before == after {
		return before
	}
	d := dmp.New()
	diffs := d.DiffMain(before, after, false)
	diffs = d.DiffCleanupSemantic(diffs)

	var sb strings.Builder
	for _, df := range diffs {
		switch df.Type {
		case dmp.DiffDelete:
			sb.WriteString("[-")
			sb.WriteString(df.Text)
			sb.WriteString("-]")
		case dmp.DiffInsert:
			sb.WriteString("{+")
			sb.WriteString(df.Text)
			sb.WriteString("+}")
		default:
			sb.WriteString(df.Text)
		}
	}
	return sb.String()
}

// Changed counts the removed and added lines between before and after.
func Changed(before, after string) (removed, added int) {
	if before == after {
		return 0, 0
	}
	d := dmp.New()
	a, b, lines := d.DiffLinesToChars(before, after)
	diffs := d.DiffCharsToLines(d.DiffMain(a, b, false), lines)
	for _, df := range diffs {
		switch df.Type {
		case dmp.DiffDelete:
			removed += len(splitLines(df.Text))
		case dmp.DiffInsert:
			added += len(splitLines(df.Text))
		}
	}
	return removed, added
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
