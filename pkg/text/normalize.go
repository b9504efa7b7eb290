package text

import (
	"regexp"
	"strings"
)

var paragraphBreak = regexp.MustCompile(`\n[ \t\f\v]*\n\s*`)

// Normalize cleans up recognized text: line endings are unified, runs of
// whitespace inside a line collapse to one space, and blank lines between
// paragraphs collapse to a single empty line.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var paragraphs []string

	for _, p := range paragraphBreak.Split(text, -1) {
		var lines []string

		for _, line := range strings.Split(p, "\n") {
			if line = strings.Join(strings.Fields(line), " "); line != "" {
				lines = append(lines, line)
			}
		}

		if len(lines) > 0 {
			paragraphs = append(paragraphs, strings.Join(lines, "\n"))
		}
	}

	return strings.Join(paragraphs, "\n\n")
}
