package document

import (
	"strings"
)

// MarkdownTable renders rows as a GitHub flavored markdown table. The first
// row is the header.
func MarkdownTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	cols := 0

	for _, row := range rows {
		cols = max(cols, len(row))
	}

	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)

	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len([]rune(escapeCell(cell))))
		}
	}

	for i := range widths {
		widths[i] = max(widths[i], 3)
	}

	var sb strings.Builder

	writeRow := func(row []string) {
		sb.WriteString("|")

		for i := 0; i < cols; i++ {
			cell := ""

			if i < len(row) {
				cell = escapeCell(row[i])
			}

			sb.WriteString(" ")
			sb.WriteString(cell)
			sb.WriteString(strings.Repeat(" ", widths[i]-len([]rune(cell))))
			sb.WriteString(" |")
		}

		sb.WriteString("\n")
	}

	writeRow(rows[0])

	sb.WriteString("|")

	for i := 0; i < cols; i++ {
		sb.WriteString(strings.Repeat("-", widths[i]+2))
		sb.WriteString("|")
	}

	sb.WriteString("\n")

	for _, row := range rows[1:] {
		writeRow(row)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func escapeCell(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "|", "\\|")

	return s
}
