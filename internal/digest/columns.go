package digest

import (
	"strings"
	"unicode/utf8"
)

// Columns lays entries out in the given number of columns. Entries fill
// each column top to bottom before moving to the next (index col*rows+row)
// while text is written one row at a time. Each cell is left-aligned and
// padded with spaces to width runes; longer entries overflow unchanged.
// Every row, including the last, ends with a newline.
func Columns(entries []string, columns, width int) string {
	if len(entries) == 0 {
		return ""
	}
	columns = max(columns, 1)
	rows := (len(entries) + columns - 1) / columns

	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < columns; col++ {
			idx := col*rows + row
			if idx >= len(entries) {
				continue
			}
			b.WriteString(entries[idx])
			if pad := width - utf8.RuneCountInString(entries[idx]); pad > 0 {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
