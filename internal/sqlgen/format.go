package sqlgen

import "strings"

// formatClauseList renders items as indented lines of at most perLine
// comma-separated items, with a trailing comma on every line but the last.
func formatClauseList(items []string, perLine int, indent string) string {
	if len(items) == 0 {
		return ""
	}
	var lines []string
	for i := 0; i < len(items); i += perLine {
		end := i + perLine
		if end > len(items) {
			end = len(items)
		}
		lines = append(lines, indent+strings.Join(items[i:end], ", "))
	}
	return strings.Join(lines, ",\n")
}
