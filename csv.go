package pagescope

import "strings"

// CSVField quotes a value for CSV output. Every field is quoted and embedded
// quotes are doubled.
func CSVField(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

// ToCSV renders rows as CSV: fields joined by commas, rows joined by
// newlines, with a trailing newline.
func ToCSV(rows [][]string) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, field := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(CSVField(field))
		}
	}
	b.WriteByte('\n')
	return b.String()
}
