// Package export serializes list views to delimited text files.
package export

import (
	"fmt"
	"os"
	"strings"
)

// CSV renders a header row and data rows as comma-separated text with
// newline-joined lines. Field values are joined verbatim: embedded
// commas or quotes are not escaped, matching the wire format the office
// tooling already consumes. Known limitation for values containing
// delimiters.
func CSV(header []string, rows [][]string) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(header, ","))
	for _, row := range rows {
		lines = append(lines, strings.Join(row, ","))
	}
	return strings.Join(lines, "\n")
}

// WriteFile saves CSV content under the given file name, the terminal
// analog of a browser download.
func WriteFile(path string, header []string, rows [][]string) error {
	if err := os.WriteFile(path, []byte(CSV(header, rows)), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
