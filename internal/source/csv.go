package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVLoader renders each data row as "header: value" pairs, one row per line.
type CSVLoader struct{}

func (l *CSVLoader) Load(r io.Reader) (string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return "", nil
	}

	headers := records[0]
	var text strings.Builder
	for _, row := range records[1:] {
		parts := make([]string, 0, len(row))
		for j, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			if j < len(headers) && headers[j] != "" {
				parts = append(parts, headers[j]+": "+cell)
			} else {
				parts = append(parts, cell)
			}
		}
		if len(parts) == 0 {
			continue
		}
		text.WriteString(strings.Join(parts, ", "))
		text.WriteString("\n")
	}
	return text.String(), nil
}
