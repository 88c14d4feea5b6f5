package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Table is the raw input: a header row plus data rows, all still text.
// Every retained row has exactly len(Headers) fields.
type Table struct {
	Headers []string
	Rows    [][]string
}

func LoadTable(filename string) (*Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ReadTable(file)
}

// ReadTable parses comma-separated text. The first line supplies the column
// names. Lines with fewer than 2 fields are skipped; every other data row
// must match the header's field count or the whole load fails.
func ReadTable(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("input is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(headers) < 2 {
		return nil, fmt.Errorf("header must have at least 2 columns, got %d", len(headers))
	}

	table := &Table{Headers: headers}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		if len(record) < 2 {
			continue
		}

		if len(record) != len(headers) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d has %d fields, expected %d", line, len(record), len(headers))
		}

		table.Rows = append(table.Rows, record)
	}

	return table, nil
}

// Dimensions reports data rows by header columns.
func (t *Table) Dimensions() (rows, columns int) {
	return len(t.Rows), len(t.Headers)
}

// SplitLabel removes the named column and returns the remaining feature
// table together with the raw label values. An empty name selects the
// last column.
func (t *Table) SplitLabel(column string) (*Table, []string, error) {
	idx := len(t.Headers) - 1
	if column != "" {
		idx = -1
		for i, h := range t.Headers {
			if h == column {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, nil, fmt.Errorf("label column %q not found in header", column)
		}
	}

	features := &Table{
		Headers: make([]string, 0, len(t.Headers)-1),
		Rows:    make([][]string, len(t.Rows)),
	}
	features.Headers = append(features.Headers, t.Headers[:idx]...)
	features.Headers = append(features.Headers, t.Headers[idx+1:]...)

	labels := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		labels[i] = row[idx]
		fields := make([]string, 0, len(row)-1)
		fields = append(fields, row[:idx]...)
		fields = append(fields, row[idx+1:]...)
		features.Rows[i] = fields
	}

	return features, labels, nil
}
