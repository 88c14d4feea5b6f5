package pipeline

import (
	"fmt"

	"github.com/shopspring/decimal"

	"csvlogit/internal/data"
)

// OneHotEncoder expands categorical columns into indicator columns, one
// per distinct value observed, in first-occurrence order. Within each
// original column exactly one indicator is 1 per row, so the per-column
// row sum is always 1.
type OneHotEncoder struct {
	Columns    []int
	Categories [][]string // distinct values per column, first-occurrence order
	Names      []string   // "<column>_<value>" across all columns
	IsFitted   bool

	lookup []map[string]int
}

func NewOneHotEncoder() *OneHotEncoder {
	return &OneHotEncoder{}
}

// FitTransform collects the distinct values of every categorical column
// and returns the concatenated indicator block. Output columns are grouped
// per original column, in the order the columns were given.
func (e *OneHotEncoder) FitTransform(t *data.Table, columns []int) (*Block, error) {
	if len(t.Rows) == 0 {
		return nil, fmt.Errorf("no rows to encode")
	}

	e.Columns = columns
	e.Categories = make([][]string, len(columns))
	e.lookup = make([]map[string]int, len(columns))
	e.Names = nil

	for k, col := range columns {
		e.lookup[k] = make(map[string]int)
		for _, row := range t.Rows {
			value := row[col]
			if _, seen := e.lookup[k][value]; !seen {
				e.lookup[k][value] = len(e.Categories[k])
				e.Categories[k] = append(e.Categories[k], value)
			}
		}
		for _, value := range e.Categories[k] {
			e.Names = append(e.Names, t.Headers[col]+"_"+value)
		}
	}

	block := &Block{
		Values: make([][]decimal.Decimal, len(t.Rows)),
		Names:  e.Names,
	}

	one := decimal.NewFromInt(1)
	for i, row := range t.Rows {
		indicators := make([]decimal.Decimal, len(e.Names))
		offset := 0
		for k, col := range columns {
			indicators[offset+e.lookup[k][row[col]]] = one
			offset += len(e.Categories[k])
		}
		block.Values[i] = indicators
	}

	e.IsFitted = true
	return block, nil
}

// Transform encodes a single raw row against the fitted category tables.
// A value never seen during fitting has no indicator column and is an
// error.
func (e *OneHotEncoder) Transform(fields []string) ([]decimal.Decimal, error) {
	if !e.IsFitted {
		return nil, fmt.Errorf("encoder must be fitted before transform")
	}
	if e.lookup == nil {
		e.rebuildLookup()
	}

	indicators := make([]decimal.Decimal, len(e.Names))
	one := decimal.NewFromInt(1)
	offset := 0
	for k, col := range e.Columns {
		idx, ok := e.lookup[k][fields[col]]
		if !ok {
			return nil, fmt.Errorf("unknown category %q for column %d", fields[col], col)
		}
		indicators[offset+idx] = one
		offset += len(e.Categories[k])
	}

	return indicators, nil
}

// The lookup maps are not persisted; rebuild them from the category
// tables after a bundle load.
func (e *OneHotEncoder) rebuildLookup() {
	e.lookup = make([]map[string]int, len(e.Categories))
	for k, values := range e.Categories {
		e.lookup[k] = make(map[string]int, len(values))
		for i, value := range values {
			e.lookup[k][value] = i
		}
	}
}
