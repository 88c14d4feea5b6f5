package pipeline

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InterceptName is the column name of the constant 1.0 feature prepended
// to every assembled matrix.
const InterceptName = "intercept"

// Matrix is the assembled design matrix with its parallel column names.
// Layout is a strict contract: intercept first, then the scaled numeric
// columns, then the one-hot columns.
type Matrix struct {
	Values [][]decimal.Decimal
	Names  []string
}

func (m *Matrix) Dimensions() (rows, columns int) {
	return len(m.Values), len(m.Names)
}

// Assemble concatenates the numeric and categorical blocks and prepends
// the intercept column. Either block may be absent; at least one must
// carry columns.
func Assemble(numeric, categorical *Block, rows int) (*Matrix, error) {
	numericWidth := blockWidth(numeric)
	categoricalWidth := blockWidth(categorical)

	if numericWidth == 0 && categoricalWidth == 0 {
		return nil, fmt.Errorf("no feature columns to assemble")
	}

	if numericWidth > 0 && len(numeric.Values) != rows {
		return nil, fmt.Errorf("numeric block has %d rows, expected %d", len(numeric.Values), rows)
	}
	if categoricalWidth > 0 && len(categorical.Values) != rows {
		return nil, fmt.Errorf("categorical block has %d rows, expected %d", len(categorical.Values), rows)
	}

	names := make([]string, 0, 1+numericWidth+categoricalWidth)
	names = append(names, InterceptName)
	if numericWidth > 0 {
		names = append(names, numeric.Names...)
	}
	if categoricalWidth > 0 {
		names = append(names, categorical.Names...)
	}

	one := decimal.NewFromInt(1)
	values := make([][]decimal.Decimal, rows)
	for i := 0; i < rows; i++ {
		row := make([]decimal.Decimal, 0, len(names))
		row = append(row, one)
		if numericWidth > 0 {
			row = append(row, numeric.Values[i]...)
		}
		if categoricalWidth > 0 {
			row = append(row, categorical.Values[i]...)
		}
		values[i] = row
	}

	return &Matrix{Values: values, Names: names}, nil
}

func blockWidth(b *Block) int {
	if b == nil {
		return 0
	}
	return len(b.Names)
}
