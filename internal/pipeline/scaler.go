package pipeline

import (
	"fmt"

	"github.com/shopspring/decimal"

	"csvlogit/internal/data"
)

// Block is a dense column group produced by one pipeline stage, with a
// parallel name per column.
type Block struct {
	Values [][]decimal.Decimal
	Names  []string
}

// MaxScaler parses the numeric columns of a raw table and divides each
// column by its own maximum, so the largest entry becomes exactly 1.
//
// The divide-by-max rule is kept literal: a negative maximum flips signs
// and can push magnitudes past 1. A zero maximum cannot be divided at all
// and is reported as an error.
type MaxScaler struct {
	Columns  []int
	Names    []string
	Maxima   []decimal.Decimal
	IsFitted bool
}

func NewMaxScaler() *MaxScaler {
	return &MaxScaler{}
}

// FitTransform parses every value of the given numeric columns, records
// the per-column maxima and returns the scaled block. Column order follows
// the columns argument.
func (s *MaxScaler) FitTransform(t *data.Table, columns []int) (*Block, error) {
	s.Columns = columns
	s.Names = make([]string, len(columns))
	s.Maxima = make([]decimal.Decimal, len(columns))

	nRows := len(t.Rows)
	parsed := make([][]decimal.Decimal, len(columns))

	for k, col := range columns {
		s.Names[k] = t.Headers[col]
		parsed[k] = make([]decimal.Decimal, nRows)

		for i, row := range t.Rows {
			val, err := decimal.NewFromString(row[col])
			if err != nil {
				return nil, fmt.Errorf("column %q: cannot parse %q as a number at row %d", t.Headers[col], row[col], i+1)
			}
			parsed[k][i] = val
		}

		max := parsed[k][0]
		for _, v := range parsed[k][1:] {
			if v.GreaterThan(max) {
				max = v
			}
		}
		if max.IsZero() {
			return nil, fmt.Errorf("column %q: maximum is zero, cannot scale", t.Headers[col])
		}
		s.Maxima[k] = max
	}

	block := &Block{
		Values: make([][]decimal.Decimal, nRows),
		Names:  s.Names,
	}
	for i := 0; i < nRows; i++ {
		block.Values[i] = make([]decimal.Decimal, len(columns))
		for k := range columns {
			block.Values[i][k] = parsed[k][i].Div(s.Maxima[k])
		}
	}

	s.IsFitted = true
	return block, nil
}

// Transform scales a single raw row using the maxima recorded by
// FitTransform. Values above the first-seen maximum scale past 1.
func (s *MaxScaler) Transform(fields []string) ([]decimal.Decimal, error) {
	if !s.IsFitted {
		return nil, fmt.Errorf("scaler must be fitted before transform")
	}

	out := make([]decimal.Decimal, len(s.Columns))
	for k, col := range s.Columns {
		val, err := decimal.NewFromString(fields[col])
		if err != nil {
			return nil, fmt.Errorf("column %q: cannot parse %q as a number", s.Names[k], fields[col])
		}
		out[k] = val.Div(s.Maxima[k])
	}

	return out, nil
}
