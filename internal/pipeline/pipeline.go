package pipeline

import (
	"fmt"

	"github.com/shopspring/decimal"

	"csvlogit/internal/data"
)

// Pipeline turns a raw text table into a numeric design matrix: column
// type classification, max scaling of the numeric columns, one-hot
// expansion of the categorical ones, then assembly with an intercept.
//
// A fitted pipeline keeps the scaling maxima and category tables so new
// rows can be transformed with the exact same layout the model was
// trained on.
type Pipeline struct {
	NumericColumns     []int
	CategoricalColumns []int
	ColumnCount        int
	Scaler             *MaxScaler
	Encoder            *OneHotEncoder
	Names              []string
	IsFitted           bool
}

func New() *Pipeline {
	return &Pipeline{
		Scaler:  NewMaxScaler(),
		Encoder: NewOneHotEncoder(),
	}
}

// FitTransform classifies columns from the first data row, builds both
// blocks and assembles the design matrix.
func (p *Pipeline) FitTransform(t *data.Table) (*Matrix, error) {
	if len(t.Rows) == 0 {
		return nil, fmt.Errorf("table has no data rows")
	}

	p.ColumnCount = len(t.Headers)
	p.NumericColumns, p.CategoricalColumns = ClassifyColumns(t.Rows[0])

	var numericBlock, categoricalBlock *Block
	var err error

	if len(p.NumericColumns) > 0 {
		numericBlock, err = p.Scaler.FitTransform(t, p.NumericColumns)
		if err != nil {
			return nil, fmt.Errorf("scaling failed: %w", err)
		}
	}

	if len(p.CategoricalColumns) > 0 {
		categoricalBlock, err = p.Encoder.FitTransform(t, p.CategoricalColumns)
		if err != nil {
			return nil, fmt.Errorf("encoding failed: %w", err)
		}
	}

	matrix, err := Assemble(numericBlock, categoricalBlock, len(t.Rows))
	if err != nil {
		return nil, err
	}

	p.Names = matrix.Names
	p.IsFitted = true
	return matrix, nil
}

// Transform maps one raw row into design-matrix layout using the fitted
// maxima and category tables.
func (p *Pipeline) Transform(fields []string) ([]decimal.Decimal, error) {
	if !p.IsFitted {
		return nil, fmt.Errorf("pipeline must be fitted before transform")
	}
	if len(fields) != p.ColumnCount {
		return nil, fmt.Errorf("row has %d fields, expected %d", len(fields), p.ColumnCount)
	}

	row := make([]decimal.Decimal, 0, len(p.Names))
	row = append(row, decimal.NewFromInt(1))

	if len(p.NumericColumns) > 0 {
		scaled, err := p.Scaler.Transform(fields)
		if err != nil {
			return nil, err
		}
		row = append(row, scaled...)
	}

	if len(p.CategoricalColumns) > 0 {
		indicators, err := p.Encoder.Transform(fields)
		if err != nil {
			return nil, err
		}
		row = append(row, indicators...)
	}

	return row, nil
}

// ColumnNames returns the assembled column-name sequence, intercept first.
func (p *Pipeline) ColumnNames() []string {
	return p.Names
}
