package data

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matrixFromInts(rows [][]int) [][]decimal.Decimal {
	out := make([][]decimal.Decimal, len(rows))
	for i, row := range rows {
		out[i] = make([]decimal.Decimal, len(row))
		for j, v := range row {
			out[i][j] = decimal.NewFromInt(int64(v))
		}
	}
	return out
}

func TestValidateTrainingInputs(t *testing.T) {
	dv := NewDataValidator()

	X := matrixFromInts([][]int{{1, 2}, {3, 4}})
	require.NoError(t, dv.ValidateTrainingInputs(X, []int{0, 1}))

	assert.Error(t, dv.ValidateTrainingInputs(nil, nil))
	assert.Error(t, dv.ValidateTrainingInputs(X, []int{0}))

	ragged := matrixFromInts([][]int{{1, 2}, {3}})
	assert.Error(t, dv.ValidateTrainingInputs(ragged, []int{0, 1}))
}

func TestValidateBinaryLabels(t *testing.T) {
	dv := NewDataValidator()

	require.NoError(t, dv.ValidateBinaryLabels([]int{0, 1, 1, 0}))

	assert.Error(t, dv.ValidateBinaryLabels(nil))
	assert.Error(t, dv.ValidateBinaryLabels([]int{0, 0, 0}))
	assert.Error(t, dv.ValidateBinaryLabels([]int{0, 1, 2}))
}

func TestBatchProcessor_ChunksEverything(t *testing.T) {
	X := matrixFromInts([][]int{{1}, {2}, {3}, {4}, {5}})
	y := []int{0, 1, 0, 1, 0}

	bp := NewBatchProcessor(2)
	var sizes []int
	total := 0

	err := bp.ProcessBatches(X, y, func(batchX [][]decimal.Decimal, batchY []int) error {
		require.Equal(t, len(batchX), len(batchY))
		sizes = append(sizes, len(batchX))
		total += len(batchX)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []int{2, 2, 1}, sizes)
	assert.Equal(t, 5, total)
}

func TestBatchProcessor_LengthMismatch(t *testing.T) {
	bp := NewBatchProcessor(2)
	err := bp.ProcessBatches(matrixFromInts([][]int{{1}, {2}}), []int{0}, func([][]decimal.Decimal, []int) error {
		return nil
	})
	assert.Error(t, err)
}
