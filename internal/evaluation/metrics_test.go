package evaluation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weightedRows(values []float64) [][]decimal.Decimal {
	X := make([][]decimal.Decimal, len(values))
	for i, v := range values {
		X[i] = []decimal.Decimal{decimal.NewFromFloat(v)}
	}
	return X
}

func TestPredictions_Threshold(t *testing.T) {
	// Single weight of 2: activation is sigmoid(2x).
	X := weightedRows([]float64{-1, 0, 1})

	preds, err := Predictions([]float64{2}, X)
	require.NoError(t, err)

	// sigmoid(-2) < 0.5 -> 0; sigmoid(0) == 0.5 is class 1 by contract.
	assert.Equal(t, []int{0, 1, 1}, preds)
}

func TestPredictions_DimensionMismatch(t *testing.T) {
	X := [][]decimal.Decimal{{decimal.NewFromInt(1), decimal.NewFromInt(2)}}
	_, err := Predictions([]float64{1}, X)
	assert.Error(t, err)
}

func TestAccuracy(t *testing.T) {
	X := weightedRows([]float64{-3, -2, 2, 3})
	y := []int{0, 0, 1, 1}

	accuracy, err := Accuracy([]float64{1}, X, y)
	require.NoError(t, err)
	assert.Equal(t, 1.0, accuracy)

	flipped := []int{1, 1, 0, 0}
	accuracy, err = Accuracy([]float64{1}, X, flipped)
	require.NoError(t, err)
	assert.Equal(t, 0.0, accuracy)

	mixed := []int{0, 1, 1, 0}
	accuracy, err = Accuracy([]float64{1}, X, mixed)
	require.NoError(t, err)
	assert.Equal(t, 0.5, accuracy)
}

func TestAccuracy_Errors(t *testing.T) {
	_, err := Accuracy([]float64{1}, nil, nil)
	assert.Error(t, err)

	X := weightedRows([]float64{1})
	_, err = Accuracy([]float64{1}, X, []int{0, 1})
	assert.Error(t, err)
}

func TestCalculateBinaryMetrics(t *testing.T) {
	yTrue := []int{1, 1, 0, 0, 1, 0}
	yPred := []int{1, 0, 0, 1, 1, 0}

	m, err := CalculateBinaryMetrics(yTrue, yPred)
	require.NoError(t, err)

	assert.Equal(t, 2, m.TruePositives)
	assert.Equal(t, 1, m.FalsePositives)
	assert.Equal(t, 2, m.TrueNegatives)
	assert.Equal(t, 1, m.FalseNegatives)

	assert.InDelta(t, 4.0/6.0, m.Accuracy, 1e-12)
	assert.InDelta(t, 2.0/3.0, m.Precision, 1e-12)
	assert.InDelta(t, 2.0/3.0, m.Recall, 1e-12)
	assert.InDelta(t, 2.0/3.0, m.F1Score, 1e-12)
}

func TestCalculateBinaryMetrics_DegenerateDenominators(t *testing.T) {
	// No positive predictions at all: precision and recall fall back to 0
	// instead of dividing by zero.
	m, err := CalculateBinaryMetrics([]int{1, 1}, []int{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.Precision)
	assert.Equal(t, 0.0, m.Recall)
	assert.Equal(t, 0.0, m.F1Score)
}

func TestCalculateBinaryMetrics_Errors(t *testing.T) {
	_, err := CalculateBinaryMetrics([]int{1}, []int{1, 0})
	assert.Error(t, err)

	_, err = CalculateBinaryMetrics(nil, nil)
	assert.Error(t, err)
}
