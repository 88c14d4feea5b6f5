package models_test

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csvlogit/internal/evaluation"
	"csvlogit/internal/models"
)

func TestSigmoid_ZeroIsHalf(t *testing.T) {
	assert.Equal(t, 0.5, models.Sigmoid(0))
}

func TestSigmoid_MonotonicAndBounded(t *testing.T) {
	// Stay inside the range where float64 can still distinguish the
	// activation from 0 and 1.
	prev := models.Sigmoid(-31)
	for z := -30.0; z <= 30; z++ {
		cur := models.Sigmoid(z)
		assert.Greater(t, cur, prev, "sigmoid must increase at z=%v", z)
		assert.Greater(t, cur, 0.0)
		assert.Less(t, cur, 1.0)
		prev = cur
	}
}

func TestCost_KnownValue(t *testing.T) {
	X := [][]float64{{0, 1}, {4, 5}}
	y := []float64{0, 1}
	w := []float64{2, 2}

	cost, err := models.Cost(X, y, w)
	require.NoError(t, err)
	assert.InDelta(t, 1.0634640131364754, cost, 1e-9)
}

func TestCost_DimensionMismatch(t *testing.T) {
	_, err := models.Cost([][]float64{{1, 2}}, []float64{0, 1}, []float64{1, 1})
	assert.Error(t, err)

	_, err = models.Cost([][]float64{{1, 2}}, []float64{0}, []float64{1})
	assert.Error(t, err)

	_, err = models.Cost(nil, nil, nil)
	assert.Error(t, err)
}

func TestUpdate_DoesNotMutateInput(t *testing.T) {
	X := [][]float64{{1, 0}, {1, 1}}
	y := []float64{0, 1}
	w := []float64{1, 1}

	next, err := models.Update(X, y, w, 0.1)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 1}, w)
	assert.NotEqual(t, w, next)
}

func TestUpdate_StepReducesCost(t *testing.T) {
	X := [][]float64{{1, 0}, {1, 0.2}, {1, 0.8}, {1, 1}}
	y := []float64{0, 0, 1, 1}
	w := []float64{1, 1}

	before, err := models.Cost(X, y, w)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		w, err = models.Update(X, y, w, 0.1)
		require.NoError(t, err)
	}

	after, err := models.Cost(X, y, w)
	require.NoError(t, err)
	assert.Less(t, after, before)
}

func TestUpdate_DimensionMismatch(t *testing.T) {
	_, err := models.Update([][]float64{{1, 2}}, []float64{0}, []float64{1}, 0.1)
	assert.Error(t, err)

	_, err = models.Update([][]float64{{1}}, []float64{0, 1}, []float64{1}, 0.1)
	assert.Error(t, err)
}

// separableData builds an intercept-plus-one-feature matrix where the
// label is decided by whether the feature is above 0.5.
func separableData(n int, seed int64) ([][]decimal.Decimal, []int) {
	rng := rand.New(rand.NewSource(seed))
	X := make([][]decimal.Decimal, n)
	y := make([]int, n)
	for i := 0; i < n; i++ {
		v := rng.Float64()
		X[i] = []decimal.Decimal{decimal.NewFromInt(1), decimal.NewFromFloat(v)}
		if v > 0.5 {
			y[i] = 1
		}
	}
	return X, y
}

func TestLogisticRegression_FitSeparableData(t *testing.T) {
	X, y := separableData(200, 7)

	model := models.NewLogisticRegression(0.01, 2000, 200)

	var costs []float64
	var accuracies []float64
	model.OnReport = func(iteration int, cost float64, weights []float64) {
		costs = append(costs, cost)
		accuracy, err := evaluation.Accuracy(weights, X, y)
		require.NoError(t, err)
		accuracies = append(accuracies, accuracy)
	}

	require.NoError(t, model.Fit(X, y))
	require.Len(t, model.Weights, 2)

	// Cost shrinks over the run and accuracy improves on average: compare
	// the mean of the later reporting intervals against the earlier ones.
	require.GreaterOrEqual(t, len(costs), 4)
	assert.Less(t, costs[len(costs)-1], costs[0])

	half := len(accuracies) / 2
	assert.GreaterOrEqual(t, mean(accuracies[half:]), mean(accuracies[:half]))

	final, err := evaluation.Accuracy(model.Weights, X, y)
	require.NoError(t, err)
	assert.Greater(t, final, 0.85)
}

func TestLogisticRegression_PredictThreshold(t *testing.T) {
	X, y := separableData(200, 11)
	model := models.NewLogisticRegression(0.01, 2000, 0)
	require.NoError(t, model.Fit(X, y))

	preds := model.Predict(X)
	proba := model.PredictProba(X)
	require.Len(t, preds, len(X))

	for i, p := range proba {
		f, _ := p.Float64()
		if f >= models.DecisionThreshold {
			assert.Equal(t, 1, preds[i])
		} else {
			assert.Equal(t, 0, preds[i])
		}
	}
}

func TestLogisticRegression_FitErrors(t *testing.T) {
	model := models.NewLogisticRegression(0.1, 10, 0)

	assert.Error(t, model.Fit(nil, nil))

	X := [][]decimal.Decimal{{decimal.NewFromInt(1)}}
	assert.Error(t, model.Fit(X, []int{0, 1}))

	ragged := [][]decimal.Decimal{
		{decimal.NewFromInt(1), decimal.NewFromInt(2)},
		{decimal.NewFromInt(1)},
	}
	assert.Error(t, model.Fit(ragged, []int{0, 1}))
}

func TestLogisticRegression_ResetClearsWeights(t *testing.T) {
	X, y := separableData(50, 3)
	model := models.NewLogisticRegression(0.01, 100, 0)
	require.NoError(t, model.Fit(X, y))
	require.NotNil(t, model.Weights)

	model.Reset()
	assert.Nil(t, model.Weights)
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
