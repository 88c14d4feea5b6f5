package evaluation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialMatrix(n int) ([][]decimal.Decimal, []int) {
	X := make([][]decimal.Decimal, n)
	y := make([]int, n)
	for i := 0; i < n; i++ {
		X[i] = []decimal.Decimal{decimal.NewFromInt(int64(i))}
		y[i] = i % 2
	}
	return X, y
}

func TestSplit_Sizes(t *testing.T) {
	X, y := sequentialMatrix(10)

	splitter := NewTrainTestSplitter(0.7, 42, true)
	XTrain, XTest, yTrain, yTest, err := splitter.Split(X, y)
	require.NoError(t, err)

	assert.Len(t, XTrain, 7)
	assert.Len(t, XTest, 3)
	assert.Len(t, yTrain, 7)
	assert.Len(t, yTest, 3)
}

func TestSplit_SeedIsReproducible(t *testing.T) {
	X, y := sequentialMatrix(20)

	first, _, firstY, _, err := NewTrainTestSplitter(0.5, 7, true).Split(X, y)
	require.NoError(t, err)
	second, _, secondY, _, err := NewTrainTestSplitter(0.5, 7, true).Split(X, y)
	require.NoError(t, err)

	assert.Equal(t, firstY, secondY)
	for i := range first {
		assert.True(t, first[i][0].Equal(second[i][0]))
	}
}

func TestSplit_NoShuffleKeepsOrder(t *testing.T) {
	X, y := sequentialMatrix(4)

	XTrain, XTest, _, _, err := NewTrainTestSplitter(0.5, 0, false).Split(X, y)
	require.NoError(t, err)

	assert.True(t, XTrain[0][0].Equal(decimal.NewFromInt(0)))
	assert.True(t, XTrain[1][0].Equal(decimal.NewFromInt(1)))
	assert.True(t, XTest[0][0].Equal(decimal.NewFromInt(2)))
	assert.True(t, XTest[1][0].Equal(decimal.NewFromInt(3)))
}

func TestSplit_Errors(t *testing.T) {
	X, y := sequentialMatrix(4)

	_, _, _, _, err := NewTrainTestSplitter(0.0, 1, true).Split(X, y)
	assert.Error(t, err)

	_, _, _, _, err = NewTrainTestSplitter(1.0, 1, true).Split(X, y)
	assert.Error(t, err)

	_, _, _, _, err = NewTrainTestSplitter(0.5, 1, true).Split(X, y[:2])
	assert.Error(t, err)

	_, _, _, _, err = NewTrainTestSplitter(0.5, 1, true).Split(nil, nil)
	assert.Error(t, err)
}
