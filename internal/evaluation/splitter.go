package evaluation

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// TrainTestSplitter splits a design matrix into train and test partitions
// by a train fraction, optionally shuffling with a fixed seed so a run can
// be reproduced.
type TrainTestSplitter struct {
	trainFraction float64
	randomSeed    int64
	shuffle       bool
}

func NewTrainTestSplitter(trainFraction float64, randomSeed int64, shuffle bool) *TrainTestSplitter {
	return &TrainTestSplitter{
		trainFraction: trainFraction,
		randomSeed:    randomSeed,
		shuffle:       shuffle,
	}
}

func DefaultTrainTestSplitter() *TrainTestSplitter {
	return NewTrainTestSplitter(0.7, time.Now().UnixNano(), true)
}

func (tts *TrainTestSplitter) Split(X [][]decimal.Decimal, y []int) ([][]decimal.Decimal, [][]decimal.Decimal, []int, []int, error) {
	if len(X) != len(y) {
		return nil, nil, nil, nil, fmt.Errorf("x and y must have the same length")
	}

	if len(X) == 0 {
		return nil, nil, nil, nil, fmt.Errorf("cannot split empty dataset")
	}

	if tts.trainFraction <= 0 || tts.trainFraction >= 1 {
		return nil, nil, nil, nil, fmt.Errorf("train fraction must be between 0 and 1")
	}

	n := len(X)
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	if tts.shuffle {
		rng := rand.New(rand.NewSource(tts.randomSeed))
		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	trainCount := int(float64(n) * tts.trainFraction)
	testCount := n - trainCount

	XTrain := make([][]decimal.Decimal, trainCount)
	XTest := make([][]decimal.Decimal, testCount)
	yTrain := make([]int, trainCount)
	yTest := make([]int, testCount)

	for i := 0; i < trainCount; i++ {
		idx := indices[i]
		XTrain[i] = make([]decimal.Decimal, len(X[idx]))
		copy(XTrain[i], X[idx])
		yTrain[i] = y[idx]
	}

	for i := 0; i < testCount; i++ {
		idx := indices[trainCount+i]
		XTest[i] = make([]decimal.Decimal, len(X[idx]))
		copy(XTest[i], X[idx])
		yTest[i] = y[idx]
	}

	return XTrain, XTest, yTrain, yTest, nil
}
