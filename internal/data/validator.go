package data

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type DataValidator struct{}

func NewDataValidator() *DataValidator {
	return &DataValidator{}
}

// ValidateTrainingInputs checks the design matrix / label contract before
// anything is handed to the trainer: same lengths, consistent widths,
// nothing empty.
func (dv *DataValidator) ValidateTrainingInputs(X [][]decimal.Decimal, y []int) error {
	if len(X) == 0 {
		return fmt.Errorf("dataset is empty")
	}

	if len(X) != len(y) {
		return fmt.Errorf("design matrix and labels have different lengths: %d vs %d", len(X), len(y))
	}

	nFeatures := len(X[0])
	if nFeatures == 0 {
		return fmt.Errorf("features cannot be empty")
	}

	for i, sample := range X {
		if len(sample) != nFeatures {
			return fmt.Errorf("inconsistent feature count at sample %d: expected %d, got %d", i, nFeatures, len(sample))
		}
	}

	return nil
}

// ValidateBinaryLabels requires every label to be 0 or 1 and both classes
// to be present.
func (dv *DataValidator) ValidateBinaryLabels(y []int) error {
	if len(y) == 0 {
		return fmt.Errorf("labels are empty")
	}

	classCount := make(map[int]int)
	for i, label := range y {
		if label != 0 && label != 1 {
			return fmt.Errorf("label at sample %d is %d, expected 0 or 1", i, label)
		}
		classCount[label]++
	}

	if len(classCount) < 2 {
		return fmt.Errorf("dataset must have both classes, found %d", len(classCount))
	}

	return nil
}

func (dv *DataValidator) ValidateTrainTestSplit(XTrain, XTest [][]decimal.Decimal, yTrain, yTest []int) error {
	if err := dv.ValidateTrainingInputs(XTrain, yTrain); err != nil {
		return fmt.Errorf("training set validation failed: %v", err)
	}

	if err := dv.ValidateTrainingInputs(XTest, yTest); err != nil {
		return fmt.Errorf("test set validation failed: %v", err)
	}

	if len(XTrain[0]) != len(XTest[0]) {
		return fmt.Errorf("train and test sets have different feature counts: %d vs %d", len(XTrain[0]), len(XTest[0]))
	}

	return nil
}

// GetMatrixStats summarises a design matrix for inspection output.
func (dv *DataValidator) GetMatrixStats(X [][]decimal.Decimal, names []string) map[string]any {
	if len(X) == 0 {
		return map[string]any{}
	}

	stats := make(map[string]any)
	stats["samples"] = len(X)
	stats["features"] = len(X[0])

	nFeatures := len(X[0])
	featureStats := make([]map[string]decimal.Decimal, nFeatures)

	for j := 0; j < nFeatures; j++ {
		values := make([]decimal.Decimal, len(X))
		for i := 0; i < len(X); i++ {
			values[i] = X[i][j]
		}

		featureStats[j] = map[string]decimal.Decimal{
			"min":  findMin(values),
			"max":  findMax(values),
			"mean": calculateMean(values),
		}
	}
	stats["feature_stats"] = featureStats
	stats["feature_names"] = names

	return stats
}

func findMin(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	min := values[0]
	for _, v := range values[1:] {
		if v.LessThan(min) {
			min = v
		}
	}
	return min
}

func findMax(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	max := values[0]
	for _, v := range values[1:] {
		if v.GreaterThan(max) {
			max = v
		}
	}
	return max
}

func calculateMean(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	return sum.Div(decimal.NewFromInt(int64(len(values))))
}
