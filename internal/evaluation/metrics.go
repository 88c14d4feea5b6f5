package evaluation

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"csvlogit/internal/models"
)

// Predictions applies the trained weights to every row and thresholds the
// sigmoid activation at 0.5 (>= 0.5 means class 1).
func Predictions(weights []float64, X [][]decimal.Decimal) ([]int, error) {
	preds := make([]int, len(X))
	for i, row := range X {
		if len(row) != len(weights) {
			return nil, fmt.Errorf("row %d has %d features but weight vector has %d", i, len(row), len(weights))
		}
		sum := 0.0
		for j, v := range row {
			f, _ := v.Float64()
			sum += weights[j] * f
		}
		if models.Sigmoid(sum) >= models.DecisionThreshold {
			preds[i] = 1
		}
	}
	return preds, nil
}

// Accuracy is the fraction of rows where the thresholded prediction equals
// the ground truth. Plain accuracy only; compose BinaryMetrics on top when
// precision or recall is needed.
func Accuracy(weights []float64, X [][]decimal.Decimal, y []int) (float64, error) {
	if len(X) == 0 {
		return 0, fmt.Errorf("cannot evaluate an empty dataset")
	}
	if len(X) != len(y) {
		return 0, fmt.Errorf("design matrix and labels have different lengths: %d vs %d", len(X), len(y))
	}

	preds, err := Predictions(weights, X)
	if err != nil {
		return 0, err
	}

	correct := 0
	for i, pred := range preds {
		if pred == y[i] {
			correct++
		}
	}

	return float64(correct) / float64(len(y)), nil
}

// BinaryMetrics is the confusion-count view of a set of binary
// predictions, with class 1 as the positive class.
type BinaryMetrics struct {
	Accuracy    float64 `json:"accuracy"`
	Precision   float64 `json:"precision"`
	Recall      float64 `json:"recall"`
	F1Score     float64 `json:"f1_score"`
	Specificity float64 `json:"specificity"`

	TruePositives  int `json:"true_positives"`
	FalsePositives int `json:"false_positives"`
	TrueNegatives  int `json:"true_negatives"`
	FalseNegatives int `json:"false_negatives"`
	NumSamples     int `json:"num_samples"`
}

func CalculateBinaryMetrics(yTrue, yPred []int) (*BinaryMetrics, error) {
	if len(yTrue) != len(yPred) {
		return nil, fmt.Errorf("label and prediction lengths differ: %d vs %d", len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return nil, fmt.Errorf("no samples to score")
	}

	m := &BinaryMetrics{NumSamples: len(yTrue)}
	for i := range yTrue {
		switch {
		case yTrue[i] == 1 && yPred[i] == 1:
			m.TruePositives++
		case yTrue[i] == 0 && yPred[i] == 1:
			m.FalsePositives++
		case yTrue[i] == 0 && yPred[i] == 0:
			m.TrueNegatives++
		default:
			m.FalseNegatives++
		}
	}

	m.Accuracy = float64(m.TruePositives+m.TrueNegatives) / float64(m.NumSamples)
	m.Precision = safeDivide(float64(m.TruePositives), float64(m.TruePositives+m.FalsePositives))
	m.Recall = safeDivide(float64(m.TruePositives), float64(m.TruePositives+m.FalseNegatives))
	m.F1Score = safeDivide(2*m.Precision*m.Recall, m.Precision+m.Recall)
	m.Specificity = safeDivide(float64(m.TrueNegatives), float64(m.TrueNegatives+m.FalsePositives))

	return m, nil
}

func safeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0.0
	}
	result := numerator / denominator
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0.0
	}
	return result
}

func (m *BinaryMetrics) FormatMetrics() string {
	result := fmt.Sprintf("Accuracy: %.4f\n", m.Accuracy)
	result += fmt.Sprintf("Precision: %.4f, Recall: %.4f, F1: %.4f\n", m.Precision, m.Recall, m.F1Score)
	result += fmt.Sprintf("Confusion: TP=%d FP=%d TN=%d FN=%d\n",
		m.TruePositives, m.FalsePositives, m.TrueNegatives, m.FalseNegatives)
	return result
}
