package models

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// DecisionThreshold separates predicted class 0 from class 1 after the
// sigmoid activation.
const DecisionThreshold = 0.5

// Sigmoid is the logistic activation 1 / (1 + e^-z).
func Sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

// Cost is the average cross-entropy of the activations sigmoid(X·w)
// against y. Activations are not clamped, so a fully saturated prediction
// on the wrong side drives the cost to +Inf; iteration counts bound the
// loop, not the cost value.
func Cost(X [][]float64, y, w []float64) (float64, error) {
	m := len(X)
	if m == 0 {
		return 0, fmt.Errorf("cost: empty design matrix")
	}
	if len(y) != m {
		return 0, fmt.Errorf("cost: %d rows but %d labels", m, len(y))
	}

	sum := 0.0
	for i, row := range X {
		if len(row) != len(w) {
			return 0, fmt.Errorf("cost: row %d has %d features but weight vector has %d", i, len(row), len(w))
		}
		h := Sigmoid(dot(row, w))
		sum += y[i]*math.Log(h) + (1-y[i])*math.Log(1-h)
	}

	return -sum / float64(m), nil
}

// Update returns a new weight vector w - rate * Xᵗ(sigmoid(X·w) - y),
// one batch gradient step. The input vector is never mutated; each
// iteration works on a fresh copy.
func Update(X [][]float64, y, w []float64, rate float64) ([]float64, error) {
	if len(X) == 0 {
		return nil, fmt.Errorf("update: empty design matrix")
	}
	if len(y) != len(X) {
		return nil, fmt.Errorf("update: %d rows but %d labels", len(X), len(y))
	}

	gradient := make([]float64, len(w))
	for i, row := range X {
		if len(row) != len(w) {
			return nil, fmt.Errorf("update: row %d has %d features but weight vector has %d", i, len(row), len(w))
		}
		d := Sigmoid(dot(row, w)) - y[i]
		for j, xij := range row {
			gradient[j] += d * xij
		}
	}

	next := make([]float64, len(w))
	for j := range w {
		next[j] = w[j] - rate*gradient[j]
	}

	return next, nil
}

func dot(row, w []float64) float64 {
	sum := 0.0
	for j, v := range row {
		sum += w[j] * v
	}
	return sum
}

// LogisticRegression trains by batch gradient descent for a fixed number
// of iterations. There is no convergence check and no regularization.
type LogisticRegression struct {
	BaseModel
	LearningRate float64
	Iterations   int
	ReportEvery  int
	Weights      []float64

	// OnReport, when set, observes the cost every ReportEvery iterations
	// together with that iteration's weight vector. Update never writes
	// to a vector it has handed out, so the callback may keep it.
	OnReport func(iteration int, cost float64, weights []float64)
}

func NewLogisticRegression(learningRate float64, iterations, reportEvery int) *LogisticRegression {
	return &LogisticRegression{
		LearningRate: learningRate,
		Iterations:   iterations,
		ReportEvery:  reportEvery,
		BaseModel: BaseModel{
			Name: "LogisticRegression",
			Params: map[string]any{
				"learning_rate": learningRate,
				"iterations":    iterations,
			},
		},
	}
}

// Fit initializes every weight to 1.0 and runs the fixed-iteration loop.
// Each iteration replaces the weight vector with the one Update returns,
// so readers of Weights between iterations always see a consistent
// snapshot.
func (m *LogisticRegression) Fit(X [][]decimal.Decimal, y []int) error {
	if len(X) == 0 {
		return fmt.Errorf("cannot fit on an empty dataset")
	}
	if len(X) != len(y) {
		return fmt.Errorf("design matrix and labels have different lengths: %d vs %d", len(X), len(y))
	}

	features, err := toFloatMatrix(X)
	if err != nil {
		return err
	}
	labels := make([]float64, len(y))
	for i, label := range y {
		labels[i] = float64(label)
	}

	weights := make([]float64, len(features[0]))
	for j := range weights {
		weights[j] = 1.0
	}

	for i := 0; i < m.Iterations; i++ {
		if m.OnReport != nil && m.ReportEvery > 0 && i%m.ReportEvery == 0 {
			cost, err := Cost(features, labels, weights)
			if err != nil {
				return err
			}
			m.OnReport(i, cost, weights)
		}

		weights, err = Update(features, labels, weights, m.LearningRate)
		if err != nil {
			return err
		}
	}

	m.Weights = weights
	return nil
}

func (m *LogisticRegression) Predict(X [][]decimal.Decimal) []int {
	proba := m.PredictProba(X)
	out := make([]int, len(proba))
	for i, p := range proba {
		f, _ := p.Float64()
		if f >= DecisionThreshold {
			out[i] = 1
		}
	}
	return out
}

func (m *LogisticRegression) PredictProba(X [][]decimal.Decimal) []decimal.Decimal {
	proba := make([]decimal.Decimal, len(X))
	for i, sample := range X {
		sum := 0.0
		for j, v := range sample {
			f, _ := v.Float64()
			sum += m.Weights[j] * f
		}
		proba[i] = decimal.NewFromFloat(Sigmoid(sum))
	}
	return proba
}

func (m *LogisticRegression) Reset() {
	m.Weights = nil
}

func toFloatMatrix(X [][]decimal.Decimal) ([][]float64, error) {
	width := len(X[0])
	out := make([][]float64, len(X))
	for i, sample := range X {
		if len(sample) != width {
			return nil, fmt.Errorf("inconsistent feature count at sample %d: expected %d, got %d", i, width, len(sample))
		}
		row := make([]float64, width)
		for j, v := range sample {
			row[j], _ = v.Float64()
		}
		out[i] = row
	}
	return out, nil
}
