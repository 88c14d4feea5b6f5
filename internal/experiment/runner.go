package experiment

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"csvlogit/internal/data"
	"csvlogit/internal/evaluation"
	"csvlogit/internal/models"
	"csvlogit/internal/pipeline"
)

type ExperimentRunner struct {
	Config *ExperimentConfig
}

type ExperimentConfig struct {
	Experiment struct {
		TrainFractions []float64 `yaml:"train_fractions"`
		LearningRates  []float64 `yaml:"learning_rates"`
		Iterations     []int     `yaml:"iterations"`
		ReportEvery    int       `yaml:"report_every"`
		Seed           int64     `yaml:"seed"`
	} `yaml:"experiment"`
}

func NewRunner(configFile string) *ExperimentRunner {
	config := &ExperimentConfig{}

	raw, err := os.ReadFile(configFile)
	if err == nil {
		if err := yaml.Unmarshal(raw, config); err != nil {
			log.Printf("experiment config %s is malformed, falling back to defaults: %v", configFile, err)
			config = &ExperimentConfig{}
		}
	}

	if len(config.Experiment.TrainFractions) == 0 {
		config.Experiment.TrainFractions = []float64{0.7}
	}
	if len(config.Experiment.LearningRates) == 0 {
		config.Experiment.LearningRates = []float64{0.001}
	}
	if len(config.Experiment.Iterations) == 0 {
		config.Experiment.Iterations = []int{500}
	}
	if config.Experiment.ReportEvery == 0 {
		config.Experiment.ReportEvery = 100
	}
	if config.Experiment.Seed == 0 {
		config.Experiment.Seed = 42
	}

	return &ExperimentRunner{Config: config}
}

// RunAllExperiments sweeps every learning-rate / iteration / split
// combination over the same assembled matrix.
func (r *ExperimentRunner) RunAllExperiments(dataFile, labelColumn string) ([]ExperimentResult, error) {
	X, y, err := r.loadData(dataFile, labelColumn)
	if err != nil {
		return nil, err
	}

	var results []ExperimentResult

	for _, fraction := range r.Config.Experiment.TrainFractions {
		for _, rate := range r.Config.Experiment.LearningRates {
			for _, iterations := range r.Config.Experiment.Iterations {
				result, err := r.runOne(X, y, fraction, rate, iterations)
				if err != nil {
					return nil, err
				}
				result.Dataset = dataFile
				results = append(results, result)
			}
		}
	}

	return results, nil
}

func (r *ExperimentRunner) loadData(filename, labelColumn string) ([][]decimal.Decimal, []int, error) {
	table, err := data.LoadTable(filename)
	if err != nil {
		return nil, nil, err
	}

	features, rawLabels, err := table.SplitLabel(labelColumn)
	if err != nil {
		return nil, nil, err
	}

	p := pipeline.New()
	matrix, err := p.FitTransform(features)
	if err != nil {
		return nil, nil, err
	}

	encoder := pipeline.NewLabelEncoder()
	y, err := encoder.FitTransform(rawLabels)
	if err != nil {
		return nil, nil, err
	}

	return matrix.Values, y, nil
}

func (r *ExperimentRunner) runOne(X [][]decimal.Decimal, y []int, fraction, rate float64, iterations int) (ExperimentResult, error) {
	result := ExperimentResult{
		TrainFraction: fraction,
		LearningRate:  rate,
		Iterations:    iterations,
	}

	splitter := evaluation.NewTrainTestSplitter(fraction, r.Config.Experiment.Seed, true)
	XTrain, XTest, yTrain, yTest, err := splitter.Split(X, y)
	if err != nil {
		return result, err
	}

	model := models.NewLogisticRegression(rate, iterations, r.Config.Experiment.ReportEvery)

	startTime := time.Now()
	if err := model.Fit(XTrain, yTrain); err != nil {
		return result, err
	}
	result.TrainingTimeMs = time.Since(startTime).Milliseconds()

	// Cost after the last update, not the last reporting interval.
	finalCost, err := models.Cost(floatMatrix(XTrain), floatLabels(yTrain), model.Weights)
	if err != nil {
		return result, err
	}
	result.FinalCost = finalCost

	predictions := model.Predict(XTest)
	metrics, err := evaluation.CalculateBinaryMetrics(yTest, predictions)
	if err != nil {
		return result, err
	}

	result.Accuracy = metrics.Accuracy
	result.Precision = metrics.Precision
	result.Recall = metrics.Recall
	result.F1Score = metrics.F1Score

	return result, nil
}

func floatMatrix(X [][]decimal.Decimal) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			out[i][j], _ = v.Float64()
		}
	}
	return out
}

func floatLabels(y []int) []float64 {
	out := make([]float64, len(y))
	for i, label := range y {
		out[i] = float64(label)
	}
	return out
}

type ExperimentResult struct {
	Dataset        string
	TrainFraction  float64
	LearningRate   float64
	Iterations     int
	Accuracy       float64
	Precision      float64
	Recall         float64
	F1Score        float64
	FinalCost      float64
	TrainingTimeMs int64
}

func (r *ExperimentRunner) ExportResults(results []ExperimentResult, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write([]string{
		"Dataset", "TrainFraction", "LearningRate", "Iterations",
		"Accuracy", "Precision", "Recall", "F1Score", "FinalCost", "TrainingTimeMs",
	})

	for _, result := range results {
		writer.Write([]string{
			result.Dataset,
			fmt.Sprintf("%.2f", result.TrainFraction),
			fmt.Sprintf("%g", result.LearningRate),
			fmt.Sprintf("%d", result.Iterations),
			fmt.Sprintf("%.4f", result.Accuracy),
			fmt.Sprintf("%.4f", result.Precision),
			fmt.Sprintf("%.4f", result.Recall),
			fmt.Sprintf("%.4f", result.F1Score),
			fmt.Sprintf("%.6f", result.FinalCost),
			fmt.Sprintf("%d", result.TrainingTimeMs),
		})
	}

	return nil
}
