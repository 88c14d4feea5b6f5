package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"csvlogit/internal/data"
	"csvlogit/internal/evaluation"
	"csvlogit/internal/experiment"
	"csvlogit/internal/models"
	"csvlogit/internal/persistence"
	"csvlogit/internal/pipeline"
)

func main() {
	dataFile := flag.String("data", "", "Path to training data CSV file")
	labelColumn := flag.String("label", "", "Label column name (default: last column)")
	learningRate := flag.Float64("rate", 0.001, "Gradient descent step size")
	iterations := flag.Int("iterations", 500, "Number of training iterations")
	reportEvery := flag.Int("report", 100, "Report cost every N iterations (0 disables)")
	trainFraction := flag.Float64("train-frac", 0.7, "Fraction of rows used for training")
	seed := flag.Int64("seed", 0, "Shuffle seed (0 uses current time)")
	outputDir := flag.String("output", "models", "Output directory for trained models")
	runExp := flag.Bool("experiment", false, "Run a full sweep from the config file")
	configFile := flag.String("config", "config/config.yaml", "Path to experiment configuration")

	flag.Parse()

	if *dataFile == "" {
		fmt.Println("Usage:")
		fmt.Println("  Single run: go run cmd/train/main.go -data data/churn.csv -rate 0.001 -iterations 500")
		fmt.Println("  Sweep:      go run cmd/train/main.go -experiment -config config/config.yaml -data data/churn.csv")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *runExp {
		runExperiment(*configFile, *dataFile, *labelColumn, *outputDir)
	} else {
		runSingleTraining(*dataFile, *labelColumn, *learningRate, *iterations, *reportEvery, *trainFraction, *seed, *outputDir)
	}
}

func runExperiment(configFile, dataFile, labelColumn, outputDir string) {
	fmt.Println("Running experiment sweep...")

	runner := experiment.NewRunner(configFile)
	results, err := runner.RunAllExperiments(dataFile, labelColumn)
	if err != nil {
		log.Fatalf("Experiment failed: %v", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	expDir := filepath.Join(outputDir, fmt.Sprintf("experiment_%s", timestamp))
	os.MkdirAll(expDir, 0755)

	resultsFile := filepath.Join(expDir, "experiment_results.csv")
	if err := runner.ExportResults(results, resultsFile); err != nil {
		log.Printf("Failed to export results: %v", err)
	} else {
		fmt.Printf("Experiment results saved to: %s\n", resultsFile)
	}

	fmt.Printf("\nExperiment Summary:\n")
	fmt.Printf("Total runs: %d\n", len(results))

	if len(results) > 0 {
		best := results[0]
		for _, result := range results[1:] {
			if result.Accuracy > best.Accuracy {
				best = result
			}
		}
		fmt.Printf("Best accuracy: %.4f (rate=%g, iterations=%d, split=%.2f)\n",
			best.Accuracy, best.LearningRate, best.Iterations, best.TrainFraction)
	}
}

func runSingleTraining(dataFile, labelColumn string, learningRate float64, iterations, reportEvery int, trainFraction float64, seed int64, outputDir string) {
	fmt.Printf("Training logistic regression on %s...\n", dataFile)

	fmt.Println("Loading dataset...")
	table, err := data.LoadTable(dataFile)
	if err != nil {
		log.Fatalf("Failed to load data: %v", err)
	}

	rows, columns := table.Dimensions()
	fmt.Printf("Loaded %d rows with %d columns\n", rows, columns)

	features, rawLabels, err := table.SplitLabel(labelColumn)
	if err != nil {
		log.Fatalf("Failed to split label column: %v", err)
	}

	fmt.Println("Building design matrix...")
	p := pipeline.New()
	matrix, err := p.FitTransform(features)
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	encoder := pipeline.NewLabelEncoder()
	y, err := encoder.FitTransform(rawLabels)
	if err != nil {
		log.Fatalf("Label encoding failed: %v", err)
	}

	_, featureCount := matrix.Dimensions()
	fmt.Printf("Design matrix has %d columns (%d numeric, %d one-hot, plus intercept)\n",
		featureCount, len(p.NumericColumns), featureCount-len(p.NumericColumns)-1)

	validator := data.NewDataValidator()
	if err := validator.ValidateTrainingInputs(matrix.Values, y); err != nil {
		log.Fatalf("Data validation failed: %v", err)
	}
	if err := validator.ValidateBinaryLabels(y); err != nil {
		log.Fatalf("Label validation failed: %v", err)
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	fmt.Printf("Splitting data (train fraction: %.0f%%)...\n", trainFraction*100)
	splitter := evaluation.NewTrainTestSplitter(trainFraction, seed, true)
	XTrain, XTest, yTrain, yTest, err := splitter.Split(matrix.Values, y)
	if err != nil {
		log.Fatalf("Failed to split data: %v", err)
	}

	model := models.NewLogisticRegression(learningRate, iterations, reportEvery)
	model.OnReport = func(iteration int, cost float64, weights []float64) {
		accuracy, err := evaluation.Accuracy(weights, XTest, yTest)
		if err != nil {
			fmt.Printf("iteration %4d: cost %.6f\n", iteration, cost)
			return
		}
		fmt.Printf("iteration %4d: cost %.6f, test accuracy %.4f\n", iteration, cost, accuracy)
	}

	fmt.Println("Training...")
	startTime := time.Now()
	if err := model.Fit(XTrain, yTrain); err != nil {
		log.Fatalf("Training failed: %v", err)
	}
	trainingTime := time.Since(startTime)

	fmt.Println("Evaluating model...")
	predictions := model.Predict(XTest)
	metrics, err := evaluation.CalculateBinaryMetrics(yTest, predictions)
	if err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}

	fmt.Printf("\nTraining Results:\n")
	fmt.Printf("Training time: %v\n", trainingTime)
	fmt.Print(metrics.FormatMetrics())

	fmt.Println("Saving model...")
	os.MkdirAll(outputDir, 0755)
	timestamp := time.Now().Format("20060102_150405")
	base := filepath.Base(dataFile)
	if ext := filepath.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	modelPath := filepath.Join(outputDir, fmt.Sprintf("logistic_%s_%s.model", base, timestamp))

	bundle := persistence.NewModelBundle(model.Weights, p, encoder)
	bundle.Metadata.Dataset = dataFile
	bundle.Metadata.LabelColumn = labelColumn
	bundle.Metadata.LearningRate = learningRate
	bundle.Metadata.Iterations = iterations
	bundle.Metadata.Accuracy = metrics.Accuracy
	bundle.Metadata.Precision = metrics.Precision
	bundle.Metadata.Recall = metrics.Recall
	bundle.Metadata.F1Score = metrics.F1Score
	bundle.Metadata.TrainingTime = trainingTime

	if err := bundle.Save(modelPath); err != nil {
		log.Printf("Failed to save model: %v", err)
	} else {
		fmt.Printf("Model saved to: %s\n", modelPath)
	}

	fmt.Println("\nTraining completed successfully!")
}
