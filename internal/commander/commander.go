package commander

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"csvlogit/internal/data"
	"csvlogit/internal/evaluation"
	"csvlogit/internal/jobs"
	"csvlogit/internal/models"
	"csvlogit/internal/persistence"
	"csvlogit/internal/pipeline"
)

type Commander struct {
	loadedData *DataSet
	jobManager *jobs.Manager

	// bundle is written by training goroutines and read by the shell
	// loop, so every access goes through setBundle/trainedBundle.
	mu     sync.RWMutex
	bundle *persistence.ModelBundle

	green  func(a ...any) string
	red    func(a ...any) string
	yellow func(a ...any) string
	cyan   func(a ...any) string
}

func (c *Commander) setBundle(bundle *persistence.ModelBundle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bundle = bundle
}

func (c *Commander) trainedBundle() *persistence.ModelBundle {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bundle
}

// DataSet is the commander's working state: the raw feature table plus
// the assembled matrix and encoded labels it was transformed into.
type DataSet struct {
	Table        *data.Table
	Matrix       *pipeline.Matrix
	Pipeline     *pipeline.Pipeline
	LabelEncoder *pipeline.LabelEncoder
	Labels       []int
	LabelColumn  string
	SourceFile   string
}

func NewCommander() *Commander {
	return &Commander{
		jobManager: jobs.NewManager(),
		green:      color.New(color.FgGreen).SprintFunc(),
		red:        color.New(color.FgRed).SprintFunc(),
		yellow:     color.New(color.FgYellow).SprintFunc(),
		cyan:       color.New(color.FgCyan).SprintFunc(),
	}
}

func (c *Commander) Start() {
	c.printWelcome()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(c.yellow("\ncsvlogit> "))
		if !scanner.Scan() {
			if scanner.Err() != nil {
				fmt.Printf("\n%s Scanner error: %v\n", c.red("✗"), scanner.Err())
			}
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		command := strings.ToLower(parts[0])
		args := parts[1:]

		if command == "exit" || command == "quit" {
			fmt.Println(c.cyan("Bye."))
			return
		}

		c.ExecuteCommand(command, args)
	}
}

func (c *Commander) ExecuteCommand(command string, args []string) {
	switch command {
	case "help", "h":
		c.showHelp()
	case "load":
		if len(args) > 0 {
			label := ""
			if len(args) > 1 {
				label = args[1]
			}
			c.loadData(args[0], label)
		} else {
			fmt.Println(c.red("Usage: load <filename> [label-column]"))
		}
	case "inspect":
		c.inspectData()
	case "train":
		c.trainModel(args)
	case "evaluate":
		c.evaluateModel()
	case "predict":
		if len(args) > 0 {
			c.predictRow(strings.Join(args, " "))
		} else {
			fmt.Println(c.red("Usage: predict <comma-separated feature row>"))
		}
	case "score":
		c.scoreLoadedData()
	case "save":
		if len(args) > 0 {
			c.saveModel(args[0])
		} else {
			fmt.Println(c.red("Usage: save <filename>"))
		}
	case "open":
		if len(args) > 0 {
			c.openModel(args[0])
		} else {
			fmt.Println(c.red("Usage: open <filename>"))
		}
	case "jobs":
		c.showJobs()
	default:
		fmt.Printf("%s Unknown command: %s (try 'help')\n", c.red("✗"), command)
	}
}

func (c *Commander) printWelcome() {
	fmt.Println(c.cyan("csvlogit interactive shell"))
	fmt.Println("Type 'help' for commands.")
}

func (c *Commander) showHelp() {
	fmt.Println(c.cyan("Commands:"))
	fmt.Println("  load <file> [label]   load a CSV and build the design matrix (label defaults to last column)")
	fmt.Println("  inspect               show dimensions, column layout and feature stats")
	fmt.Println("  train [rate] [iters] [report] [train-frac]   train logistic regression in the background")
	fmt.Println("  evaluate              accuracy / precision / recall on the held-out test split")
	fmt.Println("  predict <row>         classify one comma-separated raw row")
	fmt.Println("  score                 score the whole loaded dataset in batches")
	fmt.Println("  save <file>           save trained weights and pipeline to a bundle")
	fmt.Println("  open <file>           load a saved bundle")
	fmt.Println("  jobs                  list background jobs")
	fmt.Println("  exit                  leave the shell")
}

func (c *Commander) loadData(filename, labelColumn string) {
	table, err := data.LoadTable(filename)
	if err != nil {
		fmt.Printf("%s Failed to load %s: %v\n", c.red("✗"), filename, err)
		return
	}

	features, rawLabels, err := table.SplitLabel(labelColumn)
	if err != nil {
		fmt.Printf("%s %v\n", c.red("✗"), err)
		return
	}

	p := pipeline.New()
	matrix, err := p.FitTransform(features)
	if err != nil {
		fmt.Printf("%s Pipeline failed: %v\n", c.red("✗"), err)
		return
	}

	encoder := pipeline.NewLabelEncoder()
	labels, err := encoder.FitTransform(rawLabels)
	if err != nil {
		fmt.Printf("%s Label encoding failed: %v\n", c.red("✗"), err)
		return
	}

	c.loadedData = &DataSet{
		Table:        features,
		Matrix:       matrix,
		Pipeline:     p,
		LabelEncoder: encoder,
		Labels:       labels,
		LabelColumn:  labelColumn,
		SourceFile:   filename,
	}

	rows, cols := matrix.Dimensions()
	fmt.Printf("%s Loaded %d rows; design matrix has %d columns (%d numeric, %d categorical)\n",
		c.green("✓"), rows, cols, len(p.NumericColumns), len(p.CategoricalColumns))
}

func (c *Commander) inspectData() {
	if c.loadedData == nil {
		fmt.Println(c.red("No data loaded. Use: load <filename>"))
		return
	}

	ds := c.loadedData
	rows, cols := ds.Matrix.Dimensions()
	fmt.Printf("%s %s\n", c.cyan("Source:"), ds.SourceFile)
	fmt.Printf("%s %d x %d\n", c.cyan("Design matrix:"), rows, cols)
	fmt.Printf("%s %s\n", c.cyan("Columns:"), strings.Join(ds.Matrix.Names, ", "))
	fmt.Printf("%s %s\n", c.cyan("Classes:"), strings.Join(ds.LabelEncoder.Classes, ", "))

	validator := data.NewDataValidator()
	stats := validator.GetMatrixStats(ds.Matrix.Values, ds.Matrix.Names)
	if featureStats, ok := stats["feature_stats"].([]map[string]decimal.Decimal); ok {
		for j, fs := range featureStats {
			fmt.Printf("  %-24s min=%s max=%s mean=%s\n",
				ds.Matrix.Names[j], fs["min"], fs["max"], fs["mean"].StringFixed(4))
		}
	}
}

func (c *Commander) trainModel(args []string) {
	if c.loadedData == nil {
		fmt.Println(c.red("No data loaded. Use: load <filename>"))
		return
	}

	rate := 0.001
	iterations := 500
	reportEvery := 100
	trainFraction := 0.7

	if len(args) > 0 {
		if v, err := strconv.ParseFloat(args[0], 64); err == nil {
			rate = v
		}
	}
	if len(args) > 1 {
		if v, err := strconv.Atoi(args[1]); err == nil {
			iterations = v
		}
	}
	if len(args) > 2 {
		if v, err := strconv.Atoi(args[2]); err == nil {
			reportEvery = v
		}
	}
	if len(args) > 3 {
		if v, err := strconv.ParseFloat(args[3], 64); err == nil {
			trainFraction = v
		}
	}

	ds := c.loadedData
	job := c.jobManager.CreateJob("train", fmt.Sprintf("logistic rate=%g iterations=%d", rate, iterations))
	fmt.Printf("%s Training started as %s\n", c.green("✓"), c.cyan(job.ID))

	go func() {
		job.Start()

		splitter := evaluation.NewTrainTestSplitter(trainFraction, time.Now().UnixNano(), true)
		XTrain, XTest, yTrain, yTest, err := splitter.Split(ds.Matrix.Values, ds.Labels)
		if err != nil {
			job.Fail(err)
			return
		}

		validator := data.NewDataValidator()
		if err := validator.ValidateTrainTestSplit(XTrain, XTest, yTrain, yTest); err != nil {
			job.Fail(err)
			return
		}

		model := models.NewLogisticRegression(rate, iterations, reportEvery)
		model.OnReport = func(iteration int, cost float64, weights []float64) {
			job.SetProgress(float64(iteration) / float64(iterations))
			accuracy, err := evaluation.Accuracy(weights, XTest, yTest)
			if err != nil {
				job.AppendLog(fmt.Sprintf("iteration %d: cost %.6f", iteration, cost))
				return
			}
			job.AppendLog(fmt.Sprintf("iteration %d: cost %.6f, test accuracy %.4f", iteration, cost, accuracy))
		}

		startTime := time.Now()
		if err := model.Fit(XTrain, yTrain); err != nil {
			job.Fail(err)
			return
		}

		predictions := model.Predict(XTest)
		metrics, err := evaluation.CalculateBinaryMetrics(yTest, predictions)
		if err != nil {
			job.Fail(err)
			return
		}

		bundle := persistence.NewModelBundle(model.Weights, ds.Pipeline, ds.LabelEncoder)
		bundle.Metadata.Dataset = ds.SourceFile
		bundle.Metadata.LabelColumn = ds.LabelColumn
		bundle.Metadata.LearningRate = rate
		bundle.Metadata.Iterations = iterations
		bundle.Metadata.Accuracy = metrics.Accuracy
		bundle.Metadata.Precision = metrics.Precision
		bundle.Metadata.Recall = metrics.Recall
		bundle.Metadata.F1Score = metrics.F1Score
		bundle.Metadata.TrainingTime = time.Since(startTime)
		c.setBundle(bundle)

		job.AppendLog(fmt.Sprintf("test accuracy %.4f", metrics.Accuracy))
		job.Complete()
	}()
}

func (c *Commander) evaluateModel() {
	bundle := c.trainedBundle()
	if bundle == nil {
		fmt.Println(c.red("No trained model. Use: train"))
		return
	}

	meta := bundle.Metadata
	fmt.Printf("%s %s on %s\n", c.cyan("Model:"), meta.ModelName, meta.Dataset)
	fmt.Printf("Test accuracy: %s\n", c.green(fmt.Sprintf("%.4f", meta.Accuracy)))
	fmt.Printf("Precision: %.4f, Recall: %.4f, F1: %.4f\n", meta.Precision, meta.Recall, meta.F1Score)
	fmt.Printf("Training time: %v\n", meta.TrainingTime)
}

func (c *Commander) predictRow(raw string) {
	bundle := c.trainedBundle()
	if bundle == nil {
		fmt.Println(c.red("No trained model. Use: train or open <file>"))
		return
	}

	fields := strings.Split(raw, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	row, err := bundle.Pipeline.Transform(fields)
	if err != nil {
		fmt.Printf("%s %v\n", c.red("✗"), err)
		return
	}

	sum := 0.0
	for j, v := range row {
		f, _ := v.Float64()
		sum += bundle.Weights[j] * f
	}
	probability := models.Sigmoid(sum)

	class := 0
	if probability >= models.DecisionThreshold {
		class = 1
	}

	label := strconv.Itoa(class)
	if names, err := bundle.LabelEncoder.InverseTransform([]int{class}); err == nil {
		label = names[0]
	}

	fmt.Printf("%s %s (p=%.4f)\n", c.green("→"), label, probability)
}

// scoreLoadedData runs the trained weights over the whole loaded matrix in
// batches and reports agreement with the known labels.
func (c *Commander) scoreLoadedData() {
	bundle := c.trainedBundle()
	if bundle == nil {
		fmt.Println(c.red("No trained model. Use: train"))
		return
	}
	if c.loadedData == nil {
		fmt.Println(c.red("No data loaded. Use: load <filename>"))
		return
	}

	ds := c.loadedData
	correct, total := 0, 0

	processor := data.NewBatchProcessor(1000)
	err := processor.ProcessBatches(ds.Matrix.Values, ds.Labels, func(batchX [][]decimal.Decimal, batchY []int) error {
		preds, err := evaluation.Predictions(bundle.Weights, batchX)
		if err != nil {
			return err
		}
		for i, pred := range preds {
			if pred == batchY[i] {
				correct++
			}
			total++
		}
		return nil
	})
	if err != nil {
		fmt.Printf("%s Scoring failed: %v\n", c.red("✗"), err)
		return
	}

	fmt.Printf("%s %d/%d correct (%.4f)\n", c.green("✓"), correct, total, float64(correct)/float64(total))
}

func (c *Commander) saveModel(filename string) {
	bundle := c.trainedBundle()
	if bundle == nil {
		fmt.Println(c.red("No trained model to save."))
		return
	}

	if err := bundle.Save(filename); err != nil {
		fmt.Printf("%s Save failed: %v\n", c.red("✗"), err)
		return
	}

	fmt.Printf("%s Model saved to %s\n", c.green("✓"), filename)
}

func (c *Commander) openModel(filename string) {
	bundle, err := persistence.LoadModelBundle(filename)
	if err != nil {
		fmt.Printf("%s Load failed: %v\n", c.red("✗"), err)
		return
	}

	c.setBundle(bundle)
	fmt.Printf("%s Loaded %s (accuracy %.4f, trained on %s)\n",
		c.green("✓"), bundle.Metadata.ModelName, bundle.Metadata.Accuracy, bundle.Metadata.Dataset)
}

func (c *Commander) showJobs() {
	allJobs := c.jobManager.ListJobs()
	if len(allJobs) == 0 {
		fmt.Println("No jobs yet.")
		return
	}

	for _, job := range allJobs {
		status, progress, logs := job.Snapshot()
		statusStr := string(status)
		switch status {
		case jobs.JobCompleted:
			statusStr = c.green(statusStr)
		case jobs.JobFailed:
			statusStr = c.red(statusStr)
		case jobs.JobRunning:
			statusStr = c.yellow(statusStr)
		}
		fmt.Printf("%s  %s  %3.0f%%  %s\n", job.ID, statusStr, progress*100, job.Description)
		if len(logs) > 0 {
			fmt.Printf("    %s\n", logs[len(logs)-1])
		}
		if err := job.Err(); err != nil {
			fmt.Printf("    %s %v\n", c.red("error:"), err)
		}
	}
}
