package persistence

import (
	"encoding/gob"
	"fmt"
	"os"
	"time"

	"csvlogit/internal/pipeline"
)

// ModelBundle is everything needed to score new rows with a trained
// classifier: the weight vector plus the fitted pipeline (scaling maxima,
// category tables, column layout) and the label encoding.
type ModelBundle struct {
	Weights      []float64
	Pipeline     *pipeline.Pipeline
	LabelEncoder *pipeline.LabelEncoder
	Metadata     BundleMetadata
	CreatedAt    time.Time
}

type BundleMetadata struct {
	ModelName    string
	Dataset      string
	LabelColumn  string
	Columns      []string
	Classes      []string
	LearningRate float64
	Iterations   int
	Accuracy     float64
	Precision    float64
	Recall       float64
	F1Score      float64
	TrainingTime time.Duration
}

func NewModelBundle(weights []float64, p *pipeline.Pipeline, le *pipeline.LabelEncoder) *ModelBundle {
	return &ModelBundle{
		Weights:      weights,
		Pipeline:     p,
		LabelEncoder: le,
		CreatedAt:    time.Now(),
		Metadata: BundleMetadata{
			ModelName: "LogisticRegression",
			Columns:   p.ColumnNames(),
			Classes:   le.Classes,
		},
	}
}

func (mb *ModelBundle) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := gob.NewEncoder(file)
	if err := encoder.Encode(mb); err != nil {
		return fmt.Errorf("failed to encode bundle: %w", err)
	}

	return nil
}

func LoadModelBundle(filename string) (*ModelBundle, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	bundle := &ModelBundle{}
	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(bundle); err != nil {
		return nil, fmt.Errorf("failed to decode bundle: %w", err)
	}

	return bundle, nil
}
