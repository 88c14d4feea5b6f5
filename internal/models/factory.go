package models

import (
	"fmt"
)

type ModelConfig struct {
	Algorithm    string
	LearningRate float64
	Iterations   int
	ReportEvery  int
}

func CreateModel(config ModelConfig) (Model, error) {
	switch config.Algorithm {
	case "logistic":
		if config.LearningRate <= 0 {
			config.LearningRate = 0.001
		}
		if config.Iterations <= 0 {
			config.Iterations = 500
		}
		if config.ReportEvery <= 0 {
			config.ReportEvery = 100
		}
		return NewLogisticRegression(config.LearningRate, config.Iterations, config.ReportEvery), nil

	default:
		return nil, fmt.Errorf("unknown algorithm: %s", config.Algorithm)
	}
}

func DefaultConfig(algorithm string) ModelConfig {
	config := ModelConfig{Algorithm: algorithm}

	if algorithm == "logistic" {
		config.LearningRate = 0.001
		config.Iterations = 500
		config.ReportEvery = 100
	}

	return config
}
