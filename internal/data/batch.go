package data

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BatchProcessor walks a design matrix in fixed-size chunks. Scoring large
// matrices goes through this so callers never hold more than one batch of
// predictions at a time.
type BatchProcessor struct {
	batchSize int
}

func NewBatchProcessor(batchSize int) *BatchProcessor {
	if batchSize <= 0 {
		batchSize = 1000
	}
	return &BatchProcessor{batchSize: batchSize}
}

func (bp *BatchProcessor) ProcessBatches(X [][]decimal.Decimal, y []int, processFn func(batchX [][]decimal.Decimal, batchY []int) error) error {
	if len(y) > 0 && len(X) != len(y) {
		return fmt.Errorf("design matrix and labels have different lengths: %d vs %d", len(X), len(y))
	}

	totalSamples := len(X)

	for start := 0; start < totalSamples; start += bp.batchSize {
		end := start + bp.batchSize
		if end > totalSamples {
			end = totalSamples
		}

		var batchY []int
		if len(y) > 0 {
			batchY = y[start:end]
		}

		if err := processFn(X[start:end], batchY); err != nil {
			return fmt.Errorf("batch starting at row %d: %w", start, err)
		}
	}

	return nil
}

func (bp *BatchProcessor) SetBatchSize(size int) {
	if size > 0 {
		bp.batchSize = size
	}
}

func (bp *BatchProcessor) GetBatchSize() int {
	return bp.batchSize
}
