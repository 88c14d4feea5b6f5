package models

import (
	"github.com/shopspring/decimal"
)

// Model is a binary classifier over a decimal design matrix. Labels are
// 0 or 1; PredictProba returns the class-1 probability per row.
type Model interface {
	Fit(X [][]decimal.Decimal, y []int) error
	Predict(X [][]decimal.Decimal) []int
	PredictProba(X [][]decimal.Decimal) []decimal.Decimal
	GetName() string
	GetParams() map[string]any
	Reset()
}

type BaseModel struct {
	Name   string
	Params map[string]any
}

func (bm *BaseModel) GetName() string {
	return bm.Name
}

func (bm *BaseModel) GetParams() map[string]any {
	return bm.Params
}
