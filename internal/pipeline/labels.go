package pipeline

import "fmt"

// LabelEncoder maps raw label strings to class indices in first-occurrence
// order, so the same input always yields the same encoding.
type LabelEncoder struct {
	ClassToIndex map[string]int
	Classes      []string
	IsFitted     bool
}

func NewLabelEncoder() *LabelEncoder {
	return &LabelEncoder{
		ClassToIndex: make(map[string]int),
	}
}

func (le *LabelEncoder) Fit(labels []string) {
	le.ClassToIndex = make(map[string]int)
	le.Classes = nil

	for _, label := range labels {
		if _, seen := le.ClassToIndex[label]; !seen {
			le.ClassToIndex[label] = len(le.Classes)
			le.Classes = append(le.Classes, label)
		}
	}

	le.IsFitted = true
}

func (le *LabelEncoder) Transform(labels []string) ([]int, error) {
	if !le.IsFitted {
		return nil, fmt.Errorf("label encoder must be fitted before transform")
	}

	result := make([]int, len(labels))
	for i, label := range labels {
		val, ok := le.ClassToIndex[label]
		if !ok {
			return nil, fmt.Errorf("unknown label: %s", label)
		}
		result[i] = val
	}

	return result, nil
}

// FitTransform encodes labels for binary classification; anything other
// than exactly two classes is rejected. Labels that are literally "0" and
// "1" keep their own values regardless of which appears first.
func (le *LabelEncoder) FitTransform(labels []string) ([]int, error) {
	le.Fit(labels)
	if len(le.Classes) != 2 {
		return nil, fmt.Errorf("expected exactly 2 label classes, found %d", len(le.Classes))
	}
	_, hasZero := le.ClassToIndex["0"]
	_, hasOne := le.ClassToIndex["1"]
	if hasZero && hasOne {
		le.Classes = []string{"0", "1"}
		le.ClassToIndex = map[string]int{"0": 0, "1": 1}
	}
	return le.Transform(labels)
}

func (le *LabelEncoder) InverseTransform(encoded []int) ([]string, error) {
	if !le.IsFitted {
		return nil, fmt.Errorf("label encoder must be fitted before inverse transform")
	}

	result := make([]string, len(encoded))
	for i, val := range encoded {
		if val < 0 || val >= len(le.Classes) {
			return nil, fmt.Errorf("unknown encoding: %d", val)
		}
		result[i] = le.Classes[val]
	}

	return result, nil
}
