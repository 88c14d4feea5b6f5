package pipeline

// ClassifyColumns partitions column indices into numeric and categorical
// by inspecting a single representative row, normally the first data row.
// The split is a one-shot heuristic: a column whose first value happens to
// look numeric but carries text further down will fail later, during
// scaling, not here.
func ClassifyColumns(row []string) (numeric, categorical []int) {
	for i, field := range row {
		if isNumericField(field) {
			numeric = append(numeric, i)
		} else {
			categorical = append(categorical, i)
		}
	}
	return numeric, categorical
}

// isNumericField reports whether every character is a digit, '.' or '-'.
func isNumericField(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != '-' {
			return false
		}
	}
	return true
}
