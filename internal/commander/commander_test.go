package commander

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csvlogit/internal/persistence"
)

func writeTrainingCSV(t *testing.T) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("amount,card,approved\n")
	for i := 0; i < 20; i++ {
		b.WriteString("10,visa,1\n")
		b.WriteString("90,mastercard,0\n")
	}
	path := filepath.Join(t.TempDir(), "payments.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

// The training goroutine publishes the bundle while the shell goroutine
// keeps reading it, so both sides must go through the guarded accessors.
func TestTrainModel_BundlePublishIsSynchronized(t *testing.T) {
	path := writeTrainingCSV(t)

	c := NewCommander()
	c.loadData(path, "approved")
	require.NotNil(t, c.loadedData)
	require.Nil(t, c.trainedBundle())

	c.trainModel([]string{"0.01", "300", "50", "0.5"})

	var bundle *persistence.ModelBundle
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		if bundle = c.trainedBundle(); bundle != nil {
			break
		}
		time.Sleep(time.Millisecond)
	}

	require.NotNil(t, bundle, "training job never published a bundle")
	assert.Equal(t, "LogisticRegression", bundle.Metadata.ModelName)
	assert.Equal(t, path, bundle.Metadata.Dataset)
	assert.GreaterOrEqual(t, bundle.Metadata.Accuracy, 0.0)
	assert.LessOrEqual(t, bundle.Metadata.Accuracy, 1.0)
	assert.Len(t, bundle.Weights, len(c.loadedData.Matrix.Names))
}

func TestEvaluateAndSaveRequireBundle(t *testing.T) {
	c := NewCommander()

	// No bundle yet: both commands must refuse instead of dereferencing.
	c.evaluateModel()
	c.saveModel(filepath.Join(t.TempDir(), "never.model"))
	assert.Nil(t, c.trainedBundle())
}
