package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// separableDataset builds rows where feature 0 alone decides the
// label, which any non-degenerate forest must learn.
func separableDataset(n int) ([]FeatureVector, []int) {
	rows := make([]FeatureVector, n)
	labels := make([]int, n)
	for i := range rows {
		var v FeatureVector
		if i%2 == 0 {
			v[0] = 0.9 + 0.001*float64(i%7)
			labels[i] = 1
		} else {
			v[0] = 0.1 + 0.001*float64(i%7)
			labels[i] = 0
		}
		v[1] = float64(i % 5) // uninformative noise column
		rows[i] = v
	}
	return rows, labels
}

func TestRandomForestLearnsSeparableData(t *testing.T) {
	t.Parallel()

	rows, labels := separableDataset(200)
	forest := NewRandomForest()
	forest.Fit(rows, labels)

	var high, low FeatureVector
	high[0] = 0.95
	low[0] = 0.05

	assert.Greater(t, forest.PredictProba(high), 0.7)
	assert.Less(t, forest.PredictProba(low), 0.3)
	assert.Equal(t, 1, forest.Predict(high))
	assert.Equal(t, 0, forest.Predict(low))
}

func TestRandomForestProbaBounds(t *testing.T) {
	t.Parallel()

	rows, labels := GenerateSynthetic(300, 1)
	forest := NewRandomForest()
	forest.Fit(rows, labels)

	probe, _ := GenerateSynthetic(50, 2)
	for _, v := range probe {
		p := forest.PredictProba(v)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}

func TestRandomForestBalancedClassWeights(t *testing.T) {
	t.Parallel()

	// 90/10 imbalance: weights must favor the minority class.
	rows, labels := separableDataset(200)
	for i := range labels {
		if i%10 != 0 {
			labels[i] = 0
		} else {
			labels[i] = 1
			rows[i][0] = 0.9
		}
	}
	forest := NewRandomForest()
	forest.Fit(rows, labels)

	assert.Greater(t, forest.ClassWeights[1], forest.ClassWeights[0])
}

func TestRandomForestFeatureImportances(t *testing.T) {
	t.Parallel()

	rows, labels := separableDataset(200)
	forest := NewRandomForest()
	forest.Fit(rows, labels)

	imps := forest.FeatureImportances()
	require.Len(t, imps, FeatureCount)

	// The deciding feature must rank first, and scores sum to 1.
	assert.Equal(t, FeatureNames[0], imps[0].Name)
	var total float64
	for _, imp := range imps {
		total += imp.Score
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestEmptyForestPredictsNeutral(t *testing.T) {
	t.Parallel()

	forest := NewRandomForest()
	assert.Equal(t, 0.5, forest.PredictProba(FeatureVector{}))
}

func TestFitScaler(t *testing.T) {
	t.Parallel()

	rows := []FeatureVector{}
	for _, val := range []float64{1, 2, 3, 4, 5} {
		var v FeatureVector
		v[0] = val
		v[1] = 7 // constant column
		rows = append(rows, v)
	}

	scaler := FitScaler(rows)
	assert.InDelta(t, 3.0, scaler.Means[0], 1e-9)

	t.Run("scaled column has zero mean", func(t *testing.T) {
		var sum float64
		for _, r := range scaler.TransformAll(rows) {
			sum += r[0]
		}
		assert.InDelta(t, 0.0, sum, 1e-9)
	})

	t.Run("constant column scales to zero, not NaN", func(t *testing.T) {
		out := scaler.Transform(rows[0])
		assert.Equal(t, 0.0, out[1])
	})

	t.Run("empty fit produces identity-safe scaler", func(t *testing.T) {
		s := FitScaler(nil)
		out := s.Transform(rows[0])
		assert.Equal(t, rows[0], out)
	})
}

func TestEvaluateMetrics(t *testing.T) {
	t.Parallel()

	probas := []float64{0.9, 0.8, 0.3, 0.2, 0.6, 0.4}
	labels := []int{1, 1, 0, 0, 0, 1}

	m := Evaluate(probas, labels)

	assert.Equal(t, 2, m.Confusion.TruePositives)
	assert.Equal(t, 2, m.Confusion.TrueNegatives)
	assert.Equal(t, 1, m.Confusion.FalsePositives)
	assert.Equal(t, 1, m.Confusion.FalseNegatives)
	assert.InDelta(t, 4.0/6.0, m.Accuracy, 1e-9)
	assert.InDelta(t, 2.0/3.0, m.Precision, 1e-9)
	assert.InDelta(t, 2.0/3.0, m.Recall, 1e-9)
	assert.InDelta(t, 2.0/3.0, m.F1, 1e-9)
	assert.Equal(t, 3, m.PerClass["hired"].Support)
	assert.Equal(t, 3, m.PerClass["rejected"].Support)
}

func TestRankAUC(t *testing.T) {
	t.Parallel()

	t.Run("perfect ranking", func(t *testing.T) {
		auc := rankAUC([]float64{0.9, 0.8, 0.2, 0.1}, []int{1, 1, 0, 0})
		assert.Equal(t, 1.0, auc)
	})

	t.Run("inverted ranking", func(t *testing.T) {
		auc := rankAUC([]float64{0.1, 0.2, 0.8, 0.9}, []int{1, 1, 0, 0})
		assert.Equal(t, 0.0, auc)
	})

	t.Run("all ties is chance level", func(t *testing.T) {
		auc := rankAUC([]float64{0.5, 0.5, 0.5, 0.5}, []int{1, 0, 1, 0})
		assert.InDelta(t, 0.5, auc, 1e-9)
	})

	t.Run("single class is chance level", func(t *testing.T) {
		assert.Equal(t, 0.5, rankAUC([]float64{0.9, 0.8}, []int{1, 1}))
	})
}
