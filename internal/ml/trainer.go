package ml

import (
	"math"
	"math/rand"
	"time"

	"jobmatch_backend/internal/logger"
	"jobmatch_backend/pkg/apperrors"
)

const (
	holdoutFraction = 0.2
	cvFolds         = 5
	splitSeed       = 7
)

// TrainingReport is the JSON artifact written next to the model.
type TrainingReport struct {
	TrainedAt   time.Time           `json:"trained_at"`
	Dataset     DatasetMeta         `json:"dataset"`
	Holdout     Metrics             `json:"holdout"`
	CVMeanF1    float64             `json:"cv_mean_f1"`
	CVStdF1     float64             `json:"cv_std_f1"`
	Importances []FeatureImportance `json:"feature_importances"`
	Duration    string              `json:"duration"`
}

// ModelTrainer runs the full pipeline: build dataset, stratified
// train/holdout split, fit scaler and forest on the train side only,
// cross-validate, evaluate, and persist artifacts atomically.
type ModelTrainer struct {
	builder     *DatasetBuilder
	artifactDir string
}

func NewModelTrainer(builder *DatasetBuilder, artifactDir string) *ModelTrainer {
	return &ModelTrainer{builder: builder, artifactDir: artifactDir}
}

// LastReport reads the report of the most recent completed run.
func (t *ModelTrainer) LastReport() (*TrainingReport, error) {
	return LoadReport(t.artifactDir)
}

// Train executes one training run. On any failure the previously saved
// artifacts are left untouched.
func (t *ModelTrainer) Train() (*TrainingReport, error) {
	start := time.Now()

	ds, err := t.builder.Build()
	if err != nil {
		return nil, err
	}

	trainIdx, testIdx := stratifiedSplit(ds.Labels, holdoutFraction, splitSeed)
	trainX, trainY := subset(ds.Features, ds.Labels, trainIdx)
	testX, testY := subset(ds.Features, ds.Labels, testIdx)

	// The scaler only ever sees training rows.
	scaler := FitScaler(trainX)
	scaledTrain := scaler.TransformAll(trainX)
	scaledTest := scaler.TransformAll(testX)

	cvMean, cvStd := crossValidateF1(scaledTrain, trainY)

	forest := NewRandomForest()
	forest.Fit(scaledTrain, trainY)

	probas := make([]float64, len(scaledTest))
	for i, v := range scaledTest {
		probas[i] = forest.PredictProba(v)
	}
	holdout := Evaluate(probas, testY)

	report := &TrainingReport{
		TrainedAt:   time.Now().UTC(),
		Dataset:     ds.Meta,
		Holdout:     holdout,
		CVMeanF1:    cvMean,
		CVStdF1:     cvStd,
		Importances: forest.FeatureImportances(),
		Duration:    time.Since(start).String(),
	}

	if err := SaveArtifacts(t.artifactDir, forest, scaler, report); err != nil {
		return nil, apperrors.ErrTrainingFailed(err)
	}

	logger.Info("model training complete",
		"samples", len(ds.Labels),
		"holdout_f1", holdout.F1,
		"holdout_auc", holdout.AUC,
		"cv_mean_f1", cvMean,
		"duration", report.Duration)

	return report, nil
}

// stratifiedSplit shuffles each class independently and carves off
// testFraction of both, so the holdout keeps the class balance.
func stratifiedSplit(labels []int, testFraction float64, seed int64) (train, test []int) {
	rng := rand.New(rand.NewSource(seed))

	byClass := [2][]int{}
	for i, y := range labels {
		byClass[y] = append(byClass[y], i)
	}

	for c := 0; c < 2; c++ {
		idx := byClass[c]
		rng.Shuffle(len(idx), func(a, b int) { idx[a], idx[b] = idx[b], idx[a] })
		nTest := int(float64(len(idx)) * testFraction)
		test = append(test, idx[:nTest]...)
		train = append(train, idx[nTest:]...)
	}
	return train, test
}

func subset(rows []FeatureVector, labels []int, idx []int) ([]FeatureVector, []int) {
	x := make([]FeatureVector, len(idx))
	y := make([]int, len(idx))
	for i, j := range idx {
		x[i] = rows[j]
		y[i] = labels[j]
	}
	return x, y
}

// crossValidateF1 runs stratified k-fold CV on the training rows and
// returns the mean and standard deviation of the per-fold F1.
func crossValidateF1(rows []FeatureVector, labels []int) (mean, std float64) {
	folds := assignFolds(labels, cvFolds, splitSeed)

	scores := make([]float64, 0, cvFolds)
	for fold := 0; fold < cvFolds; fold++ {
		var trainIdx, valIdx []int
		for i, f := range folds {
			if f == fold {
				valIdx = append(valIdx, i)
			} else {
				trainIdx = append(trainIdx, i)
			}
		}
		if len(valIdx) == 0 || len(trainIdx) == 0 {
			continue
		}

		trainX, trainY := subset(rows, labels, trainIdx)
		valX, valY := subset(rows, labels, valIdx)

		forest := NewRandomForest()
		forest.Fit(trainX, trainY)

		probas := make([]float64, len(valX))
		for i, v := range valX {
			probas[i] = forest.PredictProba(v)
		}
		scores = append(scores, Evaluate(probas, valY).F1)
	}

	if len(scores) == 0 {
		return 0, 0
	}
	for _, s := range scores {
		mean += s
	}
	mean /= float64(len(scores))
	for _, s := range scores {
		std += (s - mean) * (s - mean)
	}
	std = math.Sqrt(std / float64(len(scores)))
	return mean, std
}

// assignFolds distributes each class round-robin over the folds after
// an independent shuffle.
func assignFolds(labels []int, k int, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))
	folds := make([]int, len(labels))

	byClass := [2][]int{}
	for i, y := range labels {
		byClass[y] = append(byClass[y], i)
	}
	for c := 0; c < 2; c++ {
		idx := byClass[c]
		rng.Shuffle(len(idx), func(a, b int) { idx[a], idx[b] = idx[b], idx[a] })
		for pos, i := range idx {
			folds[i] = pos % k
		}
	}
	return folds
}
