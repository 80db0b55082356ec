package ml

import (
	"os"
	"path/filepath"
	"testing"

	"jobmatch_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jobBatch(n int) []models.Job {
	jobs := make([]models.Job, n)
	for i := range jobs {
		jobs[i] = *sampleJob()
		jobs[i].ID = string(rune('a' + i))
	}
	return jobs
}

func sampleSkillScores() []models.SkillScore {
	return []models.SkillScore{
		{SkillName: "Go", VerifiedLevel: 8, SelfRatedLevel: 9, Status: models.SkillScoreVerified},
		{SkillName: "Postgres", SelfRatedLevel: 6, Status: models.SkillScoreClaimed},
	}
}

func sampleAttempts() []models.AssessmentAttempt {
	return []models.AssessmentAttempt{
		{Percentage: 80, Passed: true},
		{Percentage: 40, Passed: false},
	}
}

func trainIntoDir(t *testing.T, dir string) *TrainingReport {
	t.Helper()
	builder := NewDatasetBuilder(&fakeApplicationRepo{}, &fakeCandidateRepo{}, 50, 300)
	trainer := NewModelTrainer(builder, dir)
	report, err := trainer.Train()
	require.NoError(t, err)
	return report
}

func TestTrainerWritesArtifacts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	report := trainIntoDir(t, dir)

	for _, name := range []string{ModelFileName, ScalerFileName, ReportFileName} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	assert.Equal(t, 300, report.Dataset.NSynthetic)
	assert.GreaterOrEqual(t, report.Holdout.AUC, 0.0)
	assert.LessOrEqual(t, report.Holdout.AUC, 1.0)
	assert.Len(t, report.Importances, FeatureCount)

	t.Run("report round-trips", func(t *testing.T) {
		loaded, err := LoadReport(dir)
		require.NoError(t, err)
		assert.Equal(t, report.Dataset, loaded.Dataset)
		assert.InDelta(t, report.Holdout.F1, loaded.Holdout.F1, 1e-12)
	})

	t.Run("artifacts round-trip", func(t *testing.T) {
		forest, scaler, err := LoadArtifacts(dir)
		require.NoError(t, err)
		assert.Equal(t, DefaultNumTrees, len(forest.Trees))
		assert.NotZero(t, scaler.StdDevs[0])
	})
}

func TestTrainerFailsOnSmallDataset(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	builder := NewDatasetBuilder(&fakeApplicationRepo{}, &fakeCandidateRepo{}, 50, 5)
	trainer := NewModelTrainer(builder, dir)

	_, err := trainer.Train()
	assert.Error(t, err)

	// A failed run must not leave partial artifacts behind.
	_, statErr := os.Stat(filepath.Join(dir, ModelFileName))
	assert.True(t, os.IsNotExist(statErr))
}

func TestPredictorSentinelWithoutModel(t *testing.T) {
	t.Parallel()

	p := NewFitPredictor(t.TempDir())

	assert.False(t, p.Ready())
	assert.Equal(t, SentinelNoModel, p.Predict(sampleCandidate(), sampleJob(), nil, nil))

	batch := p.PredictForJobs(sampleCandidate(), jobBatch(2), nil, nil)
	for _, proba := range batch {
		assert.Equal(t, SentinelNoModel, proba)
	}
}

func TestPredictorServesTrainedModel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	trainIntoDir(t, dir)

	p := NewFitPredictor(dir)
	assert.True(t, p.Ready())

	proba := p.Predict(sampleCandidate(), sampleJob(), nil, nil)
	assert.GreaterOrEqual(t, proba, 0.0)
	assert.LessOrEqual(t, proba, 1.0)

	batch := p.PredictForJobs(sampleCandidate(), jobBatch(3), nil, nil)
	require.Len(t, batch, 3)
	for _, pr := range batch {
		assert.GreaterOrEqual(t, pr, 0.0)
		assert.LessOrEqual(t, pr, 1.0)
	}
}

func TestPredictBatchManyCandidatesOneJob(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	trainIntoDir(t, dir)
	p := NewFitPredictor(dir)

	job := sampleJob()
	strong := sampleCandidate()
	strong.ID = "cand-strong"
	weak := &models.Candidate{}
	weak.ID = "cand-weak"

	pairs := []PredictionPair{
		{Candidate: strong, Job: job},
		{Candidate: weak, Job: job},
		{Candidate: strong, Job: job},
	}
	scoresByCandidate := map[string][]models.SkillScore{
		strong.ID: sampleSkillScores(),
	}
	attemptsByCandidate := map[string][]models.AssessmentAttempt{
		strong.ID: sampleAttempts(),
	}

	probas := p.PredictBatch(pairs, scoresByCandidate, attemptsByCandidate)
	require.Len(t, probas, 3)
	for _, pr := range probas {
		assert.GreaterOrEqual(t, pr, 0.0)
		assert.LessOrEqual(t, pr, 1.0)
	}

	// Same candidate and inputs twice must score identically, and the
	// map-supplied inputs must actually be consumed: the same strong
	// candidate with no map entry scores like an unassessed profile.
	assert.InDelta(t, probas[0], probas[2], 1e-12)
	bare := p.PredictBatch([]PredictionPair{{Candidate: strong, Job: job}}, nil, nil)
	require.Len(t, bare, 1)
	assert.NotEqual(t, probas[0], bare[0])
}

func TestPredictBatchNilCandidateRow(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	trainIntoDir(t, dir)
	p := NewFitPredictor(dir)

	pairs := []PredictionPair{
		{Candidate: nil, Job: sampleJob()},
		{Candidate: sampleCandidate(), Job: nil},
	}
	probas := p.PredictBatch(pairs, nil, nil)
	require.Len(t, probas, 2)
	for _, pr := range probas {
		assert.GreaterOrEqual(t, pr, 0.0)
		assert.LessOrEqual(t, pr, 1.0)
	}
}

func TestPredictorReloadPicksUpNewArtifacts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := NewFitPredictor(dir)

	// First use caches the failed load.
	assert.Equal(t, SentinelNoModel, p.Predict(sampleCandidate(), sampleJob(), nil, nil))

	trainIntoDir(t, dir)

	// Still the cached failure until Reload.
	assert.Equal(t, SentinelNoModel, p.Predict(sampleCandidate(), sampleJob(), nil, nil))

	p.Reload()
	proba := p.Predict(sampleCandidate(), sampleJob(), nil, nil)
	assert.NotEqual(t, SentinelNoModel, proba)
	assert.GreaterOrEqual(t, proba, 0.0)
}
