package services

import (
	"testing"

	"jobmatch_backend/internal/ml"
	"jobmatch_backend/internal/models"
	"jobmatch_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fakeCandidateRepo) AssessmentAttemptsFor(candidateID string) ([]models.AssessmentAttempt, error) {
	return nil, nil
}

func (f *fakeJobRepo) FindByID(id string) (*models.Job, error) {
	for i := range f.open {
		if f.open[i].ID == id {
			return &f.open[i], nil
		}
	}
	return nil, repositories.ErrJobNotFound
}

func (f *fakeJobRepo) FindOpen() ([]models.Job, error) {
	return f.open, nil
}

func newPredictionFixture(t *testing.T) PredictionService {
	t.Helper()
	candidateRepo := &fakeCandidateRepo{candidates: map[string]*models.Candidate{
		"cand-1": testCandidate(),
	}}
	jobRepo := &fakeJobRepo{open: []models.Job{
		testJob("job-1", "Backend Engineer", "go"),
		testJob("job-2", "Data Engineer", "python"),
	}}
	// Empty artifact dir: the predictor has no model to serve.
	return NewPredictionService(candidateRepo, jobRepo, ml.NewFitPredictor(t.TempDir()))
}

func TestPredictFitWithoutModel(t *testing.T) {
	t.Parallel()

	svc := newPredictionFixture(t)
	assert.False(t, svc.ModelReady())

	p, err := svc.PredictFit("cand-1", "job-1")
	require.NoError(t, err)
	assert.Equal(t, "cand-1", p.CandidateID)
	assert.Equal(t, "job-1", p.JobID)
	assert.Equal(t, ml.SentinelNoModel, p.Probability)
}

func TestPredictFitUnknownRecords(t *testing.T) {
	t.Parallel()

	svc := newPredictionFixture(t)

	_, err := svc.PredictFit("nobody", "job-1")
	assert.ErrorIs(t, err, repositories.ErrCandidateNotFound)

	_, err = svc.PredictFit("cand-1", "no-such-job")
	assert.ErrorIs(t, err, repositories.ErrJobNotFound)
}

func TestPredictFitForOpenJobs(t *testing.T) {
	t.Parallel()

	svc := newPredictionFixture(t)

	predictions, err := svc.PredictFitForOpenJobs("cand-1")
	require.NoError(t, err)
	require.Len(t, predictions, 2)
	assert.Equal(t, "job-1", predictions[0].JobID)
	assert.Equal(t, "job-2", predictions[1].JobID)
	for _, p := range predictions {
		assert.Equal(t, ml.SentinelNoModel, p.Probability)
	}
}
