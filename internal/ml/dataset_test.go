package ml

import (
	"testing"

	"jobmatch_backend/internal/models"
	"jobmatch_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeApplicationRepo struct {
	repositories.ApplicationRepository
	labeled []models.Application
	err     error
}

func (f *fakeApplicationRepo) FindLabeled() ([]models.Application, error) {
	return f.labeled, f.err
}

type fakeCandidateRepo struct {
	repositories.CandidateRepository
	attempts map[string][]models.AssessmentAttempt
}

func (f *fakeCandidateRepo) AssessmentAttemptsFor(candidateID string) ([]models.AssessmentAttempt, error) {
	return f.attempts[candidateID], nil
}

func labeledApplication(id string, status models.ApplicationStatus) models.Application {
	candidate := sampleCandidate()
	candidate.ID = "cand-" + id
	job := sampleJob()
	job.ID = "job-" + id
	return models.Application{
		CandidateID: candidate.ID,
		JobID:       job.ID,
		Status:      status,
		Candidate:   candidate,
		Job:         job,
	}
}

func TestGenerateSyntheticDeterministic(t *testing.T) {
	t.Parallel()

	a, la := GenerateSynthetic(100, 42)
	b, lb := GenerateSynthetic(100, 42)
	assert.Equal(t, a, b)
	assert.Equal(t, la, lb)

	c, _ := GenerateSynthetic(100, 43)
	assert.NotEqual(t, a, c)
}

func TestGenerateSyntheticLabelMix(t *testing.T) {
	t.Parallel()

	_, labels := GenerateSynthetic(500, 42)
	positives := 0
	for _, y := range labels {
		positives += y
	}
	// Both classes must be present in bulk; exact ratio is seed noise.
	assert.Greater(t, positives, 50)
	assert.Less(t, positives, 450)
}

func TestDatasetBuilderSyntheticOnly(t *testing.T) {
	t.Parallel()

	builder := NewDatasetBuilder(&fakeApplicationRepo{}, &fakeCandidateRepo{}, 50, 200)
	ds, err := builder.Build()
	require.NoError(t, err)

	assert.Equal(t, 0, ds.Meta.NReal)
	assert.Equal(t, 200, ds.Meta.NSynthetic)
	assert.Len(t, ds.Features, 200)
	assert.Len(t, ds.Labels, 200)
	assert.Greater(t, ds.Meta.PositiveRatio, 0.0)
	assert.Less(t, ds.Meta.PositiveRatio, 1.0)
}

func TestDatasetBuilderMixesRealAndSynthetic(t *testing.T) {
	t.Parallel()

	apps := []models.Application{
		labeledApplication("1", models.ApplicationHired),
		labeledApplication("2", models.ApplicationRejected),
		labeledApplication("3", models.ApplicationOffered),
	}
	builder := NewDatasetBuilder(
		&fakeApplicationRepo{labeled: apps},
		&fakeCandidateRepo{},
		50, 100,
	)

	ds, err := builder.Build()
	require.NoError(t, err)

	assert.Equal(t, 3, ds.Meta.NReal)
	assert.Equal(t, 100, ds.Meta.NSynthetic)
	assert.Len(t, ds.Labels, 103)

	// Hired and Offered are positives, Rejected negative.
	assert.Equal(t, 1, ds.Labels[0])
	assert.Equal(t, 0, ds.Labels[1])
	assert.Equal(t, 1, ds.Labels[2])
}

func TestDatasetBuilderSkipsIncompleteRows(t *testing.T) {
	t.Parallel()

	broken := labeledApplication("1", models.ApplicationHired)
	broken.Job = nil

	builder := NewDatasetBuilder(
		&fakeApplicationRepo{labeled: []models.Application{broken}},
		&fakeCandidateRepo{},
		50, 100,
	)

	ds, err := builder.Build()
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Meta.NReal)
	assert.Len(t, ds.Labels, 100)
}

func TestDatasetBuilderTooSmall(t *testing.T) {
	t.Parallel()

	builder := NewDatasetBuilder(&fakeApplicationRepo{}, &fakeCandidateRepo{}, 50, 10)
	_, err := builder.Build()
	assert.Error(t, err)
}
