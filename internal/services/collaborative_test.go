package services

import (
	"testing"

	"jobmatch_backend/internal/models"
	"jobmatch_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSimilarityRepo struct {
	repositories.SimilarityRepository
	replaced  map[string][]repositories.NeighborScore
	neighbors []models.UserSimilarity
}

func (f *fakeSimilarityRepo) ReplaceForUser(userID string, neighbors []repositories.NeighborScore) error {
	if f.replaced == nil {
		f.replaced = make(map[string][]repositories.NeighborScore)
	}
	f.replaced[userID] = neighbors
	return nil
}

func (f *fakeSimilarityRepo) TopNeighbors(userID string, minScore float64, limit int) ([]models.UserSimilarity, error) {
	var out []models.UserSimilarity
	for _, n := range f.neighbors {
		if n.UserAID == userID && n.Score >= minScore {
			out = append(out, n)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeCandidateRepo) FindActiveByType(userType models.UserType, excludeID string) ([]models.Candidate, error) {
	var out []models.Candidate
	for _, c := range f.candidates {
		if c.UserType == userType && c.ID != excludeID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeInteractionRepo) ViewedJobIDs(candidateID string) ([]string, error) {
	return nil, nil
}

func (f *fakeInteractionRepo) ViewsByCandidate(candidateID string) ([]models.JobView, error) {
	var out []models.JobView
	for _, v := range f.viewRows {
		if v.CandidateID == candidateID {
			out = append(out, v)
		}
	}
	return out, nil
}

func seekingCandidate(id, skills string, years float64) *models.Candidate {
	c := &models.Candidate{
		Name:            id,
		UserType:        models.UserTypeJobSeeker,
		Skills:          skills,
		ExperienceYears: &years,
	}
	c.ID = id
	return c
}

func TestUpdateSimilarity(t *testing.T) {
	t.Parallel()

	twin := seekingCandidate("twin", "go, postgres, docker", 4)
	stranger := seekingCandidate("stranger", "cobol, fortran", 30)
	recruiter := seekingCandidate("recruiter", "go, postgres, docker", 4)
	recruiter.UserType = models.UserTypeRecruiter

	candidateRepo := &fakeCandidateRepo{candidates: map[string]*models.Candidate{
		"cand-1":    seekingCandidate("cand-1", "go, postgres, docker", 4),
		"twin":      twin,
		"stranger":  stranger,
		"recruiter": recruiter,
	}}
	candidateRepo.candidates["cand-1"].UserType = models.UserTypeJobSeeker

	simRepo := &fakeSimilarityRepo{}
	scorer := NewCollaborativeScorer(
		candidateRepo,
		&fakeApplicationRepo{appliedByUser: map[string][]string{}},
		&fakeInteractionRepo{},
		simRepo,
		&fakeJobRepo{},
		10, 0.1,
	)

	require.NoError(t, scorer.UpdateSimilarity("cand-1"))

	scores := map[string]float64{}
	for _, n := range simRepo.replaced["cand-1"] {
		scores[n.UserID] = n.Score
	}

	// Only same-type candidates are compared: the recruiter with an
	// identical skill set never enters the cache.
	assert.NotContains(t, scores, "recruiter")

	// Identical skills and experience dominate the mixture.
	assert.Greater(t, scores["twin"], scores["stranger"])
	assert.InDelta(t, 0.4+0.1, scores["twin"], 1e-9) // skills 1.0, experience 1.0, no history
}

func TestCollaborativeRecommend(t *testing.T) {
	t.Parallel()

	candidateRepo := &fakeCandidateRepo{candidates: map[string]*models.Candidate{
		"cand-1": seekingCandidate("cand-1", "go", 3),
	}}
	simRepo := &fakeSimilarityRepo{neighbors: []models.UserSimilarity{
		{UserAID: "cand-1", UserBID: "neighbor", Score: 0.8},
	}}
	applicationRepo := &fakeApplicationRepo{appliedByUser: map[string][]string{
		"cand-1":   {"job-shared"},
		"neighbor": {"job-shared", "job-new"},
	}}
	interactionRepo := &fakeInteractionRepo{viewRows: []models.JobView{
		{CandidateID: "neighbor", JobID: "job-viewed", ViewCount: 3},
		{CandidateID: "neighbor", JobID: "job-closed", ViewCount: 1},
	}}
	jobRepo := &fakeJobRepo{open: []models.Job{
		testJob("job-new", "Go Engineer", "go"),
		testJob("job-viewed", "Platform Engineer", "go"),
		testJob("job-shared", "Already Applied", "go"),
	}}

	scorer := NewCollaborativeScorer(candidateRepo, applicationRepo, interactionRepo, simRepo, jobRepo, 10, 0.1)

	results, err := scorer.Recommend("cand-1", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Application signal (1.5x) outranks the view signal (0.5x), and
	// the strong neighbor's applied weight (0.8 x 1.5) saturates the
	// 1.0 cap.
	assert.Equal(t, "job-new", results[0].JobID)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
	assert.Equal(t, "Candidates with a similar profile applied to this job", results[0].Reason)

	assert.Equal(t, "job-viewed", results[1].JobID)
	assert.Greater(t, results[1].Score, 0.0)
	assert.Less(t, results[1].Score, 1.0)
	assert.Equal(t, "Candidates with a similar profile viewed this job", results[1].Reason)

	// The job the candidate already applied to never comes back.
	for _, r := range results {
		assert.NotEqual(t, "job-shared", r.JobID)
	}
}

func TestCollaborativeWeakNeighborStaysWeak(t *testing.T) {
	t.Parallel()

	simRepo := &fakeSimilarityRepo{neighbors: []models.UserSimilarity{
		{UserAID: "cand-1", UserBID: "barely", Score: 0.15},
	}}
	applicationRepo := &fakeApplicationRepo{appliedByUser: map[string][]string{
		"barely": {"job-new"},
	}}
	jobRepo := &fakeJobRepo{open: []models.Job{
		testJob("job-new", "Go Engineer", "go"),
	}}

	scorer := NewCollaborativeScorer(
		&fakeCandidateRepo{},
		applicationRepo,
		&fakeInteractionRepo{},
		simRepo,
		jobRepo,
		10, 0.1,
	)

	results, err := scorer.Recommend("cand-1", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	// One marginal neighbor must not produce a full-strength signal:
	// the score is the raw accumulated weight, 0.15 x 1.5.
	assert.InDelta(t, 0.225, results[0].Score, 1e-9)
}

func TestCollaborativeColdStart(t *testing.T) {
	t.Parallel()

	scorer := NewCollaborativeScorer(
		&fakeCandidateRepo{},
		&fakeApplicationRepo{},
		&fakeInteractionRepo{},
		&fakeSimilarityRepo{},
		&fakeJobRepo{},
		10, 0.1,
	)

	results, err := scorer.Recommend("cand-1", 10)
	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestCollaborativeNeighborCutoff(t *testing.T) {
	t.Parallel()

	simRepo := &fakeSimilarityRepo{neighbors: []models.UserSimilarity{
		{UserAID: "cand-1", UserBID: "weak", Score: 0.05},
	}}
	scorer := NewCollaborativeScorer(
		&fakeCandidateRepo{},
		&fakeApplicationRepo{},
		&fakeInteractionRepo{},
		simRepo,
		&fakeJobRepo{},
		10, 0.1,
	)

	results, err := scorer.Recommend("cand-1", 10)
	assert.NoError(t, err)
	assert.Empty(t, results)
}
