package services

import (
	"testing"

	"jobmatch_backend/internal/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func testCandidate() *models.Candidate {
	c := &models.Candidate{
		Name:            "Dana",
		Skills:          "Go, Postgres, Docker",
		JobTitle:        "Backend Engineer",
		Objective:       "Build reliable backend services in Go",
		Location:        "Berlin",
		ExperienceYears: f64(4),
	}
	c.ID = "cand-1"
	return c
}

func testJob(id, title string, skills ...string) models.Job {
	j := models.Job{
		Title:       title,
		Company:     "Initech",
		Location:    "Berlin",
		JobType:     "full-time",
		Description: title,
		Status:      models.JobStatusOpen,
	}
	j.ID = id
	j.SetSkills(skills)
	return j
}

func TestContentScorerRanksByFit(t *testing.T) {
	t.Parallel()

	scorer := NewContentScorer()
	jobs := []models.Job{
		testJob("job-weak", "Accountant", "excel", "bookkeeping"),
		testJob("job-strong", "Backend Engineer building Go services", "go", "postgres", "docker"),
	}

	results := scorer.ScoreJobs(testCandidate(), jobs, nil)
	require.Len(t, results, 2)

	assert.Equal(t, "job-strong", results[0].JobID)
	assert.Greater(t, results[0].Score, results[1].Score)

	// Full coverage plus neutral preferences; every score stays in [0,1].
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 1.0)
		assert.NotEmpty(t, r.Reason)
		require.NotNil(t, r.Breakdown)
	}
	assert.Equal(t, 1.0, results[0].Breakdown.SkillCoverage)
}

func TestContentScorerPreferences(t *testing.T) {
	t.Parallel()

	scorer := NewContentScorer()
	job := testJob("job-1", "Backend Engineer", "go")
	job.SalaryRange = "90k - 110k"

	pref := &models.Preference{
		PreferredJobTypes:  pq.StringArray{"full-time"},
		PreferredLocations: pq.StringArray{"Berlin"},
		MinSalary:          f64(80000),
	}

	with := scorer.Score(testCandidate(), &job, pref)
	without := scorer.Score(testCandidate(), &job, nil)

	require.NotNil(t, with.Breakdown)
	assert.Equal(t, 1.0, with.Breakdown.Preference.JobType)
	assert.Equal(t, 1.0, with.Breakdown.Preference.Location)
	assert.Equal(t, 1.0, with.Breakdown.Preference.Salary)
	assert.Greater(t, with.Score, without.Score)
}

func TestContentScorerRemoteBoost(t *testing.T) {
	t.Parallel()

	scorer := NewContentScorer()
	job := testJob("job-1", "Backend Engineer", "go")
	job.IsRemote = true

	pref := &models.Preference{RemotePreference: true}
	boosted := scorer.Score(testCandidate(), &job, pref)
	plain := scorer.Score(testCandidate(), &job, &models.Preference{})

	assert.True(t, boosted.Breakdown.RemoteBoosted)
	assert.False(t, plain.Breakdown.RemoteBoosted)
	assert.InDelta(t, plain.Score+0.05, boosted.Score, 1e-9)
}

func TestContentScorerFullMatchScenario(t *testing.T) {
	t.Parallel()

	candidate := &models.Candidate{
		Name:            "Priya",
		Skills:          "Python, Django, PostgreSQL",
		JobTitle:        "Backend Developer",
		Location:        "New York",
		ExperienceYears: f64(5),
	}
	candidate.ID = "cand-ny"

	job := testJob("job-ny", "Python Developer at a technology company", "python", "django", "postgresql")
	job.Location = "New York"
	job.JobType = "Full-time"
	job.ExperienceRequired = f64(5)
	job.SalaryRange = "$100,000 - $130,000"
	job.Description = "Build Django services on PostgreSQL for a technology company"

	pref := &models.Preference{
		PreferredJobTypes:   pq.StringArray{"Full-time"},
		PreferredLocations:  pq.StringArray{"New York"},
		IndustryPreferences: pq.StringArray{"technology"},
		MinSalary:           f64(90000),
	}

	scorer := NewContentScorer()
	result := scorer.Score(candidate, &job, pref)
	require.NotNil(t, result.Breakdown)

	b := result.Breakdown
	assert.Equal(t, 1.0, b.SkillCoverage)
	assert.Equal(t, 1.0, b.Preference.Experience)
	assert.Equal(t, 1.0, b.Preference.Location)
	assert.Equal(t, 1.0, b.Preference.JobType)
	assert.Equal(t, 1.0, b.Preference.Industry)
	assert.Equal(t, 1.0, b.Preference.Salary)
	assert.InDelta(t, 1.0, b.Preference.Total, 1e-9)
	assert.GreaterOrEqual(t, result.Score, 0.85)

	t.Run("low salary range scores strictly lower", func(t *testing.T) {
		lowJob := job
		lowJob.SalaryRange = "$40,000-$50,000"

		low := scorer.Score(candidate, &lowJob, pref)
		require.NotNil(t, low.Breakdown)

		assert.Less(t, low.Breakdown.Preference.Salary, 1.0)
		assert.Less(t, low.Score, result.Score)
	})
}

func TestContentScorerNilInputs(t *testing.T) {
	t.Parallel()

	scorer := NewContentScorer()
	assert.Nil(t, scorer.ScoreJobs(nil, []models.Job{testJob("j", "t")}, nil))
	assert.Nil(t, scorer.ScoreJobs(testCandidate(), nil, nil))
}
