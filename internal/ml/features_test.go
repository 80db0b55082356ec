package ml

import (
	"testing"

	"jobmatch_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func f64(v float64) *float64 { return &v }

func sampleCandidate() *models.Candidate {
	c := &models.Candidate{
		Name:            "Dana",
		Skills:          "Go, Postgres, Docker",
		DegreeName:      "BSc Computer Science",
		CGPA:            f64(8.0),
		ExperienceYears: f64(4),
		Location:        "Berlin",
		JobTitle:        "Backend Engineer",
		Objective:       "Build reliable backend systems",
	}
	c.SetProjects([]models.ProjectEntry{{Title: "Ledger", Description: "payments ledger"}})
	c.SetWorkExperience([]models.WorkExperienceEntry{
		{Title: "Backend Intern", Company: "Acme"},
		{Title: "Backend Engineer", Company: "Acme"},
	})
	return c
}

func sampleJob() *models.Job {
	j := &models.Job{
		Title:              "Senior Backend Engineer",
		Company:            "Initech",
		Description:        "Go services over Postgres",
		ExperienceRequired: f64(3),
	}
	j.SkillRequirements = []models.SkillRequirement{
		{Skill: "Go", RequiredProficiency: 7, Criticality: 0.9, IsMandatory: true},
		{Skill: "Postgres", RequiredProficiency: 5, Criticality: 0.6},
		{Skill: "Kafka", RequiredProficiency: 6, Criticality: 0.4, IsMandatory: true},
	}
	return j
}

func TestExtractFeaturesVectorShape(t *testing.T) {
	t.Parallel()

	v := ExtractFeatures(sampleCandidate(), sampleJob(), nil, nil)

	// 2 of 3 requirements matched, one mandatory (kafka) missing.
	assert.InDelta(t, 2.0/3.0, v[0], 1e-9)
	assert.Equal(t, 2.0, v[1])
	assert.Equal(t, 3.0, v[2])
	assert.Equal(t, 1.0, v[3])

	// Experience: 4 years vs 3 required.
	assert.InDelta(t, 1.0, v[9], 1e-9)
	assert.InDelta(t, 4.0/3.0, v[10], 1e-9)
	assert.Equal(t, 1.0, v[11])

	// Education ordinal and CGPA.
	assert.Equal(t, 2.0, v[12])
	assert.InDelta(t, 0.8, v[13], 1e-9)

	// Profile richness.
	assert.Equal(t, 1.0, v[14]) // projects
	assert.Equal(t, 0.0, v[15]) // certifications
	assert.Equal(t, 1.0, v[16]) // internships
	assert.Equal(t, 1.0, v[17]) // has work experience

	// Both documents mention Go/backend, so similarity is positive.
	assert.Greater(t, v[22], 0.0)
}

func TestExtractFeaturesSkillScores(t *testing.T) {
	t.Parallel()

	scores := []models.SkillScore{
		{SkillName: "Go", VerifiedLevel: 8, SelfRatedLevel: 9, Status: models.SkillScoreVerified},
		{SkillName: "Postgres", SelfRatedLevel: 6, Status: models.SkillScoreClaimed},
	}

	v := ExtractFeatures(sampleCandidate(), sampleJob(), scores, nil)

	// Effective levels: Go verified 8, Postgres claimed 6.
	assert.InDelta(t, 7.0, v[4], 1e-9) // avg matched proficiency
	assert.InDelta(t, 6.0, v[5], 1e-9) // min matched proficiency

	// Gaps vs required: Go needs 7 (have 8 → 0), Postgres needs 5 (have 6 → 0).
	assert.Equal(t, 0.0, v[6])
	assert.Equal(t, 0.0, v[7])

	// Overconfidence: one verified score, self 9 vs verified 8.
	assert.InDelta(t, 1.0, v[8], 1e-9)
	assert.Equal(t, 1.0, v[21]) // verified count
}

func TestExtractFeaturesAssessments(t *testing.T) {
	t.Parallel()

	attempts := []models.AssessmentAttempt{
		{Percentage: 80, Passed: true},
		{Percentage: 40, Passed: false},
	}

	v := ExtractFeatures(sampleCandidate(), sampleJob(), nil, attempts)
	assert.InDelta(t, 0.5, v[19], 1e-9)
	assert.InDelta(t, 0.6, v[20], 1e-9)
}

func TestExtractFeaturesDegradesToZero(t *testing.T) {
	t.Parallel()

	t.Run("nil inputs", func(t *testing.T) {
		assert.Equal(t, FeatureVector{}, ExtractFeatures(nil, nil, nil, nil))
	})

	t.Run("empty candidate against empty job", func(t *testing.T) {
		v := ExtractFeatures(&models.Candidate{}, &models.Job{}, nil, nil)
		assert.Equal(t, 0.0, v[0])
		assert.Equal(t, 0.0, v[2])
		// No requirement means the experience ratio is the "meets it"
		// default, not a division by zero.
		assert.Equal(t, 1.0, v[10])
		assert.Equal(t, 1.0, v[11])
		assert.Equal(t, 0.0, v[22])
	})
}

func TestExtractFeaturesFallsBackToFlatSkills(t *testing.T) {
	t.Parallel()

	job := &models.Job{Title: "Backend Engineer"}
	job.SetSkills([]string{"Go", "Redis"})

	v := ExtractFeatures(sampleCandidate(), job, nil, nil)
	assert.InDelta(t, 0.5, v[0], 1e-9)
	assert.Equal(t, 2.0, v[2])
	assert.Equal(t, 0.0, v[3]) // flat skills are never mandatory
}

func TestEducationLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, educationLevel(""))
	assert.Equal(t, 4.0, educationLevel("PhD in Statistics"))
	assert.Equal(t, 3.0, educationLevel("Master of Science"))
	assert.Equal(t, 2.0, educationLevel("B.Tech Computer Science"))
	assert.Equal(t, 1.0, educationLevel("Diploma in Electronics"))
	assert.Equal(t, 1.0, educationLevel("certificate course"))
}

func TestProfileCompleteness(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, profileCompleteness(&models.Candidate{}))

	full := sampleCandidate()
	full.SetCertifications([]models.CertificationEntry{{Name: "CKA"}})
	assert.Equal(t, 1.0, profileCompleteness(full))
}
