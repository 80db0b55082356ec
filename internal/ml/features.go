// Package ml implements the fit-prediction pipeline: feature
// extraction, dataset building with synthetic blending, random forest
// training and the cached predictor.
package ml

import (
	"strings"

	"jobmatch_backend/internal/algorithms"
	"jobmatch_backend/internal/models"
	"jobmatch_backend/internal/textsim"
)

// FeatureCount is the fixed width of every feature vector. The model
// consumes features positionally, so FeatureNames order is part of the
// artifact contract and must never be reordered.
const FeatureCount = 23

var FeatureNames = [FeatureCount]string{
	"skill_match_ratio",
	"matched_skill_count",
	"required_skill_count",
	"missing_mandatory_count",
	"avg_matched_proficiency",
	"min_matched_proficiency",
	"avg_proficiency_gap",
	"max_proficiency_gap",
	"avg_overconfidence",
	"experience_delta",
	"experience_ratio",
	"meets_experience",
	"education_level",
	"cgpa_normalized",
	"project_count",
	"certification_count",
	"internship_count",
	"has_work_experience",
	"profile_completeness",
	"assessment_pass_rate",
	"avg_assessment_score",
	"verified_skill_count",
	"text_similarity",
}

// FeatureVector is one extracted row, ordered as FeatureNames.
type FeatureVector [FeatureCount]float64

func (v FeatureVector) Slice() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, v[:])
	return out
}

// Named returns the vector as a name→value map for reports and logs.
func (v FeatureVector) Named() map[string]float64 {
	out := make(map[string]float64, FeatureCount)
	for i, name := range FeatureNames {
		out[name] = v[i]
	}
	return out
}

// requirement is the resolved job-side skill ask.
type requirement struct {
	name        string // normalized
	proficiency float64
	criticality float64
	mandatory   bool
}

const (
	defaultRequiredProficiency = 5.0
	defaultCriticality         = 0.5
	experienceRatioCap         = 5.0
)

// resolveRequirements prefers structured SkillRequirement rows and
// falls back to the flat skill list with neutral defaults.
func resolveRequirements(job *models.Job) []requirement {
	if len(job.SkillRequirements) > 0 {
		reqs := make([]requirement, 0, len(job.SkillRequirements))
		for _, r := range job.SkillRequirements {
			reqs = append(reqs, requirement{
				name:        algorithms.NormalizeSkill(r.Skill),
				proficiency: r.RequiredProficiency,
				criticality: r.Criticality,
				mandatory:   r.IsMandatory,
			})
		}
		return reqs
	}

	refs := job.SkillRefs()
	reqs := make([]requirement, 0, len(refs))
	for _, ref := range refs {
		req := requirement{
			name:        algorithms.NormalizeSkill(ref.Name),
			proficiency: defaultRequiredProficiency,
			criticality: defaultCriticality,
		}
		if ref.Rated {
			req.proficiency = ref.Proficiency
		}
		reqs = append(reqs, req)
	}
	return reqs
}

// ExtractFeatures maps one (candidate, job) pair plus optional skill
// scores and assessment attempts to the fixed 23-feature vector. Every
// missing input degrades to 0 rather than failing.
func ExtractFeatures(
	candidate *models.Candidate,
	job *models.Job,
	skillScores []models.SkillScore,
	attempts []models.AssessmentAttempt,
) FeatureVector {
	var v FeatureVector
	if candidate == nil || job == nil {
		return v
	}

	// Candidate skill set: profile skills plus anything with a score.
	levelByName := make(map[string]float64, len(skillScores))
	verifiedCount := 0
	overconfidenceSum := 0.0
	for _, s := range skillScores {
		name := algorithms.NormalizeSkill(s.SkillName)
		levelByName[name] = s.EffectiveLevel()
		if s.Status == models.SkillScoreVerified {
			verifiedCount++
			overconfidenceSum += s.SelfRatedLevel - s.VerifiedLevel
		}
	}
	candidateSkills := algorithms.NormalizeSkillSet(candidate.SkillList())
	for name := range levelByName {
		candidateSkills[name] = true
	}

	reqs := resolveRequirements(job)

	matched := 0
	missingMandatory := 0
	var profSum, profMin float64
	var gapSum, gapMax float64
	profMin = -1
	for _, req := range reqs {
		if !candidateSkills[req.name] {
			if req.mandatory {
				missingMandatory++
			}
			continue
		}
		matched++

		level := levelByName[req.name] // 0 when the skill has no score
		profSum += level
		if profMin < 0 || level < profMin {
			profMin = level
		}

		gap := req.proficiency - level
		if gap < 0 {
			gap = 0
		}
		gapSum += gap
		if gap > gapMax {
			gapMax = gap
		}
	}

	if len(reqs) > 0 {
		v[0] = float64(matched) / float64(len(reqs))
	}
	v[1] = float64(matched)
	v[2] = float64(len(reqs))
	v[3] = float64(missingMandatory)
	if matched > 0 {
		v[4] = profSum / float64(matched)
		v[5] = profMin
		v[6] = gapSum / float64(matched)
		v[7] = gapMax
	}
	if verifiedCount > 0 {
		v[8] = overconfidenceSum / float64(verifiedCount)
	}

	// Experience
	candidateYears := 0.0
	if candidate.ExperienceYears != nil {
		candidateYears = *candidate.ExperienceYears
	}
	requiredYears := 0.0
	if job.ExperienceRequired != nil {
		requiredYears = *job.ExperienceRequired
	}
	v[9] = candidateYears - requiredYears
	if requiredYears > 0 {
		ratio := candidateYears / requiredYears
		if ratio > experienceRatioCap {
			ratio = experienceRatioCap
		}
		v[10] = ratio
	} else if candidateYears > 0 {
		v[10] = experienceRatioCap
	} else {
		v[10] = 1.0
	}
	if candidateYears >= requiredYears {
		v[11] = 1.0
	}

	// Education
	v[12] = educationLevel(candidate.DegreeName)
	if candidate.CGPA != nil {
		v[13] = *candidate.CGPA / 10.0
	}

	// Profile richness
	projects := candidate.GetProjects()
	certs := candidate.GetCertifications()
	work := candidate.GetWorkExperience()
	v[14] = float64(len(projects))
	v[15] = float64(len(certs))
	v[16] = float64(countInternships(work))
	if len(work) > 0 {
		v[17] = 1.0
	}
	v[18] = profileCompleteness(candidate)

	// Assessment performance
	if len(attempts) > 0 {
		passed := 0
		scoreSum := 0.0
		for _, a := range attempts {
			if a.Passed {
				passed++
			}
			scoreSum += a.Percentage
		}
		v[19] = float64(passed) / float64(len(attempts))
		v[20] = scoreSum / float64(len(attempts)) / 100.0
	}
	v[21] = float64(verifiedCount)

	// Text similarity uses an independent vectorizer per pair.
	v[22] = textsim.Similarity(candidate.Document(), job.Document())

	return v
}

// educationLevel keyword-matches the free-text degree name to an
// ordinal: 1=high-school/diploma ... 4=doctorate.
func educationLevel(degree string) float64 {
	d := strings.ToLower(degree)
	switch {
	case d == "":
		return 0
	case strings.Contains(d, "phd") || strings.Contains(d, "doctor"):
		return 4
	case strings.Contains(d, "master") || strings.Contains(d, "msc") ||
		strings.Contains(d, "mba") || strings.Contains(d, "m.tech") ||
		strings.Contains(d, "mtech"):
		return 3
	case strings.Contains(d, "bachelor") || strings.Contains(d, "bsc") ||
		strings.Contains(d, "b.tech") || strings.Contains(d, "btech") ||
		strings.Contains(d, "b.e") || strings.Contains(d, "undergraduate"):
		return 2
	case strings.Contains(d, "diploma") || strings.Contains(d, "high school") ||
		strings.Contains(d, "secondary"):
		return 1
	default:
		return 1
	}
}

func countInternships(work []models.WorkExperienceEntry) int {
	count := 0
	for _, w := range work {
		if strings.Contains(strings.ToLower(w.Title), "intern") {
			count++
		}
	}
	return count
}

// profileCompleteness is filled/total over a fixed field checklist.
func profileCompleteness(c *models.Candidate) float64 {
	checks := []bool{
		strings.TrimSpace(c.Objective) != "",
		strings.TrimSpace(c.Skills) != "",
		strings.TrimSpace(c.DegreeName) != "",
		c.CGPA != nil,
		c.ExperienceYears != nil,
		strings.TrimSpace(c.Location) != "",
		strings.TrimSpace(c.JobTitle) != "",
		len(c.Projects) > 0,
		len(c.Certifications) > 0,
		len(c.WorkExperience) > 0,
	}

	filled := 0
	for _, ok := range checks {
		if ok {
			filled++
		}
	}
	return float64(filled) / float64(len(checks))
}
