package services

import (
	"sort"
	"strings"

	"jobmatch_backend/internal/algorithms"
	"jobmatch_backend/internal/models"
	"jobmatch_backend/internal/services/dto"
	"jobmatch_backend/internal/textsim"
)

// ContentScorer ranks jobs for a candidate from profile content alone:
// skill coverage, TF-IDF text similarity and stated preferences.
type ContentScorer interface {
	ScoreJobs(candidate *models.Candidate, jobs []models.Job, pref *models.Preference) []dto.ScoredJob
	Score(candidate *models.Candidate, job *models.Job, pref *models.Preference) dto.ScoredJob
}

type contentScorer struct{}

func NewContentScorer() ContentScorer {
	return &contentScorer{}
}

// requiredSkills prefers structured requirements over the flat list.
func requiredSkills(j *models.Job) []string {
	if len(j.SkillRequirements) > 0 {
		skills := make([]string, 0, len(j.SkillRequirements))
		for _, req := range j.SkillRequirements {
			skills = append(skills, req.Skill)
		}
		return skills
	}
	return j.SkillNames()
}

func preferenceInput(c *models.Candidate, pref *models.Preference) algorithms.PreferenceInput {
	in := algorithms.PreferenceInput{
		ExperienceYears: c.ExperienceYears,
		ProfileLocation: c.Location,
	}
	if pref != nil {
		in.PreferredJobTypes = pref.PreferredJobTypes
		in.PreferredLocations = pref.PreferredLocations
		in.IndustryPreferences = pref.IndustryPreferences
		in.MinSalary = pref.MinSalary
	}
	return in
}

func jobInput(j *models.Job) algorithms.JobInput {
	return algorithms.JobInput{
		ExperienceRequired: j.ExperienceRequired,
		Location:           j.Location,
		JobType:            j.JobType,
		IndustryText:       strings.Join([]string{j.Title, j.Description, j.Company}, " "),
		SalaryRange:        j.SalaryRange,
	}
}

// ScoreJobs vectorizes the corpus [candidate] + jobs once and scores
// every job. Jobs with an empty document keep a 0.0 text similarity
// but are never dropped from the output.
func (s *contentScorer) ScoreJobs(candidate *models.Candidate, jobs []models.Job, pref *models.Preference) []dto.ScoredJob {
	if candidate == nil || len(jobs) == 0 {
		return nil
	}

	candidateDoc := candidate.Document()
	docs := make([]string, 0, len(jobs)+1)
	docs = append(docs, candidateDoc)
	for i := range jobs {
		docs = append(docs, jobs[i].Document())
	}

	vectorizer := textsim.NewVectorizer(docs)
	candidateRow := vectorizer.Transform(candidateDoc)

	candidateSkills := candidate.SkillList()
	prefIn := preferenceInput(candidate, pref)
	wantsRemote := pref != nil && pref.RemotePreference

	results := make([]dto.ScoredJob, 0, len(jobs))
	for i := range jobs {
		job := &jobs[i]

		coverage, _ := algorithms.SkillCoverage(candidateSkills, requiredSkills(job))
		textScore := textsim.Cosine(candidateRow, vectorizer.Transform(docs[i+1]))
		prefScore := algorithms.PreferenceScore(prefIn, jobInput(job))
		boosted := wantsRemote && job.IsRemote

		breakdown := algorithms.ScoreBreakdown{
			SkillCoverage:  coverage,
			TextSimilarity: textScore,
			Preference:     prefScore,
			RemoteBoosted:  boosted,
		}
		breakdown.Final = algorithms.CombineContentScore(coverage, textScore, prefScore, boosted)

		results = append(results, dto.ScoredJob{
			JobID:     job.ID,
			Title:     job.Title,
			Company:   job.Company,
			Score:     breakdown.Final,
			Reason:    algorithms.BuildReason(breakdown),
			Breakdown: &breakdown,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

func (s *contentScorer) Score(candidate *models.Candidate, job *models.Job, pref *models.Preference) dto.ScoredJob {
	results := s.ScoreJobs(candidate, []models.Job{*job}, pref)
	if len(results) == 0 {
		return dto.ScoredJob{JobID: job.ID}
	}
	return results[0]
}
