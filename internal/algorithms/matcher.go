package algorithms

import (
	"strings"
)

// Component weights for the content score.
const (
	SkillWeight      = 0.55
	TextWeight       = 0.10
	PreferenceWeight = 0.35
	RemoteBoost      = 0.05
)

// Sub-weights inside the preference score (sum to 1.0).
const (
	ExperienceSubWeight = 0.30
	LocationSubWeight   = 0.25
	JobTypeSubWeight    = 0.20
	IndustrySubWeight   = 0.15
	SalarySubWeight     = 0.10
)

// Neutral values returned when a side of a comparison is missing.
// These are deliberately neither 0 nor 1 (see PreferenceBreakdown).
const (
	neutralScore       = 0.5
	neutralSalaryScore = 0.7
	unmatchedTypeScore = 0.2
)

// PreferenceBreakdown is the immutable result of preference scoring.
// Each sub-score lies in [0,1]; missing inputs yield the documented
// neutral value for that field, never 0 or 1.
type PreferenceBreakdown struct {
	Experience float64
	Location   float64
	JobType    float64
	Industry   float64
	Salary     float64
	Total      float64
}

// ScoreBreakdown is the full content-score decomposition for one
// (candidate, job) pair.
type ScoreBreakdown struct {
	SkillCoverage  float64
	TextSimilarity float64
	Preference     PreferenceBreakdown
	RemoteBoosted  bool
	Final          float64
}

// NormalizeSkill canonicalizes a skill name for comparison.
func NormalizeSkill(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// NormalizeSkillSet builds a canonical lookup set from skill names.
func NormalizeSkillSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		if norm := NormalizeSkill(n); norm != "" {
			set[norm] = true
		}
	}
	return set
}

// SkillCoverage computes |matched ∩ required| / |required|, capped at
// 1.0. Extra candidate skills never change the result; coverage of the
// job's ask is what matters. A job with no listed skills resolves to
// the neutral value.
func SkillCoverage(candidateSkills, requiredSkills []string) (float64, int) {
	required := NormalizeSkillSet(requiredSkills)
	if len(required) == 0 {
		return neutralScore, 0
	}

	have := NormalizeSkillSet(candidateSkills)
	matched := 0
	for skill := range required {
		if have[skill] {
			matched++
		}
	}

	coverage := float64(matched) / float64(len(required))
	if coverage > 1.0 {
		coverage = 1.0
	}
	return coverage, matched
}

// ExperienceScore: 1.0 when the job requires nothing or the candidate
// meets the requirement, otherwise the fraction met; neutral when
// either side is unknown. A job with no experience requirement suits
// every candidate, so it scores 1.0 before the unknown check.
func ExperienceScore(candidateYears, requiredYears *float64) float64 {
	if requiredYears != nil && *requiredYears <= 0 {
		return 1.0
	}
	if candidateYears == nil || requiredYears == nil {
		return neutralScore
	}
	if *candidateYears >= *requiredYears {
		return 1.0
	}
	return *candidateYears / *requiredYears
}

var remoteMarkers = []string{"remote", "anywhere", "work from home", "wfh"}

func isRemoteLocation(location string) bool {
	loc := strings.ToLower(location)
	for _, marker := range remoteMarkers {
		if strings.Contains(loc, marker) {
			return true
		}
	}
	return false
}

// LocationScore grades a job location against the candidate's preferred
// locations (falling back to their profile location): exact match or a
// remote job → 1.0, substring containment → 0.8, shared tokens → 0.6,
// no overlap → 0.0, missing data → neutral.
func LocationScore(preferredLocations []string, profileLocation, jobLocation string) float64 {
	jobLoc := strings.ToLower(strings.TrimSpace(jobLocation))
	if jobLoc == "" {
		return neutralScore
	}
	if isRemoteLocation(jobLoc) {
		return 1.0
	}

	candidateLocs := preferredLocations
	if len(candidateLocs) == 0 {
		if strings.TrimSpace(profileLocation) == "" {
			return neutralScore
		}
		candidateLocs = []string{profileLocation}
	}

	best := 0.0
	jobTokens := locationTokens(jobLoc)
	for _, raw := range candidateLocs {
		loc := strings.ToLower(strings.TrimSpace(raw))
		if loc == "" {
			continue
		}
		switch {
		case loc == jobLoc:
			return 1.0
		case strings.Contains(jobLoc, loc) || strings.Contains(loc, jobLoc):
			if best < 0.8 {
				best = 0.8
			}
		case sharesToken(locationTokens(loc), jobTokens):
			if best < 0.6 {
				best = 0.6
			}
		}
	}
	return best
}

func locationTokens(loc string) map[string]bool {
	tokens := make(map[string]bool)
	for _, t := range strings.FieldsFunc(loc, func(r rune) bool {
		return r == ' ' || r == ',' || r == '-' || r == '/'
	}) {
		if len(t) > 1 {
			tokens[t] = true
		}
	}
	return tokens
}

func sharesToken(a, b map[string]bool) bool {
	for t := range a {
		if b[t] {
			return true
		}
	}
	return false
}

// JobTypeScore: a matched type scores 1.0; an unmatched one still
// merits minor consideration (0.2, never 0); no stated preference is
// neutral.
func JobTypeScore(preferredTypes []string, jobType string) float64 {
	if len(preferredTypes) == 0 {
		return neutralScore
	}
	jt := strings.ToLower(strings.TrimSpace(jobType))
	if jt == "" {
		return neutralScore
	}
	for _, p := range preferredTypes {
		if strings.ToLower(strings.TrimSpace(p)) == jt {
			return 1.0
		}
	}
	return unmatchedTypeScore
}

// industryKeywords maps a broad industry to the vocabulary that signals
// it in a job's title, description or company name.
var industryKeywords = map[string][]string{
	"technology":    {"software", "developer", "engineer", "tech", "programming", "data", "cloud", "ai", "saas", "startup"},
	"finance":       {"bank", "banking", "finance", "financial", "investment", "accounting", "fintech", "insurance", "trading"},
	"healthcare":    {"health", "medical", "hospital", "pharma", "clinic", "biotech", "patient", "care"},
	"education":     {"school", "university", "teaching", "education", "academic", "learning", "edtech"},
	"marketing":     {"marketing", "advertising", "brand", "seo", "media", "content", "campaign"},
	"retail":        {"retail", "store", "ecommerce", "e-commerce", "sales", "consumer", "merchandise"},
	"manufacturing": {"manufacturing", "factory", "production", "industrial", "automotive", "supply chain"},
	"consulting":    {"consulting", "consultant", "advisory", "strategy", "client"},
}

// IndustryScore matches stated industry preferences against the job's
// combined title+description+company text. An exact industry-name hit
// is a full match; keyword hits scale from 0.60; text with no signal at
// all scores 0.2; no stated preference is neutral. With several
// preferences the best one wins.
func IndustryScore(industryPreferences []string, jobText string) float64 {
	if len(industryPreferences) == 0 {
		return neutralScore
	}
	text := strings.ToLower(jobText)
	if strings.TrimSpace(text) == "" {
		return neutralScore
	}

	best := 0.0
	for _, raw := range industryPreferences {
		pref := strings.ToLower(strings.TrimSpace(raw))
		if pref == "" {
			continue
		}

		score := unmatchedTypeScore
		if strings.Contains(text, pref) {
			score = 1.0
		} else if hits := countIndustryHits(pref, text); hits > 0 {
			score = 0.60 + 0.10*float64(hits)
			if score > 1.0 {
				score = 1.0
			}
		}
		if score > best {
			best = score
		}
	}

	if best == 0.0 {
		return unmatchedTypeScore
	}
	return best
}

func countIndustryHits(pref, text string) int {
	keywords := industryKeywords[pref]
	if keywords == nil {
		// Tolerate close names like "tech" or "financial services".
		for name, kws := range industryKeywords {
			if strings.Contains(pref, name) || strings.Contains(name, pref) {
				keywords = kws
				break
			}
		}
	}

	hits := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			hits++
		}
	}
	return hits
}

// SalaryScore compares the job's stated range with the candidate's
// floor: fully above it → 1.0, reaching it at the top of the range →
// 0.8, otherwise the fraction of the floor the job offers. Missing or
// unparseable data is neutral (0.7).
func SalaryScore(minSalary *float64, salaryRange string) float64 {
	if minSalary == nil || *minSalary <= 0 {
		return neutralSalaryScore
	}

	jobMin, jobMax, ok := ParseSalaryRange(salaryRange)
	if !ok {
		return neutralSalaryScore
	}

	switch {
	case jobMin >= *minSalary:
		return 1.0
	case jobMax >= *minSalary:
		return 0.8
	default:
		ratio := jobMax / *minSalary
		if ratio > 1.0 {
			ratio = 1.0
		}
		return ratio
	}
}

// PreferenceInput carries the candidate-side values for preference
// scoring; nil/empty fields are treated as unstated.
type PreferenceInput struct {
	ExperienceYears     *float64
	ProfileLocation     string
	PreferredJobTypes   []string
	PreferredLocations  []string
	IndustryPreferences []string
	MinSalary           *float64
}

// JobInput carries the job-side values for preference scoring.
type JobInput struct {
	ExperienceRequired *float64
	Location           string
	JobType            string
	IndustryText       string // title + description + company
	SalaryRange        string
}

// PreferenceScore combines the five sub-scores with their fixed
// weights.
func PreferenceScore(pref PreferenceInput, job JobInput) PreferenceBreakdown {
	b := PreferenceBreakdown{
		Experience: ExperienceScore(pref.ExperienceYears, job.ExperienceRequired),
		Location:   LocationScore(pref.PreferredLocations, pref.ProfileLocation, job.Location),
		JobType:    JobTypeScore(pref.PreferredJobTypes, job.JobType),
		Industry:   IndustryScore(pref.IndustryPreferences, job.IndustryText),
		Salary:     SalaryScore(pref.MinSalary, job.SalaryRange),
	}
	b.Total = ExperienceSubWeight*b.Experience +
		LocationSubWeight*b.Location +
		JobTypeSubWeight*b.JobType +
		IndustrySubWeight*b.Industry +
		SalarySubWeight*b.Salary
	return b
}

// CombineContentScore blends the three components and applies the
// remote-preference boost, capping at 1.0.
func CombineContentScore(coverage, textSim float64, pref PreferenceBreakdown, remoteBoost bool) float64 {
	score := SkillWeight*coverage + TextWeight*textSim + PreferenceWeight*pref.Total
	if remoteBoost {
		score += RemoteBoost
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// Jaccard computes |A∩B| / |A∪B| over normalized string sets.
func Jaccard(a, b []string) float64 {
	setA := NormalizeSkillSet(a)
	setB := NormalizeSkillSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 0.0
	}

	inter := 0
	for v := range setA {
		if setB[v] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}

// ExperienceCloseness maps the gap in years of experience between two
// candidates into (0,1]: identical experience → 1.
func ExperienceCloseness(yearsA, yearsB float64) float64 {
	diff := yearsA - yearsB
	if diff < 0 {
		diff = -diff
	}
	return 1.0 / (1.0 + diff)
}
