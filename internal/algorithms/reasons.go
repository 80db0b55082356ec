package algorithms

import "strings"

const fallbackReason = "Potential opportunity"

// PopularityReason replaces a weaker reason when a job gets the
// popularity boost.
const PopularityReason = "Popular among other candidates"

type reasonRule struct {
	clause string
	match  func(ScoreBreakdown) bool
}

// Ordered by how convincing the clause is to a candidate.
var reasonRules = []reasonRule{
	{"Excellent skill match", func(b ScoreBreakdown) bool { return b.SkillCoverage >= 0.8 }},
	{"Good skill match", func(b ScoreBreakdown) bool { return b.SkillCoverage >= 0.5 && b.SkillCoverage < 0.8 }},
	{"Great location", func(b ScoreBreakdown) bool { return b.Preference.Location >= 0.8 }},
	{"Meets experience requirements", func(b ScoreBreakdown) bool { return b.Preference.Experience >= 1.0 }},
	{"Preferred job type", func(b ScoreBreakdown) bool { return b.Preference.JobType >= 1.0 }},
	{"Good salary range", func(b ScoreBreakdown) bool { return b.Preference.Salary >= 0.8 }},
	{"Industry fit", func(b ScoreBreakdown) bool { return b.Preference.Industry >= 0.8 }},
	{"Profile matches job description", func(b ScoreBreakdown) bool { return b.TextSimilarity >= 0.25 }},
}

// BuildReason renders a short human-readable explanation from the
// sub-scores that cleared their thresholds, capped at three clauses.
func BuildReason(b ScoreBreakdown) string {
	var clauses []string
	for _, rule := range reasonRules {
		if rule.match(b) {
			clauses = append(clauses, rule.clause)
			if len(clauses) == 3 {
				break
			}
		}
	}
	if len(clauses) == 0 {
		return fallbackReason
	}
	return strings.Join(clauses, ", ")
}

// IsStrongReason reports whether a reason should survive the
// popularity override.
func IsStrongReason(reason string) bool {
	return strings.HasPrefix(reason, "Excellent skill match")
}
