package dto

import "jobmatch_backend/internal/algorithms"

// ScoredJob is one ranked job in a recommendation list.
type ScoredJob struct {
	JobID     string                     `json:"job_id"`
	Title     string                     `json:"title"`
	Company   string                     `json:"company"`
	Score     float64                    `json:"score"`
	Reason    string                     `json:"reason"`
	Breakdown *algorithms.ScoreBreakdown `json:"breakdown,omitempty"`
}

// RecommendationView is the persisted snapshot row as served to
// callers.
type RecommendationView struct {
	JobID    string  `json:"job_id"`
	Title    string  `json:"title"`
	Company  string  `json:"company"`
	Score    float64 `json:"score"`
	Reason   string  `json:"reason"`
	IsViewed bool    `json:"is_viewed"`
}

// FitPrediction is a single fit-probability response. Probability is
// -1.0 when the model is unavailable; callers must treat that as "no
// ML signal", not as a 0% fit.
type FitPrediction struct {
	CandidateID string  `json:"candidate_id"`
	JobID       string  `json:"job_id"`
	Probability float64 `json:"probability"`
}
