package models

import "time"

// JobView aggregates how many times a candidate opened a job posting.
type JobView struct {
	BaseModel
	CandidateID  string `gorm:"index:idx_view_candidate_job,unique;not null"`
	JobID        string `gorm:"index:idx_view_candidate_job,unique;not null"`
	ViewCount    int    `gorm:"default:1"`
	LastViewedAt time.Time
}

type JobBookmark struct {
	BaseModel
	CandidateID string `gorm:"index:idx_bookmark_candidate_job,unique;not null"`
	JobID       string `gorm:"index:idx_bookmark_candidate_job,unique;not null"`
}

// UserSimilarity is the directed pairwise similarity cache. The
// symmetric pair is always written in both directions.
type UserSimilarity struct {
	BaseModel
	UserAID    string  `gorm:"index:idx_similarity_pair,unique;not null"`
	UserBID    string  `gorm:"index:idx_similarity_pair,unique;not null"`
	Score      float64 // 0-1
	ComputedAt time.Time
}
