package models

// Recommendation is a snapshot row: every recommendation run deletes
// the candidate's existing rows and bulk-inserts the new top-N.
type Recommendation struct {
	BaseModel
	CandidateID string  `gorm:"index;not null"`
	JobID       string  `gorm:"not null"`
	Score       float64 `gorm:"not null"`
	Reason      string
	IsViewed    bool `gorm:"default:false"`

	// Relations
	Job *Job `gorm:"foreignKey:JobID"`
}
