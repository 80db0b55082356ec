package models

import "github.com/lib/pq"

// Preference holds a candidate's stated job preferences. Every field is
// optional; scoring resolves absent values to neutral sub-scores rather
// than zero.
type Preference struct {
	BaseModel
	CandidateID         string         `gorm:"uniqueIndex;not null"`
	PreferredJobTypes   pq.StringArray `gorm:"type:text[]"`
	PreferredLocations  pq.StringArray `gorm:"type:text[]"`
	IndustryPreferences pq.StringArray `gorm:"type:text[]"`
	MinSalary           *float64
	RemotePreference    bool `gorm:"default:false"`
}
