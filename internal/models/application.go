package models

type Application struct {
	BaseModel
	CandidateID string            `gorm:"index:idx_app_candidate_job,unique;not null"`
	JobID       string            `gorm:"index:idx_app_candidate_job,unique;not null"`
	Status      ApplicationStatus `gorm:"type:varchar(20);default:'applied'"`

	// Relations
	Candidate *Candidate `gorm:"foreignKey:CandidateID"`
	Job       *Job       `gorm:"foreignKey:JobID"`
}
