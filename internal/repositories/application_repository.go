package repositories

import (
	"errors"

	"jobmatch_backend/internal/models"

	"gorm.io/gorm"
)

var ErrApplicationExists = errors.New("application already exists for this job")

type ApplicationRepository interface {
	Create(app *models.Application) error
	FindByCandidate(candidateID string) ([]models.Application, error)
	AppliedJobIDs(candidateID string) ([]string, error)
	FindLabeled() ([]models.Application, error)
}

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

func (r *ApplicationRepositoryImpl) Create(app *models.Application) error {
	var existing models.Application
	err := r.db.Where("candidate_id = ? AND job_id = ?", app.CandidateID, app.JobID).
		First(&existing).Error
	if err == nil {
		return ErrApplicationExists
	}
	return r.db.Create(app).Error
}

func (r *ApplicationRepositoryImpl) FindByCandidate(candidateID string) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.Where("candidate_id = ?", candidateID).Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) AppliedJobIDs(candidateID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Application{}).
		Where("candidate_id = ?", candidateID).
		Pluck("job_id", &ids).Error
	return ids, err
}

// FindLabeled returns applications whose status maps to a definitive
// training label; Applied rows have an unknown outcome and are skipped.
func (r *ApplicationRepositoryImpl) FindLabeled() ([]models.Application, error) {
	var apps []models.Application
	err := r.db.Preload("Candidate").Preload("Candidate.SkillScores").
		Preload("Job").Preload("Job.SkillRequirements").
		Where("status IN ?", []models.ApplicationStatus{
			models.ApplicationHired,
			models.ApplicationOffered,
			models.ApplicationInterview,
			models.ApplicationShortlisted,
			models.ApplicationRejected,
		}).
		Find(&apps).Error
	return apps, err
}
