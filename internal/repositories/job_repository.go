package repositories

import (
	"errors"

	"jobmatch_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	Create(job *models.Job) error
	FindByID(id string) (*models.Job, error)
	FindOpen() ([]models.Job, error)
	FindOpenExcluding(jobIDs []string) ([]models.Job, error)
	FindOpenByIDs(ids []string) ([]models.Job, error)
	CountApplicants(jobIDs []string) (map[string]int64, error)
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(id string) (*models.Job, error) {
	var job models.Job
	err := r.db.Preload("SkillRequirements").First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindOpen() ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.Preload("SkillRequirements").
		Where("status = ?", models.JobStatusOpen).Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) FindOpenExcluding(jobIDs []string) ([]models.Job, error) {
	var jobs []models.Job
	q := r.db.Preload("SkillRequirements").Where("status = ?", models.JobStatusOpen)
	if len(jobIDs) > 0 {
		q = q.Where("id NOT IN ?", jobIDs)
	}
	err := q.Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) FindOpenByIDs(ids []string) ([]models.Job, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var jobs []models.Job
	err := r.db.Preload("SkillRequirements").
		Where("status = ? AND id IN ?", models.JobStatusOpen, ids).Find(&jobs).Error
	return jobs, err
}

// CountApplicants returns applicant counts per job, used for the
// popularity boost.
func (r *JobRepositoryImpl) CountApplicants(jobIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(jobIDs))
	if len(jobIDs) == 0 {
		return counts, nil
	}

	type row struct {
		JobID string
		Total int64
	}
	var rows []row
	err := r.db.Model(&models.Application{}).
		Select("job_id, count(*) as total").
		Where("job_id IN ?", jobIDs).
		Group("job_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, rr := range rows {
		counts[rr.JobID] = rr.Total
	}
	return counts, nil
}
