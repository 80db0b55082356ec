package repositories

import (
	"errors"
	"time"

	"jobmatch_backend/internal/models"

	"gorm.io/gorm"
)

type InteractionRepository interface {
	RecordView(candidateID, jobID string) error
	RecordBookmark(candidateID, jobID string) error
	ViewsByCandidate(candidateID string) ([]models.JobView, error)
	ViewedJobIDs(candidateID string) ([]string, error)
}

type InteractionRepositoryImpl struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &InteractionRepositoryImpl{db: db}
}

// RecordView upserts the (candidate, job) view row, incrementing the
// counter on repeat views.
func (r *InteractionRepositoryImpl) RecordView(candidateID, jobID string) error {
	var view models.JobView
	err := r.db.Where("candidate_id = ? AND job_id = ?", candidateID, jobID).
		First(&view).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.Create(&models.JobView{
				CandidateID:  candidateID,
				JobID:        jobID,
				ViewCount:    1,
				LastViewedAt: time.Now(),
			}).Error
		}
		return err
	}

	return r.db.Model(&view).Updates(map[string]interface{}{
		"view_count":     gorm.Expr("view_count + 1"),
		"last_viewed_at": time.Now(),
	}).Error
}

// RecordBookmark is idempotent: re-bookmarking is a no-op.
func (r *InteractionRepositoryImpl) RecordBookmark(candidateID, jobID string) error {
	var bookmark models.JobBookmark
	err := r.db.Where("candidate_id = ? AND job_id = ?", candidateID, jobID).
		First(&bookmark).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(&models.JobBookmark{
		CandidateID: candidateID,
		JobID:       jobID,
	}).Error
}

func (r *InteractionRepositoryImpl) ViewsByCandidate(candidateID string) ([]models.JobView, error) {
	var views []models.JobView
	err := r.db.Where("candidate_id = ?", candidateID).Find(&views).Error
	return views, err
}

func (r *InteractionRepositoryImpl) ViewedJobIDs(candidateID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.JobView{}).
		Where("candidate_id = ?", candidateID).
		Pluck("job_id", &ids).Error
	return ids, err
}
