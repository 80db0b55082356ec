package repositories

import (
	"jobmatch_backend/internal/models"

	"gorm.io/gorm"
)

type RecommendationRepository interface {
	ReplaceForCandidate(candidateID string, recs []models.Recommendation) error
	FindByCandidate(candidateID string) ([]models.Recommendation, error)
	MarkViewed(candidateID, jobID string) error
}

type RecommendationRepositoryImpl struct {
	db *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &RecommendationRepositoryImpl{db: db}
}

// ReplaceForCandidate persists a recommendation run as a full-replace
// snapshot: delete everything for the candidate, then bulk-insert the
// new top-N. Never an incremental merge.
func (r *RecommendationRepositoryImpl) ReplaceForCandidate(candidateID string, recs []models.Recommendation) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("candidate_id = ?", candidateID).
			Delete(&models.Recommendation{}).Error; err != nil {
			return err
		}
		if len(recs) == 0 {
			return nil
		}
		return tx.Create(&recs).Error
	})
}

func (r *RecommendationRepositoryImpl) FindByCandidate(candidateID string) ([]models.Recommendation, error) {
	var recs []models.Recommendation
	err := r.db.Preload("Job").
		Where("candidate_id = ?", candidateID).
		Order("score DESC").
		Find(&recs).Error
	return recs, err
}

func (r *RecommendationRepositoryImpl) MarkViewed(candidateID, jobID string) error {
	return r.db.Model(&models.Recommendation{}).
		Where("candidate_id = ? AND job_id = ?", candidateID, jobID).
		Update("is_viewed", true).Error
}
