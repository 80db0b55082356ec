package repositories

import (
	"time"

	"jobmatch_backend/internal/models"

	"gorm.io/gorm"
)

// NeighborScore is a computed similarity to one other user.
type NeighborScore struct {
	UserID string
	Score  float64
}

type SimilarityRepository interface {
	ReplaceForUser(userID string, neighbors []NeighborScore) error
	TopNeighbors(userID string, minScore float64, limit int) ([]models.UserSimilarity, error)
}

type SimilarityRepositoryImpl struct {
	db *gorm.DB
}

func NewSimilarityRepository(db *gorm.DB) SimilarityRepository {
	return &SimilarityRepositoryImpl{db: db}
}

// ReplaceForUser rewrites every similarity row touching the user. Each
// pair is stored in both directions so TopNeighbors is a single-column
// lookup.
func (r *SimilarityRepositoryImpl) ReplaceForUser(userID string, neighbors []NeighborScore) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_a_id = ? OR user_b_id = ?", userID, userID).
			Delete(&models.UserSimilarity{}).Error; err != nil {
			return err
		}

		if len(neighbors) == 0 {
			return nil
		}

		now := time.Now()
		rows := make([]models.UserSimilarity, 0, len(neighbors)*2)
		for _, n := range neighbors {
			rows = append(rows,
				models.UserSimilarity{UserAID: userID, UserBID: n.UserID, Score: n.Score, ComputedAt: now},
				models.UserSimilarity{UserAID: n.UserID, UserBID: userID, Score: n.Score, ComputedAt: now},
			)
		}
		return tx.Create(&rows).Error
	})
}

func (r *SimilarityRepositoryImpl) TopNeighbors(userID string, minScore float64, limit int) ([]models.UserSimilarity, error) {
	var sims []models.UserSimilarity
	err := r.db.Where("user_a_id = ? AND score >= ?", userID, minScore).
		Order("score DESC").
		Limit(limit).
		Find(&sims).Error
	return sims, err
}
