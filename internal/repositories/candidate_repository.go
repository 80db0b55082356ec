package repositories

import (
	"errors"

	"jobmatch_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCandidateNotFound  = errors.New("candidate not found")
	ErrPreferenceNotFound = errors.New("preference not found")
)

type CandidateRepository interface {
	Create(candidate *models.Candidate) error
	FindByID(id string) (*models.Candidate, error)
	FindActiveByType(userType models.UserType, excludeID string) ([]models.Candidate, error)
	SkillScoresFor(candidateID string) ([]models.SkillScore, error)
	AssessmentAttemptsFor(candidateID string) ([]models.AssessmentAttempt, error)
	PreferenceFor(candidateID string) (*models.Preference, error)
	SavePreference(pref *models.Preference) error
	CreateSkillScore(score *models.SkillScore) error
	CreateAssessmentAttempt(attempt *models.AssessmentAttempt) error
}

type CandidateRepositoryImpl struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &CandidateRepositoryImpl{db: db}
}

func (r *CandidateRepositoryImpl) Create(candidate *models.Candidate) error {
	return r.db.Create(candidate).Error
}

func (r *CandidateRepositoryImpl) FindByID(id string) (*models.Candidate, error) {
	var candidate models.Candidate
	err := r.db.Preload("SkillScores").Preload("Preference").
		First(&candidate, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}
	return &candidate, nil
}

// FindActiveByType lists all candidates of the same broad role type,
// optionally excluding one candidate (the one being compared).
func (r *CandidateRepositoryImpl) FindActiveByType(userType models.UserType, excludeID string) ([]models.Candidate, error) {
	var candidates []models.Candidate
	q := r.db.Preload("SkillScores").Where("user_type = ?", userType)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Find(&candidates).Error
	return candidates, err
}

func (r *CandidateRepositoryImpl) SkillScoresFor(candidateID string) ([]models.SkillScore, error) {
	var scores []models.SkillScore
	err := r.db.Where("candidate_id = ?", candidateID).Find(&scores).Error
	return scores, err
}

func (r *CandidateRepositoryImpl) AssessmentAttemptsFor(candidateID string) ([]models.AssessmentAttempt, error) {
	var attempts []models.AssessmentAttempt
	err := r.db.Where("candidate_id = ?", candidateID).Find(&attempts).Error
	return attempts, err
}

func (r *CandidateRepositoryImpl) PreferenceFor(candidateID string) (*models.Preference, error) {
	var pref models.Preference
	err := r.db.Where("candidate_id = ?", candidateID).First(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPreferenceNotFound
		}
		return nil, err
	}
	return &pref, nil
}

func (r *CandidateRepositoryImpl) SavePreference(pref *models.Preference) error {
	return r.db.Save(pref).Error
}

func (r *CandidateRepositoryImpl) CreateSkillScore(score *models.SkillScore) error {
	return r.db.Create(score).Error
}

func (r *CandidateRepositoryImpl) CreateAssessmentAttempt(attempt *models.AssessmentAttempt) error {
	return r.db.Create(attempt).Error
}
