package services

import (
	"fmt"
	"sort"

	"jobmatch_backend/internal/algorithms"
	"jobmatch_backend/internal/logger"
	"jobmatch_backend/internal/models"
	"jobmatch_backend/internal/repositories"
	"jobmatch_backend/internal/services/dto"
)

// Blend weights when both signals exist. With no collaborative signal
// the content score passes through at full weight: a strong content
// match is never capped at 70% just because the platform is cold.
const (
	contentBlendWeight       = 0.7
	collaborativeBlendWeight = 0.3

	popularityBoost = 0.05
)

// SimilarityScheduler hands similarity refreshes to a background
// worker. Enqueue returns false when the queue is full or no worker is
// running; the caller then falls back to a synchronous update.
type SimilarityScheduler interface {
	Enqueue(candidateID string) bool
}

// HybridRecommender blends content and collaborative scores, persists
// the result snapshot and owns the interaction tracking hooks.
type HybridRecommender interface {
	Recommend(candidateID string, limit int) ([]dto.ScoredJob, error)
	GetPersisted(candidateID string) ([]dto.RecommendationView, error)
	TrackView(candidateID, jobID string) error
	TrackBookmark(candidateID, jobID string) error
	TrackApplication(candidateID, jobID string) error
}

type hybridRecommender struct {
	content            ContentScorer
	collaborative      CollaborativeScorer
	candidateRepo      repositories.CandidateRepository
	jobRepo            repositories.JobRepository
	applicationRepo    repositories.ApplicationRepository
	interactionRepo    repositories.InteractionRepository
	recommendationRepo repositories.RecommendationRepository
	scheduler          SimilarityScheduler
	popularityMinApps  int64
}

func NewHybridRecommender(
	content ContentScorer,
	collaborative CollaborativeScorer,
	candidateRepo repositories.CandidateRepository,
	jobRepo repositories.JobRepository,
	applicationRepo repositories.ApplicationRepository,
	interactionRepo repositories.InteractionRepository,
	recommendationRepo repositories.RecommendationRepository,
	scheduler SimilarityScheduler,
	popularityMinApps int,
) HybridRecommender {
	return &hybridRecommender{
		content:            content,
		collaborative:      collaborative,
		candidateRepo:      candidateRepo,
		jobRepo:            jobRepo,
		applicationRepo:    applicationRepo,
		interactionRepo:    interactionRepo,
		recommendationRepo: recommendationRepo,
		scheduler:          scheduler,
		popularityMinApps:  int64(popularityMinApps),
	}
}

// Recommend computes, persists and returns the candidate's top-N jobs.
// A panic while scoring one batch must never escape to the caller; it
// resolves to an empty list.
func (s *hybridRecommender) Recommend(candidateID string, limit int) (result []dto.ScoredJob, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("recommendation run panicked", "candidate_id", candidateID, "panic", fmt.Sprint(r))
			result, err = []dto.ScoredJob{}, nil
		}
	}()

	candidate, err := s.candidateRepo.FindByID(candidateID)
	if err != nil {
		return nil, err
	}
	pref := candidate.Preference

	appliedIDs, err := s.applicationRepo.AppliedJobIDs(candidateID)
	if err != nil {
		return nil, err
	}

	openJobs, err := s.jobRepo.FindOpenExcluding(appliedIDs)
	if err != nil {
		return nil, err
	}

	contentScores := s.content.ScoreJobs(candidate, openJobs, pref)

	collaborativeScores, err := s.collaborative.Recommend(candidateID, limit)
	if err != nil {
		// Collaborative failures degrade to pure content scoring; a
		// broken similarity cache never aborts recommendations.
		logger.WithError(err).Warn("collaborative scoring failed, using content only",
			"candidate_id", candidateID)
		collaborativeScores = nil
	}

	blended := blend(contentScores, collaborativeScores)

	if err := s.applyPopularityBoost(blended); err != nil {
		logger.WithError(err).Warn("popularity boost skipped", "candidate_id", candidateID)
	}

	sort.SliceStable(blended, func(i, j int) bool {
		return blended[i].Score > blended[j].Score
	})
	if limit > 0 && len(blended) > limit {
		blended = blended[:limit]
	}

	recs := make([]models.Recommendation, 0, len(blended))
	for _, sj := range blended {
		recs = append(recs, models.Recommendation{
			CandidateID: candidateID,
			JobID:       sj.JobID,
			Score:       sj.Score,
			Reason:      sj.Reason,
		})
	}
	if err := s.recommendationRepo.ReplaceForCandidate(candidateID, recs); err != nil {
		return nil, err
	}

	return blended, nil
}

// blend merges the two lists. With an empty collaborative list content
// scores pass through unchanged; otherwise 0.7*content +
// 0.3*collaborative, where a job missing from one side contributes 0
// for that side.
func blend(content, collaborative []dto.ScoredJob) []dto.ScoredJob {
	if len(collaborative) == 0 {
		out := make([]dto.ScoredJob, len(content))
		copy(out, content)
		return out
	}

	merged := make(map[string]*dto.ScoredJob, len(content)+len(collaborative))
	for i := range content {
		sj := content[i]
		sj.Score = contentBlendWeight * sj.Score
		merged[sj.JobID] = &sj
	}
	for i := range collaborative {
		cj := collaborative[i]
		if existing, ok := merged[cj.JobID]; ok {
			existing.Score += collaborativeBlendWeight * cj.Score
			continue
		}
		sj := cj
		sj.Score = collaborativeBlendWeight * sj.Score
		merged[sj.JobID] = &sj
	}

	out := make([]dto.ScoredJob, 0, len(merged))
	for _, sj := range merged {
		out = append(out, *sj)
	}
	return out
}

// applyPopularityBoost adds a small bump to jobs that attract many
// applicants, overriding weak reasons with the popularity note.
func (s *hybridRecommender) applyPopularityBoost(scored []dto.ScoredJob) error {
	if len(scored) == 0 {
		return nil
	}

	jobIDs := make([]string, 0, len(scored))
	for _, sj := range scored {
		jobIDs = append(jobIDs, sj.JobID)
	}
	counts, err := s.jobRepo.CountApplicants(jobIDs)
	if err != nil {
		return err
	}

	for i := range scored {
		if counts[scored[i].JobID] > s.popularityMinApps {
			scored[i].Score += popularityBoost
			if !algorithms.IsStrongReason(scored[i].Reason) {
				scored[i].Reason = algorithms.PopularityReason
			}
		}
	}
	return nil
}

func (s *hybridRecommender) GetPersisted(candidateID string) ([]dto.RecommendationView, error) {
	recs, err := s.recommendationRepo.FindByCandidate(candidateID)
	if err != nil {
		return nil, err
	}

	views := make([]dto.RecommendationView, 0, len(recs))
	for _, rec := range recs {
		view := dto.RecommendationView{
			JobID:    rec.JobID,
			Score:    rec.Score,
			Reason:   rec.Reason,
			IsViewed: rec.IsViewed,
		}
		if rec.Job != nil {
			view.Title = rec.Job.Title
			view.Company = rec.Job.Company
		}
		views = append(views, view)
	}
	return views, nil
}

// Tracking hooks: record the interaction, then refresh the candidate's
// pairwise similarity. The refresh is O(active candidates), so it goes
// through the background scheduler when one is attached.

func (s *hybridRecommender) TrackView(candidateID, jobID string) error {
	if err := s.interactionRepo.RecordView(candidateID, jobID); err != nil {
		return err
	}
	s.refreshSimilarity(candidateID)
	return nil
}

func (s *hybridRecommender) TrackBookmark(candidateID, jobID string) error {
	if err := s.interactionRepo.RecordBookmark(candidateID, jobID); err != nil {
		return err
	}
	s.refreshSimilarity(candidateID)
	return nil
}

func (s *hybridRecommender) TrackApplication(candidateID, jobID string) error {
	err := s.applicationRepo.Create(&models.Application{
		CandidateID: candidateID,
		JobID:       jobID,
		Status:      models.ApplicationApplied,
	})
	if err != nil {
		return err
	}
	s.refreshSimilarity(candidateID)
	return nil
}

func (s *hybridRecommender) refreshSimilarity(candidateID string) {
	if s.scheduler != nil && s.scheduler.Enqueue(candidateID) {
		return
	}
	if err := s.collaborative.UpdateSimilarity(candidateID); err != nil {
		logger.WithError(err).Warn("similarity refresh failed", "candidate_id", candidateID)
	}
}
