package services

import (
	"sort"

	"jobmatch_backend/internal/algorithms"
	"jobmatch_backend/internal/logger"
	"jobmatch_backend/internal/models"
	"jobmatch_backend/internal/repositories"
	"jobmatch_backend/internal/services/dto"
)

// Similarity component weights (sum to 1.0).
const (
	skillSimWeight      = 0.4
	appliedSimWeight    = 0.3
	viewedSimWeight     = 0.2
	experienceSimWeight = 0.1
)

const (
	appliedSignalWeight = 1.5
	viewedSignalWeight  = 0.5
)

const (
	reasonSimilarApplied = "Candidates with a similar profile applied to this job"
	reasonSimilarViewed  = "Candidates with a similar profile viewed this job"
)

// CollaborativeScorer recommends jobs from the behavior of similar
// candidates and maintains the pairwise similarity cache.
type CollaborativeScorer interface {
	UpdateSimilarity(candidateID string) error
	Recommend(candidateID string, limit int) ([]dto.ScoredJob, error)
}

type collaborativeScorer struct {
	candidateRepo    repositories.CandidateRepository
	applicationRepo  repositories.ApplicationRepository
	interactionRepo  repositories.InteractionRepository
	similarityRepo   repositories.SimilarityRepository
	jobRepo          repositories.JobRepository
	neighborLimit    int
	minNeighborScore float64
}

func NewCollaborativeScorer(
	candidateRepo repositories.CandidateRepository,
	applicationRepo repositories.ApplicationRepository,
	interactionRepo repositories.InteractionRepository,
	similarityRepo repositories.SimilarityRepository,
	jobRepo repositories.JobRepository,
	neighborLimit int,
	minNeighborScore float64,
) CollaborativeScorer {
	if neighborLimit <= 0 {
		neighborLimit = 10
	}
	if minNeighborScore <= 0 {
		minNeighborScore = 0.1
	}
	return &collaborativeScorer{
		candidateRepo:    candidateRepo,
		applicationRepo:  applicationRepo,
		interactionRepo:  interactionRepo,
		similarityRepo:   similarityRepo,
		jobRepo:          jobRepo,
		neighborLimit:    neighborLimit,
		minNeighborScore: minNeighborScore,
	}
}

type interactionProfile struct {
	skills  []string
	applied []string
	viewed  []string
	years   float64
}

func (s *collaborativeScorer) profileFor(c *models.Candidate) (interactionProfile, error) {
	applied, err := s.applicationRepo.AppliedJobIDs(c.ID)
	if err != nil {
		return interactionProfile{}, err
	}
	viewed, err := s.interactionRepo.ViewedJobIDs(c.ID)
	if err != nil {
		return interactionProfile{}, err
	}

	years := 0.0
	if c.ExperienceYears != nil {
		years = *c.ExperienceYears
	}
	return interactionProfile{
		skills:  c.SkillList(),
		applied: applied,
		viewed:  viewed,
		years:   years,
	}, nil
}

// UpdateSimilarity recomputes this candidate's similarity to every
// other candidate of the same role type and rewrites the cache in both
// directions. This is O(active candidates) per call and is meant to
// run from the background worker.
func (s *collaborativeScorer) UpdateSimilarity(candidateID string) error {
	candidate, err := s.candidateRepo.FindByID(candidateID)
	if err != nil {
		return err
	}

	target, err := s.profileFor(candidate)
	if err != nil {
		return err
	}

	// Only candidates of the same user type are compared; cross-type
	// similarity has no meaning for job recommendations.
	others, err := s.candidateRepo.FindActiveByType(candidate.UserType, candidate.ID)
	if err != nil {
		return err
	}

	neighbors := make([]repositories.NeighborScore, 0, len(others))
	for i := range others {
		other, err := s.profileFor(&others[i])
		if err != nil {
			logger.Warn("skipping candidate in similarity update",
				"candidate_id", others[i].ID, "error", err.Error())
			continue
		}

		score := skillSimWeight*algorithms.Jaccard(target.skills, other.skills) +
			appliedSimWeight*algorithms.Jaccard(target.applied, other.applied) +
			viewedSimWeight*algorithms.Jaccard(target.viewed, other.viewed) +
			experienceSimWeight*algorithms.ExperienceCloseness(target.years, other.years)

		if score > 0 {
			neighbors = append(neighbors, repositories.NeighborScore{
				UserID: others[i].ID,
				Score:  score,
			})
		}
	}

	return s.similarityRepo.ReplaceForUser(candidateID, neighbors)
}

// Recommend aggregates the application and view history of the top
// cached neighbors. No similar neighbor yields an empty list, not an
// error: the hybrid layer treats that as "no collaborative signal".
func (s *collaborativeScorer) Recommend(candidateID string, limit int) ([]dto.ScoredJob, error) {
	sims, err := s.similarityRepo.TopNeighbors(candidateID, s.minNeighborScore, s.neighborLimit)
	if err != nil {
		return nil, err
	}
	if len(sims) == 0 {
		return nil, nil
	}

	alreadyApplied, err := s.applicationRepo.AppliedJobIDs(candidateID)
	if err != nil {
		return nil, err
	}
	appliedSet := make(map[string]bool, len(alreadyApplied))
	for _, id := range alreadyApplied {
		appliedSet[id] = true
	}

	weights := make(map[string]float64)
	fromApplication := make(map[string]bool)

	for _, sim := range sims {
		neighborApplied, err := s.applicationRepo.AppliedJobIDs(sim.UserBID)
		if err != nil {
			logger.Warn("skipping neighbor applications", "neighbor_id", sim.UserBID, "error", err.Error())
			continue
		}
		for _, jobID := range neighborApplied {
			if appliedSet[jobID] {
				continue
			}
			weights[jobID] += sim.Score * appliedSignalWeight
			fromApplication[jobID] = true
		}

		neighborViews, err := s.interactionRepo.ViewsByCandidate(sim.UserBID)
		if err != nil {
			logger.Warn("skipping neighbor views", "neighbor_id", sim.UserBID, "error", err.Error())
			continue
		}
		for _, view := range neighborViews {
			if appliedSet[view.JobID] {
				continue
			}
			weights[view.JobID] += sim.Score * viewedSignalWeight * (1 + 0.1*float64(view.ViewCount))
		}
	}

	if len(weights) == 0 {
		return nil, nil
	}

	jobIDs := make([]string, 0, len(weights))
	for id := range weights {
		jobIDs = append(jobIDs, id)
	}

	// Only still-open jobs are recommendable.
	openJobs, err := s.jobRepo.FindOpenByIDs(jobIDs)
	if err != nil {
		return nil, err
	}

	results := make([]dto.ScoredJob, 0, len(openJobs))
	for i := range openJobs {
		job := &openJobs[i]
		reason := reasonSimilarViewed
		if fromApplication[job.ID] {
			reason = reasonSimilarApplied
		}
		// Cap accumulated weights at 1.0 so collaborative scores blend
		// with content scores on the same scale. A single weak neighbor
		// keeps its small weight instead of being stretched to full
		// strength.
		score := weights[job.ID]
		if score > 1.0 {
			score = 1.0
		}
		results = append(results, dto.ScoredJob{
			JobID:   job.ID,
			Title:   job.Title,
			Company: job.Company,
			Score:   score,
			Reason:  reason,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
