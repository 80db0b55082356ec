package services

import (
	"jobmatch_backend/internal/logger"
	"jobmatch_backend/internal/ml"
	"jobmatch_backend/internal/repositories"
	"jobmatch_backend/internal/services/dto"
)

// PredictionService exposes hire-fit probabilities over stored
// candidate and job records.
type PredictionService interface {
	PredictFit(candidateID, jobID string) (*dto.FitPrediction, error)
	PredictFitForOpenJobs(candidateID string) ([]dto.FitPrediction, error)
	ModelReady() bool
	ReloadModel()
}

type predictionService struct {
	candidateRepo repositories.CandidateRepository
	jobRepo       repositories.JobRepository
	predictor     *ml.FitPredictor
}

func NewPredictionService(
	candidateRepo repositories.CandidateRepository,
	jobRepo repositories.JobRepository,
	predictor *ml.FitPredictor,
) PredictionService {
	return &predictionService{
		candidateRepo: candidateRepo,
		jobRepo:       jobRepo,
		predictor:     predictor,
	}
}

// PredictFit scores one candidate/job pair. A missing model yields the
// -1.0 sentinel, not an error; missing records are errors.
func (s *predictionService) PredictFit(candidateID, jobID string) (*dto.FitPrediction, error) {
	candidate, err := s.candidateRepo.FindByID(candidateID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, err
	}

	attempts, err := s.candidateRepo.AssessmentAttemptsFor(candidateID)
	if err != nil {
		logger.WithError(err).Warn("predicting without assessment history",
			"candidate_id", candidateID)
		attempts = nil
	}

	proba := s.predictor.Predict(candidate, job, candidate.SkillScores, attempts)
	return &dto.FitPrediction{
		CandidateID: candidateID,
		JobID:       jobID,
		Probability: proba,
	}, nil
}

// PredictFitForOpenJobs scores the candidate against every open job.
func (s *predictionService) PredictFitForOpenJobs(candidateID string) ([]dto.FitPrediction, error) {
	candidate, err := s.candidateRepo.FindByID(candidateID)
	if err != nil {
		return nil, err
	}
	jobs, err := s.jobRepo.FindOpen()
	if err != nil {
		return nil, err
	}

	attempts, err := s.candidateRepo.AssessmentAttemptsFor(candidateID)
	if err != nil {
		attempts = nil
	}

	probas := s.predictor.PredictForJobs(candidate, jobs, candidate.SkillScores, attempts)
	out := make([]dto.FitPrediction, len(jobs))
	for i := range jobs {
		out[i] = dto.FitPrediction{
			CandidateID: candidateID,
			JobID:       jobs[i].ID,
			Probability: probas[i],
		}
	}
	return out, nil
}

func (s *predictionService) ModelReady() bool {
	return s.predictor.Ready()
}

func (s *predictionService) ReloadModel() {
	s.predictor.Reload()
}
