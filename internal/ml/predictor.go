package ml

import (
	"sync"

	"jobmatch_backend/internal/logger"
	"jobmatch_backend/internal/models"
)

// SentinelNoModel is returned by Predict when no trained artifacts can
// be loaded or prediction panics. Callers must treat it as "no score",
// never as a probability.
const SentinelNoModel = -1.0

// FitPredictor serves hire-probability scores from the last saved
// artifacts. Artifacts load lazily on first use and stay cached until
// Reload.
type FitPredictor struct {
	artifactDir string

	mu      sync.Mutex
	forest  *RandomForest
	scaler  *StandardScaler
	loadErr error
	loaded  bool
}

func NewFitPredictor(artifactDir string) *FitPredictor {
	return &FitPredictor{artifactDir: artifactDir}
}

// ensureLoaded loads artifacts once; a failed load is remembered and
// not retried until Reload.
func (p *FitPredictor) ensureLoaded() (*RandomForest, *StandardScaler, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.loaded {
		p.forest, p.scaler, p.loadErr = LoadArtifacts(p.artifactDir)
		p.loaded = true
		if p.loadErr != nil {
			logger.WithError(p.loadErr).Warn("fit model artifacts unavailable",
				"dir", p.artifactDir)
		} else {
			logger.Info("fit model artifacts loaded",
				"dir", p.artifactDir, "trees", len(p.forest.Trees))
		}
	}
	return p.forest, p.scaler, p.loadErr
}

// Reload drops the cached artifacts so the next prediction reads the
// newest ones. Call after a training run replaces the files.
func (p *FitPredictor) Reload() {
	p.mu.Lock()
	p.forest = nil
	p.scaler = nil
	p.loadErr = nil
	p.loaded = false
	p.mu.Unlock()
}

// Ready reports whether a model is currently loadable.
func (p *FitPredictor) Ready() bool {
	_, _, err := p.ensureLoaded()
	return err == nil
}

// Predict returns the hire probability in [0,1] for the pair, or
// SentinelNoModel when the model is unavailable. It never panics.
func (p *FitPredictor) Predict(
	candidate *models.Candidate,
	job *models.Job,
	skillScores []models.SkillScore,
	attempts []models.AssessmentAttempt,
) (proba float64) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("fit prediction panicked", "recovered", r)
			proba = SentinelNoModel
		}
	}()

	forest, scaler, err := p.ensureLoaded()
	if err != nil {
		return SentinelNoModel
	}

	v := ExtractFeatures(candidate, job, skillScores, attempts)
	return forest.PredictProba(scaler.Transform(v))
}

// PredictionPair is one candidate/job row in a batch request.
type PredictionPair struct {
	Candidate *models.Candidate
	Job       *models.Job
}

// PredictBatch scores each pair, preserving order. Skill scores and
// assessment attempts may be passed in maps keyed by candidate ID so
// lookups are not repeated when the same candidate appears in many
// pairs (one candidate against many jobs, or one job against many
// candidates). A candidate missing from the skill-score map falls back
// to their preloaded SkillScores; either map may be nil. A missing
// model yields sentinels for every row.
func (p *FitPredictor) PredictBatch(
	pairs []PredictionPair,
	skillScoresByCandidate map[string][]models.SkillScore,
	attemptsByCandidate map[string][]models.AssessmentAttempt,
) []float64 {
	out := make([]float64, len(pairs))
	forest, scaler, err := p.ensureLoaded()
	if err != nil {
		for i := range out {
			out[i] = SentinelNoModel
		}
		return out
	}

	for i := range pairs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("fit prediction panicked", "recovered", r)
					out[i] = SentinelNoModel
				}
			}()

			candidate := pairs[i].Candidate
			var skillScores []models.SkillScore
			var attempts []models.AssessmentAttempt
			if candidate != nil {
				var ok bool
				if skillScores, ok = skillScoresByCandidate[candidate.ID]; !ok {
					skillScores = candidate.SkillScores
				}
				attempts = attemptsByCandidate[candidate.ID]
			}

			v := ExtractFeatures(candidate, pairs[i].Job, skillScores, attempts)
			out[i] = forest.PredictProba(scaler.Transform(v))
		}()
	}
	return out
}

// PredictForJobs scores one candidate against many jobs, reusing the
// candidate-side inputs for every row. Job order is preserved.
func (p *FitPredictor) PredictForJobs(
	candidate *models.Candidate,
	jobs []models.Job,
	skillScores []models.SkillScore,
	attempts []models.AssessmentAttempt,
) []float64 {
	pairs := make([]PredictionPair, len(jobs))
	for i := range jobs {
		pairs[i] = PredictionPair{Candidate: candidate, Job: &jobs[i]}
	}
	if candidate == nil {
		return p.PredictBatch(pairs, nil, nil)
	}
	return p.PredictBatch(pairs,
		map[string][]models.SkillScore{candidate.ID: skillScores},
		map[string][]models.AssessmentAttempt{candidate.ID: attempts},
	)
}
