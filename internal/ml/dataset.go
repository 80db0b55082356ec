package ml

import (
	"fmt"

	"jobmatch_backend/internal/logger"
	"jobmatch_backend/internal/repositories"
	"jobmatch_backend/pkg/apperrors"
)

// Dataset is the assembled training table: one feature row per labeled
// application plus synthetic backfill.
type Dataset struct {
	Features []FeatureVector
	Labels   []int
	Meta     DatasetMeta
}

type DatasetMeta struct {
	NReal         int     `json:"n_real"`
	NSynthetic    int     `json:"n_synthetic"`
	PositiveRatio float64 `json:"positive_ratio"`
}

// DatasetBuilder turns stored application outcomes into training rows.
// Candidate features reflect the candidate's current profile, not the
// profile at application time; history is not versioned.
type DatasetBuilder struct {
	applicationRepo repositories.ApplicationRepository
	candidateRepo   repositories.CandidateRepository
	minSamples      int
	syntheticCount  int
	syntheticSeed   uint64
}

func NewDatasetBuilder(
	applicationRepo repositories.ApplicationRepository,
	candidateRepo repositories.CandidateRepository,
	minSamples, syntheticCount int,
) *DatasetBuilder {
	return &DatasetBuilder{
		applicationRepo: applicationRepo,
		candidateRepo:   candidateRepo,
		minSamples:      minSamples,
		syntheticCount:  syntheticCount,
		syntheticSeed:   42,
	}
}

// Build extracts features for every labeled application, appends the
// configured synthetic rows, and fails when the combined dataset is
// still below the minimum sample count.
func (b *DatasetBuilder) Build() (*Dataset, error) {
	apps, err := b.applicationRepo.FindLabeled()
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	ds := &Dataset{}
	for i := range apps {
		app := &apps[i]
		label, ok := app.Status.OutcomeLabel()
		if !ok || app.Candidate == nil || app.Job == nil {
			continue
		}

		attempts, err := b.candidateRepo.AssessmentAttemptsFor(app.CandidateID)
		if err != nil {
			logger.WithError(err).Warn("skipping assessment history for candidate",
				"candidate_id", app.CandidateID)
			attempts = nil
		}

		v := ExtractFeatures(app.Candidate, app.Job, app.Candidate.SkillScores, attempts)
		ds.Features = append(ds.Features, v)
		ds.Labels = append(ds.Labels, int(label))
		ds.Meta.NReal++
	}

	if b.syntheticCount > 0 {
		synthFeatures, synthLabels := GenerateSynthetic(b.syntheticCount, b.syntheticSeed)
		ds.Features = append(ds.Features, synthFeatures...)
		ds.Labels = append(ds.Labels, synthLabels...)
		ds.Meta.NSynthetic = b.syntheticCount
	}

	total := len(ds.Labels)
	if total < b.minSamples {
		return nil, apperrors.ErrTrainingFailed(
			fmt.Errorf("dataset too small: %d samples, need at least %d", total, b.minSamples))
	}

	positives := 0
	for _, y := range ds.Labels {
		if y == 1 {
			positives++
		}
	}
	ds.Meta.PositiveRatio = float64(positives) / float64(total)

	logger.Info("training dataset assembled",
		"real", ds.Meta.NReal,
		"synthetic", ds.Meta.NSynthetic,
		"positive_ratio", ds.Meta.PositiveRatio)

	return ds, nil
}
