// Offline training entrypoint. Builds the dataset from stored
// application outcomes, trains the fit model and writes the artifacts
// the API server loads.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"jobmatch_backend/internal/config"
	"jobmatch_backend/internal/database"
	"jobmatch_backend/internal/logger"
	"jobmatch_backend/internal/ml"
	"jobmatch_backend/internal/repositories"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("failed to run migrations", "error", err)
	}

	applicationRepo := repositories.NewApplicationRepository(gormDB)
	candidateRepo := repositories.NewCandidateRepository(gormDB)

	builder := ml.NewDatasetBuilder(applicationRepo, candidateRepo, cfg.ML.MinSamples, cfg.ML.SyntheticCount)
	trainer := ml.NewModelTrainer(builder, cfg.ML.ArtifactDir)

	report, err := trainer.Train()
	if err != nil {
		logger.Error("training failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("training complete: holdout F1 %.3f, AUC %.3f\n", report.Holdout.F1, report.Holdout.AUC)
	fmt.Printf("report written to %s\n", filepath.Join(cfg.ML.ArtifactDir, ml.ReportFileName))
}
