package app

import (
	"context"
	"fmt"

	"jobmatch_backend/internal/config"
	"jobmatch_backend/internal/database"
	"jobmatch_backend/internal/handlers"
	"jobmatch_backend/internal/logger"
	"jobmatch_backend/internal/middleware"
	"jobmatch_backend/internal/ml"
	"jobmatch_backend/internal/repositories"
	"jobmatch_backend/internal/routes"
	"jobmatch_backend/internal/services"
	"jobmatch_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Run boots the API server: config, logger, database, migrations,
// services, background worker, router.
func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("failed to run migrations", "error", err)
	}
	logger.Info("database connected and migrated")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ginRouter := SetupRouter(ctx, cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("server startup error", "error", err)
	}
}

// SetupRouter builds the full dependency graph and returns the gin
// engine. ctx bounds the lifetime of background workers.
func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	container, worker := initializeServices(cfg, gormDB)
	worker.Start(ctx)

	appHandlers := initializeHandlers(cfg, gormDB, container)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery(), middleware.RequestIDMiddleware(), middleware.LoggingMiddleware())

	routes.RegisterRoutes(ginRouter, appHandlers)
	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB) (*services.ServiceContainer, *workers.SimilarityWorker) {
	candidateRepo := repositories.NewCandidateRepository(gormDB)
	jobRepo := repositories.NewJobRepository(gormDB)
	applicationRepo := repositories.NewApplicationRepository(gormDB)
	interactionRepo := repositories.NewInteractionRepository(gormDB)
	similarityRepo := repositories.NewSimilarityRepository(gormDB)
	recommendationRepo := repositories.NewRecommendationRepository(gormDB)

	contentScorer := services.NewContentScorer()
	collaborativeScorer := services.NewCollaborativeScorer(
		candidateRepo, applicationRepo, interactionRepo, similarityRepo, jobRepo,
		cfg.Recommender.NeighborLimit, cfg.Recommender.MinSimilarity)

	worker := workers.NewSimilarityWorker(collaborativeScorer, cfg.Recommender.SimilarityQueueLen)

	recommender := services.NewHybridRecommender(
		contentScorer,
		collaborativeScorer,
		candidateRepo,
		jobRepo,
		applicationRepo,
		interactionRepo,
		recommendationRepo,
		worker,
		cfg.Recommender.PopularityMinApps,
	)

	predictor := ml.NewFitPredictor(cfg.ML.ArtifactDir)
	predictionService := services.NewPredictionService(candidateRepo, jobRepo, predictor)

	return &services.ServiceContainer{
		ContentScorer:       contentScorer,
		CollaborativeScorer: collaborativeScorer,
		Recommender:         recommender,
		PredictionService:   predictionService,
	}, worker
}

func initializeHandlers(cfg *config.Config, gormDB *gorm.DB, container *services.ServiceContainer) *handlers.AppHandlers {
	candidateRepo := repositories.NewCandidateRepository(gormDB)
	jobRepo := repositories.NewJobRepository(gormDB)
	applicationRepo := repositories.NewApplicationRepository(gormDB)

	builder := ml.NewDatasetBuilder(applicationRepo, candidateRepo, cfg.ML.MinSamples, cfg.ML.SyntheticCount)
	trainer := ml.NewModelTrainer(builder, cfg.ML.ArtifactDir)

	base := handlers.NewBaseHandler()
	return &handlers.AppHandlers{
		ProfileHandler:        handlers.NewProfileHandler(base, candidateRepo, jobRepo),
		RecommendationHandler: handlers.NewRecommendationHandler(base, container.Recommender, cfg.Recommender.DefaultLimit),
		PredictionHandler:     handlers.NewPredictionHandler(base, container.PredictionService, trainer),
	}
}
