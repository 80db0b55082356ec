package services

// ServiceContainer holds every application service.
type ServiceContainer struct {
	ContentScorer       ContentScorer
	CollaborativeScorer CollaborativeScorer
	Recommender         HybridRecommender
	PredictionService   PredictionService
}
