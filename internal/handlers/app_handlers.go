package handlers

// AppHandlers bundles the constructed handlers for route registration.
type AppHandlers struct {
	ProfileHandler        *ProfileHandler
	RecommendationHandler *RecommendationHandler
	PredictionHandler     *PredictionHandler
}
