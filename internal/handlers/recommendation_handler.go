package handlers

import (
	"net/http"

	"jobmatch_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type RecommendationHandler struct {
	*BaseHandler
	recommender  services.HybridRecommender
	defaultLimit int
}

func NewRecommendationHandler(base *BaseHandler, recommender services.HybridRecommender, defaultLimit int) *RecommendationHandler {
	return &RecommendationHandler{
		BaseHandler:  base,
		recommender:  recommender,
		defaultLimit: defaultLimit,
	}
}

func (h *RecommendationHandler) RegisterRoutes(r *gin.RouterGroup) {
	rec := r.Group("/candidates/:candidateId/recommendations")
	{
		rec.GET("", h.GetRecommendations)
		rec.GET("/saved", h.GetSavedRecommendations)
	}

	track := r.Group("/candidates/:candidateId/jobs/:jobId")
	{
		track.POST("/view", h.TrackView)
		track.POST("/bookmark", h.TrackBookmark)
		track.POST("/apply", h.TrackApplication)
	}
}

// GetRecommendations recomputes the candidate's recommendations and
// returns the fresh ranking.
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	candidateID := c.Param("candidateId")

	limit := ParseQueryInt(c, "limit", h.defaultLimit)
	if limit <= 0 || limit > 100 {
		limit = h.defaultLimit
	}

	jobs, err := h.recommender.Recommend(candidateID, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendations": jobs,
		"total":           len(jobs),
	})
}

// GetSavedRecommendations returns the last persisted snapshot without
// rescoring.
func (h *RecommendationHandler) GetSavedRecommendations(c *gin.Context) {
	candidateID := c.Param("candidateId")

	views, err := h.recommender.GetPersisted(candidateID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendations": views,
		"total":           len(views),
	})
}

func (h *RecommendationHandler) TrackView(c *gin.Context) {
	if err := h.recommender.TrackView(c.Param("candidateId"), c.Param("jobId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

func (h *RecommendationHandler) TrackBookmark(c *gin.Context) {
	if err := h.recommender.TrackBookmark(c.Param("candidateId"), c.Param("jobId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

func (h *RecommendationHandler) TrackApplication(c *gin.Context) {
	if err := h.recommender.TrackApplication(c.Param("candidateId"), c.Param("jobId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "applied"})
}
