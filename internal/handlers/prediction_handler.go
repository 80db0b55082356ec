package handlers

import (
	"net/http"

	"jobmatch_backend/internal/ml"
	"jobmatch_backend/internal/services"
	"jobmatch_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type PredictionHandler struct {
	*BaseHandler
	predictionService services.PredictionService
	trainer           *ml.ModelTrainer
}

func NewPredictionHandler(base *BaseHandler, predictionService services.PredictionService, trainer *ml.ModelTrainer) *PredictionHandler {
	return &PredictionHandler{
		BaseHandler:       base,
		predictionService: predictionService,
		trainer:           trainer,
	}
}

func (h *PredictionHandler) RegisterRoutes(r *gin.RouterGroup) {
	fit := r.Group("/candidates/:candidateId/fit")
	{
		fit.GET("/jobs/:jobId", h.PredictFit)
		fit.GET("/jobs", h.PredictFitForOpenJobs)
	}

	admin := r.Group("/admin/ml")
	{
		admin.POST("/train", h.TrainModel)
		admin.POST("/reload", h.ReloadModel)
		admin.GET("/status", h.ModelStatus)
		admin.GET("/report", h.TrainingReport)
	}
}

// PredictFit returns the hire probability for one pair. When no model
// is trained yet the response is a 503 rather than the -1.0 sentinel,
// which is internal to the engine.
func (h *PredictionHandler) PredictFit(c *gin.Context) {
	prediction, err := h.predictionService.PredictFit(c.Param("candidateId"), c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if prediction.Probability == ml.SentinelNoModel {
		apperrors.HandleError(c, apperrors.ErrModelUnavailable)
		return
	}
	c.JSON(http.StatusOK, prediction)
}

func (h *PredictionHandler) PredictFitForOpenJobs(c *gin.Context) {
	predictions, err := h.predictionService.PredictFitForOpenJobs(c.Param("candidateId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if !h.predictionService.ModelReady() {
		apperrors.HandleError(c, apperrors.ErrModelUnavailable)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"predictions": predictions,
		"total":       len(predictions),
	})
}

// TrainModel kicks off a synchronous training run and reloads the
// predictor when it succeeds.
func (h *PredictionHandler) TrainModel(c *gin.Context) {
	report, err := h.trainer.Train()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.predictionService.ReloadModel()
	c.JSON(http.StatusOK, report)
}

// ReloadModel drops the predictor's cache so the next request reads
// the artifacts on disk. Used after an out-of-process training run.
func (h *PredictionHandler) ReloadModel(c *gin.Context) {
	h.predictionService.ReloadModel()
	c.JSON(http.StatusOK, gin.H{
		"ready": h.predictionService.ModelReady(),
	})
}

func (h *PredictionHandler) ModelStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ready": h.predictionService.ModelReady(),
	})
}

// TrainingReport returns the metrics of the last completed run.
func (h *PredictionHandler) TrainingReport(c *gin.Context) {
	report, err := h.trainer.LastReport()
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrNotFound(err))
		return
	}
	c.JSON(http.StatusOK, report)
}
