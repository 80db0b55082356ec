package handlers

import (
	"net/http"

	"jobmatch_backend/internal/models"
	"jobmatch_backend/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

// ProfileHandler covers the minimal write surface the engine feeds on:
// candidates, jobs, preferences and skill evidence.
type ProfileHandler struct {
	*BaseHandler
	candidateRepo repositories.CandidateRepository
	jobRepo       repositories.JobRepository
}

func NewProfileHandler(base *BaseHandler, candidateRepo repositories.CandidateRepository, jobRepo repositories.JobRepository) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:   base,
		candidateRepo: candidateRepo,
		jobRepo:       jobRepo,
	}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	candidates := r.Group("/candidates")
	{
		candidates.POST("", h.CreateCandidate)
		candidates.GET("/:candidateId", h.GetCandidate)
		candidates.PUT("/:candidateId/preference", h.SavePreference)
		candidates.POST("/:candidateId/skill-scores", h.CreateSkillScore)
		candidates.POST("/:candidateId/assessments", h.CreateAssessmentAttempt)
	}

	jobs := r.Group("/jobs")
	{
		jobs.POST("", h.CreateJob)
		jobs.GET("/:jobId", h.GetJob)
	}
}

func (h *ProfileHandler) CreateCandidate(c *gin.Context) {
	var candidate models.Candidate
	if !h.BindJSON(c, &candidate) {
		return
	}
	if err := h.candidateRepo.Create(&candidate); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, candidate)
}

func (h *ProfileHandler) GetCandidate(c *gin.Context) {
	candidate, err := h.candidateRepo.FindByID(c.Param("candidateId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidate)
}

type preferenceRequest struct {
	PreferredJobTypes   []string `json:"preferred_job_types"`
	PreferredLocations  []string `json:"preferred_locations"`
	IndustryPreferences []string `json:"industry_preferences"`
	MinSalary           *float64 `json:"min_salary"`
	RemotePreference    bool     `json:"remote_preference"`
}

// SavePreference upserts the candidate's job preferences; these drive
// 35% of the content score.
func (h *ProfileHandler) SavePreference(c *gin.Context) {
	candidateID := c.Param("candidateId")
	if _, err := h.candidateRepo.FindByID(candidateID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req preferenceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	pref := &models.Preference{
		CandidateID:         candidateID,
		PreferredJobTypes:   pq.StringArray(req.PreferredJobTypes),
		PreferredLocations:  pq.StringArray(req.PreferredLocations),
		IndustryPreferences: pq.StringArray(req.IndustryPreferences),
		MinSalary:           req.MinSalary,
		RemotePreference:    req.RemotePreference,
	}
	if err := h.candidateRepo.SavePreference(pref); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pref)
}

func (h *ProfileHandler) CreateSkillScore(c *gin.Context) {
	var score models.SkillScore
	if !h.BindJSON(c, &score) {
		return
	}
	score.CandidateID = c.Param("candidateId")
	if err := h.candidateRepo.CreateSkillScore(&score); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, score)
}

func (h *ProfileHandler) CreateAssessmentAttempt(c *gin.Context) {
	var attempt models.AssessmentAttempt
	if !h.BindJSON(c, &attempt) {
		return
	}
	attempt.CandidateID = c.Param("candidateId")
	if err := h.candidateRepo.CreateAssessmentAttempt(&attempt); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, attempt)
}

func (h *ProfileHandler) CreateJob(c *gin.Context) {
	var job models.Job
	if !h.BindJSON(c, &job) {
		return
	}
	if err := h.jobRepo.Create(&job); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *ProfileHandler) GetJob(c *gin.Context) {
	job, err := h.jobRepo.FindByID(c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}
