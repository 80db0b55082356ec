package handlers

import (
	"errors"
	"strconv"

	"jobmatch_backend/internal/logger"
	"jobmatch_backend/internal/repositories"
	"jobmatch_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type BaseHandler struct{}

func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// HandleServiceError maps known repository sentinels to HTTP errors
// before falling through to the generic AppError renderer.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repositories.ErrCandidateNotFound),
		errors.Is(err, repositories.ErrJobNotFound),
		errors.Is(err, repositories.ErrPreferenceNotFound):
		apperrors.HandleError(c, apperrors.ErrNotFound(err))
	case errors.Is(err, repositories.ErrApplicationExists):
		apperrors.HandleError(c, apperrors.ErrAlreadyExists(err))
	default:
		apperrors.HandleError(c, err)
	}
}

// BindJSON binds the request body and renders a 400 on failure.
func (h *BaseHandler) BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		logger.WithError(err).Warn("failed to bind request body", "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.ErrValidation("request", "Invalid request body: "+err.Error()))
		return false
	}
	return true
}

// ParseQueryInt reads an integer query parameter with a default.
func ParseQueryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
