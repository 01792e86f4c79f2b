package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lumenacademy/learn-service/internal/models"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// RespondServiceError maps service errors to HTTP statuses and responds.
// Unrecognized errors are logged and answered with a generic 500 so internal
// details never leak to clients.
func (h *BaseHandler) RespondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		h.RespondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, models.ErrAlreadyEnrolled):
		h.RespondError(w, http.StatusConflict, "already enrolled in this course")
	case errors.Is(err, models.ErrNotEnrolled):
		h.RespondError(w, http.StatusForbidden, "not enrolled in this course")
	case errors.Is(err, models.ErrLessonLocked):
		h.RespondError(w, http.StatusForbidden, "lesson is locked, complete the previous lesson first")
	case errors.Is(err, models.ErrIncompleteSubmission):
		h.RespondError(w, http.StatusBadRequest, "all questions must be answered")
	case errors.Is(err, models.ErrEvaluationFailed):
		h.RespondError(w, http.StatusBadGateway, "evaluation failed, please try again")
	default:
		h.Logger.Error("internal error", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
