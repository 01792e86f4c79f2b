package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdminResetService defines methods for operational progress resets
type AdminResetService interface {
	// ResetLessonProgress removes a learner's progress and attempts for one lesson
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "lessonID" is the ID of the lesson.
	//
	// Returns an error if any.
	ResetLessonProgress(ctx context.Context, userID, lessonID int) error
	// ResetCourse removes a learner's attempts, progress and enrollment in a course
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns an error if any.
	ResetCourse(ctx context.Context, userID, courseID int) error
}

// AdminHandler handles API-key guarded operational endpoints
type AdminHandler struct {
	BaseHandler
	service AdminResetService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(svc AdminResetService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all admin handler routes
func (h *AdminHandler) RegisterRoutes(r chi.Router, apiKeyMw func(http.Handler) http.Handler) {
	r.Route("/admin/users/{userID}", func(r chi.Router) {
		r.Use(apiKeyMw)
		r.Delete("/lessons/{lessonID}/progress", h.ResetLessonProgress)
		r.Delete("/courses/{courseID}", h.ResetCourse)
	})
}

// ResetLessonProgress handles DELETE /admin/users/{userID}/lessons/{lessonID}/progress
// @Summary Reset lesson progress
// @Description Remove a learner's progress and quiz attempts for one lesson
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKey
// @Param userID path int true "User ID"
// @Param lessonID path int true "Lesson ID"
// @Success 204 "Progress removed"
// @Failure 400 {object} map[string]string "Invalid path parameters"
// @Failure 401 {object} map[string]string "Missing or invalid API key"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/users/{userID}/lessons/{lessonID}/progress [delete]
func (h *AdminHandler) ResetLessonProgress(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid user ID")
		return
	}
	lessonID, err := strconv.Atoi(chi.URLParam(r, "lessonID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson ID")
		return
	}

	if err := h.service.ResetLessonProgress(r.Context(), userID, lessonID); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.Logger.Info("lesson progress reset",
		zap.Int("user_id", userID),
		zap.Int("lesson_id", lessonID))
	w.WriteHeader(http.StatusNoContent)
}

// ResetCourse handles DELETE /admin/users/{userID}/courses/{courseID}
// @Summary Reset course progress
// @Description Remove a learner's quiz attempts, progress and enrollment in a course
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKey
// @Param userID path int true "User ID"
// @Param courseID path int true "Course ID"
// @Success 204 "Course progress removed"
// @Failure 400 {object} map[string]string "Invalid path parameters"
// @Failure 401 {object} map[string]string "Missing or invalid API key"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/users/{userID}/courses/{courseID} [delete]
func (h *AdminHandler) ResetCourse(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid user ID")
		return
	}
	courseID, err := strconv.Atoi(chi.URLParam(r, "courseID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course ID")
		return
	}

	if err := h.service.ResetCourse(r.Context(), userID, courseID); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.Logger.Info("course progress reset",
		zap.Int("user_id", userID),
		zap.Int("course_id", courseID))
	w.WriteHeader(http.StatusNoContent)
}
