package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	authMiddleware "github.com/lumenacademy/learn-service/internal/auth/middleware"
	"github.com/lumenacademy/learn-service/internal/models"
	"go.uber.org/zap"
)

// EnrollmentService defines methods for enrollment business logic
type EnrollmentService interface {
	// Enroll creates an enrollment for the learner in a course
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseSlug" is the slug of the course.
	//
	// Returns the enrollment, models.ErrAlreadyEnrolled on a duplicate
	// attempt, and an error if any.
	Enroll(ctx context.Context, userID int, courseSlug string) (*models.Enrollment, error)
	// Unenroll removes the learner's enrollment from a course
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseSlug" is the slug of the course.
	//
	// Returns models.ErrNotEnrolled when no enrollment exists.
	Unenroll(ctx context.Context, userID int, courseSlug string) error
}

// EnrollmentHandler handles HTTP requests for enrollment operations
type EnrollmentHandler struct {
	BaseHandler
	service EnrollmentService
}

// NewEnrollmentHandler creates a new enrollment handler
func NewEnrollmentHandler(svc EnrollmentService, logger *zap.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all enrollment handler routes
func (h *EnrollmentHandler) RegisterRoutes(r chi.Router, authMw func(http.Handler) http.Handler) {
	r.Route("/courses/{slug}/enrollment", func(r chi.Router) {
		r.Use(authMw)
		r.Post("/", h.Enroll)
		r.Delete("/", h.Unenroll)
	})
}

// Enroll handles POST /courses/{slug}/enrollment
// @Summary Enroll in a course
// @Description Create an enrollment for the authenticated learner
// @Tags enrollments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Course slug"
// @Success 201 {object} models.Enrollment "Created enrollment"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 409 {object} map[string]string "Already enrolled"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{slug}/enrollment [post]
func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	courseSlug := chi.URLParam(r, "slug")
	if courseSlug == "" {
		h.RespondError(w, http.StatusBadRequest, "course slug is required")
		return
	}

	enrollment, err := h.service.Enroll(r.Context(), userID, courseSlug)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, enrollment)
}

// Unenroll handles DELETE /courses/{slug}/enrollment
// @Summary Unenroll from a course
// @Description Remove the authenticated learner's enrollment; progress and quiz attempts are kept as history
// @Tags enrollments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Course slug"
// @Success 204 "Enrollment removed"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not enrolled"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{slug}/enrollment [delete]
func (h *EnrollmentHandler) Unenroll(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	courseSlug := chi.URLParam(r, "slug")
	if courseSlug == "" {
		h.RespondError(w, http.StatusBadRequest, "course slug is required")
		return
	}

	if err := h.service.Unenroll(r.Context(), userID, courseSlug); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
