package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	authMiddleware "github.com/lumenacademy/learn-service/internal/auth/middleware"
	"github.com/lumenacademy/learn-service/internal/models"
	"go.uber.org/zap"
)

// CatalogService defines methods for learner-facing catalog reads
type CatalogService interface {
	// GetCourses retrieves a paginated course list with derived progress
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "page" is the page number to retrieve.
	// "count" is the number of items per page.
	//
	// Returns a list of courses and an error if any.
	GetCourses(ctx context.Context, userID, page, count int) ([]models.CourseListItem, error)
	// GetCourseDetail retrieves a course with its lesson list and unlock state
	//
	// "ctx" is the context for the request.
	// "courseSlug" is the slug of the course.
	// "userID" is the ID of the user.
	//
	// Returns the course, its lessons and an error if any.
	GetCourseDetail(ctx context.Context, courseSlug string, userID int) (*models.CourseDetailResponse, []models.LessonListItem, error)
	// GetLesson retrieves a full lesson with its content blocks
	//
	// "ctx" is the context for the request.
	// "lessonSlug" is the slug of the lesson.
	// "userID" is the ID of the user.
	//
	// Returns the lesson detail and an error if any.
	GetLesson(ctx context.Context, lessonSlug string, userID int) (*models.LessonDetailResponse, error)
	// VerifyCertificate looks up a certificate by verification code
	//
	// "ctx" is the context for the request.
	// "code" is the verification code.
	//
	// Returns models.ErrNotFound when no certificate matches.
	VerifyCertificate(ctx context.Context, code string) (*models.Certificate, error)
}

// CatalogHandler handles HTTP requests for learner catalog operations
type CatalogHandler struct {
	BaseHandler
	service CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(svc CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all catalog handler routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router, authMw func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMw)
		r.Get("/courses", h.GetCourses)
		r.Get("/courses/{slug}", h.GetCourseDetail)
		r.Get("/lessons/{slug}", h.GetLesson)
	})
	// Certificate verification is public
	r.Get("/certificates/{code}", h.VerifyCertificate)
}

// GetCourses handles GET /courses
// @Summary Get list of courses
// @Description Get a paginated list of courses with the learner's derived progress
// @Tags catalog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number (default: 1)"
// @Param count query int false "Items per page (default: 10)"
// @Success 200 {array} models.CourseListItem "List of courses"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses [get]
func (h *CatalogHandler) GetCourses(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil {
			h.RespondError(w, http.StatusBadRequest, "invalid page")
			return
		}
		page = p
	}

	count := 10
	if countStr := r.URL.Query().Get("count"); countStr != "" {
		c, err := strconv.Atoi(countStr)
		if err != nil {
			h.RespondError(w, http.StatusBadRequest, "invalid count")
			return
		}
		count = c
	}

	courses, err := h.service.GetCourses(r.Context(), userID, page, count)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, courses)
}

// GetCourseDetail handles GET /courses/{slug}
// @Summary Get course details
// @Description Get a course with its lessons, completion flags and sequential unlock state
// @Tags catalog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Course slug"
// @Success 200 {object} map[string]any{} "Course with lessons"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{slug} [get]
func (h *CatalogHandler) GetCourseDetail(w http.ResponseWriter, r *http.Request) {
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

	course, lessons, err := h.service.GetCourseDetail(r.Context(), courseSlug, userID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	response := map[string]any{
		"course":  course,
		"lessons": lessons,
	}

	h.RespondJSON(w, http.StatusOK, response)
}

// GetLesson handles GET /lessons/{slug}
// @Summary Get lesson details
// @Description Get a full lesson with its typed content blocks; requires enrollment and an unlocked lesson
// @Tags catalog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Lesson slug"
// @Success 200 {object} models.LessonDetailResponse "Lesson details"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not enrolled or lesson locked"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons/{slug} [get]
func (h *CatalogHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	lessonSlug := chi.URLParam(r, "slug")
	if lessonSlug == "" {
		h.RespondError(w, http.StatusBadRequest, "lesson slug is required")
		return
	}

	lesson, err := h.service.GetLesson(r.Context(), lessonSlug, userID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, lesson)
}

// VerifyCertificate handles GET /certificates/{code}
// @Summary Verify a certificate
// @Description Look up a certificate by its verification code
// @Tags catalog
// @Accept json
// @Produce json
// @Param code path string true "Verification code"
// @Success 200 {object} models.Certificate "Certificate"
// @Failure 404 {object} map[string]string "Certificate not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /certificates/{code} [get]
func (h *CatalogHandler) VerifyCertificate(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		h.RespondError(w, http.StatusBadRequest, "verification code is required")
		return
	}

	cert, err := h.service.VerifyCertificate(r.Context(), code)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, cert)
}
