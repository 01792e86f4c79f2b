package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	authMiddleware "github.com/lumenacademy/learn-service/internal/auth/middleware"
	"github.com/lumenacademy/learn-service/internal/models"
	"go.uber.org/zap"
)

// CompletionService defines methods for lesson completion business logic
type CompletionService interface {
	// RequestCompletion handles a learner's request to mark a lesson complete
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "lessonSlug" is the slug of the lesson.
	//
	// Returns whether a quiz submission is required and, for quiz-less
	// lessons, the completion outcome.
	RequestCompletion(ctx context.Context, userID int, lessonSlug string) (*models.RequestCompletionResponse, error)
	// SubmitQuiz scores a quiz submission and finalizes the lesson on a pass
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "lessonSlug" is the slug of the lesson.
	// "answers" maps question IDs to submitted answers.
	//
	// Returns the scored result, the completion outcome when the attempt
	// passed, and an error if any.
	SubmitQuiz(ctx context.Context, userID int, lessonSlug string, answers map[int]models.QuizAnswer) (*models.QuizResult, *models.CompletionOutcome, error)
	// GetQuizAttempts retrieves the learner's attempt history for a lesson
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "lessonSlug" is the slug of the lesson.
	//
	// Returns the attempts, newest first, and an error if any.
	GetQuizAttempts(ctx context.Context, userID int, lessonSlug string) ([]models.QuizAttempt, error)
}

// CompletionHandler handles HTTP requests for lesson completion and quizzes
type CompletionHandler struct {
	BaseHandler
	service CompletionService
}

// NewCompletionHandler creates a new completion handler
func NewCompletionHandler(svc CompletionService, logger *zap.Logger) *CompletionHandler {
	return &CompletionHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all completion handler routes
func (h *CompletionHandler) RegisterRoutes(r chi.Router, authMw func(http.Handler) http.Handler) {
	r.Route("/lessons/{slug}", func(r chi.Router) {
		r.Use(authMw)
		r.Post("/complete", h.RequestCompletion)
		r.Post("/quiz", h.SubmitQuiz)
		r.Get("/attempts", h.GetQuizAttempts)
	})
}

// RequestCompletion handles POST /lessons/{slug}/complete
// @Summary Request lesson completion
// @Description Mark a lesson complete; lessons with a quiz require a quiz submission instead
// @Tags completion
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Lesson slug"
// @Success 200 {object} models.RequestCompletionResponse "Completion state"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not enrolled or lesson locked"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons/{slug}/complete [post]
func (h *CompletionHandler) RequestCompletion(w http.ResponseWriter, r *http.Request) {
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

	response, err := h.service.RequestCompletion(r.Context(), userID, lessonSlug)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, response)
}

// SubmitQuiz handles POST /lessons/{slug}/quiz
// @Summary Submit quiz answers
// @Description Score a quiz submission; a passing score completes the lesson. Retries are unlimited.
// @Tags completion
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Lesson slug"
// @Param request body models.QuizSubmissionRequest true "Answers keyed by question ID"
// @Success 200 {object} map[string]any{} "Quiz result with completion outcome on a pass"
// @Failure 400 {object} map[string]string "Incomplete submission"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not enrolled or lesson locked"
// @Failure 404 {object} map[string]string "Lesson or quiz not found"
// @Failure 502 {object} map[string]string "Evaluation failed"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons/{slug}/quiz [post]
func (h *CompletionHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
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

	var req models.QuizSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Answers) == 0 {
		h.RespondError(w, http.StatusBadRequest, "answers are required")
		return
	}

	result, outcome, err := h.service.SubmitQuiz(r.Context(), userID, lessonSlug, req.Answers)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	response := map[string]any{
		"result": result,
	}
	if outcome != nil {
		response["outcome"] = outcome
	}

	h.RespondJSON(w, http.StatusOK, response)
}

// GetQuizAttempts handles GET /lessons/{slug}/attempts
// @Summary Get quiz attempt history
// @Description Get the learner's recorded quiz attempts for a lesson, newest first
// @Tags completion
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param slug path string true "Lesson slug"
// @Success 200 {array} models.QuizAttempt "Attempts"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not enrolled or lesson locked"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons/{slug}/attempts [get]
func (h *CompletionHandler) GetQuizAttempts(w http.ResponseWriter, r *http.Request) {
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

	attempts, err := h.service.GetQuizAttempts(r.Context(), userID, lessonSlug)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, attempts)
}
