package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lumenacademy/learn-service/internal/models"
)

// CompletionLessonRepository defines the lesson lookups the coordinator needs
type CompletionLessonRepository interface {
	// GetBySlug retrieves a published lesson by slug
	//
	// "ctx" is the context for the request.
	// "slug" is the slug of the lesson.
	//
	// Returns the lesson and models.ErrNotFound if it does not exist.
	GetBySlug(ctx context.Context, slug string) (*models.Lesson, error)
	// GetByCourseID retrieves the published lessons of a course sorted by position
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	//
	// Returns the lessons and an error if any.
	GetByCourseID(ctx context.Context, courseID int) ([]models.Lesson, error)
	// CountByCourseID counts the published lessons of a course
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	//
	// Returns the count and an error if any.
	CountByCourseID(ctx context.Context, courseID int) (int, error)
}

// CompletionQuestionRepository defines the question lookups the coordinator needs
type CompletionQuestionRepository interface {
	// CountByLessonID counts the quiz questions of a lesson
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	//
	// Returns the count and an error if any.
	CountByLessonID(ctx context.Context, lessonID int) (int, error)
}

// LessonProgressRepository defines methods for lesson progress data access
type LessonProgressRepository interface {
	// MarkCompleted idempotently marks a lesson complete for a learner
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	// "lessonID" is the ID of the lesson.
	//
	// Returns false when the lesson was already completed.
	MarkCompleted(ctx context.Context, userID, courseID, lessonID int) (bool, error)
	// GetCompletedLessonIDs retrieves the completed lesson IDs for a learner in a course
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns the set of completed lesson IDs and an error if any.
	GetCompletedLessonIDs(ctx context.Context, userID, courseID int) (map[int]bool, error)
	// CountCompletedByCourse counts a learner's completed lessons in a course
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns the count and an error if any.
	CountCompletedByCourse(ctx context.Context, userID, courseID int) (int, error)
}

// CompletionEnrollmentRepository defines the enrollment operations the coordinator needs
type CompletionEnrollmentRepository interface {
	// Exists checks if an enrollment exists
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns a boolean and an error if any.
	Exists(ctx context.Context, userID, courseID int) (bool, error)
	// MarkCompleted transitions an enrollment to completed
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns false when the enrollment was already completed.
	MarkCompleted(ctx context.Context, userID, courseID int) (bool, error)
}

// CertificateRepository defines methods for certificate data access
type CertificateRepository interface {
	// Create issues a certificate; false means one already existed
	//
	// "ctx" is the context for the request.
	// "cert" is the certificate to issue.
	//
	// Returns whether a new certificate was created and an error if any.
	Create(ctx context.Context, cert *models.Certificate) (bool, error)
	// GetByUserAndCourse retrieves the certificate for a (user, course) pair
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns models.ErrNotFound when no certificate exists.
	GetByUserAndCourse(ctx context.Context, userID, courseID int) (*models.Certificate, error)
}

// QuizScorer scores quiz submissions and exposes attempt history
type QuizScorer interface {
	// Submit scores a quiz submission for a lesson and records the attempt
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "lesson" is the lesson the quiz belongs to.
	// "answers" maps question IDs to submitted answers.
	//
	// Returns the scored result, models.ErrIncompleteSubmission when an
	// answer is missing, and an error if any.
	Submit(ctx context.Context, userID int, lesson *models.Lesson, answers map[int]models.QuizAnswer) (*models.QuizResult, error)
	// GetAttempts retrieves a learner's attempt history for a lesson
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "lessonID" is the ID of the lesson.
	//
	// Returns the attempts, newest first, and an error if any.
	GetAttempts(ctx context.Context, userID, lessonID int) ([]models.QuizAttempt, error)
}

type completionService struct {
	lessonRepo     CompletionLessonRepository
	questionRepo   CompletionQuestionRepository
	progressRepo   LessonProgressRepository
	enrollmentRepo CompletionEnrollmentRepository
	certRepo       CertificateRepository
	quiz           QuizScorer
}

// NewCompletionService creates a new completion service
func NewCompletionService(
	lessonRepo CompletionLessonRepository,
	questionRepo CompletionQuestionRepository,
	progressRepo LessonProgressRepository,
	enrollmentRepo CompletionEnrollmentRepository,
	certRepo CertificateRepository,
	quiz QuizScorer,
) *completionService {
	return &completionService{
		lessonRepo:     lessonRepo,
		questionRepo:   questionRepo,
		progressRepo:   progressRepo,
		enrollmentRepo: enrollmentRepo,
		certRepo:       certRepo,
		quiz:           quiz,
	}
}

// RequestCompletion handles a learner's request to mark a lesson complete.
// A lesson without quiz questions completes immediately; otherwise the caller
// must collect a quiz submission and nothing is marked yet.
func (s *completionService) RequestCompletion(ctx context.Context, userID int, lessonSlug string) (*models.RequestCompletionResponse, error) {
	lesson, err := s.checkAccess(ctx, userID, lessonSlug)
	if err != nil {
		return nil, err
	}

	questionCount, err := s.questionRepo.CountByLessonID(ctx, lesson.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count quiz questions: %w", err)
	}

	if questionCount > 0 {
		return &models.RequestCompletionResponse{RequiresQuiz: true}, nil
	}

	outcome, err := s.finalizeCompletion(ctx, userID, lesson)
	if err != nil {
		return nil, err
	}

	return &models.RequestCompletionResponse{
		RequiresQuiz: false,
		Outcome:      outcome,
	}, nil
}

// SubmitQuiz scores a quiz submission and, on a pass, finalizes the lesson.
// A failing attempt is recorded and returned for retry with a nil outcome.
// When grading failed entirely the attempt never finalizes the lesson and
// models.ErrEvaluationFailed is returned alongside the result.
func (s *completionService) SubmitQuiz(ctx context.Context, userID int, lessonSlug string, answers map[int]models.QuizAnswer) (*models.QuizResult, *models.CompletionOutcome, error) {
	lesson, err := s.checkAccess(ctx, userID, lessonSlug)
	if err != nil {
		return nil, nil, err
	}

	result, err := s.quiz.Submit(ctx, userID, lesson, answers)
	if err != nil {
		return nil, nil, err
	}

	if result.EvaluationFailed {
		return result, nil, models.ErrEvaluationFailed
	}

	if !result.Passed {
		return result, nil, nil
	}

	outcome, err := s.finalizeCompletion(ctx, userID, lesson)
	if err != nil {
		return nil, nil, err
	}

	return result, outcome, nil
}

// GetQuizAttempts retrieves the learner's attempt history for a lesson they
// can access
func (s *completionService) GetQuizAttempts(ctx context.Context, userID int, lessonSlug string) ([]models.QuizAttempt, error) {
	lesson, err := s.checkAccess(ctx, userID, lessonSlug)
	if err != nil {
		return nil, err
	}
	return s.quiz.GetAttempts(ctx, userID, lesson.ID)
}

// checkAccess loads the lesson and verifies the learner is enrolled and the
// lesson is unlocked in the sequential chain.
func (s *completionService) checkAccess(ctx context.Context, userID int, lessonSlug string) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.GetBySlug(ctx, lessonSlug)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	enrolled, err := s.enrollmentRepo.Exists(ctx, userID, lesson.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if !enrolled {
		return nil, models.ErrNotEnrolled
	}

	lessons, err := s.lessonRepo.GetByCourseID(ctx, lesson.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course lessons: %w", err)
	}
	completed, err := s.progressRepo.GetCompletedLessonIDs(ctx, userID, lesson.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get completed lessons: %w", err)
	}

	if !ComputeUnlocked(lessons, completed)[lesson.ID] {
		return nil, models.ErrLessonLocked
	}

	return lesson, nil
}

// finalizeCompletion idempotently records the lesson as complete and, when it
// was the last one in the course, completes the enrollment and issues the
// certificate. Safe to call twice: repeat calls and concurrent finalizers are
// no-ops past the first writer.
func (s *completionService) finalizeCompletion(ctx context.Context, userID int, lesson *models.Lesson) (*models.CompletionOutcome, error) {
	if _, err := s.progressRepo.MarkCompleted(ctx, userID, lesson.CourseID, lesson.ID); err != nil {
		return nil, fmt.Errorf("failed to mark lesson completed: %w", err)
	}

	outcome := &models.CompletionOutcome{LessonCompleted: true}

	totalLessons, err := s.lessonRepo.CountByCourseID(ctx, lesson.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to count course lessons: %w", err)
	}
	completedLessons, err := s.progressRepo.CountCompletedByCourse(ctx, userID, lesson.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed lessons: %w", err)
	}

	if totalLessons == 0 || completedLessons < totalLessons {
		return outcome, nil
	}

	if _, err := s.enrollmentRepo.MarkCompleted(ctx, userID, lesson.CourseID); err != nil {
		return nil, fmt.Errorf("failed to complete enrollment: %w", err)
	}
	outcome.CourseCompleted = true

	cert := &models.Certificate{
		UserID:   userID,
		CourseID: lesson.CourseID,
		Code:     uuid.New().String(),
	}
	created, err := s.certRepo.Create(ctx, cert)
	if err != nil {
		return nil, fmt.Errorf("failed to issue certificate: %w", err)
	}
	if !created {
		existing, err := s.certRepo.GetByUserAndCourse(ctx, userID, lesson.CourseID)
		if err != nil {
			return nil, fmt.Errorf("failed to get existing certificate: %w", err)
		}
		cert = existing
	}
	outcome.CertificateCode = cert.Code

	return outcome, nil
}
