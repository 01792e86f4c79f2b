package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/lumenacademy/learn-service/internal/models"
)

// ResetAttemptRepository defines the attempt deletions resets need
type ResetAttemptRepository interface {
	// DeleteByUserAndLesson removes a learner's attempts for one lesson
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "lessonID" is the ID of the lesson.
	//
	// Returns an error if any.
	DeleteByUserAndLesson(ctx context.Context, userID, lessonID int) error
	// DeleteByUserAndCourse removes a learner's attempts across a course
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns an error if any.
	DeleteByUserAndCourse(ctx context.Context, userID, courseID int) error
}

// ResetProgressRepository defines the progress deletions resets need
type ResetProgressRepository interface {
	// DeleteByUserAndLesson removes a learner's progress row for one lesson
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "lessonID" is the ID of the lesson.
	//
	// Returns an error if any.
	DeleteByUserAndLesson(ctx context.Context, userID, lessonID int) error
	// DeleteByUserAndCourse removes a learner's progress rows across a course
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns an error if any.
	DeleteByUserAndCourse(ctx context.Context, userID, courseID int) error
}

// ResetEnrollmentRepository defines the enrollment deletion a course reset needs
type ResetEnrollmentRepository interface {
	// Delete deletes an enrollment
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns models.ErrNotEnrolled when no enrollment exists.
	Delete(ctx context.Context, userID, courseID int) error
}

type adminResetService struct {
	attemptRepo    ResetAttemptRepository
	progressRepo   ResetProgressRepository
	enrollmentRepo ResetEnrollmentRepository
}

// NewAdminResetService creates a new admin reset service
func NewAdminResetService(
	attemptRepo ResetAttemptRepository,
	progressRepo ResetProgressRepository,
	enrollmentRepo ResetEnrollmentRepository,
) *adminResetService {
	return &adminResetService{
		attemptRepo:    attemptRepo,
		progressRepo:   progressRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// ResetLessonProgress removes a learner's progress and quiz attempts for one
// lesson. Quiz attempts go first so a failure never leaves attempts dangling
// without a progress row. The enrollment and other lessons stay untouched.
func (s *adminResetService) ResetLessonProgress(ctx context.Context, userID, lessonID int) error {
	if err := s.attemptRepo.DeleteByUserAndLesson(ctx, userID, lessonID); err != nil {
		return fmt.Errorf("failed to delete quiz attempts: %w", err)
	}
	if err := s.progressRepo.DeleteByUserAndLesson(ctx, userID, lessonID); err != nil {
		return fmt.Errorf("failed to delete progress: %w", err)
	}
	return nil
}

// ResetCourse removes everything a learner has in a course: quiz attempts,
// then progress rows, then the enrollment, in that order.
func (s *adminResetService) ResetCourse(ctx context.Context, userID, courseID int) error {
	if err := s.attemptRepo.DeleteByUserAndCourse(ctx, userID, courseID); err != nil {
		return fmt.Errorf("failed to delete quiz attempts: %w", err)
	}
	if err := s.progressRepo.DeleteByUserAndCourse(ctx, userID, courseID); err != nil {
		return fmt.Errorf("failed to delete progress: %w", err)
	}
	if err := s.enrollmentRepo.Delete(ctx, userID, courseID); err != nil && !errors.Is(err, models.ErrNotEnrolled) {
		return fmt.Errorf("failed to delete enrollment: %w", err)
	}
	return nil
}
