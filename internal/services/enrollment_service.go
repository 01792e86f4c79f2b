package services

import (
	"context"
	"fmt"

	"github.com/lumenacademy/learn-service/internal/models"
)

// EnrollmentCourseRepository defines the course lookups the enrollment service needs
type EnrollmentCourseRepository interface {
	// GetBySlug retrieves a course by slug
	//
	// "ctx" is the context for the request.
	// "slug" is the slug of the course.
	//
	// Returns the course and models.ErrNotFound if it does not exist.
	GetBySlug(ctx context.Context, slug string) (*models.Course, error)
}

// EnrollmentRepository defines methods for enrollment data access
type EnrollmentRepository interface {
	// Create creates a new enrollment
	//
	// "ctx" is the context for the request.
	// "enrollment" is the enrollment to create.
	//
	// Returns models.ErrAlreadyEnrolled when a row for the (user, course)
	// pair already exists.
	Create(ctx context.Context, enrollment *models.Enrollment) error
	// Delete deletes an enrollment
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns models.ErrNotEnrolled when no enrollment exists.
	Delete(ctx context.Context, userID, courseID int) error
	// Exists checks if an enrollment exists
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns a boolean and an error if any.
	Exists(ctx context.Context, userID, courseID int) (bool, error)
}

type enrollmentService struct {
	courseRepo     EnrollmentCourseRepository
	enrollmentRepo EnrollmentRepository
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(courseRepo EnrollmentCourseRepository, enrollmentRepo EnrollmentRepository) *enrollmentService {
	return &enrollmentService{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// Enroll creates an enrollment for the learner in the course identified by
// slug. A duplicate attempt returns models.ErrAlreadyEnrolled and leaves the
// existing enrollment untouched.
func (s *enrollmentService) Enroll(ctx context.Context, userID int, courseSlug string) (*models.Enrollment, error) {
	course, err := s.courseRepo.GetBySlug(ctx, courseSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	enrollment := &models.Enrollment{
		UserID:   userID,
		CourseID: course.ID,
	}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		if err == models.ErrAlreadyEnrolled {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	return enrollment, nil
}

// Unenroll removes the learner's enrollment. Lesson progress and quiz
// attempts persist as history.
func (s *enrollmentService) Unenroll(ctx context.Context, userID int, courseSlug string) error {
	course, err := s.courseRepo.GetBySlug(ctx, courseSlug)
	if err != nil {
		return fmt.Errorf("failed to get course: %w", err)
	}

	if err := s.enrollmentRepo.Delete(ctx, userID, course.ID); err != nil {
		if err == models.ErrNotEnrolled {
			return err
		}
		return fmt.Errorf("failed to delete enrollment: %w", err)
	}

	return nil
}

// IsEnrolled checks whether the learner is enrolled in the course
func (s *enrollmentService) IsEnrolled(ctx context.Context, userID, courseID int) (bool, error) {
	return s.enrollmentRepo.Exists(ctx, userID, courseID)
}
