package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/lumenacademy/learn-service/internal/models"
)

// CatalogCourseRepository defines methods for course data access
type CatalogCourseRepository interface {
	// GetAll retrieves courses ordered by position with derived progress
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "page" is the page number to retrieve.
	// "count" is the number of items per page.
	//
	// Returns a list of courses and an error if any.
	GetAll(ctx context.Context, userID, page, count int) ([]models.CourseListItem, error)
	// GetDetail retrieves a course by slug with lesson totals
	//
	// "ctx" is the context for the request.
	// "slug" is the slug of the course.
	// "userID" is the ID of the user.
	//
	// Returns the course and models.ErrNotFound if it does not exist.
	GetDetail(ctx context.Context, slug string, userID int) (*models.CourseDetailResponse, error)
}

// CatalogLessonRepository defines methods for lesson data access
type CatalogLessonRepository interface {
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
}

// ContentBlockRepository defines methods for content block data access
type ContentBlockRepository interface {
	// GetByLessonID retrieves the content blocks of a lesson sorted by position
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	//
	// Returns the blocks and an error if any.
	GetByLessonID(ctx context.Context, lessonID int) ([]models.ContentBlockResponse, error)
}

// CatalogProgressRepository defines the progress lookups the catalog needs
type CatalogProgressRepository interface {
	// Ensure lazily creates a progress row on first lesson view
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	// "lessonID" is the ID of the lesson.
	//
	// Returns an error if any.
	Ensure(ctx context.Context, userID, courseID, lessonID int) error
	// GetCompletedLessonIDs retrieves the completed lesson IDs for a learner in a course
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns the set of completed lesson IDs and an error if any.
	GetCompletedLessonIDs(ctx context.Context, userID, courseID int) (map[int]bool, error)
}

// CatalogEnrollmentRepository defines the enrollment lookups the catalog needs
type CatalogEnrollmentRepository interface {
	// Exists checks if an enrollment exists
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns a boolean and an error if any.
	Exists(ctx context.Context, userID, courseID int) (bool, error)
}

// CatalogQuestionRepository defines the question lookups the catalog needs
type CatalogQuestionRepository interface {
	// CountByLessonID counts the quiz questions of a lesson
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	//
	// Returns the count and an error if any.
	CountByLessonID(ctx context.Context, lessonID int) (int, error)
}

// CertificateReader looks up certificates for public verification
type CertificateReader interface {
	// GetByCode retrieves a certificate by its verification code
	//
	// "ctx" is the context for the request.
	// "code" is the verification code.
	//
	// Returns models.ErrNotFound when no certificate matches.
	GetByCode(ctx context.Context, code string) (*models.Certificate, error)
}

type catalogService struct {
	courseRepo     CatalogCourseRepository
	lessonRepo     CatalogLessonRepository
	blockRepo      ContentBlockRepository
	progressRepo   CatalogProgressRepository
	enrollmentRepo CatalogEnrollmentRepository
	questionRepo   CatalogQuestionRepository
	certReader     CertificateReader
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	courseRepo CatalogCourseRepository,
	lessonRepo CatalogLessonRepository,
	blockRepo ContentBlockRepository,
	progressRepo CatalogProgressRepository,
	enrollmentRepo CatalogEnrollmentRepository,
	questionRepo CatalogQuestionRepository,
	certReader CertificateReader,
) *catalogService {
	return &catalogService{
		courseRepo:     courseRepo,
		lessonRepo:     lessonRepo,
		blockRepo:      blockRepo,
		progressRepo:   progressRepo,
		enrollmentRepo: enrollmentRepo,
		questionRepo:   questionRepo,
		certReader:     certReader,
	}
}

// GetCourses retrieves a paginated course list with the learner's progress
func (s *catalogService) GetCourses(ctx context.Context, userID, page, count int) ([]models.CourseListItem, error) {
	if page < 1 {
		page = 1
	}
	if count < 1 {
		count = 10
	}

	return s.courseRepo.GetAll(ctx, userID, page, count)
}

// GetCourseDetail retrieves a course with its lesson list, completion flags
// and the sequential unlock state. For a learner who is not enrolled every
// lesson is reported locked.
func (s *catalogService) GetCourseDetail(ctx context.Context, courseSlug string, userID int) (*models.CourseDetailResponse, []models.LessonListItem, error) {
	course, err := s.courseRepo.GetDetail(ctx, courseSlug, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil, models.ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to get course: %w", err)
	}

	lessons, err := s.lessonRepo.GetByCourseID(ctx, course.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get lessons: %w", err)
	}

	completed := map[int]bool{}
	unlocked := map[int]bool{}
	if course.Enrolled {
		completed, err = s.progressRepo.GetCompletedLessonIDs(ctx, userID, course.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get completed lessons: %w", err)
		}
		unlocked = ComputeUnlocked(lessons, completed)
	}

	items := make([]models.LessonListItem, 0, len(lessons))
	for _, lesson := range lessons {
		items = append(items, models.LessonListItem{
			Slug:            lesson.Slug,
			Title:           lesson.Title,
			Position:        lesson.Position,
			DurationMinutes: lesson.DurationMinutes,
			Completed:       completed[lesson.ID],
			Unlocked:        unlocked[lesson.ID],
		})
	}

	course.ID = 0
	return course, items, nil
}

// GetLesson retrieves a full lesson with its typed content blocks. The
// learner must be enrolled and the lesson unlocked; the first view lazily
// creates the learner's progress row.
func (s *catalogService) GetLesson(ctx context.Context, lessonSlug string, userID int) (*models.LessonDetailResponse, error) {
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

	if err := s.progressRepo.Ensure(ctx, userID, lesson.CourseID, lesson.ID); err != nil {
		return nil, fmt.Errorf("failed to ensure progress row: %w", err)
	}

	blocks, err := s.blockRepo.GetByLessonID(ctx, lesson.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get content blocks: %w", err)
	}

	questionCount, err := s.questionRepo.CountByLessonID(ctx, lesson.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count quiz questions: %w", err)
	}

	return &models.LessonDetailResponse{
		Slug:            lesson.Slug,
		Title:           lesson.Title,
		DurationMinutes: lesson.DurationMinutes,
		Completed:       completed[lesson.ID],
		HasQuiz:         questionCount > 0,
		Blocks:          blocks,
	}, nil
}

// VerifyCertificate looks up a certificate by verification code
func (s *catalogService) VerifyCertificate(ctx context.Context, code string) (*models.Certificate, error) {
	return s.certReader.GetByCode(ctx, code)
}
