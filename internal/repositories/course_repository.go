package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumenacademy/learn-service/internal/models"
)

type courseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB) *courseRepository {
	return &courseRepository{
		db: db,
	}
}

// GetBySlug retrieves a course by its slug
func (r *courseRepository) GetBySlug(ctx context.Context, slug string) (*models.Course, error) {
	query := `
		SELECT id, slug, owner_id, title, description, position, duration_minutes, paid
		FROM courses
		WHERE slug = ?
		LIMIT 1
	`

	var course models.Course
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&course.ID,
		&course.Slug,
		&course.OwnerID,
		&course.Title,
		&course.Description,
		&course.Position,
		&course.DurationMinutes,
		&course.Paid,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course by slug: %w", err)
	}

	return &course, nil
}

// GetAll retrieves courses ordered by position with the learner's derived
// progress (completed lessons over published lessons) and enrollment flag
func (r *courseRepository) GetAll(ctx context.Context, userID, page, count int) ([]models.CourseListItem, error) {
	offset := (page - 1) * count

	query := `
		SELECT
			c.slug,
			c.title,
			c.description,
			c.duration_minutes,
			c.paid,
			CASE WHEN e.id IS NOT NULL THEN 1 ELSE 0 END as enrolled,
			COUNT(DISTINCT l.id) as total_lessons,
			COUNT(DISTINCT CASE WHEN lp.completed = 1 THEN lp.lesson_id END) as completed_lessons
		FROM courses c
		LEFT JOIN lessons l ON l.course_id = c.id AND l.published = 1
		LEFT JOIN lesson_progress lp ON lp.course_id = c.id AND lp.user_id = ? AND lp.lesson_id = l.id
		LEFT JOIN enrollments e ON e.course_id = c.id AND e.user_id = ?
		GROUP BY c.id, c.slug, c.title, c.description, c.duration_minutes, c.paid, e.id
		ORDER BY c.position
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, userID, count, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []models.CourseListItem
	for rows.Next() {
		var course models.CourseListItem
		var enrolled int
		err := rows.Scan(
			&course.Slug,
			&course.Title,
			&course.Description,
			&course.DurationMinutes,
			&course.Paid,
			&enrolled,
			&course.TotalLessons,
			&course.CompletedLessons,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		course.Enrolled = enrolled == 1
		course.ProgressPercent = models.ProgressPercent(course.CompletedLessons, course.TotalLessons)
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}

// GetDetail retrieves a course by slug with the learner's lesson totals
func (r *courseRepository) GetDetail(ctx context.Context, slug string, userID int) (*models.CourseDetailResponse, error) {
	query := `
		SELECT
			c.id,
			c.slug,
			c.title,
			c.description,
			c.duration_minutes,
			c.paid,
			CASE WHEN e.id IS NOT NULL THEN 1 ELSE 0 END as enrolled,
			COUNT(DISTINCT l.id) as total_lessons,
			COUNT(DISTINCT CASE WHEN lp.completed = 1 THEN lp.lesson_id END) as completed_lessons
		FROM courses c
		LEFT JOIN lessons l ON l.course_id = c.id AND l.published = 1
		LEFT JOIN lesson_progress lp ON lp.course_id = c.id AND lp.user_id = ? AND lp.lesson_id = l.id
		LEFT JOIN enrollments e ON e.course_id = c.id AND e.user_id = ?
		WHERE c.slug = ?
		GROUP BY c.id, c.slug, c.title, c.description, c.duration_minutes, c.paid, e.id
		LIMIT 1
	`

	var course models.CourseDetailResponse
	var enrolled int
	err := r.db.QueryRowContext(ctx, query, userID, userID, slug).Scan(
		&course.ID,
		&course.Slug,
		&course.Title,
		&course.Description,
		&course.DurationMinutes,
		&course.Paid,
		&enrolled,
		&course.TotalLessons,
		&course.CompletedLessons,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course detail: %w", err)
	}

	course.Enrolled = enrolled == 1
	course.ProgressPercent = models.ProgressPercent(course.CompletedLessons, course.TotalLessons)
	return &course, nil
}
