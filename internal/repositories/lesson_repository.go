package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumenacademy/learn-service/internal/models"
)

type lessonRepository struct {
	db *sql.DB
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *sql.DB) *lessonRepository {
	return &lessonRepository{
		db: db,
	}
}

// GetBySlug retrieves a published lesson by its slug
func (r *lessonRepository) GetBySlug(ctx context.Context, slug string) (*models.Lesson, error) {
	query := `
		SELECT id, slug, course_id, title, position, duration_minutes, published, minimum_passing_score
		FROM lessons
		WHERE slug = ? AND published = 1
		LIMIT 1
	`

	var lesson models.Lesson
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&lesson.ID,
		&lesson.Slug,
		&lesson.CourseID,
		&lesson.Title,
		&lesson.Position,
		&lesson.DurationMinutes,
		&lesson.Published,
		&lesson.MinimumPassingScore,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson by slug: %w", err)
	}

	return &lesson, nil
}

// GetByCourseID retrieves all published lessons for a course, sorted by position
func (r *lessonRepository) GetByCourseID(ctx context.Context, courseID int) ([]models.Lesson, error) {
	query := `
		SELECT id, slug, course_id, title, position, duration_minutes, published, minimum_passing_score
		FROM lessons
		WHERE course_id = ? AND published = 1
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		var lesson models.Lesson
		err := rows.Scan(
			&lesson.ID,
			&lesson.Slug,
			&lesson.CourseID,
			&lesson.Title,
			&lesson.Position,
			&lesson.DurationMinutes,
			&lesson.Published,
			&lesson.MinimumPassingScore,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessons, nil
}

// CountByCourseID counts the published lessons of a course
func (r *lessonRepository) CountByCourseID(ctx context.Context, courseID int) (int, error) {
	query := `SELECT COUNT(*) FROM lessons WHERE course_id = ? AND published = 1`

	var count int
	err := r.db.QueryRowContext(ctx, query, courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count lessons: %w", err)
	}

	return count, nil
}
