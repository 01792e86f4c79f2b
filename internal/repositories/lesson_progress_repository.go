package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

type lessonProgressRepository struct {
	db *sql.DB
}

// NewLessonProgressRepository creates a new lesson progress repository
func NewLessonProgressRepository(db *sql.DB) *lessonProgressRepository {
	return &lessonProgressRepository{
		db: db,
	}
}

// Ensure lazily creates a progress row the first time a learner views a
// lesson. Safe to call on every view; an existing row is left untouched.
func (r *lessonProgressRepository) Ensure(ctx context.Context, userID, courseID, lessonID int) error {
	query := `
		INSERT INTO lesson_progress (user_id, course_id, lesson_id, completed)
		VALUES (?, ?, ?, 0)
		ON DUPLICATE KEY UPDATE id = id
	`

	_, err := r.db.ExecContext(ctx, query, userID, courseID, lessonID)
	if err != nil {
		return fmt.Errorf("failed to ensure progress row: %w", err)
	}

	return nil
}

// MarkCompleted idempotently marks a lesson complete for a learner. Returns
// false when the lesson was already completed, keeping double submissions a
// no-op. The first completion timestamp is preserved.
func (r *lessonProgressRepository) MarkCompleted(ctx context.Context, userID, courseID, lessonID int) (bool, error) {
	query := `
		INSERT INTO lesson_progress (user_id, course_id, lesson_id, completed, completed_at)
		VALUES (?, ?, ?, 1, NOW())
		ON DUPLICATE KEY UPDATE
			completed_at = IF(completed = 1, completed_at, VALUES(completed_at)),
			completed = 1
	`

	result, err := r.db.ExecContext(ctx, query, userID, courseID, lessonID)
	if err != nil {
		return false, fmt.Errorf("failed to mark lesson completed: %w", err)
	}

	// MySQL reports 1 affected row for an insert, 2 for a changed update
	// and 0 when the row already had completed = 1.
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// GetCompletedLessonIDs retrieves the set of completed lesson IDs for a
// learner in a course
func (r *lessonProgressRepository) GetCompletedLessonIDs(ctx context.Context, userID, courseID int) (map[int]bool, error) {
	query := `
		SELECT lesson_id
		FROM lesson_progress
		WHERE user_id = ? AND course_id = ? AND completed = 1
	`

	rows, err := r.db.QueryContext(ctx, query, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed lessons: %w", err)
	}
	defer rows.Close()

	completed := make(map[int]bool)
	for rows.Next() {
		var lessonID int
		if err := rows.Scan(&lessonID); err != nil {
			return nil, fmt.Errorf("failed to scan lesson id: %w", err)
		}
		completed[lessonID] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return completed, nil
}

// CountCompletedByCourse counts a learner's completed lessons in a course
func (r *lessonProgressRepository) CountCompletedByCourse(ctx context.Context, userID, courseID int) (int, error) {
	query := `
		SELECT COUNT(DISTINCT lesson_id)
		FROM lesson_progress
		WHERE user_id = ? AND course_id = ? AND completed = 1
	`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID, courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed lessons: %w", err)
	}

	return count, nil
}

// DeleteByUserAndLesson removes a learner's progress row for one lesson
func (r *lessonProgressRepository) DeleteByUserAndLesson(ctx context.Context, userID, lessonID int) error {
	query := `
		DELETE FROM lesson_progress
		WHERE user_id = ? AND lesson_id = ?
	`

	_, err := r.db.ExecContext(ctx, query, userID, lessonID)
	if err != nil {
		return fmt.Errorf("failed to delete progress row: %w", err)
	}

	return nil
}

// DeleteByUserAndCourse removes a learner's progress rows across a course
func (r *lessonProgressRepository) DeleteByUserAndCourse(ctx context.Context, userID, courseID int) error {
	query := `
		DELETE FROM lesson_progress
		WHERE user_id = ? AND course_id = ?
	`

	_, err := r.db.ExecContext(ctx, query, userID, courseID)
	if err != nil {
		return fmt.Errorf("failed to delete progress rows: %w", err)
	}

	return nil
}
