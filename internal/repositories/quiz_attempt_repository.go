package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lumenacademy/learn-service/internal/models"
)

type quizAttemptRepository struct {
	db *sql.DB
}

// NewQuizAttemptRepository creates a new quiz attempt repository
func NewQuizAttemptRepository(db *sql.DB) *quizAttemptRepository {
	return &quizAttemptRepository{
		db: db,
	}
}

// Create records a quiz attempt. Attempts are append-only history; both
// passing and failing attempts are stored.
func (r *quizAttemptRepository) Create(ctx context.Context, attempt *models.QuizAttempt) error {
	query := `
		INSERT INTO quiz_attempts (user_id, lesson_id, score, answers, created_at)
		VALUES (?, ?, ?, ?, NOW())
	`

	result, err := r.db.ExecContext(ctx, query,
		attempt.UserID,
		attempt.LessonID,
		attempt.Score,
		string(attempt.Answers),
	)
	if err != nil {
		return fmt.Errorf("failed to create quiz attempt: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	attempt.ID = int(id)
	return nil
}

// GetByUserAndLesson retrieves a learner's attempts for a lesson, newest first
func (r *quizAttemptRepository) GetByUserAndLesson(ctx context.Context, userID, lessonID int) ([]models.QuizAttempt, error) {
	query := `
		SELECT id, user_id, lesson_id, score, answers, created_at
		FROM quiz_attempts
		WHERE user_id = ? AND lesson_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quiz attempts: %w", err)
	}
	defer rows.Close()

	var attempts []models.QuizAttempt
	for rows.Next() {
		var attempt models.QuizAttempt
		var answersJSON string
		err := rows.Scan(
			&attempt.ID,
			&attempt.UserID,
			&attempt.LessonID,
			&attempt.Score,
			&answersJSON,
			&attempt.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quiz attempt: %w", err)
		}
		attempt.Answers = json.RawMessage(answersJSON)
		attempts = append(attempts, attempt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return attempts, nil
}

// DeleteByUserAndLesson removes a learner's attempts for one lesson
func (r *quizAttemptRepository) DeleteByUserAndLesson(ctx context.Context, userID, lessonID int) error {
	query := `
		DELETE FROM quiz_attempts
		WHERE user_id = ? AND lesson_id = ?
	`

	_, err := r.db.ExecContext(ctx, query, userID, lessonID)
	if err != nil {
		return fmt.Errorf("failed to delete quiz attempts: %w", err)
	}

	return nil
}

// DeleteByUserAndCourse removes a learner's attempts across a whole course
func (r *quizAttemptRepository) DeleteByUserAndCourse(ctx context.Context, userID, courseID int) error {
	query := `
		DELETE qa FROM quiz_attempts qa
		JOIN lessons l ON l.id = qa.lesson_id
		WHERE qa.user_id = ? AND l.course_id = ?
	`

	_, err := r.db.ExecContext(ctx, query, userID, courseID)
	if err != nil {
		return fmt.Errorf("failed to delete quiz attempts for course: %w", err)
	}

	return nil
}
