package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumenacademy/learn-service/internal/models"
)

type quizQuestionRepository struct {
	db *sql.DB
}

// NewQuizQuestionRepository creates a new quiz question repository
func NewQuizQuestionRepository(db *sql.DB) *quizQuestionRepository {
	return &quizQuestionRepository{
		db: db,
	}
}

// GetByLessonID retrieves all questions of a lesson with their options,
// questions sorted by position and options by their stored order
func (r *quizQuestionRepository) GetByLessonID(ctx context.Context, lessonID int) ([]models.QuizQuestion, error) {
	query := `
		SELECT
			q.id,
			q.position,
			q.type,
			q.text,
			q.evaluation_criteria,
			o.id,
			o.text,
			o.is_correct
		FROM quiz_questions q
		LEFT JOIN quiz_options o ON o.question_id = q.id
		WHERE q.lesson_id = ?
		ORDER BY q.position, o.position
	`

	rows, err := r.db.QueryContext(ctx, query, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quiz questions: %w", err)
	}
	defer rows.Close()

	var questions []models.QuizQuestion
	byID := make(map[int]int) // question ID -> index in questions
	for rows.Next() {
		var (
			q         models.QuizQuestion
			criteria  sql.NullString
			optID     sql.NullInt64
			optText   sql.NullString
			isCorrect sql.NullBool
		)
		err := rows.Scan(
			&q.ID,
			&q.Position,
			&q.Type,
			&q.Text,
			&criteria,
			&optID,
			&optText,
			&isCorrect,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quiz question: %w", err)
		}

		idx, ok := byID[q.ID]
		if !ok {
			q.LessonID = lessonID
			q.EvaluationCriteria = criteria.String
			questions = append(questions, q)
			idx = len(questions) - 1
			byID[q.ID] = idx
		}

		if optID.Valid {
			questions[idx].Options = append(questions[idx].Options, models.QuizOption{
				ID:        int(optID.Int64),
				Text:      optText.String,
				IsCorrect: isCorrect.Bool,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return questions, nil
}

// CountByLessonID counts the questions belonging to a lesson
func (r *quizQuestionRepository) CountByLessonID(ctx context.Context, lessonID int) (int, error) {
	query := `SELECT COUNT(*) FROM quiz_questions WHERE lesson_id = ?`

	var count int
	err := r.db.QueryRowContext(ctx, query, lessonID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count quiz questions: %w", err)
	}

	return count, nil
}
