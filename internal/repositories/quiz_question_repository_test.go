package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lumenacademy/learn-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupQuestionTestRepository creates a repository with a mock database
func setupQuestionTestRepository(t *testing.T) (*quizQuestionRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewQuizQuestionRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestQuizQuestionRepository_GetByLessonID(t *testing.T) {
	query := `SELECT q.id, q.position, q.type, q.text, q.evaluation_criteria, o.id, o.text, o.is_correct FROM quiz_questions q LEFT JOIN quiz_options o ON o.question_id = q.id WHERE q.lesson_id = \? ORDER BY q.position, o.position`
	columns := []string{"id", "position", "type", "text", "evaluation_criteria", "opt_id", "opt_text", "is_correct"}

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		verify        func(*testing.T, []models.QuizQuestion)
		expectedError bool
	}{
		{
			name: "assembles questions with their options",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow(1, 1, "multiple_choice", "What is 2+2?", nil, 10, "3", false).
					AddRow(1, 1, "multiple_choice", "What is 2+2?", nil, 11, "4", true).
					AddRow(2, 2, "open_ended", "Explain recursion.", "mentions a base case", nil, nil, nil)
				mock.ExpectQuery(query).WithArgs(5).WillReturnRows(rows)
			},
			verify: func(t *testing.T, questions []models.QuizQuestion) {
				require.Len(t, questions, 2)
				assert.Equal(t, 1, questions[0].ID)
				assert.Equal(t, 5, questions[0].LessonID)
				assert.Len(t, questions[0].Options, 2)
				assert.True(t, questions[0].Options[1].IsCorrect)
				assert.Equal(t, models.QuestionTypeOpenEnded, questions[1].Type)
				assert.Equal(t, "mentions a base case", questions[1].EvaluationCriteria)
				assert.Empty(t, questions[1].Options)
			},
		},
		{
			name: "lesson without quiz",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns)
				mock.ExpectQuery(query).WithArgs(5).WillReturnRows(rows)
			},
			verify: func(t *testing.T, questions []models.QuizQuestion) {
				assert.Len(t, questions, 0)
			},
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs(5).WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
		{
			name: "rows iteration error",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow(1, 1, "true_false", "Go has generics.", nil, 10, "True", true).
					RowError(0, errors.New("row error"))
				mock.ExpectQuery(query).WithArgs(5).WillReturnRows(rows)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupQuestionTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			questions, err := repo.GetByLessonID(context.Background(), 5)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, questions)
			} else {
				assert.NoError(t, err)
				tt.verify(t, questions)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestQuizQuestionRepository_CountByLessonID(t *testing.T) {
	query := `SELECT COUNT\(\*\) FROM quiz_questions WHERE lesson_id = \?`

	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupQuestionTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{"count"}).AddRow(3)
		mock.ExpectQuery(query).WithArgs(5).WillReturnRows(rows)

		count, err := repo.CountByLessonID(context.Background(), 5)

		assert.NoError(t, err)
		assert.Equal(t, 3, count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock, cleanup := setupQuestionTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(query).WithArgs(5).WillReturnError(errors.New("database error"))

		count, err := repo.CountByLessonID(context.Background(), 5)

		assert.Error(t, err)
		assert.Zero(t, count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
