package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupProgressTestRepository creates a repository with a mock database
func setupProgressTestRepository(t *testing.T) (*lessonProgressRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewLessonProgressRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestLessonProgressRepository_Ensure(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name: "creates new row",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO lesson_progress \(user_id, course_id, lesson_id, completed\) VALUES \(\?, \?, \?, 0\) ON DUPLICATE KEY UPDATE id = id`).
					WithArgs(1, 2, 3).
					WillReturnResult(sqlmock.NewResult(5, 1))
			},
		},
		{
			name: "row already exists",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO lesson_progress \(user_id, course_id, lesson_id, completed\) VALUES \(\?, \?, \?, 0\) ON DUPLICATE KEY UPDATE id = id`).
					WithArgs(1, 2, 3).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO lesson_progress \(user_id, course_id, lesson_id, completed\) VALUES \(\?, \?, \?, 0\) ON DUPLICATE KEY UPDATE id = id`).
					WithArgs(1, 2, 3).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProgressTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Ensure(context.Background(), 1, 2, 3)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLessonProgressRepository_MarkCompleted(t *testing.T) {
	query := `INSERT INTO lesson_progress \(user_id, course_id, lesson_id, completed, completed_at\) VALUES \(\?, \?, \?, 1, NOW\(\)\) ON DUPLICATE KEY UPDATE completed_at = IF\(completed = 1, completed_at, VALUES\(completed_at\)\), completed = 1`

	tests := []struct {
		name           string
		setupMock      func(sqlmock.Sqlmock)
		expectedChange bool
		expectedError  bool
	}{
		{
			name: "first completion inserts",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(query).
					WithArgs(1, 2, 3).
					WillReturnResult(sqlmock.NewResult(5, 1))
			},
			expectedChange: true,
		},
		{
			name: "completes an existing viewed row",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(query).
					WithArgs(1, 2, 3).
					WillReturnResult(sqlmock.NewResult(0, 2))
			},
			expectedChange: true,
		},
		{
			name: "already completed is a no-op",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(query).
					WithArgs(1, 2, 3).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedChange: false,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(query).
					WithArgs(1, 2, 3).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProgressTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			changed, err := repo.MarkCompleted(context.Background(), 1, 2, 3)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedChange, changed)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLessonProgressRepository_GetCompletedLessonIDs(t *testing.T) {
	query := `SELECT lesson_id FROM lesson_progress WHERE user_id = \? AND course_id = \? AND completed = 1`

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedIDs   []int
		expectedError bool
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"lesson_id"}).
					AddRow(3).
					AddRow(4)
				mock.ExpectQuery(query).
					WithArgs(1, 2).
					WillReturnRows(rows)
			},
			expectedIDs: []int{3, 4},
		},
		{
			name: "no completed lessons",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"lesson_id"})
				mock.ExpectQuery(query).
					WithArgs(1, 2).
					WillReturnRows(rows)
			},
			expectedIDs: []int{},
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).
					WithArgs(1, 2).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
		{
			name: "rows iteration error",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"lesson_id"}).
					AddRow(3).
					RowError(0, errors.New("row error"))
				mock.ExpectQuery(query).
					WithArgs(1, 2).
					WillReturnRows(rows)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProgressTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			completed, err := repo.GetCompletedLessonIDs(context.Background(), 1, 2)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, completed)
			} else {
				assert.NoError(t, err)
				assert.Len(t, completed, len(tt.expectedIDs))
				for _, id := range tt.expectedIDs {
					assert.True(t, completed[id])
				}
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLessonProgressRepository_CountCompletedByCourse(t *testing.T) {
	query := `SELECT COUNT\(DISTINCT lesson_id\) FROM lesson_progress WHERE user_id = \? AND course_id = \? AND completed = 1`

	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupProgressTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{"count"}).AddRow(4)
		mock.ExpectQuery(query).WithArgs(1, 2).WillReturnRows(rows)

		count, err := repo.CountCompletedByCourse(context.Background(), 1, 2)

		assert.NoError(t, err)
		assert.Equal(t, 4, count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock, cleanup := setupProgressTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(query).WithArgs(1, 2).WillReturnError(errors.New("database error"))

		count, err := repo.CountCompletedByCourse(context.Background(), 1, 2)

		assert.Error(t, err)
		assert.Zero(t, count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLessonProgressRepository_DeleteByUserAndLesson(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupProgressTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`DELETE FROM lesson_progress WHERE user_id = \? AND lesson_id = \?`).
			WithArgs(1, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DeleteByUserAndLesson(context.Background(), 1, 3)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLessonProgressRepository_DeleteByUserAndCourse(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupProgressTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`DELETE FROM lesson_progress WHERE user_id = \? AND course_id = \?`).
			WithArgs(1, 2).
			WillReturnResult(sqlmock.NewResult(0, 3))

		err := repo.DeleteByUserAndCourse(context.Background(), 1, 2)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
