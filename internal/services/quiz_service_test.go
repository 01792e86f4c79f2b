package services

import (
	"context"
	"errors"
	"testing"

	"github.com/lumenacademy/learn-service/internal/grader"
	"github.com/lumenacademy/learn-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockQuizQuestionRepository is a mock implementation of QuizQuestionRepository
type mockQuizQuestionRepository struct {
	questions []models.QuizQuestion
	err       error
}

func (m *mockQuizQuestionRepository) GetByLessonID(ctx context.Context, lessonID int) ([]models.QuizQuestion, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.questions, nil
}

// mockQuizAttemptRepository is a mock implementation of QuizAttemptRepository
type mockQuizAttemptRepository struct {
	attempts     []models.QuizAttempt
	createErr    error
	getErr       error
	created      []models.QuizAttempt
	createCalled bool
}

func (m *mockQuizAttemptRepository) Create(ctx context.Context, attempt *models.QuizAttempt) error {
	m.createCalled = true
	if m.createErr != nil {
		return m.createErr
	}
	attempt.ID = len(m.created) + 1
	m.created = append(m.created, *attempt)
	return nil
}

func (m *mockQuizAttemptRepository) GetByUserAndLesson(ctx context.Context, userID, lessonID int) ([]models.QuizAttempt, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.attempts, nil
}

// mockGrader is a mock implementation of Grader
type mockGrader struct {
	results map[string]*grader.Result
	err     error
	calls   int
}

func (m *mockGrader) Evaluate(ctx context.Context, question, userAnswer, criteria string) (*grader.Result, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if result, ok := m.results[question]; ok {
		return result, nil
	}
	return &grader.Result{Score: 0}, nil
}

func intPtr(i int) *int {
	return &i
}

func objectiveQuestions() []models.QuizQuestion {
	return []models.QuizQuestion{
		{
			ID:   1,
			Type: models.QuestionTypeMultipleChoice,
			Text: "What is 2+2?",
			Options: []models.QuizOption{
				{ID: 10, Text: "3"},
				{ID: 11, Text: "4", IsCorrect: true},
				{ID: 12, Text: "5"},
			},
		},
		{
			ID:   2,
			Type: models.QuestionTypeTrueFalse,
			Text: "Go has pointers.",
			Options: []models.QuizOption{
				{ID: 13, Text: "True", IsCorrect: true},
				{ID: 14, Text: "False"},
			},
		},
	}
}

func TestQuizService_Submit(t *testing.T) {
	lesson := &models.Lesson{ID: 5, CourseID: 2, MinimumPassingScore: 70}

	t.Run("all correct answers score 100 and pass", func(t *testing.T) {
		attemptRepo := &mockQuizAttemptRepository{}
		svc := NewQuizService(
			&mockQuizQuestionRepository{questions: objectiveQuestions()},
			attemptRepo,
			&mockGrader{},
			zap.NewNop(),
		)

		result, err := svc.Submit(context.Background(), 1, lesson, map[int]models.QuizAnswer{
			1: {OptionIndex: intPtr(1)},
			2: {OptionIndex: intPtr(0)},
		})

		require.NoError(t, err)
		assert.Equal(t, 100, result.Score)
		assert.True(t, result.Passed)
		assert.False(t, result.EvaluationFailed)
		require.Len(t, attemptRepo.created, 1)
		assert.Equal(t, 100, attemptRepo.created[0].Score)
	})

	t.Run("wrong answers score 0 and the attempt is still recorded", func(t *testing.T) {
		attemptRepo := &mockQuizAttemptRepository{}
		svc := NewQuizService(
			&mockQuizQuestionRepository{questions: objectiveQuestions()},
			attemptRepo,
			&mockGrader{},
			zap.NewNop(),
		)

		result, err := svc.Submit(context.Background(), 1, lesson, map[int]models.QuizAnswer{
			1: {OptionIndex: intPtr(0)},
			2: {OptionIndex: intPtr(1)},
		})

		require.NoError(t, err)
		assert.Equal(t, 0, result.Score)
		assert.False(t, result.Passed)
		assert.True(t, attemptRepo.createCalled)
	})

	t.Run("mixed objective and open-ended uses the unweighted mean", func(t *testing.T) {
		questions := []models.QuizQuestion{
			objectiveQuestions()[0],
			{
				ID:                 3,
				Type:               models.QuestionTypeOpenEnded,
				Text:               "Explain interfaces.",
				EvaluationCriteria: "mentions method sets",
			},
		}
		gr := &mockGrader{results: map[string]*grader.Result{
			"Explain interfaces.": {Score: 60, Feedback: "Decent but shallow."},
		}}
		svc := NewQuizService(
			&mockQuizQuestionRepository{questions: questions},
			&mockQuizAttemptRepository{},
			gr,
			zap.NewNop(),
		)

		result, err := svc.Submit(context.Background(), 1, lesson, map[int]models.QuizAnswer{
			1: {OptionIndex: intPtr(1)},
			3: {Text: "An interface is a method set."},
		})

		require.NoError(t, err)
		assert.Equal(t, 80, result.Score) // (100 + 60) / 2
		assert.True(t, result.Passed)
		assert.Equal(t, "Decent but shallow.", result.Feedback)
		assert.Equal(t, 1, gr.calls)
	})

	t.Run("missing answer rejects the submission without writing", func(t *testing.T) {
		attemptRepo := &mockQuizAttemptRepository{}
		svc := NewQuizService(
			&mockQuizQuestionRepository{questions: objectiveQuestions()},
			attemptRepo,
			&mockGrader{},
			zap.NewNop(),
		)

		result, err := svc.Submit(context.Background(), 1, lesson, map[int]models.QuizAnswer{
			1: {OptionIndex: intPtr(1)},
		})

		assert.ErrorIs(t, err, models.ErrIncompleteSubmission)
		assert.Nil(t, result)
		assert.False(t, attemptRepo.createCalled)
	})

	t.Run("lesson without questions is not found", func(t *testing.T) {
		svc := NewQuizService(
			&mockQuizQuestionRepository{},
			&mockQuizAttemptRepository{},
			&mockGrader{},
			zap.NewNop(),
		)

		result, err := svc.Submit(context.Background(), 1, lesson, map[int]models.QuizAnswer{})

		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.Nil(t, result)
	})

	t.Run("failed grading call scores the question 0", func(t *testing.T) {
		questions := []models.QuizQuestion{
			objectiveQuestions()[0],
			{
				ID:                 3,
				Type:               models.QuestionTypeOpenEnded,
				Text:               "Explain interfaces.",
				EvaluationCriteria: "mentions method sets",
			},
		}
		svc := NewQuizService(
			&mockQuizQuestionRepository{questions: questions},
			&mockQuizAttemptRepository{},
			&mockGrader{err: errors.New("grader unavailable")},
			zap.NewNop(),
		)

		result, err := svc.Submit(context.Background(), 1, lesson, map[int]models.QuizAnswer{
			1: {OptionIndex: intPtr(1)},
			3: {Text: "An interface is a method set."},
		})

		require.NoError(t, err)
		assert.Equal(t, 50, result.Score) // (100 + 0) / 2
		assert.False(t, result.Passed)
		assert.Equal(t, 1, result.GradingFailures)
		assert.True(t, result.EvaluationFailed)
	})

	t.Run("partial grading failure does not flag evaluation failed", func(t *testing.T) {
		questions := []models.QuizQuestion{
			{
				ID:                 3,
				Type:               models.QuestionTypeOpenEnded,
				Text:               "Explain interfaces.",
				EvaluationCriteria: "mentions method sets",
			},
			{
				ID:                 4,
				Type:               models.QuestionTypeOpenEnded,
				Text:               "Explain goroutines.",
				EvaluationCriteria: "mentions the scheduler",
			},
		}
		gr := &mockGrader{results: map[string]*grader.Result{
			"Explain goroutines.": {Score: 90},
		}}
		// First call fails, second succeeds.
		failOnce := &flakyGrader{inner: gr, failures: 1}
		svc := NewQuizService(
			&mockQuizQuestionRepository{questions: questions},
			&mockQuizAttemptRepository{},
			failOnce,
			zap.NewNop(),
		)

		result, err := svc.Submit(context.Background(), 1, lesson, map[int]models.QuizAnswer{
			3: {Text: "Something vague."},
			4: {Text: "M:N scheduling of goroutines."},
		})

		require.NoError(t, err)
		assert.Equal(t, 45, result.Score) // (0 + 90) / 2
		assert.Equal(t, 1, result.GradingFailures)
		assert.False(t, result.EvaluationFailed)
	})

	t.Run("attempt write failure surfaces the error", func(t *testing.T) {
		svc := NewQuizService(
			&mockQuizQuestionRepository{questions: objectiveQuestions()},
			&mockQuizAttemptRepository{createErr: errors.New("database error")},
			&mockGrader{},
			zap.NewNop(),
		)

		result, err := svc.Submit(context.Background(), 1, lesson, map[int]models.QuizAnswer{
			1: {OptionIndex: intPtr(1)},
			2: {OptionIndex: intPtr(0)},
		})

		assert.Error(t, err)
		assert.Nil(t, result)
	})
}

// flakyGrader fails the first N calls, then delegates
type flakyGrader struct {
	inner    Grader
	failures int
	calls    int
}

func (f *flakyGrader) Evaluate(ctx context.Context, question, userAnswer, criteria string) (*grader.Result, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("grader unavailable")
	}
	return f.inner.Evaluate(ctx, question, userAnswer, criteria)
}

func TestQuizService_GetAttempts(t *testing.T) {
	attempts := []models.QuizAttempt{
		{ID: 2, UserID: 1, LessonID: 5, Score: 90},
		{ID: 1, UserID: 1, LessonID: 5, Score: 40},
	}
	svc := NewQuizService(
		&mockQuizQuestionRepository{},
		&mockQuizAttemptRepository{attempts: attempts},
		&mockGrader{},
		zap.NewNop(),
	)

	got, err := svc.GetAttempts(context.Background(), 1, 5)

	assert.NoError(t, err)
	assert.Equal(t, attempts, got)
}
