package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/lumenacademy/learn-service/internal/grader"
	"github.com/lumenacademy/learn-service/internal/models"
	"go.uber.org/zap"
)

// QuizQuestionRepository defines methods for quiz question data access
type QuizQuestionRepository interface {
	// GetByLessonID retrieves all questions of a lesson with options,
	// sorted by question position
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	//
	// Returns the questions and an error if any.
	GetByLessonID(ctx context.Context, lessonID int) ([]models.QuizQuestion, error)
}

// QuizAttemptRepository defines methods for quiz attempt data access
type QuizAttemptRepository interface {
	// Create records a quiz attempt
	//
	// "ctx" is the context for the request.
	// "attempt" is the attempt to record.
	//
	// Returns an error if any.
	Create(ctx context.Context, attempt *models.QuizAttempt) error
	// GetByUserAndLesson retrieves a learner's attempts for a lesson
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "lessonID" is the ID of the lesson.
	//
	// Returns the attempts, newest first, and an error if any.
	GetByUserAndLesson(ctx context.Context, userID, lessonID int) ([]models.QuizAttempt, error)
}

// Grader evaluates open-ended answers via the external grading service
type Grader interface {
	// Evaluate grades one open-ended answer
	//
	// "ctx" is the context for the request.
	// "question" is the question text.
	// "userAnswer" is the learner's free-text answer.
	// "criteria" is the evaluation criteria attached to the question.
	//
	// Returns the grading result or an error on transport failure,
	// timeout or non-2xx response.
	Evaluate(ctx context.Context, question, userAnswer, criteria string) (*grader.Result, error)
}

type quizService struct {
	questionRepo QuizQuestionRepository
	attemptRepo  QuizAttemptRepository
	grader       Grader
	logger       *zap.Logger
}

// NewQuizService creates a new quiz service
func NewQuizService(questionRepo QuizQuestionRepository, attemptRepo QuizAttemptRepository, gr Grader, logger *zap.Logger) *quizService {
	return &quizService{
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		grader:       gr,
		logger:       logger,
	}
}

// Submit scores a quiz submission for a lesson and records the attempt.
//
// Every question of the lesson must have an answer or the submission is
// rejected with models.ErrIncompleteSubmission before anything is written.
// Objective questions score 100 on the exact correct option, 0 otherwise.
// Open-ended questions are graded externally; a failed grading call scores
// that question 0 and never fails the whole attempt. The final score is the
// rounded unweighted mean, each question counting equally.
//
// The attempt row is written pass or fail. When every open-ended grading
// call failed the result is flagged EvaluationFailed so callers refuse to
// gate completion on it.
func (s *quizService) Submit(ctx context.Context, userID int, lesson *models.Lesson, answers map[int]models.QuizAnswer) (*models.QuizResult, error) {
	questions, err := s.questionRepo.GetByLessonID(ctx, lesson.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, models.ErrNotFound
	}

	for _, q := range questions {
		if _, ok := answers[q.ID]; !ok {
			return nil, models.ErrIncompleteSubmission
		}
	}

	var (
		total           int
		feedback        string
		openEnded       int
		gradingFailures int
	)
	for _, q := range questions {
		answer := answers[q.ID]

		switch q.Type {
		case models.QuestionTypeMultipleChoice, models.QuestionTypeTrueFalse:
			if answer.OptionIndex != nil && *answer.OptionIndex == q.CorrectOptionIndex() {
				total += 100
			}
		case models.QuestionTypeOpenEnded:
			openEnded++
			result, err := s.grader.Evaluate(ctx, q.Text, answer.Text, q.EvaluationCriteria)
			if err != nil {
				gradingFailures++
				s.logger.Warn("open-ended grading failed, scoring question as 0",
					zap.Int("question_id", q.ID),
					zap.Int("user_id", userID),
					zap.Error(err),
				)
				continue
			}
			total += result.Score
			if result.Feedback != "" {
				if feedback != "" {
					feedback += "\n"
				}
				feedback += result.Feedback
			}
		default:
			return nil, fmt.Errorf("unknown question type: %s", q.Type)
		}
	}

	score := int(math.Round(float64(total) / float64(len(questions))))
	result := &models.QuizResult{
		Score:            score,
		Feedback:         feedback,
		GradingFailures:  gradingFailures,
		EvaluationFailed: openEnded > 0 && gradingFailures == openEnded,
	}
	result.Passed = !result.EvaluationFailed && score >= lesson.MinimumPassingScore

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal answers: %w", err)
	}

	attempt := &models.QuizAttempt{
		UserID:   userID,
		LessonID: lesson.ID,
		Score:    score,
		Answers:  answersJSON,
	}
	if err := s.attemptRepo.Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to record quiz attempt: %w", err)
	}

	return result, nil
}

// GetAttempts retrieves a learner's attempt history for a lesson
func (s *quizService) GetAttempts(ctx context.Context, userID, lessonID int) ([]models.QuizAttempt, error) {
	return s.attemptRepo.GetByUserAndLesson(ctx, userID, lessonID)
}
