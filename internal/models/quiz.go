package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// QuestionType represents the type of a quiz question
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeTrueFalse      QuestionType = "true_false"
	QuestionTypeOpenEnded      QuestionType = "open_ended"
)

// QuizOption represents one selectable option of an objective question
type QuizOption struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"-"`
}

// QuizQuestion represents a question belonging to a lesson's quiz
type QuizQuestion struct {
	ID                 int          `json:"id"`
	LessonID           int          `json:"lessonId"`
	Position           int          `json:"position"`
	Type               QuestionType `json:"type"`
	Text               string       `json:"text"`
	Options            []QuizOption `json:"options,omitempty"`
	EvaluationCriteria string       `json:"-"`
}

// Validate checks the per-type invariants of a question
func (q *QuizQuestion) Validate() error {
	switch q.Type {
	case QuestionTypeMultipleChoice, QuestionTypeTrueFalse:
		if q.Type == QuestionTypeTrueFalse && len(q.Options) != 2 {
			return fmt.Errorf("true/false question must have exactly 2 options")
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("objective question must have at least 2 options")
		}
		correct := 0
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return fmt.Errorf("objective question must have exactly one correct option, got %d", correct)
		}
	case QuestionTypeOpenEnded:
		if q.EvaluationCriteria == "" {
			return fmt.Errorf("open-ended question requires evaluation criteria")
		}
		if len(q.Options) > 0 {
			return fmt.Errorf("open-ended question must not have options")
		}
	default:
		return fmt.Errorf("unknown question type: %s", q.Type)
	}
	return nil
}

// CorrectOptionIndex returns the index of the unique correct option, or -1
func (q *QuizQuestion) CorrectOptionIndex() int {
	for i, opt := range q.Options {
		if opt.IsCorrect {
			return i
		}
	}
	return -1
}

// QuizAnswer represents a submitted answer: an option index for objective
// questions, free text for open-ended ones
type QuizAnswer struct {
	OptionIndex *int   `json:"optionIndex,omitempty"`
	Text        string `json:"text,omitempty"`
}

// QuizSubmissionRequest represents a quiz submission for a lesson.
// Keys are question IDs.
type QuizSubmissionRequest struct {
	Answers map[int]QuizAnswer `json:"answers"`
}

// QuizAttempt represents one scored submission of answers for a lesson's quiz.
// Attempts are append-only; learners may retry without limit.
type QuizAttempt struct {
	ID        int             `json:"id"`
	UserID    int             `json:"userId"`
	LessonID  int             `json:"lessonId"`
	Score     int             `json:"score"`
	Answers   json.RawMessage `json:"answers"`
	CreatedAt time.Time       `json:"createdAt"`
}

// QuizResult represents the outcome of scoring one quiz attempt
type QuizResult struct {
	Score    int    `json:"score"`
	Passed   bool   `json:"passed"`
	Feedback string `json:"feedback,omitempty"`
	// GradingFailures counts open-ended questions whose external grading
	// call failed and was scored as 0.
	GradingFailures int `json:"gradingFailures,omitempty"`
	// EvaluationFailed is set when every open-ended grading call failed,
	// meaning the score cannot be trusted to gate completion.
	EvaluationFailed bool `json:"evaluationFailed,omitempty"`
}
