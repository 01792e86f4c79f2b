package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuizQuestion_Validate(t *testing.T) {
	tests := []struct {
		name     string
		question QuizQuestion
		wantErr  bool
	}{
		{
			name: "valid multiple choice",
			question: QuizQuestion{
				Type: QuestionTypeMultipleChoice,
				Text: "Which keyword starts a goroutine?",
				Options: []QuizOption{
					{Text: "async"},
					{Text: "go", IsCorrect: true},
					{Text: "spawn"},
				},
			},
		},
		{
			name: "valid true/false",
			question: QuizQuestion{
				Type: QuestionTypeTrueFalse,
				Text: "Channels are typed.",
				Options: []QuizOption{
					{Text: "True", IsCorrect: true},
					{Text: "False"},
				},
			},
		},
		{
			name: "valid open-ended",
			question: QuizQuestion{
				Type:               QuestionTypeOpenEnded,
				Text:               "Explain what a select statement does.",
				EvaluationCriteria: "Mentions waiting on multiple channel operations.",
			},
		},
		{
			name: "multiple choice with one option",
			question: QuizQuestion{
				Type:    QuestionTypeMultipleChoice,
				Options: []QuizOption{{Text: "go", IsCorrect: true}},
			},
			wantErr: true,
		},
		{
			name: "multiple choice with no correct option",
			question: QuizQuestion{
				Type:    QuestionTypeMultipleChoice,
				Options: []QuizOption{{Text: "async"}, {Text: "spawn"}},
			},
			wantErr: true,
		},
		{
			name: "multiple choice with two correct options",
			question: QuizQuestion{
				Type: QuestionTypeMultipleChoice,
				Options: []QuizOption{
					{Text: "go", IsCorrect: true},
					{Text: "goroutine", IsCorrect: true},
				},
			},
			wantErr: true,
		},
		{
			name: "true/false with three options",
			question: QuizQuestion{
				Type: QuestionTypeTrueFalse,
				Options: []QuizOption{
					{Text: "True", IsCorrect: true},
					{Text: "False"},
					{Text: "Maybe"},
				},
			},
			wantErr: true,
		},
		{
			name: "open-ended without criteria",
			question: QuizQuestion{
				Type: QuestionTypeOpenEnded,
				Text: "Explain channels.",
			},
			wantErr: true,
		},
		{
			name: "open-ended with options",
			question: QuizQuestion{
				Type:               QuestionTypeOpenEnded,
				EvaluationCriteria: "Anything goes.",
				Options:            []QuizOption{{Text: "A"}},
			},
			wantErr: true,
		},
		{
			name: "unknown type",
			question: QuizQuestion{
				Type: QuestionType("essay"),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.question.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuizQuestion_CorrectOptionIndex(t *testing.T) {
	t.Run("returns the index of the correct option", func(t *testing.T) {
		question := QuizQuestion{
			Options: []QuizOption{
				{Text: "async"},
				{Text: "spawn"},
				{Text: "go", IsCorrect: true},
			},
		}
		assert.Equal(t, 2, question.CorrectOptionIndex())
	})

	t.Run("returns -1 without a correct option", func(t *testing.T) {
		question := QuizQuestion{Options: []QuizOption{{Text: "async"}}}
		assert.Equal(t, -1, question.CorrectOptionIndex())
	})

	t.Run("returns -1 for open-ended questions", func(t *testing.T) {
		question := QuizQuestion{Type: QuestionTypeOpenEnded}
		assert.Equal(t, -1, question.CorrectOptionIndex())
	})
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{name: "no lessons", completed: 0, total: 0, want: 0},
		{name: "nothing completed", completed: 0, total: 4, want: 0},
		{name: "partial progress floors", completed: 2, total: 3, want: 66},
		{name: "halfway", completed: 2, total: 4, want: 50},
		{name: "all completed", completed: 3, total: 3, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProgressPercent(tt.completed, tt.total))
		})
	}
}
