package models

import "time"

// LessonProgress represents a learner's completion record for one lesson.
// A row is created lazily the first time the learner views the lesson while
// enrolled; at most one row exists per (user, lesson).
type LessonProgress struct {
	ID          int        `json:"id"`
	UserID      int        `json:"userId"`
	CourseID    int        `json:"courseId"`
	LessonID    int        `json:"lessonId"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// CompletionOutcome reports what finalizing a lesson changed
type CompletionOutcome struct {
	LessonCompleted bool   `json:"lessonCompleted"`
	CourseCompleted bool   `json:"courseCompleted"`
	CertificateCode string `json:"certificateCode,omitempty"`
}

// RequestCompletionResponse signals whether the lesson is gated by a quiz
type RequestCompletionResponse struct {
	RequiresQuiz bool               `json:"requiresQuiz"`
	Outcome      *CompletionOutcome `json:"outcome,omitempty"`
}
