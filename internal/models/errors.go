package models

import "errors"

// Sentinel errors shared across services and mapped to HTTP statuses in handlers.
var (
	// ErrNotFound indicates a referenced course, lesson or question does not exist
	ErrNotFound = errors.New("not found")
	// ErrAlreadyEnrolled indicates a duplicate enrollment attempt for the same course
	ErrAlreadyEnrolled = errors.New("already enrolled")
	// ErrNotEnrolled indicates the learner has no enrollment for the course
	ErrNotEnrolled = errors.New("not enrolled")
	// ErrLessonLocked indicates the lesson is not yet unlocked for the learner
	ErrLessonLocked = errors.New("lesson locked")
	// ErrIncompleteSubmission indicates a quiz submission missing answers for one or more questions
	ErrIncompleteSubmission = errors.New("incomplete submission")
	// ErrEvaluationFailed indicates grading could not produce a trustworthy result
	ErrEvaluationFailed = errors.New("evaluation failed")
)
