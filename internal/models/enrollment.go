package models

import "time"

// EnrollmentState represents the lifecycle state of an enrollment
type EnrollmentState string

const (
	EnrollmentStateEnrolled  EnrollmentState = "enrolled"
	EnrollmentStateCompleted EnrollmentState = "completed"
)

// Enrollment represents a learner's relationship to a course.
// At most one enrollment exists per (user, course).
type Enrollment struct {
	ID          int             `json:"id"`
	UserID      int             `json:"userId"`
	CourseID    int             `json:"courseId"`
	State       EnrollmentState `json:"state"`
	EnrolledAt  time.Time       `json:"enrolledAt"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
}
