package models

import "time"

// Certificate is issued at most once per (user, course) when the learner
// completes every lesson in the course
type Certificate struct {
	ID       int       `json:"id"`
	UserID   int       `json:"userId"`
	CourseID int       `json:"courseId"`
	Code     string    `json:"code"`
	IssuedAt time.Time `json:"issuedAt"`
}
