package models

// Lesson represents a lesson in a course
type Lesson struct {
	ID                  int    `json:"id"`
	Slug                string `json:"slug"`
	CourseID            int    `json:"courseId,omitempty"`
	Title               string `json:"title"`
	Position            int    `json:"position"`
	DurationMinutes     int    `json:"durationMinutes"`
	Published           bool   `json:"published"`
	MinimumPassingScore int    `json:"minimumPassingScore"`
}

// LessonListItem represents a lesson in course detail responses
type LessonListItem struct {
	Slug            string `json:"slug"`
	Title           string `json:"title"`
	Position        int    `json:"position"`
	DurationMinutes int    `json:"durationMinutes"`
	Completed       bool   `json:"completed"`
	Unlocked        bool   `json:"unlocked"`
}

// LessonDetailResponse represents a full lesson with its content blocks
type LessonDetailResponse struct {
	Slug            string                 `json:"slug"`
	Title           string                 `json:"title"`
	DurationMinutes int                    `json:"durationMinutes"`
	Completed       bool                   `json:"completed"`
	HasQuiz         bool                   `json:"hasQuiz"`
	Blocks          []ContentBlockResponse `json:"blocks"`
}
