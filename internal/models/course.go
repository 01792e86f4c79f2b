package models

// Course represents a course in the learning platform
type Course struct {
	ID              int    `json:"id"`
	Slug            string `json:"slug"`
	OwnerID         int    `json:"ownerId"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Position        int    `json:"position"`
	DurationMinutes int    `json:"durationMinutes"`
	Paid            bool   `json:"paid"`
}

// CourseListItem represents a course in list responses with derived learner progress
type CourseListItem struct {
	Slug             string `json:"slug"`
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	DurationMinutes  int    `json:"durationMinutes"`
	Paid             bool   `json:"paid"`
	Enrolled         bool   `json:"enrolled"`
	TotalLessons     int    `json:"totalLessons"`
	CompletedLessons int    `json:"completedLessons"`
	ProgressPercent  int    `json:"progressPercent"`
}

// CourseDetailResponse represents a course with lesson totals for detail endpoints
type CourseDetailResponse struct {
	ID               int    `json:"id,omitempty"`
	Slug             string `json:"slug"`
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	DurationMinutes  int    `json:"durationMinutes"`
	Paid             bool   `json:"paid"`
	Enrolled         bool   `json:"enrolled"`
	TotalLessons     int    `json:"totalLessons"`
	CompletedLessons int    `json:"completedLessons"`
	ProgressPercent  int    `json:"progressPercent"`
}

// ProgressPercent derives the course progress percentage from lesson counts
func ProgressPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return completed * 100 / total
}
