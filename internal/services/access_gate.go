package services

import "github.com/lumenacademy/learn-service/internal/models"

// ComputeUnlocked decides which lessons of a course a learner may access.
// Lessons must be ordered by position. The first lesson is always unlocked;
// every later lesson unlocks only when its direct predecessor is completed,
// so the chain is strictly sequential with no skipping ahead. A lesson with
// no progress row counts as not completed.
//
// Enrollment policy is the caller's concern: for a non-enrolled learner pass
// an empty completed set and apply preview rules outside.
func ComputeUnlocked(lessons []models.Lesson, completed map[int]bool) map[int]bool {
	unlocked := make(map[int]bool, len(lessons))
	for i, lesson := range lessons {
		if i == 0 {
			unlocked[lesson.ID] = true
			continue
		}
		unlocked[lesson.ID] = completed[lessons[i-1].ID]
	}
	return unlocked
}
