package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumenacademy/learn-service/internal/models"
)

type enrollmentRepository struct {
	db *sql.DB
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *sql.DB) *enrollmentRepository {
	return &enrollmentRepository{
		db: db,
	}
}

// Create creates an enrollment. The unique key on (user_id, course_id) is the
// concurrency guard; a duplicate insert returns models.ErrAlreadyEnrolled.
func (r *enrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		INSERT INTO enrollments (user_id, course_id, state, enrolled_at)
		VALUES (?, ?, ?, NOW())
	`

	result, err := r.db.ExecContext(ctx, query,
		enrollment.UserID,
		enrollment.CourseID,
		models.EnrollmentStateEnrolled,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return models.ErrAlreadyEnrolled
		}
		return fmt.Errorf("failed to create enrollment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	enrollment.ID = int(id)
	enrollment.State = models.EnrollmentStateEnrolled
	return nil
}

// Delete deletes an enrollment. Progress and quiz attempts are kept as
// history; only an administrative course reset removes them.
func (r *enrollmentRepository) Delete(ctx context.Context, userID, courseID int) error {
	query := `
		DELETE FROM enrollments
		WHERE user_id = ? AND course_id = ?
	`

	result, err := r.db.ExecContext(ctx, query, userID, courseID)
	if err != nil {
		return fmt.Errorf("failed to delete enrollment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrNotEnrolled
	}

	return nil
}

// Exists checks if an enrollment exists for user and course
func (r *enrollmentRepository) Exists(ctx context.Context, userID, courseID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM enrollments WHERE user_id = ? AND course_id = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, userID, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment existence: %w", err)
	}

	return exists, nil
}

// MarkCompleted transitions an enrollment to completed. Returns false when
// the enrollment was already completed, so concurrent finalizers converge on
// a single transition.
func (r *enrollmentRepository) MarkCompleted(ctx context.Context, userID, courseID int) (bool, error) {
	query := `
		UPDATE enrollments
		SET state = ?, completed_at = NOW()
		WHERE user_id = ? AND course_id = ? AND state = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		models.EnrollmentStateCompleted,
		userID,
		courseID,
		models.EnrollmentStateEnrolled,
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark enrollment completed: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}
