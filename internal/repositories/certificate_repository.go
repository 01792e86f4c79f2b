package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lumenacademy/learn-service/internal/models"
)

type certificateRepository struct {
	db *sql.DB
}

// NewCertificateRepository creates a new certificate repository
func NewCertificateRepository(db *sql.DB) *certificateRepository {
	return &certificateRepository{
		db: db,
	}
}

// Create issues a certificate. Returns false without error when a certificate
// for the (user, course) pair already exists: issuance is idempotent and the
// unique key makes the first writer win.
func (r *certificateRepository) Create(ctx context.Context, cert *models.Certificate) (bool, error) {
	query := `
		INSERT INTO certificates (user_id, course_id, code, issued_at)
		VALUES (?, ?, ?, NOW())
	`

	result, err := r.db.ExecContext(ctx, query,
		cert.UserID,
		cert.CourseID,
		cert.Code,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create certificate: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return false, fmt.Errorf("failed to get last insert id: %w", err)
	}

	cert.ID = int(id)
	return true, nil
}

// GetByUserAndCourse retrieves the certificate for a (user, course) pair
func (r *certificateRepository) GetByUserAndCourse(ctx context.Context, userID, courseID int) (*models.Certificate, error) {
	query := `
		SELECT id, user_id, course_id, code, issued_at
		FROM certificates
		WHERE user_id = ? AND course_id = ?
		LIMIT 1
	`

	var cert models.Certificate
	err := r.db.QueryRowContext(ctx, query, userID, courseID).Scan(
		&cert.ID,
		&cert.UserID,
		&cert.CourseID,
		&cert.Code,
		&cert.IssuedAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get certificate: %w", err)
	}

	return &cert, nil
}

// GetByCode retrieves a certificate by its verification code
func (r *certificateRepository) GetByCode(ctx context.Context, code string) (*models.Certificate, error) {
	query := `
		SELECT id, user_id, course_id, code, issued_at
		FROM certificates
		WHERE code = ?
		LIMIT 1
	`

	var cert models.Certificate
	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&cert.ID,
		&cert.UserID,
		&cert.CourseID,
		&cert.Code,
		&cert.IssuedAt,
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get certificate by code: %w", err)
	}

	return &cert, nil
}
