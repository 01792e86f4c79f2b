package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lumenacademy/learn-service/internal/models"
)

type contentBlockRepository struct {
	db *sql.DB
}

// NewContentBlockRepository creates a new content block repository
func NewContentBlockRepository(db *sql.DB) *contentBlockRepository {
	return &contentBlockRepository{
		db: db,
	}
}

// GetByLessonID retrieves all content blocks for a lesson, sorted by position
func (r *contentBlockRepository) GetByLessonID(ctx context.Context, lessonID int) ([]models.ContentBlockResponse, error) {
	query := `
		SELECT kind, position, payload
		FROM content_blocks
		WHERE lesson_id = ?
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query content blocks: %w", err)
	}
	defer rows.Close()

	var blocks []models.ContentBlockResponse
	for rows.Next() {
		var block models.ContentBlockResponse
		var payloadJSON string
		err := rows.Scan(
			&block.Kind,
			&block.Position,
			&payloadJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content block: %w", err)
		}
		block.Payload = json.RawMessage(payloadJSON)
		blocks = append(blocks, block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return blocks, nil
}
