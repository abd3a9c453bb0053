package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/startline/internal/models"
	"github.com/iudanet/startline/internal/server/storage"
)

const startColumns = `id, target_id, event_group_id, name, start_time, created_at, updated_at`

// GetStartByTarget retrieves the record of a target
func (s *Storage) GetStartByTarget(ctx context.Context, targetID string) (*models.StartRecord, error) {
	query := `SELECT ` + startColumns + ` FROM start_records WHERE target_id = ?`
	return s.scanStart(s.db.QueryRowContext(ctx, query, targetID))
}

// GetStart retrieves a record by id
func (s *Storage) GetStart(ctx context.Context, id string) (*models.StartRecord, error) {
	query := `SELECT ` + startColumns + ` FROM start_records WHERE id = ?`
	return s.scanStart(s.db.QueryRowContext(ctx, query, id))
}

// CreateStart stores a new record
func (s *Storage) CreateStart(ctx context.Context, record *models.StartRecord) error {
	query := `
		INSERT INTO start_records (` + startColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		record.ID,
		record.TargetID,
		record.EventGroupID,
		record.Name,
		record.StartTime.UTC(),
		record.CreatedAt.UTC(),
		record.UpdatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrStartExists
		}
		return fmt.Errorf("failed to insert start record: %w", err)
	}

	return nil
}

// UpdateStartTime changes the start time of an existing record
func (s *Storage) UpdateStartTime(ctx context.Context, id string, startTime, updatedAt time.Time) (*models.StartRecord, error) {
	query := `UPDATE start_records SET start_time = ?, updated_at = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, startTime.UTC(), updatedAt.UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update start record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, storage.ErrStartNotFound
	}

	return s.GetStart(ctx, id)
}

func (s *Storage) scanStart(row *sql.Row) (*models.StartRecord, error) {
	record := &models.StartRecord{}

	err := row.Scan(
		&record.ID,
		&record.TargetID,
		&record.EventGroupID,
		&record.Name,
		&record.StartTime,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrStartNotFound
		}
		return nil, fmt.Errorf("failed to get start record: %w", err)
	}

	record.StartTime = record.StartTime.UTC()
	record.CreatedAt = record.CreatedAt.UTC()
	record.UpdatedAt = record.UpdatedAt.UTC()
	return record, nil
}
