// internal/store/milestones.go
package store

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	apperrors "telegram-jobboard/internal/common/errors"
	"telegram-jobboard/internal/models"
)

// MilestoneStore persists the one-record-per-(job, milestone) dedup state
// behind milestone notifications. The table carries a unique constraint on
// (job_id, milestone); the insert path converts the constraint violation
// into a distinct already-recorded error so concurrent notifiers can treat
// losing the race as success.
type MilestoneStore struct {
	db *sql.DB
}

func NewMilestoneStore(db *sql.DB) *MilestoneStore {
	return &MilestoneStore{db: db}
}

// Exists reports whether a milestone record was already created.
func (s *MilestoneStore) Exists(ctx context.Context, jobID int64, milestone int) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM job_notification_milestones
			WHERE job_id = $1 AND milestone = $2
		)`, jobID, milestone).Scan(&exists)
	if err != nil {
		return false, apperrors.NewQueryExecutionFailedError("milestone_exists", err)
	}
	return exists, nil
}

// ListByJob returns all milestone records for a job, oldest first.
func (s *MilestoneStore) ListByJob(ctx context.Context, jobID int64) ([]models.MilestoneRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, job_id, milestone, notified_at
		FROM job_notification_milestones
		WHERE job_id = $1
		ORDER BY milestone ASC`, jobID)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("list_milestones", err)
	}
	defer rows.Close()

	var records []models.MilestoneRecord
	for rows.Next() {
		var rec models.MilestoneRecord
		if err := rows.Scan(&rec.ID, &rec.JobID, &rec.Milestone, &rec.NotifiedAt); err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("scan_milestone", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("list_milestones", err)
	}
	return records, nil
}

// Create records that the milestone notification was sent. A duplicate-key
// hit returns a MILESTONE_ALREADY_RECORDED error.
func (s *MilestoneStore) Create(ctx context.Context, jobID int64, milestone int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO job_notification_milestones (job_id, milestone, notified_at)
		VALUES ($1, $2, NOW())`, jobID, milestone)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pgUniqueViolation {
			return apperrors.NewMilestoneAlreadyRecordedError(jobID, milestone)
		}
		return apperrors.NewDatabaseInsertFailedError(err)
	}
	return nil
}
