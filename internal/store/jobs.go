// internal/store/jobs.go
package store

import (
	"context"
	"database/sql"

	apperrors "telegram-jobboard/internal/common/errors"
	"telegram-jobboard/internal/models"
)

// JobStore reads jobs and their posters.
type JobStore struct {
	db *sql.DB
}

func NewJobStore(db *sql.DB) *JobStore {
	return &JobStore{db: db}
}

// GetJob returns the job or (nil, nil) when no row exists. Absence is a
// normal condition for callers that treat lookup misses as no-ops.
func (s *JobStore) GetJob(ctx context.Context, jobID int64) (*models.Job, error) {
	var job models.Job
	var requirements, location, tags sql.NullString

	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, requirements, location, is_remote, tags, status, poster_id, created_at
		FROM jobs
		WHERE id = $1`, jobID).Scan(
		&job.ID, &job.Title, &job.Description, &requirements,
		&location, &job.IsRemote, &tags, &job.Status, &job.PosterID, &job.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("get_job", err)
	}

	job.Requirements = requirements.String
	job.Location = location.String
	job.Tags = tags.String
	return &job, nil
}

// GetUser returns the user or (nil, nil) when no row exists.
func (s *JobStore) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User
	var username, firstName, lastName, phone, email sql.NullString
	var telegramID sql.NullInt64

	err := s.db.QueryRowContext(ctx, `
		SELECT id, telegram_id, username, first_name, last_name, phone, email, role, created_at
		FROM users
		WHERE id = $1`, userID).Scan(
		&user.ID, &telegramID, &username, &firstName, &lastName,
		&phone, &email, &user.Role, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("get_user", err)
	}

	user.TelegramID = telegramID.Int64
	user.Username = username.String
	user.FirstName = firstName.String
	user.LastName = lastName.String
	user.Phone = phone.String
	user.Email = email.String
	return &user, nil
}
