// internal/store/applications.go
package store

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	apperrors "telegram-jobboard/internal/common/errors"
	"telegram-jobboard/internal/models"
)

// Postgres unique_violation, raised when an insert hits a unique constraint.
const pgUniqueViolation = "23505"

// ApplicationStore reads and creates applications.
type ApplicationStore struct {
	db *sql.DB
}

func NewApplicationStore(db *sql.DB) *ApplicationStore {
	return &ApplicationStore{db: db}
}

// CountByJob returns the total number of applications on a job, regardless
// of status.
func (s *ApplicationStore) CountByJob(ctx context.Context, jobID int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM applications WHERE job_id = $1`, jobID).Scan(&count)
	if err != nil {
		return 0, apperrors.NewQueryExecutionFailedError("count_applications", err)
	}
	return count, nil
}

// ListByJob returns a job's applications with applicant details joined in,
// oldest first.
func (s *ApplicationStore) ListByJob(ctx context.Context, jobID int64) ([]models.Application, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.job_id, a.applicant_id, a.cover_letter, a.resume_url, a.status,
		       a.created_at, a.updated_at,
		       u.telegram_id, u.username, u.first_name, u.last_name, u.email
		FROM applications a
		JOIN users u ON u.id = a.applicant_id
		WHERE a.job_id = $1
		ORDER BY a.created_at ASC`, jobID)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("list_applications_by_job", err)
	}
	defer rows.Close()

	var apps []models.Application
	for rows.Next() {
		app, err := scanApplicationWithApplicant(rows)
		if err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("scan_application", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("list_applications_by_job", err)
	}
	return apps, nil
}

// ListByApplicant returns all applications one user has submitted, newest first.
func (s *ApplicationStore) ListByApplicant(ctx context.Context, applicantID int64) ([]models.Application, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.job_id, a.applicant_id, a.cover_letter, a.resume_url, a.status,
		       a.created_at, a.updated_at,
		       u.telegram_id, u.username, u.first_name, u.last_name, u.email
		FROM applications a
		JOIN users u ON u.id = a.applicant_id
		WHERE a.applicant_id = $1
		ORDER BY a.created_at DESC`, applicantID)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("list_applications_by_applicant", err)
	}
	defer rows.Close()

	var apps []models.Application
	for rows.Next() {
		app, err := scanApplicationWithApplicant(rows)
		if err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("scan_application", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("list_applications_by_applicant", err)
	}
	return apps, nil
}

// GetByID returns an application with applicant details, or (nil, nil) when
// no row exists.
func (s *ApplicationStore) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT a.id, a.job_id, a.applicant_id, a.cover_letter, a.resume_url, a.status,
		       a.created_at, a.updated_at,
		       u.telegram_id, u.username, u.first_name, u.last_name, u.email
		FROM applications a
		JOIN users u ON u.id = a.applicant_id
		WHERE a.id = $1`, id)

	app, err := scanApplicationWithApplicant(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("get_application", err)
	}
	return &app, nil
}

// Create inserts a new application. A unique-constraint hit on
// (job_id, applicant_id) is returned as a DUPLICATE_APPLICATION error.
func (s *ApplicationStore) Create(ctx context.Context, app *models.Application) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO applications (job_id, applicant_id, cover_letter, resume_url, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		app.JobID, app.ApplicantID, nullIfEmpty(app.CoverLetter),
		nullIfEmpty(app.ResumeURL), app.Status,
	).Scan(&app.ID, &app.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pgUniqueViolation {
			return apperrors.NewDuplicateApplicationError(app.JobID, app.ApplicantID)
		}
		return apperrors.NewDatabaseInsertFailedError(err)
	}
	return nil
}

// UpdateStatus transitions an application's review state.
func (s *ApplicationStore) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE applications SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("update_application_status", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewQueryExecutionFailedError("update_application_status", err)
	}
	if affected == 0 {
		return apperrors.NewResourceNotFoundError("application", "no rows updated")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanApplicationWithApplicant(row rowScanner) (models.Application, error) {
	var app models.Application
	var applicant models.User
	var coverLetter, resumeURL sql.NullString
	var username, firstName, lastName, email sql.NullString
	var telegramID sql.NullInt64

	err := row.Scan(
		&app.ID, &app.JobID, &app.ApplicantID, &coverLetter, &resumeURL, &app.Status,
		&app.CreatedAt, &app.UpdatedAt,
		&telegramID, &username, &firstName, &lastName, &email,
	)
	if err != nil {
		return models.Application{}, err
	}

	app.CoverLetter = coverLetter.String
	app.ResumeURL = resumeURL.String

	applicant.ID = app.ApplicantID
	applicant.TelegramID = telegramID.Int64
	applicant.Username = username.String
	applicant.FirstName = firstName.String
	applicant.LastName = lastName.String
	applicant.Email = email.String
	app.Applicant = &applicant

	return app, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
