package models

import "time"

// ApplicationStatus is the review state of a submission.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationReviewed ApplicationStatus = "reviewed"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Application is one candidate's submission to a Job. At most one exists
// per (job, applicant) pair.
type Application struct {
	ID          int64             `json:"id"`
	JobID       int64             `json:"jobId"`
	ApplicantID int64             `json:"applicantId"`
	CoverLetter string            `json:"coverLetter,omitempty"`
	ResumeURL   string            `json:"resumeUrl,omitempty"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`

	// Applicant is populated on reads that join the users table.
	Applicant *User `json:"applicant,omitempty"`
}

// HasCoverLetter reports whether a non-empty cover letter was submitted.
func (a *Application) HasCoverLetter() bool {
	return a.CoverLetter != ""
}

// HasResume reports whether a resume storage locator is attached.
func (a *Application) HasResume() bool {
	return a.ResumeURL != ""
}
