package models

import "time"

// JobStatus is the lifecycle state of a posting.
type JobStatus string

const (
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
	JobStatusDraft  JobStatus = "draft"
)

// Job is a posting seeking applicants.
type Job struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements,omitempty"`
	Location     string    `json:"location,omitempty"`
	IsRemote     bool      `json:"isRemote"`
	Tags         string    `json:"tags,omitempty"`
	Status       JobStatus `json:"status"`
	PosterID     int64     `json:"posterId"`
	CreatedAt    time.Time `json:"createdAt"`
}
