package models

import "time"

// MilestoneRecord marks that the notification for a milestone on a job has
// been sent. The (job, milestone) pair is unique; the record is created once
// after a confirmed dispatch and never mutated.
type MilestoneRecord struct {
	ID         int64     `json:"id"`
	JobID      int64     `json:"jobId"`
	Milestone  int       `json:"milestone"`
	NotifiedAt time.Time `json:"notifiedAt"`
}
