// internal/notify/notifier.go
package notify

import (
	"context"
	"strconv"

	apperrors "telegram-jobboard/internal/common/errors"
	"telegram-jobboard/internal/common/logger"
	"telegram-jobboard/internal/common/metrics"
	"telegram-jobboard/internal/models"
)

// Store interfaces are narrowed to what the notifier touches so tests can
// substitute plain structs.
type jobReader interface {
	GetJob(ctx context.Context, jobID int64) (*models.Job, error)
	GetUser(ctx context.Context, userID int64) (*models.User, error)
}

type applicationCounter interface {
	CountByJob(ctx context.Context, jobID int64) (int, error)
}

type milestoneRecorder interface {
	Exists(ctx context.Context, jobID int64, milestone int) (bool, error)
	Create(ctx context.Context, jobID int64, milestone int) error
}

// Config holds the pieces of app config the notifier needs directly.
type Config struct {
	WebAppURL string
}

// Notifier reacts to application events with milestone and status-change
// notifications. Every entry point is best-effort: failures are logged and
// swallowed so the calling transaction never observes them.
type Notifier struct {
	config     *Config
	jobs       jobReader
	apps       applicationCounter
	milestones milestoneRecorder
	dispatcher Dispatcher
	logger     logger.Logger
}

func NewNotifier(config *Config, jobs jobReader, apps applicationCounter, milestones milestoneRecorder, dispatcher Dispatcher, log logger.Logger) *Notifier {
	return &Notifier{
		config:     config,
		jobs:       jobs,
		apps:       apps,
		milestones: milestones,
		dispatcher: dispatcher,
		logger:     log.WithFields(map[string]interface{}{"component": "milestone-notifier"}),
	}
}

// OnApplicationCreated checks whether the job's application count landed
// exactly on a milestone and, if so, notifies the poster once. The dedup
// record is only written after a successful dispatch, so a failed send is
// retried the next time the same count is observed.
func (n *Notifier) OnApplicationCreated(ctx context.Context, jobID int64) {
	log := n.logger.WithFields(map[string]interface{}{"job_id": jobID})

	job, err := n.jobs.GetJob(ctx, jobID)
	if err != nil {
		log.WithError(err).Error("failed to load job for milestone check", nil)
		return
	}
	if job == nil {
		log.Warn("job not found for milestone check", nil)
		return
	}

	poster, err := n.jobs.GetUser(ctx, job.PosterID)
	if err != nil {
		log.WithError(err).Error("failed to load job poster", nil)
		return
	}
	if poster == nil || !poster.Reachable() {
		log.Warn("job poster missing or unreachable, skipping milestone notification", map[string]interface{}{
			"poster_id": job.PosterID,
		})
		return
	}

	count, err := n.apps.CountByJob(ctx, jobID)
	if err != nil {
		log.WithError(err).Error("failed to count applications", nil)
		return
	}

	milestone := matchMilestone(count)
	if milestone == 0 {
		return
	}

	sent, err := n.milestones.Exists(ctx, jobID, milestone)
	if err != nil {
		log.WithError(err).Error("failed to check milestone record", nil)
		return
	}
	if sent {
		log.Info("milestone already notified", map[string]interface{}{"milestone": milestone})
		return
	}

	msg := milestoneMessage(job.Title, jobID, count, n.config.WebAppURL)
	recipient := Recipient{
		UserID:     poster.ID,
		TelegramID: poster.TelegramID,
		Email:      poster.Email,
		Phone:      poster.Phone,
	}

	if !n.dispatcher.Dispatch(ctx, recipient, msg) {
		log.Error("milestone notification not delivered, leaving milestone unrecorded", map[string]interface{}{
			"milestone": milestone,
		})
		return
	}

	if err := n.milestones.Create(ctx, jobID, milestone); err != nil {
		// Losing the insert race to a concurrent notifier means the
		// milestone is covered; anything else leaves a chance of a
		// duplicate send later, which we accept over losing the record
		// path entirely.
		if apperrors.CodeOf(err) == apperrors.ErrCodeMilestoneAlreadyRecorded {
			log.Info("milestone recorded concurrently", map[string]interface{}{"milestone": milestone})
			return
		}
		log.WithError(err).Error("failed to record milestone after delivery", map[string]interface{}{
			"milestone": milestone,
		})
		return
	}

	metrics.MilestonesRecorded.WithLabelValues(strconv.Itoa(milestone)).Inc()
	log.Info("milestone notification sent and recorded", map[string]interface{}{
		"milestone": milestone,
		"count":     count,
	})
}

// OnStatusChanged notifies the applicant when their application is accepted
// or rejected. Other transitions are silent.
func (n *Notifier) OnStatusChanged(ctx context.Context, app *models.Application, job *models.Job, status models.ApplicationStatus) {
	if status != models.ApplicationAccepted && status != models.ApplicationRejected {
		return
	}

	log := n.logger.WithFields(map[string]interface{}{
		"application_id": app.ID,
		"status":         string(status),
	})

	applicant := app.Applicant
	if applicant == nil {
		var err error
		applicant, err = n.jobs.GetUser(ctx, app.ApplicantID)
		if err != nil {
			log.WithError(err).Error("failed to load applicant for status notification", nil)
			return
		}
	}
	if applicant == nil || !applicant.Reachable() {
		log.Warn("applicant missing or unreachable, skipping status notification", nil)
		return
	}

	var msg Message
	if status == models.ApplicationAccepted {
		msg = acceptedMessage(job.Title, n.config.WebAppURL)
	} else {
		msg = rejectedMessage(job.Title, n.config.WebAppURL)
	}

	recipient := Recipient{
		UserID:     applicant.ID,
		TelegramID: applicant.TelegramID,
		Email:      applicant.Email,
		Phone:      applicant.Phone,
	}

	if n.dispatcher.Dispatch(ctx, recipient, msg) {
		log.Info("status notification sent", nil)
	}
}
