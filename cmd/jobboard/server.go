// cmd/jobboard/server.go
package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"telegram-jobboard/internal/common/config"
	"telegram-jobboard/internal/common/logger"
	"telegram-jobboard/internal/common/observability"
	"telegram-jobboard/internal/common/validation"
	"telegram-jobboard/internal/models"
	"telegram-jobboard/internal/notify"
	"telegram-jobboard/internal/rank"
	"telegram-jobboard/internal/search"
	"telegram-jobboard/internal/store"
)

// server is the thin HTTP surface over the notifier, ranker and search
// components. Routing, auth and the rest of the board live upstream; this
// service only exposes the operations it owns.
type server struct {
	cfg        *config.Config
	log        logger.Logger
	obs        *observability.Observability
	jobs       *store.JobStore
	apps       *store.ApplicationStore
	milestones *store.MilestoneStore
	notifier   *notify.Notifier
	analyzer   *rank.Analyzer
	jobIndex   *search.JobIndex
}

func newServer(cfg *config.Config, log logger.Logger, obs *observability.Observability,
	jobs *store.JobStore, apps *store.ApplicationStore, milestones *store.MilestoneStore,
	notifier *notify.Notifier, analyzer *rank.Analyzer, jobIndex *search.JobIndex) *server {
	return &server{
		cfg:        cfg,
		log:        log.WithFields(map[string]interface{}{"component": "http-server"}),
		obs:        obs,
		jobs:       jobs,
		apps:       apps,
		milestones: milestones,
		notifier:   notifier,
		analyzer:   analyzer,
		jobIndex:   jobIndex,
	}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /events/application-created", s.handleApplicationCreated)
	mux.HandleFunc("POST /events/job-updated", s.handleJobUpdated)
	mux.HandleFunc("GET /jobs/{id}/applicants/ranked", s.handleRankedApplicants)
	mux.HandleFunc("GET /jobs/{id}/milestones", s.handleMilestones)
	mux.HandleFunc("POST /jobs/{id}/applications/{appID}/status", s.handleStatusChange)
	mux.HandleFunc("GET /jobs/search", s.handleJobSearch)
	mux.HandleFunc("GET /applicants/{id}/applications", s.handleApplicantApplications)

	return mux
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleApplicationCreated is the post-commit hook fired after an
// application insert. It always returns 202: milestone handling is
// best-effort and its failures never propagate to the submitter.
func (s *server) handleApplicationCreated(w http.ResponseWriter, r *http.Request) {
	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.badRequest(w, r, "invalid JSON payload")
		return
	}

	result, err := validation.Validate(payload, validation.ApplicationCreatedEventSchema())
	if err != nil {
		s.internalError(w, r, "application-created", err)
		return
	}
	if !result.Valid {
		s.badRequest(w, r, result.ErrorSummary())
		return
	}

	jobID := int64(payload["jobId"].(float64))

	s.notifier.OnApplicationCreated(r.Context(), jobID)

	s.obs.RecordRequest(r.Context(), "application-created", "accepted")
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// handleJobUpdated is the post-commit hook fired after a job insert or
// update. It refreshes the search index: active jobs are (re)indexed,
// anything else is removed from search.
func (s *server) handleJobUpdated(w http.ResponseWriter, r *http.Request) {
	if s.jobIndex == nil {
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
		return
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.badRequest(w, r, "invalid JSON payload")
		return
	}

	result, err := validation.Validate(payload, validation.JobUpdatedEventSchema())
	if err != nil {
		s.internalError(w, r, "job-updated", err)
		return
	}
	if !result.Valid {
		s.badRequest(w, r, result.ErrorSummary())
		return
	}

	jobID := int64(payload["jobId"].(float64))

	job, err := s.jobs.GetJob(r.Context(), jobID)
	if err != nil {
		s.internalError(w, r, "job-updated", err)
		return
	}

	// Index refresh is best-effort like the milestone path: failures are
	// logged but never bounce the triggering transaction.
	if job == nil || job.Status != models.JobStatusActive {
		if err := s.jobIndex.DeleteJob(r.Context(), jobID); err != nil {
			s.log.WithError(err).Warn("failed to remove job from search index", map[string]interface{}{
				"job_id": jobID,
			})
		}
	} else {
		if err := s.jobIndex.IndexJob(r.Context(), job); err != nil {
			s.log.WithError(err).Warn("failed to index job", map[string]interface{}{
				"job_id": jobID,
			})
		}
	}

	s.obs.RecordRequest(r.Context(), "job-updated", "accepted")
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// handleRankedApplicants scores and orders a job's applicants.
func (s *server) handleRankedApplicants(w http.ResponseWriter, r *http.Request) {
	jobID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || jobID < 1 {
		s.badRequest(w, r, "invalid job id")
		return
	}

	job, err := s.jobs.GetJob(r.Context(), jobID)
	if err != nil {
		s.internalError(w, r, "rank-applicants", err)
		return
	}
	if job == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "job not found"})
		return
	}

	apps, err := s.apps.ListByJob(r.Context(), jobID)
	if err != nil {
		s.internalError(w, r, "rank-applicants", err)
		return
	}

	ranked := s.analyzer.Rank(r.Context(), job, apps)

	s.obs.RecordRequest(r.Context(), "rank-applicants", "ok")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"jobId":      jobID,
		"applicants": ranked,
	})
}

// handleMilestones lists which application milestones have already been
// notified for a job.
func (s *server) handleMilestones(w http.ResponseWriter, r *http.Request) {
	jobID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || jobID < 1 {
		s.badRequest(w, r, "invalid job id")
		return
	}

	records, err := s.milestones.ListByJob(r.Context(), jobID)
	if err != nil {
		s.internalError(w, r, "list-milestones", err)
		return
	}
	if records == nil {
		records = []models.MilestoneRecord{}
	}

	s.obs.RecordRequest(r.Context(), "list-milestones", "ok")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"jobId":      jobID,
		"milestones": records,
	})
}

// handleStatusChange updates an application's review status and notifies
// the applicant on accept/reject.
func (s *server) handleStatusChange(w http.ResponseWriter, r *http.Request) {
	jobID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || jobID < 1 {
		s.badRequest(w, r, "invalid job id")
		return
	}
	appID, err := strconv.ParseInt(r.PathValue("appID"), 10, 64)
	if err != nil || appID < 1 {
		s.badRequest(w, r, "invalid application id")
		return
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.badRequest(w, r, "invalid JSON payload")
		return
	}

	result, err := validation.Validate(payload, validation.StatusChangedEventSchema())
	if err != nil {
		s.internalError(w, r, "status-change", err)
		return
	}
	if !result.Valid {
		s.badRequest(w, r, result.ErrorSummary())
		return
	}

	status := models.ApplicationStatus(payload["status"].(string))

	app, err := s.apps.GetByID(r.Context(), appID)
	if err != nil {
		s.internalError(w, r, "status-change", err)
		return
	}
	if app == nil || app.JobID != jobID {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "application not found"})
		return
	}

	job, err := s.jobs.GetJob(r.Context(), jobID)
	if err != nil {
		s.internalError(w, r, "status-change", err)
		return
	}
	if job == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "job not found"})
		return
	}

	if err := s.apps.UpdateStatus(r.Context(), appID, status); err != nil {
		s.internalError(w, r, "status-change", err)
		return
	}

	s.notifier.OnStatusChanged(r.Context(), app, job, status)

	s.obs.RecordRequest(r.Context(), "status-change", "ok")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"applicationId": appID,
		"status":        string(status),
	})
}

// handleApplicantApplications lists one user's submissions, newest first.
func (s *server) handleApplicantApplications(w http.ResponseWriter, r *http.Request) {
	applicantID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || applicantID < 1 {
		s.badRequest(w, r, "invalid applicant id")
		return
	}

	apps, err := s.apps.ListByApplicant(r.Context(), applicantID)
	if err != nil {
		s.internalError(w, r, "list-applications", err)
		return
	}
	if apps == nil {
		apps = []models.Application{}
	}

	s.obs.RecordRequest(r.Context(), "list-applications", "ok")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"applicantId":  applicantID,
		"applications": apps,
	})
}

// handleJobSearch runs a full-text job search, 503 when the index is down.
func (s *server) handleJobSearch(w http.ResponseWriter, r *http.Request) {
	if s.jobIndex == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "search unavailable"})
		return
	}

	q := search.Query{
		Keywords:   r.URL.Query().Get("q"),
		Location:   r.URL.Query().Get("location"),
		RemoteOnly: r.URL.Query().Get("remote") == "true",
	}
	if from, err := strconv.Atoi(r.URL.Query().Get("from")); err == nil && from > 0 {
		q.From = from
	}
	if size, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil && size > 0 {
		q.Size = size
	}

	result, err := s.jobIndex.SearchJobs(r.Context(), q)
	if err != nil {
		s.internalError(w, r, "job-search", err)
		return
	}

	s.obs.RecordRequest(r.Context(), "job-search", "ok")
	writeJSON(w, http.StatusOK, result)
}

func (s *server) badRequest(w http.ResponseWriter, r *http.Request, detail string) {
	s.log.Warn("bad request", map[string]interface{}{
		"path":   r.URL.Path,
		"detail": detail,
	})
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": detail})
}

func (s *server) internalError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	s.log.WithError(err).Error("request failed", map[string]interface{}{
		"path":      r.URL.Path,
		"operation": operation,
	})
	s.obs.RecordRequest(r.Context(), operation, "error")
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
