// Package errors provides standardized error handling for the job board core.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeJobNotFound       ErrorCode = "JOB_NOT_FOUND"
	ErrCodePosterUnreachable ErrorCode = "POSTER_UNREACHABLE"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeDuplicateApplication     ErrorCode = "DUPLICATE_APPLICATION"
	ErrCodeMilestoneAlreadyRecorded ErrorCode = "MILESTONE_ALREADY_RECORDED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeAnalysisFailed      ErrorCode = "ANALYSIS_FAILED"
	ErrCodeAnalysisParseFailed ErrorCode = "ANALYSIS_PARSE_FAILED"
	ErrCodeAnalysisTimeout     ErrorCode = "ANALYSIS_TIMEOUT"
	ErrCodeResumeNotAccessible ErrorCode = "RESUME_NOT_ACCESSIBLE"

	ErrCodeSearchQueryFailed ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeIndexingFailed    ErrorCode = "INDEXING_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Is allows errors.Is comparison by code.
func (e *StandardError) Is(target error) bool {
	var std *StandardError
	if errors.As(target, &std) {
		return e.Code == std.Code
	}
	return false
}

// CodeOf extracts the ErrorCode from err, or empty if err is not a StandardError.
func CodeOf(err error) ErrorCode {
	var std *StandardError
	if errors.As(err, &std) {
		return std.Code
	}
	return ""
}

// ==========================
// 2. Error Constructors
// ==========================

// NewJobNotFoundError creates a non-retryable lookup-miss error.
func NewJobNotFoundError(jobID int64) *StandardError {
	return &StandardError{
		Code:      ErrCodeJobNotFound,
		Message:   "Job not found",
		Details:   fmt.Sprintf("jobId: %d", jobID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPosterUnreachableError creates a non-retryable error for posters with
// no notification address on file.
func NewPosterUnreachableError(jobID int64) *StandardError {
	return &StandardError{
		Code:      ErrCodePosterUnreachable,
		Message:   "Job poster has no reachable notification address",
		Details:   fmt.Sprintf("jobId: %d", jobID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseInsertFailedError creates a retryable database insert error.
func NewDatabaseInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsertFailed,
		Message:   "Database insert operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateApplicationError creates a non-retryable duplicate application error.
func NewDuplicateApplicationError(jobID, applicantID int64) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateApplication,
		Message:   "Applicant has already applied to this job",
		Details:   fmt.Sprintf("jobId: %d, applicantId: %d", jobID, applicantID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMilestoneAlreadyRecordedError marks the loser of a concurrent milestone
// insert. Callers treat it as success-equivalent, not as a failure.
func NewMilestoneAlreadyRecordedError(jobID int64, milestone int) *StandardError {
	return &StandardError{
		Code:      ErrCodeMilestoneAlreadyRecorded,
		Message:   "Milestone notification already recorded",
		Details:   fmt.Sprintf("jobId: %d, milestone: %d", jobID, milestone),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewAnalysisFailedError creates a retryable AI analysis error.
func NewAnalysisFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAnalysisFailed,
		Message:   "AI analysis API error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewAnalysisParseFailedError creates a non-retryable malformed-response error.
func NewAnalysisParseFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAnalysisParseFailed,
		Message:   "AI analysis response could not be parsed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewResumeNotAccessibleError creates a non-retryable extraction error.
func NewResumeNotAccessibleError(locator string, err error) *StandardError {
	details := fmt.Sprintf("locator: %s", locator)
	if err != nil {
		details = fmt.Sprintf("locator: %s, error: %s", locator, err.Error())
	}
	return &StandardError{
		Code:      ErrCodeResumeNotAccessible,
		Message:   "Resume text could not be extracted",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError creates a retryable search query error.
func NewSearchQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Elasticsearch query error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIndexingFailedError creates a retryable indexing error.
func NewIndexingFailedError(jobID int64, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexingFailed,
		Message:   "Job indexing failed",
		Details:   fmt.Sprintf("jobId: %d, error: %s", jobID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// Generic constructors

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewResourceNotFoundError(resource, details string) *StandardError {
	return &StandardError{
		Code:      "RESOURCE_NOT_FOUND",
		Message:   fmt.Sprintf("Resource not found: %s", resource),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
