// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationResult reports schema validation outcome for a payload.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate checks data against a JSON schema expressed as a Go map.
func Validate(data map[string]interface{}, schema map[string]interface{}) (*ValidationResult, error) {
	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewGoLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation failed to run: %w", err)
	}

	if result.Valid() {
		return &ValidationResult{Valid: true}, nil
	}

	out := &ValidationResult{Valid: false}
	for _, e := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   e.Field(),
			Message: e.Description(),
		})
	}
	return out, nil
}

// ErrorSummary flattens validation errors into one line for logging.
func (r *ValidationResult) ErrorSummary() string {
	if r.Valid {
		return ""
	}
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(parts, "; ")
}

// ApplicationCreatedEventSchema validates the payload posted by the
// application-submission endpoint after commit.
func ApplicationCreatedEventSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"jobId": map[string]interface{}{
				"type":    "integer",
				"minimum": 1,
			},
		},
		"required":             []string{"jobId"},
		"additionalProperties": false,
	}
}

// JobUpdatedEventSchema validates the payload posted after a job insert or
// update commits. Same shape as the application event, kept separate so the
// two contracts can drift independently.
func JobUpdatedEventSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"jobId": map[string]interface{}{
				"type":    "integer",
				"minimum": 1,
			},
		},
		"required":             []string{"jobId"},
		"additionalProperties": false,
	}
}

// StatusChangedEventSchema validates application status-change payloads.
func StatusChangedEventSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"status": map[string]interface{}{
				"type": "string",
				"enum": []string{"pending", "reviewed", "accepted", "rejected"},
			},
		},
		"required":             []string{"status"},
		"additionalProperties": false,
	}
}
