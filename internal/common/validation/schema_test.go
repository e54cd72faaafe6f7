// internal/common/validation/schema_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplicationCreatedEventSchema(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]interface{}
		valid   bool
	}{
		{
			name:    "valid",
			payload: map[string]interface{}{"jobId": 42},
			valid:   true,
		},
		{
			name:    "missing jobId",
			payload: map[string]interface{}{},
			valid:   false,
		},
		{
			name:    "jobId zero",
			payload: map[string]interface{}{"jobId": 0},
			valid:   false,
		},
		{
			name:    "jobId wrong type",
			payload: map[string]interface{}{"jobId": "42"},
			valid:   false,
		},
		{
			name:    "unexpected field",
			payload: map[string]interface{}{"jobId": 42, "extra": true},
			valid:   false,
		},
	}

	schema := ApplicationCreatedEventSchema()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Validate(tt.payload, schema)
			assert.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid)
			if !tt.valid {
				assert.NotEmpty(t, result.ErrorSummary())
			}
		})
	}
}

func TestJobUpdatedEventSchema(t *testing.T) {
	schema := JobUpdatedEventSchema()

	result, err := Validate(map[string]interface{}{"jobId": 7}, schema)
	assert.NoError(t, err)
	assert.True(t, result.Valid)

	result, err = Validate(map[string]interface{}{"jobId": -1}, schema)
	assert.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestStatusChangedEventSchema(t *testing.T) {
	schema := StatusChangedEventSchema()

	for _, status := range []string{"pending", "reviewed", "accepted", "rejected"} {
		result, err := Validate(map[string]interface{}{"status": status}, schema)
		assert.NoError(t, err)
		assert.True(t, result.Valid, "status=%s", status)
	}

	result, err := Validate(map[string]interface{}{"status": "hired"}, schema)
	assert.NoError(t, err)
	assert.False(t, result.Valid)

	result, err = Validate(map[string]interface{}{}, schema)
	assert.NoError(t, err)
	assert.False(t, result.Valid)
}
