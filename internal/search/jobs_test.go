// internal/search/jobs_test.go
package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildJobSearchQuery_Keywords(t *testing.T) {
	q := buildJobSearchQuery(Query{Keywords: "golang backend"})

	boolQuery := q["query"].(map[string]interface{})["bool"].(map[string]interface{})
	must := boolQuery["must"].([]interface{})

	multiMatch := must[0].(map[string]interface{})["multi_match"].(map[string]interface{})
	assert.Equal(t, "golang backend", multiMatch["query"])
	assert.Equal(t, []string{"title^3", "description^2", "tags"}, multiMatch["fields"])
}

func TestBuildJobSearchQuery_NoKeywordsMatchesAll(t *testing.T) {
	q := buildJobSearchQuery(Query{})

	boolQuery := q["query"].(map[string]interface{})["bool"].(map[string]interface{})
	must := boolQuery["must"].([]interface{})

	_, hasMatchAll := must[0].(map[string]interface{})["match_all"]
	assert.True(t, hasMatchAll)
}

func TestBuildJobSearchQuery_Filters(t *testing.T) {
	q := buildJobSearchQuery(Query{Location: "Berlin", RemoteOnly: true})

	boolQuery := q["query"].(map[string]interface{})["bool"].(map[string]interface{})
	filters := boolQuery["filter"].([]interface{})

	// location match, remote term, and the always-on active status term
	assert.Len(t, filters, 3)

	foundStatus := false
	for _, f := range filters {
		if term, ok := f.(map[string]interface{})["term"].(map[string]interface{}); ok {
			if status, ok := term["status"]; ok {
				assert.Equal(t, "active", status)
				foundStatus = true
			}
		}
	}
	assert.True(t, foundStatus, "active status filter must always be present")
}

func TestParseSearchResponse(t *testing.T) {
	body := `{
		"took": 12,
		"hits": {
			"total": {"value": 2},
			"hits": [
				{"_source": {"id": 1, "title": "Backend Engineer", "status": "active"}},
				{"_source": {"id": 2, "title": "SRE", "status": "active"}}
			]
		}
	}`

	result, err := parseSearchResponse(strings.NewReader(body))

	assert.NoError(t, err)
	assert.Equal(t, int64(2), result.TotalHits)
	assert.Equal(t, 12, result.Took)
	assert.Len(t, result.Jobs, 2)
	assert.Equal(t, "Backend Engineer", result.Jobs[0].Title)
}

func TestParseSearchResponse_Malformed(t *testing.T) {
	_, err := parseSearchResponse(strings.NewReader("not json"))
	assert.Error(t, err)
}
