// internal/search/jobs.go
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	apperrors "telegram-jobboard/internal/common/errors"
	"telegram-jobboard/internal/common/logger"
	"telegram-jobboard/internal/models"
)

// Query is a job search request. Zero-value fields are not filtered on.
type Query struct {
	Keywords   string
	Location   string
	RemoteOnly bool
	From       int
	Size       int
}

// Result carries one page of matching jobs plus search metadata.
type Result struct {
	Jobs      []models.Job `json:"jobs"`
	TotalHits int64        `json:"totalHits"`
	Took      int          `json:"took"`
}

// JobIndex provides full-text job search backed by Elasticsearch. Indexing
// is write-through from the job lifecycle; search only sees active jobs.
type JobIndex struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewJobIndex(client *elasticsearch.Client, index string, log logger.Logger) *JobIndex {
	return &JobIndex{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "job-search"}),
	}
}

// IndexJob writes the job document, replacing any existing version.
func (j *JobIndex) IndexJob(ctx context.Context, job *models.Job) error {
	body, err := json.Marshal(job)
	if err != nil {
		return apperrors.NewIndexingFailedError(job.ID, err)
	}

	req := esapi.IndexRequest{
		Index:      j.index,
		DocumentID: strconv.FormatInt(job.ID, 10),
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}

	res, err := req.Do(ctx, j.client)
	if err != nil {
		return apperrors.NewIndexingFailedError(job.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return apperrors.NewIndexingFailedError(job.ID, fmt.Errorf("index response: %s", res.Status()))
	}

	j.logger.Debug("job indexed", map[string]interface{}{"job_id": job.ID})
	return nil
}

// DeleteJob removes the job document. A missing document is not an error.
func (j *JobIndex) DeleteJob(ctx context.Context, jobID int64) error {
	req := esapi.DeleteRequest{
		Index:      j.index,
		DocumentID: strconv.FormatInt(jobID, 10),
	}

	res, err := req.Do(ctx, j.client)
	if err != nil {
		return apperrors.NewIndexingFailedError(jobID, err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return apperrors.NewIndexingFailedError(jobID, fmt.Errorf("delete response: %s", res.Status()))
	}
	return nil
}

// SearchJobs runs a full-text query across active jobs.
func (j *JobIndex) SearchJobs(ctx context.Context, q Query) (*Result, error) {
	if q.Size <= 0 {
		q.Size = 20
	}

	body, _ := json.Marshal(buildJobSearchQuery(q))

	req := esapi.SearchRequest{
		Index: []string{j.index},
		Body:  bytes.NewReader(body),
		From:  &q.From,
		Size:  &q.Size,
	}

	res, err := req.Do(ctx, j.client)
	if err != nil {
		return nil, apperrors.NewSearchQueryFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		raw, _ := io.ReadAll(res.Body)
		return nil, apperrors.NewSearchQueryFailedError(fmt.Errorf("search response %s: %s", res.Status(), raw))
	}

	return parseSearchResponse(res.Body)
}

// buildJobSearchQuery assembles the bool query: keyword relevance in must,
// exact constraints in filter.
func buildJobSearchQuery(q Query) map[string]interface{} {
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if q.Keywords != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  q.Keywords,
				"fields": []string{"title^3", "description^2", "tags"},
				"type":   "best_fields",
			},
		})
	}

	if q.Location != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"match": map[string]interface{}{"location": q.Location},
		})
	}

	if q.RemoteOnly {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"isRemote": true},
		})
	}

	filterClauses = append(filterClauses, map[string]interface{}{
		"term": map[string]interface{}{"status": string(models.JobStatusActive)},
	})

	boolQuery := map[string]interface{}{
		"filter": filterClauses,
	}
	if len(mustClauses) > 0 {
		boolQuery["must"] = mustClauses
	} else {
		boolQuery["must"] = []interface{}{
			map[string]interface{}{"match_all": map[string]interface{}{}},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
		"sort": []interface{}{
			"_score",
			map[string]interface{}{"createdAt": map[string]interface{}{"order": "desc"}},
		},
	}
}

type searchResponse struct {
	Took int `json:"took"`
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source models.Job `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func parseSearchResponse(body io.Reader) (*Result, error) {
	var resp searchResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, apperrors.NewSearchQueryFailedError(err)
	}

	jobs := make([]models.Job, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		jobs = append(jobs, hit.Source)
	}

	return &Result{
		Jobs:      jobs,
		TotalHits: resp.Hits.Total.Value,
		Took:      resp.Took,
	}, nil
}
