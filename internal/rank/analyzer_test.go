// internal/rank/analyzer_test.go
package rank

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"telegram-jobboard/internal/common/logger"
	"telegram-jobboard/internal/models"
)

type mockOracle struct {
	GenerateFunc func(ctx context.Context, prompt string) (string, error)
}

func (m *mockOracle) Generate(ctx context.Context, prompt string) (string, error) {
	return m.GenerateFunc(ctx, prompt)
}

type mockExtractor struct {
	ExtractFunc func(ctx context.Context, locator string) (string, bool)
}

func (m *mockExtractor) Extract(ctx context.Context, locator string) (string, bool) {
	return m.ExtractFunc(ctx, locator)
}

func testConfig() *Config {
	return &Config{
		Model:              "gemini-2.0-flash-exp",
		Timeout:            5 * time.Second,
		ResumeTextMaxChars: 3000,
	}
}

func testJob() *models.Job {
	return &models.Job{
		ID:          42,
		Title:       "Backend Engineer",
		Description: "Build and run Go services.",
	}
}

func testApps() []models.Application {
	return []models.Application{
		{ID: 1, JobID: 42, CoverLetter: strings.Repeat("a", 250), ResumeURL: "https://files/1.txt"},
		{ID: 2, JobID: 42, CoverLetter: strings.Repeat("b", 120)},
		{ID: 3, JobID: 42},
	}
}

func TestAnalyzer_Rank_OracleSuccess(t *testing.T) {
	oracle := &mockOracle{
		GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
			return `[
				{"application_id": 2, "overall_score": 90, "recommendation": "hire"},
				{"application_id": 1, "overall_score": 75, "recommendation": "interview"},
				{"application_id": 3, "overall_score": 20, "recommendation": "pass"}
			]`, nil
		},
	}

	analyzer := NewAnalyzer(testConfig(), oracle, nil, logger.NewNoOpLogger())
	results := analyzer.Rank(context.Background(), testJob(), testApps())

	assert.Len(t, results, 3)
	assert.Equal(t, int64(2), results[0].Application.ID)
	assert.Equal(t, models.RecommendationHire, results[0].Analysis.Recommendation)
	assert.Equal(t, int64(3), results[2].Application.ID)
}

func TestAnalyzer_Rank_OracleErrorFallsBackForWholeBatch(t *testing.T) {
	tests := []struct {
		name   string
		oracle *mockOracle
	}{
		{
			name: "transport error",
			oracle: &mockOracle{
				GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
					return "", errors.New("quota exceeded")
				},
			},
		},
		{
			name: "unparseable response",
			oracle: &mockOracle{
				GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
					return "the candidates all look fine to me", nil
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := NewAnalyzer(testConfig(), tt.oracle, nil, logger.NewNoOpLogger())
			results := analyzer.Rank(context.Background(), testJob(), testApps())

			// Every applicant scored, none by the oracle.
			assert.Len(t, results, 3)
			for _, r := range results {
				assert.Equal(t, fallbackSummary, r.Analysis.Summary)
				assert.Equal(t, models.RecommendationReview, r.Analysis.Recommendation)
			}
		})
	}
}

func TestAnalyzer_Rank_NoOracleUsesFallback(t *testing.T) {
	analyzer := NewAnalyzer(testConfig(), nil, nil, logger.NewNoOpLogger())
	results := analyzer.Rank(context.Background(), testJob(), testApps())

	assert.Len(t, results, 3)
	assert.Equal(t, fallbackSummary, results[0].Analysis.Summary)
	// Descending by the rule-based overall score.
	assert.Equal(t, int64(1), results[0].Application.ID)
}

func TestAnalyzer_Rank_EmptyBatch(t *testing.T) {
	called := false
	oracle := &mockOracle{
		GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
			called = true
			return "[]", nil
		},
	}

	analyzer := NewAnalyzer(testConfig(), oracle, nil, logger.NewNoOpLogger())
	results := analyzer.Rank(context.Background(), testJob(), nil)

	assert.NotNil(t, results)
	assert.Empty(t, results)
	assert.False(t, called)
}

func TestAnalyzer_Rank_ResumeTextReachesPrompt(t *testing.T) {
	var capturedPrompt string
	oracle := &mockOracle{
		GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
			capturedPrompt = prompt
			return `[{"application_id": 1, "overall_score": 80}]`, nil
		},
	}
	extractor := &mockExtractor{
		ExtractFunc: func(ctx context.Context, locator string) (string, bool) {
			if locator == "https://files/1.txt" {
				return "Five years of Go and PostgreSQL experience.", true
			}
			return "", false
		},
	}

	analyzer := NewAnalyzer(testConfig(), oracle, extractor, logger.NewNoOpLogger())
	apps := []models.Application{{ID: 1, JobID: 42, ResumeURL: "https://files/1.txt"}}
	results := analyzer.Rank(context.Background(), testJob(), apps)

	assert.Len(t, results, 1)
	assert.Contains(t, capturedPrompt, "Five years of Go and PostgreSQL experience.")
}

func TestAnalyzer_Rank_InaccessibleResumeMarked(t *testing.T) {
	var capturedPrompt string
	oracle := &mockOracle{
		GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
			capturedPrompt = prompt
			return `[{"application_id": 1, "overall_score": 50}]`, nil
		},
	}
	extractor := &mockExtractor{
		ExtractFunc: func(ctx context.Context, locator string) (string, bool) {
			return "", false
		},
	}

	analyzer := NewAnalyzer(testConfig(), oracle, extractor, logger.NewNoOpLogger())
	apps := []models.Application{{ID: 1, JobID: 42, ResumeURL: "https://files/1.pdf"}}
	analyzer.Rank(context.Background(), testJob(), apps)

	assert.Contains(t, capturedPrompt, resumeNotAccessibleMarker)
}

func TestAnalyzer_Rank_LongResumeTruncated(t *testing.T) {
	longText := strings.Repeat("experience ", 1000)

	var capturedPrompt string
	oracle := &mockOracle{
		GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
			capturedPrompt = prompt
			return `[{"application_id": 1, "overall_score": 50}]`, nil
		},
	}
	extractor := &mockExtractor{
		ExtractFunc: func(ctx context.Context, locator string) (string, bool) {
			return longText, true
		},
	}

	cfg := testConfig()
	cfg.ResumeTextMaxChars = 100

	analyzer := NewAnalyzer(cfg, oracle, extractor, logger.NewNoOpLogger())
	apps := []models.Application{{ID: 1, JobID: 42, ResumeURL: "https://files/1.txt"}}
	analyzer.Rank(context.Background(), testJob(), apps)

	assert.Contains(t, capturedPrompt, truncationMarker)
	assert.NotContains(t, capturedPrompt, longText)
}

func TestTruncateResumeText(t *testing.T) {
	assert.Equal(t, "short", truncateResumeText("short", 3000))
	assert.Equal(t, "", truncateResumeText("", 3000))

	long := strings.Repeat("x", 3001)
	truncated := truncateResumeText(long, 3000)
	assert.Equal(t, 3000+len(truncationMarker), len(truncated))
	assert.True(t, strings.HasSuffix(truncated, truncationMarker))
}

func TestBuildPrompt_IncludesCandidateDetails(t *testing.T) {
	apps := testApps()
	candidates := make([]candidate, 0, len(apps))
	for i := range apps {
		candidates = append(candidates, newCandidate(&apps[i]))
	}

	prompt := buildPrompt(testJob(), candidates)

	assert.Contains(t, prompt, "Backend Engineer")
	for _, app := range apps {
		assert.Contains(t, prompt, fmt.Sprintf("Application ID: %d", app.ID))
	}
	assert.Contains(t, prompt, noCoverLetterPlaceholder)
	assert.Contains(t, prompt, "ONLY the JSON array")
}
