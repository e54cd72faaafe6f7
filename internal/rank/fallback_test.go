// internal/rank/fallback_test.go
package rank

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"telegram-jobboard/internal/models"
)

func TestFallbackCoverLetterScore(t *testing.T) {
	tests := []struct {
		name        string
		coverLetter string
		expected    int
	}{
		{name: "empty", coverLetter: "", expected: 0},
		{name: "very short", coverLetter: strings.Repeat("a", 30), expected: 20},
		{name: "boundary 50", coverLetter: strings.Repeat("a", 50), expected: 20},
		{name: "short", coverLetter: strings.Repeat("a", 51), expected: 40},
		{name: "boundary 100", coverLetter: strings.Repeat("a", 100), expected: 40},
		{name: "medium", coverLetter: strings.Repeat("a", 101), expected: 60},
		{name: "boundary 200", coverLetter: strings.Repeat("a", 200), expected: 60},
		{name: "long", coverLetter: strings.Repeat("a", 201), expected: 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, fallbackCoverLetterScore(tt.coverLetter))
		})
	}
}

func TestFallbackAnalysis(t *testing.T) {
	tests := []struct {
		name                 string
		app                  models.Application
		expectedOverall      int
		expectedCover        int
		expectedCompleteness int
		expectedResume       int
		expectStrengths      []string
	}{
		{
			name: "full application with long cover letter",
			app: models.Application{
				CoverLetter: strings.Repeat("x", 250),
				ResumeURL:   "https://files.example.com/resume.txt",
			},
			expectedOverall:      77, // round((100+80+50)/3)
			expectedCover:        80,
			expectedCompleteness: 100,
			expectedResume:       50,
			expectStrengths:      []string{"Application submitted"},
		},
		{
			name:                 "empty application",
			app:                  models.Application{},
			expectedOverall:      0,
			expectedCover:        0,
			expectedCompleteness: 0,
			expectedResume:       0,
			expectStrengths:      []string{},
		},
		{
			name: "cover letter only",
			app: models.Application{
				CoverLetter: strings.Repeat("x", 120),
			},
			expectedOverall:      37, // round((50+60+0)/3)
			expectedCover:        60,
			expectedCompleteness: 50,
			expectedResume:       0,
			expectStrengths:      []string{"Application submitted"},
		},
		{
			name: "resume only",
			app: models.Application{
				ResumeURL: "https://files.example.com/resume.txt",
			},
			expectedOverall:      33, // round((50+0+50)/3)
			expectedCover:        0,
			expectedCompleteness: 50,
			expectedResume:       50,
			expectStrengths:      []string{"Application submitted"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := fallbackAnalysis(&tt.app)

			assert.Equal(t, tt.expectedOverall, analysis.OverallScore)
			assert.Equal(t, tt.expectedCover, analysis.CoverLetterScore)
			assert.Equal(t, tt.expectedCompleteness, analysis.CompletenessScore)
			assert.Equal(t, tt.expectedResume, analysis.ResumeScore)
			assert.Equal(t, 50, analysis.RelevanceScore)
			assert.Equal(t, tt.expectStrengths, analysis.Strengths)
			assert.Equal(t, []string{"AI analysis not available"}, analysis.Concerns)
			assert.Equal(t, fallbackSummary, analysis.Summary)
			assert.Equal(t, models.RecommendationReview, analysis.Recommendation)
		})
	}
}

func TestFallbackRank_OrderAndStability(t *testing.T) {
	apps := []models.Application{
		{ID: 1}, // overall 0
		{ID: 2, CoverLetter: strings.Repeat("x", 250), ResumeURL: "https://x/resume"}, // overall 77
		{ID: 3, ResumeURL: "https://x/resume"},                                        // overall 33
		{ID: 4, ResumeURL: "https://x/resume"},                                        // overall 33, ties with 3
	}

	results := fallbackRank(apps)

	assert.Len(t, results, 4)
	assert.Equal(t, int64(2), results[0].Application.ID)
	// Equal scores keep submission order.
	assert.Equal(t, int64(3), results[1].Application.ID)
	assert.Equal(t, int64(4), results[2].Application.ID)
	assert.Equal(t, int64(1), results[3].Application.ID)
}

func TestFallbackRank_Empty(t *testing.T) {
	results := fallbackRank(nil)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}
