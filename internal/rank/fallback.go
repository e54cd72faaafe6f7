// internal/rank/fallback.go
package rank

import (
	"math"
	"sort"

	"telegram-jobboard/internal/models"
)

const fallbackSummary = "AI analysis unavailable. Basic scoring applied."

// fallbackCoverLetterScore grades a cover letter by length alone.
func fallbackCoverLetterScore(coverLetter string) int {
	if coverLetter == "" {
		return 0
	}
	length := len(coverLetter)
	switch {
	case length > 200:
		return 80
	case length > 100:
		return 60
	case length > 50:
		return 40
	default:
		return 20
	}
}

// fallbackAnalysis produces a deterministic rule-based analysis for one
// application. relevance_score is a fixed placeholder and is deliberately
// excluded from the overall mean.
func fallbackAnalysis(app *models.Application) models.AIAnalysis {
	completeness := 0
	if app.HasCoverLetter() {
		completeness += 50
	}
	if app.HasResume() {
		completeness += 50
	}

	coverScore := fallbackCoverLetterScore(app.CoverLetter)

	resumeScore := 0
	if app.HasResume() {
		resumeScore = 50
	}

	overall := int(math.Round(float64(completeness+coverScore+resumeScore) / 3.0))

	strengths := []string{}
	if completeness > 0 {
		strengths = append(strengths, "Application submitted")
	}

	return models.AIAnalysis{
		OverallScore:      overall,
		CoverLetterScore:  coverScore,
		CompletenessScore: completeness,
		RelevanceScore:    50,
		ResumeScore:       resumeScore,
		Summary:           fallbackSummary,
		Strengths:         strengths,
		Concerns:          []string{"AI analysis not available"},
		Recommendation:    models.RecommendationReview,
	}
}

// fallbackRank scores every application with the rule-based formulas and
// sorts the batch by overall score, highest first. Ties keep input order.
func fallbackRank(apps []models.Application) []models.RankedResult {
	results := make([]models.RankedResult, 0, len(apps))
	for i := range apps {
		results = append(results, models.RankedResult{
			Application: &apps[i],
			Analysis:    fallbackAnalysis(&apps[i]),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Analysis.OverallScore > results[j].Analysis.OverallScore
	})

	return results
}
