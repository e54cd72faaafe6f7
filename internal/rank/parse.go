// internal/rank/parse.go
package rank

import (
	"encoding/json"
	"strings"

	apperrors "telegram-jobboard/internal/common/errors"
	"telegram-jobboard/internal/models"
)

// oracleRanking mirrors one element of the JSON array the oracle is
// instructed to return. Zero values double as the safe defaults for
// missing sub-fields.
type oracleRanking struct {
	ApplicationID    int64    `json:"application_id"`
	OverallScore     int      `json:"overall_score"`
	CoverLetterScore int      `json:"cover_letter_score"`
	Completeness     int      `json:"completeness_score"`
	RelevanceScore   int      `json:"relevance_score"`
	ResumeScore      int      `json:"resume_score"`
	Summary          string   `json:"ai_summary"`
	Strengths        []string `json:"strengths"`
	Concerns         []string `json:"concerns"`
	Recommendation   string   `json:"recommendation"`
}

// stripCodeFences removes a surrounding markdown code block, with or
// without a language tag.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = text[len("```json"):]
	} else if strings.HasPrefix(text, "```") {
		text = text[len("```"):]
	}
	if strings.HasSuffix(text, "```") {
		text = text[:len(text)-len("```")]
	}
	return strings.TrimSpace(text)
}

// parseOracleResponse parses the oracle's reply and merges it with the input
// batch. Elements referencing an unknown application id are dropped without
// error; matched elements keep the array's order. Any parse failure aborts
// the whole batch.
func parseOracleResponse(responseText string, apps []models.Application) ([]models.RankedResult, error) {
	cleaned := stripCodeFences(responseText)

	var rankings []oracleRanking
	if err := json.Unmarshal([]byte(cleaned), &rankings); err != nil {
		return nil, apperrors.NewAnalysisParseFailedError(err)
	}

	appMap := make(map[int64]*models.Application, len(apps))
	for i := range apps {
		appMap[apps[i].ID] = &apps[i]
	}

	results := make([]models.RankedResult, 0, len(rankings))
	for _, r := range rankings {
		app, ok := appMap[r.ApplicationID]
		if !ok {
			continue
		}

		strengths := r.Strengths
		if strengths == nil {
			strengths = []string{}
		}
		concerns := r.Concerns
		if concerns == nil {
			concerns = []string{}
		}

		results = append(results, models.RankedResult{
			Application: app,
			Analysis: models.AIAnalysis{
				OverallScore:      r.OverallScore,
				CoverLetterScore:  r.CoverLetterScore,
				CompletenessScore: r.Completeness,
				RelevanceScore:    r.RelevanceScore,
				ResumeScore:       r.ResumeScore,
				Summary:           r.Summary,
				Strengths:         strengths,
				Concerns:          concerns,
				Recommendation:    models.ParseRecommendation(r.Recommendation),
			},
		})
	}

	return results, nil
}
