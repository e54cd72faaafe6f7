package models

// Recommendation is the closed set of labels the analyzer emits. The first
// four come from the AI scorer; RecommendationReview is reserved for the
// rule-based fallback and signals that no AI judgment was made.
type Recommendation string

const (
	RecommendationHire      Recommendation = "hire"
	RecommendationInterview Recommendation = "interview"
	RecommendationMaybe     Recommendation = "maybe"
	RecommendationPass      Recommendation = "pass"
	RecommendationReview    Recommendation = "review"
)

// ParseRecommendation maps free-form scorer output onto the closed set,
// defaulting to "maybe" for anything unrecognized.
func ParseRecommendation(s string) Recommendation {
	switch Recommendation(s) {
	case RecommendationHire, RecommendationInterview, RecommendationMaybe,
		RecommendationPass, RecommendationReview:
		return Recommendation(s)
	default:
		return RecommendationMaybe
	}
}

// AIAnalysis holds per-applicant scores and insights. All scores are in
// [0,100].
type AIAnalysis struct {
	OverallScore      int            `json:"overall_score"`
	CoverLetterScore  int            `json:"cover_letter_score"`
	CompletenessScore int            `json:"completeness_score"`
	RelevanceScore    int            `json:"relevance_score"`
	ResumeScore       int            `json:"resume_score"`
	Summary           string         `json:"ai_summary"`
	Strengths         []string       `json:"strengths"`
	Concerns          []string       `json:"concerns"`
	Recommendation    Recommendation `json:"recommendation"`
}

// RankedResult pairs an application with its analysis. It is constructed per
// ranking request and never persisted.
type RankedResult struct {
	Application *Application `json:"application"`
	Analysis    AIAnalysis   `json:"ai_analysis"`
}
