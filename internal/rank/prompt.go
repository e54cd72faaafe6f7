// internal/rank/prompt.go
package rank

import (
	"fmt"
	"strings"

	"telegram-jobboard/internal/models"
)

const (
	noCoverLetterPlaceholder  = "No cover letter provided"
	resumeNotAccessibleMarker = "[Resume attached but text not accessible]"
	truncationMarker          = "... [truncated]"
)

// candidate is the per-applicant record enumerated in the scoring prompt.
type candidate struct {
	ID          int64
	Name        string
	Username    string
	CoverLetter string
	HasResume   bool
	ResumeText  string
	Status      models.ApplicationStatus
}

func newCandidate(app *models.Application) candidate {
	c := candidate{
		ID:          app.ID,
		CoverLetter: app.CoverLetter,
		HasResume:   app.HasResume(),
		Status:      app.Status,
	}
	if app.Applicant != nil {
		c.Name = app.Applicant.DisplayName()
		c.Username = app.Applicant.Username
	}
	if c.Username == "" {
		c.Username = "N/A"
	}
	if c.CoverLetter == "" {
		c.CoverLetter = noCoverLetterPlaceholder
	}
	return c
}

// truncateResumeText caps extracted resume text before prompt inclusion.
func truncateResumeText(text string, maxChars int) string {
	if maxChars <= 0 || len(text) <= maxChars {
		return text
	}
	return text[:maxChars] + truncationMarker
}

// buildPrompt assembles the single structured scoring request: job context,
// enumerated candidates, the scoring rubric, and the strict JSON output
// contract.
func buildPrompt(job *models.Job, candidates []candidate) string {
	var b strings.Builder

	b.WriteString("You are an expert HR professional and talent acquisition specialist. ")
	b.WriteString("Analyze the following job applicants and rank them based on their suitability for the position.\n\n")

	fmt.Fprintf(&b, "**Job Position:** %s\n\n", job.Title)
	fmt.Fprintf(&b, "**Job Description:**\n%s\n", job.Description)
	if job.Requirements != "" {
		fmt.Fprintf(&b, "\n**Requirements:**\n%s\n", job.Requirements)
	}

	b.WriteString("\n**Applicants to Analyze:**\n")
	for i, c := range candidates {
		fmt.Fprintf(&b, "\n%d. **%s** (@%s)\n", i+1, c.Name, c.Username)
		fmt.Fprintf(&b, "   - Application ID: %d\n", c.ID)
		if c.HasResume {
			b.WriteString("   - Resume Attached: Yes\n")
			if c.ResumeText != "" {
				fmt.Fprintf(&b, "   - Resume Text:\n\"\"\"\n%s\n\"\"\"\n", c.ResumeText)
			} else {
				fmt.Fprintf(&b, "   - Resume Text: %s\n", resumeNotAccessibleMarker)
			}
		} else {
			b.WriteString("   - Resume Attached: No\n")
		}
		fmt.Fprintf(&b, "   - Cover Letter: %q\n", c.CoverLetter)
		fmt.Fprintf(&b, "   - Current Status: %s\n", c.Status)
	}

	b.WriteString(`
**Your Task:**
Analyze each applicant and provide a JSON response with the following structure for each applicant:

[
  {
    "application_id": <application_id>,
    "overall_score": <0-100>,
    "cover_letter_score": <0-100>,
    "completeness_score": <0-100>,
    "relevance_score": <0-100>,
    "resume_score": <0-100>,
    "ai_summary": "<2-3 sentence summary of why this candidate is a good or poor fit>",
    "strengths": ["<strength 1>", "<strength 2>", "<strength 3>"],
    "concerns": ["<concern 1>", "<concern 2>"],
    "recommendation": "<hire|interview|maybe|pass>"
  }
]

**Scoring Criteria (weights for overall_score):**
- **resume_score** (40%): Quality and relevance of the resume content
- **cover_letter_score** (20%): Quality, relevance, and professionalism of the cover letter
- **completeness_score** (20%): How complete the application is (resume attached, detailed cover letter)
- **relevance_score** (20%): How well the applicant's experience and skills match the job requirements

**Recommendations:**
- "hire" - Strong candidate, highly recommended
- "interview" - Good candidate, worth interviewing
- "maybe" - Moderate fit, consider as backup
- "pass" - Not a good fit for this position

Please provide ONLY the JSON array, no additional text or markdown formatting. Order by overall_score descending (best candidates first).
`)

	return b.String()
}
