// internal/notify/messages.go
package notify

import "fmt"

// MessageType labels a notification for metrics and channel selection.
type MessageType string

const (
	TypeMilestone    MessageType = "milestone"
	TypeStatusChange MessageType = "status_change"
)

// Message is a channel-agnostic notification payload. ButtonText and
// ButtonURL are only rendered on channels that support inline buttons.
type Message struct {
	Type       MessageType
	Subject    string
	Text       string
	ButtonText string
	ButtonURL  string

	// Milestone carries the matched application count for milestone
	// messages, 0 otherwise.
	Milestone int
}

// milestoneMessage builds the tiered poster notification for a matched
// milestone. Higher tiers win: the first matching branch decides tone.
func milestoneMessage(jobTitle string, jobID int64, count int, webAppURL string) Message {
	var emoji, title, desc string

	switch {
	case count == 1:
		emoji = "🎉"
		title = "Great news!"
		desc = fmt.Sprintf("You received your first application for:\n*%s*\n\n👤 *1 applicant* is waiting for your review!", jobTitle)
	case count >= 100:
		emoji = "🔥"
		title = "Incredible!"
		desc = fmt.Sprintf("Your job posting is on fire!\n*%s*\n\n👥 *%d+ applicants* have applied!", jobTitle, count)
	case count >= 50:
		emoji = "⭐"
		title = "Amazing response!"
		desc = fmt.Sprintf("*%s*\n\n👥 *%d applicants* are interested!", jobTitle, count)
	case count >= 20:
		emoji = "🚀"
		title = "Your job is popular!"
		desc = fmt.Sprintf("*%s*\n\n👥 *%d applicants* so far!", jobTitle, count)
	case count >= 10:
		emoji = "📈"
		title = "Double digits!"
		desc = fmt.Sprintf("*%s*\n\n👥 *%d applicants* have applied!", jobTitle, count)
	case count >= 5:
		emoji = "✨"
		title = "Getting traction!"
		desc = fmt.Sprintf("*%s*\n\n👥 *%d applicants* are interested!", jobTitle, count)
	default:
		emoji = "📨"
		title = "New applications!"
		desc = fmt.Sprintf("*%s*\n\n👥 *%d applicants* total", jobTitle, count)
	}

	plural := "s"
	if count == 1 {
		plural = ""
	}

	return Message{
		Type:       TypeMilestone,
		Subject:    fmt.Sprintf("%s Your job reached %d application%s", title, count, plural),
		Text:       fmt.Sprintf("%s *%s*\n\n%s", emoji, title, desc),
		ButtonText: fmt.Sprintf("📋 View %d Application%s", count, plural),
		ButtonURL:  fmt.Sprintf("%s/jobs/%d", webAppURL, jobID),
		Milestone:  count,
	}
}

// acceptedMessage tells an applicant their application was accepted.
func acceptedMessage(jobTitle, webAppURL string) Message {
	return Message{
		Type:    TypeStatusChange,
		Subject: fmt.Sprintf("Your application for %s was accepted", jobTitle),
		Text: fmt.Sprintf(
			"🎉 *Congratulations!*\n\nYour application for *%s* has been *accepted*! ✅\n\n"+
				"The employer is interested in your profile. They may reach out to you soon.\n\nGood luck! 🚀",
			jobTitle),
		ButtonText: "View My Applications",
		ButtonURL:  webAppURL + "/my-applications",
	}
}

// rejectedMessage tells an applicant the employer moved on.
func rejectedMessage(jobTitle, webAppURL string) Message {
	return Message{
		Type:    TypeStatusChange,
		Subject: fmt.Sprintf("Update on your application for %s", jobTitle),
		Text: fmt.Sprintf(
			"📋 *Application Update*\n\nThank you for your interest in *%s*.\n\n"+
				"Unfortunately, the employer has decided to move forward with other candidates at this time.\n\n"+
				"Don't give up! Keep applying and you'll find the right opportunity. 💪",
			jobTitle),
		ButtonText: "Browse More Jobs",
		ButtonURL:  webAppURL + "/jobs",
	}
}
