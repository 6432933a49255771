package notificationhandler

import (
	"fmt"

	"job-application-backend/models"
	dbmodels "job-application-backend/models/db"
)

// BuildStatusMessage - текст уведомления о смене статуса.
// По одному шаблону на каждое значение статуса, для неизвестного
// значения используется общий текст.
func BuildStatusMessage(candidate dbmodels.Candidate, history dbmodels.StatusHistory) string {
	var base string
	switch history.NewStatus {
	case models.StatusSubmitted:
		base = fmt.Sprintf("Hello %s, your application has been submitted successfully.", candidate.FullName)
	case models.StatusUnderReview:
		base = fmt.Sprintf("Hello %s, your application is now under review.", candidate.FullName)
	case models.StatusInterviewScheduled:
		base = fmt.Sprintf("Hello %s, congratulations! An interview has been scheduled for your application.", candidate.FullName)
	case models.StatusRejected:
		base = fmt.Sprintf("Hello %s, unfortunately your application was not successful this time.", candidate.FullName)
	case models.StatusAccepted:
		base = fmt.Sprintf("Hello %s, congratulations! Your application has been accepted.", candidate.FullName)
	default:
		base = fmt.Sprintf("Your application status has been updated to %s.", history.NewStatus)
	}
	if history.Comments != "" {
		base += fmt.Sprintf("\n\nAdditional feedback: %s", history.Comments)
	}
	base += fmt.Sprintf("\n\nYou can check your application status anytime at: /api/v1/candidates/%s/status", candidate.ID)
	return base
}

// BuildStatusSubject - тема письма
func BuildStatusSubject(history dbmodels.StatusHistory) string {
	return fmt.Sprintf("Application status: %s", history.NewStatus.Display())
}
