package models

// FeedbackSubmission is one email/feedback pair forwarded to the webhook.
type FeedbackSubmission struct {
	Email    string `json:"email"`
	Feedback string `json:"feedback"`
}

// FeedbackResponse is the body returned to the caller on a successful relay.
type FeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
