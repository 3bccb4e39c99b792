package dto

const (
	EmailJobWelcome       = "welcome"
	EmailJobPasswordReset = "password_reset"
)

// EmailJob travels over the in-process bus from the publisher service to
// the consumer that talks SMTP.
type EmailJob struct {
	Type  string `json:"type"`
	To    string `json:"to"`
	Name  string `json:"name,omitempty"`
	Token string `json:"token,omitempty"`
}
