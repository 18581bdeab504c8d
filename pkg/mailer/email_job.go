package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for asynchronous
// sends (welcome mail and similar notifications that need no rollback).
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}
