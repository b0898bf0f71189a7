package handoff

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mrwolf/burnout-server/internal/escalation"
)

const (
	messageSubject = "Burnout Alert: Employee Unfit to Work"
	messageSender  = "Burnout Tracker"
)

// Message is an outbound hand-off email ready to be opened in a mail client.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	MailTo  string `json:"mailto"`
}

// Compose builds the hand-off email for contact.
func Compose(contact Contact) Message {
	body := fmt.Sprintf("Hi %s,\n\nAn employee has been flagged unfit to work %d times. Kindly reach out.\n\nRegards,\n%s",
		contact.FirstName(), escalation.Threshold, messageSender)

	return Message{
		To:      contact.Email,
		Subject: messageSubject,
		Body:    body,
		MailTo:  mailto(contact.Email, messageSubject, body),
	}
}

// mailto encodes the query with %20 for spaces; mail clients do not
// decode '+' as a space.
func mailto(to, subject, body string) string {
	q := url.Values{}
	q.Set("subject", subject)
	q.Set("body", body)
	return "mailto:" + to + "?" + strings.ReplaceAll(q.Encode(), "+", "%20")
}
