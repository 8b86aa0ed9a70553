package email

import (
	"net/mail"
	"strings"
	"time"

	"inboxassist/internal/domain/inbox"
)

type Email struct {
	ID        string
	GmailID   string
	From      string
	Subject   string
	Body      string
	Route     inbox.Result
	CreatedAt time.Time
}

func NewEmail(gmailID, from, subject, body string) *Email {
	return &Email{
		GmailID:   gmailID,
		From:      from,
		Subject:   subject,
		Body:      body,
		CreatedAt: time.Now(),
	}
}

// Text is what the router classifies: subject and body together.
func (e *Email) Text() string {
	if e.Subject == "" {
		return e.Body
	}
	return e.Subject + "\n\n" + e.Body
}

// SenderName returns the display name of the From header, the bare address
// when there is no display name, and inbox.DefaultSender when From is empty.
func (e *Email) SenderName() string {
	from := strings.TrimSpace(e.From)
	if from == "" {
		return inbox.DefaultSender
	}
	addr, err := mail.ParseAddress(from)
	if err != nil {
		return from
	}
	if addr.Name != "" {
		return addr.Name
	}
	return addr.Address
}

func (e *Email) ApplyRoute(r inbox.Result) {
	e.Route = r
}

func (e *Email) Category() inbox.Category {
	return e.Route.Classification
}

func (e *Email) Label() Label {
	return LabelFor(e.Route.Classification)
}

// NeedsReply reports whether a reply draft should be prepared.
// Purely informational mail is only labelled.
func (e *Email) NeedsReply() bool {
	c := e.Route.Classification
	return c.IsValid() && c != inbox.CategoryInfoOnly
}

// NeedsTask reports whether the routed email should open a PDCA task.
func (e *Email) NeedsTask() bool {
	c := e.Route.Classification
	return c == inbox.CategoryDecisionNeeded || c == inbox.CategoryDelegate
}
