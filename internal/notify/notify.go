// Package notify decouples outbound email from the request path. Business
// services emit Events through a Publisher; delivery happens in a background
// Worker (or an external consumer when events go through Kafka). Delivery
// failures are logged and dropped, never surfaced to the emitting operation.
package notify

//go:generate mockgen -source=notify.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"
)

// Kind labels the notification template an event corresponds to.
type Kind string

const (
	KindApplicationApproved  Kind = "application_approved"
	KindRegistrationApproved Kind = "registration_approved"
	KindAdmissionPublished   Kind = "admission_published"
	KindJobMatch             Kind = "job_match"
)

// Event is a request to deliver one email. It carries the rendered subject
// and body so consumers stay template-free.
type Event struct {
	Kind      Kind      `json:"kind"`
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	RequestID string    `json:"request_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Publisher accepts notification events for asynchronous delivery.
// Emit must not block the caller beyond enqueueing.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// Notifier performs the actual delivery of one message.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}
