// Package audit records account-lifecycle events. Publishing is best effort:
// an unavailable sink never fails the user-facing request.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"sessiongate/pkg/requestcontext"
)

// Action identifies what happened to the account.
type Action string

const (
	ActionSignup          Action = "account.signup"
	ActionSignupConfirmed Action = "account.signup_confirmed"
	ActionProvisioned     Action = "account.provisioned"
	ActionLogin           Action = "account.login"
	ActionLogout          Action = "account.logout"
	ActionTokenRefresh    Action = "account.token_refresh"
	ActionPasswordReset   Action = "account.password_reset"
	ActionPasswordChange  Action = "account.password_change"
	ActionEmailChange     Action = "account.email_change"
	ActionPlanChange      Action = "account.plan_change"
	ActionDelete          Action = "account.delete"
)

// Event is one audit record. ID, Timestamp and RequestID are filled by the
// publisher when absent.
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	Subject   string    `json:"subject,omitempty"`
	Email     string    `json:"email,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Sink delivers events somewhere durable.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Publisher stamps and forwards events to a sink, logging delivery failures
// instead of propagating them.
type Publisher struct {
	sink Sink
	log  *slog.Logger
}

func NewPublisher(sink Sink, log *slog.Logger) *Publisher {
	return &Publisher{sink: sink, log: log}
}

// Emit publishes the event, filling in ID, Timestamp and the request id from
// context when the caller left them empty.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if err := p.sink.Publish(ctx, event); err != nil {
		p.log.ErrorContext(ctx, "audit publish failed",
			"error", err,
			"action", string(event.Action),
			"subject", event.Subject,
		)
	}
}
