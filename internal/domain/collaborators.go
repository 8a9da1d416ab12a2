package domain

import (
	"context"
	"time"
)

// CalendarEvent mirrors the fields the scheduler needs from the external
// calendar service.
type CalendarEvent struct {
	ID       string    `json:"id"`
	HTMLLink string    `json:"html_link"`
	Summary  string    `json:"summary"`
	Location string    `json:"location"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// CalendarService is the external calendar collaborator. The real
// integration is out of scope; pkg/calendar ships a mock.
type CalendarService interface {
	ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]CalendarEvent, error)
	CreateEvent(ctx context.Context, calendarID string, event CalendarEvent) (*CalendarEvent, error)
}

// TextGenerator is the black-box reply generator. Implementations must
// return ErrRateLimited (wrapped) when the backend signals overload so the
// orchestrator can back off and retry.
type TextGenerator interface {
	Generate(ctx context.Context, systemPrompt string, history []Message) (string, error)
}

// MessageSender delivers outbound WhatsApp messages. The transport adapter
// is out of scope; a logging no-op stands in for the reminder job.
type MessageSender interface {
	Send(ctx context.Context, phone, body string) error
}

// AlertMailer delivers unfilled-requisition digests to recruiters.
type AlertMailer interface {
	SendRequisitionAlert(recipient string, tenant *Tenant, requisitions []Requisition) error
	IsConfigured() bool
}
