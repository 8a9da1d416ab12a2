package domain

import (
	"context"
	"time"
)

type InterviewState string

const (
	InterviewScheduled   InterviewState = "scheduled"
	InterviewConfirmed   InterviewState = "confirmed"
	InterviewRescheduled InterviewState = "rescheduled"
)

// Interview is embedded in the candidate record once scheduling happens.
type Interview struct {
	StoreID         string         `json:"store_id"`
	VacancyID       string         `json:"vacancy_id"`
	DateTime        time.Time      `json:"date_time"`
	Address         string         `json:"address"`
	CalendarEventID string         `json:"calendar_event_id"`
	CalendarLink    string         `json:"calendar_link"`
	State           InterviewState `json:"state"`
	Confirmed       bool           `json:"confirmed"`
	ConfirmedAt     *time.Time     `json:"confirmed_at,omitempty"`
	RescheduledAt   *time.Time     `json:"rescheduled_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// Application is a denormalized snapshot appended to the candidate record
// when an interview is scheduled, consumed by dashboards. Append-only.
type Application struct {
	StoreID   string    `json:"store_id"`
	StoreName string    `json:"store_name"`
	BrandName string    `json:"brand_name"`
	Position  string    `json:"position"`
	AppliedAt time.Time `json:"applied_at"`
}

type Candidate struct {
	ID           string        `json:"id"`
	TenantID     string        `json:"tenant_id"`
	Phone        string        `json:"phone"`
	Name         string        `json:"name"`
	DNI          string        `json:"dni"`
	Email        string        `json:"email"`
	Status       string        `json:"status"`
	Interview    *Interview    `json:"interview,omitempty"`
	Applications []Application `json:"applications"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

type CandidateRepository interface {
	GetByID(ctx context.Context, tenantID, id string) (*Candidate, error)
	GetByPhone(ctx context.Context, tenantID, phone string) (*Candidate, error)
	Create(ctx context.Context, candidate *Candidate) error
	// ScheduleInterview atomically writes the interview details, the
	// candidate status and the appended application snapshot.
	ScheduleInterview(ctx context.Context, tenantID, id string, interview *Interview, app *Application) error
	ConfirmInterview(ctx context.Context, tenantID, id string, at time.Time) error
	RescheduleInterview(ctx context.Context, tenantID, id string, interview *Interview) error
	// FetchWithInterviewBetween returns candidates in scheduled or confirmed
	// state whose interview falls in [from, to). Empty tenantID scans all tenants.
	FetchWithInterviewBetween(ctx context.Context, tenantID string, from, to time.Time) ([]Candidate, error)
}

type ScheduleRequest struct {
	StoreID   string    `json:"store_id"`
	VacancyID string    `json:"vacancy_id"`
	DateTime  time.Time `json:"date_time"`
	Address   string    `json:"address"`
	StoreName string    `json:"store_name"`
	BrandName string    `json:"brand_name"`
	Position  string    `json:"position"`
}

type InterviewUsecase interface {
	GenerateTimeSlots(ctx context.Context, calendarID string, start time.Time, daysAhead int) ([]time.Time, error)
	Schedule(ctx context.Context, tenant *Tenant, candidateID string, req ScheduleRequest) (*Interview, error)
	Confirm(ctx context.Context, tenant *Tenant, candidateID string) error
	Reschedule(ctx context.Context, tenant *Tenant, candidateID string, newDateTime time.Time) error
	CandidatesForTomorrowReminder(ctx context.Context, tenantID string) ([]Candidate, error)
}
