package usecase

import (
	"context"
	"fmt"
	"time"

	"go-recruitment-chatbot/internal/domain"
)

// Interview slots run on business hours with the lunch hour excluded.
var interviewHours = []int{9, 10, 11, 14, 15, 16, 17}

const slotDuration = time.Hour

type interviewUsecase struct {
	candidateRepo domain.CandidateRepository
	calendar      domain.CalendarService
}

func NewInterviewUsecase(candidateRepo domain.CandidateRepository, calendar domain.CalendarService) domain.InterviewUsecase {
	return &interviewUsecase{candidateRepo: candidateRepo, calendar: calendar}
}

// GenerateTimeSlots enumerates candidate slots for each day in
// (start, start+daysAhead], skipping Sundays, and removes the ones that
// collide with existing calendar events.
func (u *interviewUsecase) GenerateTimeSlots(ctx context.Context, calendarID string, start time.Time, daysAhead int) ([]time.Time, error) {
	var slots []time.Time
	for d := 1; d <= daysAhead; d++ {
		day := start.AddDate(0, 0, d)
		if day.Weekday() == time.Sunday {
			continue
		}
		for _, hour := range interviewHours {
			slots = append(slots, time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location()))
		}
	}
	if len(slots) == 0 {
		return slots, nil
	}

	windowStart := slots[0]
	windowEnd := slots[len(slots)-1].Add(slotDuration)
	events, err := u.calendar.ListEvents(ctx, calendarID, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}

	var free []time.Time
	for _, slot := range slots {
		if !collides(slot, slot.Add(slotDuration), events) {
			free = append(free, slot)
		}
	}
	return free, nil
}

func collides(slotStart, slotEnd time.Time, events []domain.CalendarEvent) bool {
	for _, ev := range events {
		if slotStart.Before(ev.End) && slotEnd.After(ev.Start) {
			return true
		}
	}
	return false
}

// Schedule creates the calendar event and writes the interview onto the
// candidate record. It fails with domain.ErrCandidateNotFound when the
// candidate does not exist; the orchestrator creates the candidate and
// retries exactly once on that specific failure.
func (u *interviewUsecase) Schedule(ctx context.Context, tenant *domain.Tenant, candidateID string, req domain.ScheduleRequest) (*domain.Interview, error) {
	candidate, err := u.candidateRepo.GetByID(ctx, tenant.ID, candidateID)
	if err != nil {
		return nil, err
	}

	event, err := u.calendar.CreateEvent(ctx, tenant.ID, domain.CalendarEvent{
		Summary:  fmt.Sprintf("Entrevista: %s - %s", candidate.Name, req.Position),
		Location: req.Address,
		Start:    req.DateTime,
		End:      req.DateTime.Add(slotDuration),
	})
	if err != nil {
		return nil, fmt.Errorf("create calendar event: %w", err)
	}

	now := time.Now()
	interview := &domain.Interview{
		StoreID:         req.StoreID,
		VacancyID:       req.VacancyID,
		DateTime:        req.DateTime,
		Address:         req.Address,
		CalendarEventID: event.ID,
		CalendarLink:    event.HTMLLink,
		State:           domain.InterviewScheduled,
		Confirmed:       false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	app := &domain.Application{
		StoreID:   req.StoreID,
		StoreName: req.StoreName,
		BrandName: req.BrandName,
		Position:  req.Position,
		AppliedAt: now,
	}

	if err := u.candidateRepo.ScheduleInterview(ctx, tenant.ID, candidateID, interview, app); err != nil {
		return nil, err
	}
	return interview, nil
}

func (u *interviewUsecase) Confirm(ctx context.Context, tenant *domain.Tenant, candidateID string) error {
	return u.candidateRepo.ConfirmInterview(ctx, tenant.ID, candidateID, time.Now())
}

func (u *interviewUsecase) Reschedule(ctx context.Context, tenant *domain.Tenant, candidateID string, newDateTime time.Time) error {
	candidate, err := u.candidateRepo.GetByID(ctx, tenant.ID, candidateID)
	if err != nil {
		return err
	}
	if candidate.Interview == nil {
		return domain.ErrNotFound
	}

	now := time.Now()
	interview := *candidate.Interview
	interview.DateTime = newDateTime
	interview.State = domain.InterviewScheduled
	interview.Confirmed = false
	interview.ConfirmedAt = nil
	interview.RescheduledAt = &now
	interview.UpdatedAt = now

	return u.candidateRepo.RescheduleInterview(ctx, tenant.ID, candidateID, &interview)
}

// CandidatesForTomorrowReminder returns candidates whose interview falls in
// the fixed 24-hour window one calendar day ahead of now. Empty tenantID
// scans all tenants.
func (u *interviewUsecase) CandidatesForTomorrowReminder(ctx context.Context, tenantID string) ([]domain.Candidate, error) {
	now := time.Now()
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return u.candidateRepo.FetchWithInterviewBetween(ctx, tenantID, tomorrow, tomorrow.AddDate(0, 0, 1))
}
