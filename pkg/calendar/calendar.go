package calendar

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go-recruitment-chatbot/internal/domain"
	"go-recruitment-chatbot/pkg/logger"

	"github.com/google/uuid"
)

// MockService is an in-memory stand-in for the external calendar provider.
// Events live per calendar ID for the process lifetime, which is enough for
// slot collision checks during development and testing.
type MockService struct {
	mu     sync.RWMutex
	events map[string][]domain.CalendarEvent
}

func NewMockService() *MockService {
	return &MockService{events: make(map[string][]domain.CalendarEvent)}
}

// ListEvents returns events overlapping [timeMin, timeMax).
func (s *MockService) ListEvents(_ context.Context, calendarID string, timeMin, timeMax time.Time) ([]domain.CalendarEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.CalendarEvent
	for _, ev := range s.events[calendarID] {
		if ev.Start.Before(timeMax) && ev.End.After(timeMin) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (s *MockService) CreateEvent(_ context.Context, calendarID string, event domain.CalendarEvent) (*domain.CalendarEvent, error) {
	if event.Start.IsZero() {
		return nil, fmt.Errorf("event start is required")
	}
	if event.End.IsZero() {
		event.End = event.Start.Add(time.Hour)
	}
	event.ID = uuid.NewString()
	event.HTMLLink = "https://calendar.local/events/" + event.ID

	s.mu.Lock()
	s.events[calendarID] = append(s.events[calendarID], event)
	s.mu.Unlock()

	logger.Log.Info("calendar event created",
		"calendar_id", calendarID, "event_id", event.ID, "start", event.Start)
	return &event, nil
}
