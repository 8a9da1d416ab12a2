package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-recruitment-chatbot/internal/domain"
	"go-recruitment-chatbot/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type CandidateRepoMock struct {
	mock.Mock
}

func (m *CandidateRepoMock) GetByID(ctx context.Context, tenantID, id string) (*domain.Candidate, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *CandidateRepoMock) GetByPhone(ctx context.Context, tenantID, phone string) (*domain.Candidate, error) {
	args := m.Called(ctx, tenantID, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *CandidateRepoMock) Create(ctx context.Context, candidate *domain.Candidate) error {
	return m.Called(ctx, candidate).Error(0)
}

func (m *CandidateRepoMock) ScheduleInterview(ctx context.Context, tenantID, id string, interview *domain.Interview, app *domain.Application) error {
	return m.Called(ctx, tenantID, id, interview, app).Error(0)
}

func (m *CandidateRepoMock) ConfirmInterview(ctx context.Context, tenantID, id string, at time.Time) error {
	return m.Called(ctx, tenantID, id, at).Error(0)
}

func (m *CandidateRepoMock) RescheduleInterview(ctx context.Context, tenantID, id string, interview *domain.Interview) error {
	return m.Called(ctx, tenantID, id, interview).Error(0)
}

func (m *CandidateRepoMock) FetchWithInterviewBetween(ctx context.Context, tenantID string, from, to time.Time) ([]domain.Candidate, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Candidate), args.Error(1)
}

type CalendarMock struct {
	mock.Mock
}

func (m *CalendarMock) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]domain.CalendarEvent, error) {
	args := m.Called(ctx, calendarID, timeMin, timeMax)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CalendarEvent), args.Error(1)
}

func (m *CalendarMock) CreateEvent(ctx context.Context, calendarID string, event domain.CalendarEvent) (*domain.CalendarEvent, error) {
	args := m.Called(ctx, calendarID, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CalendarEvent), args.Error(1)
}

func TestGenerateTimeSlots(t *testing.T) {
	// Friday 2025-06-13: the 3-day horizon covers Sat 14, Sun 15, Mon 16.
	start := time.Date(2025, 6, 13, 8, 0, 0, 0, time.UTC)

	t.Run("Should skip Sundays and honor business hours", func(t *testing.T) {
		repo := new(CandidateRepoMock)
		cal := new(CalendarMock)
		cal.On("ListEvents", mock.Anything, "cal1", mock.Anything, mock.Anything).
			Return([]domain.CalendarEvent{}, nil)

		uc := usecase.NewInterviewUsecase(repo, cal)
		slots, err := uc.GenerateTimeSlots(context.Background(), "cal1", start, 3)

		assert.NoError(t, err)
		// 2 working days x 7 business hours.
		assert.Len(t, slots, 14)
		for _, slot := range slots {
			assert.NotEqual(t, time.Sunday, slot.Weekday())
			hour := slot.Hour()
			assert.True(t, (hour >= 9 && hour <= 11) || (hour >= 14 && hour <= 17), "hour %d", hour)
		}
	})

	t.Run("Should drop slots colliding with existing events", func(t *testing.T) {
		repo := new(CandidateRepoMock)
		cal := new(CalendarMock)
		// Busy Saturday 10:30-11:30 knocks out both the 10:00 and 11:00 slots.
		busyStart := time.Date(2025, 6, 14, 10, 30, 0, 0, time.UTC)
		cal.On("ListEvents", mock.Anything, "cal1", mock.Anything, mock.Anything).
			Return([]domain.CalendarEvent{{Start: busyStart, End: busyStart.Add(time.Hour)}}, nil)

		uc := usecase.NewInterviewUsecase(repo, cal)
		slots, err := uc.GenerateTimeSlots(context.Background(), "cal1", start, 3)

		assert.NoError(t, err)
		assert.Len(t, slots, 12)
		for _, slot := range slots {
			if slot.Day() == 14 {
				assert.NotEqual(t, 10, slot.Hour())
				assert.NotEqual(t, 11, slot.Hour())
			}
		}
	})
}

func TestScheduleInterview(t *testing.T) {
	tenant := &domain.Tenant{ID: "t1", Name: "Retail Peru"}
	req := domain.ScheduleRequest{
		StoreID:   "s1",
		VacancyID: "v1",
		DateTime:  time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC),
		Address:   "Av. Larco 123",
		StoreName: "Tienda Miraflores",
		BrandName: "MarcaX",
		Position:  "Vendedor",
	}

	t.Run("Should create the event and persist interview plus application", func(t *testing.T) {
		repo := new(CandidateRepoMock)
		cal := new(CalendarMock)
		repo.On("GetByID", mock.Anything, "t1", "c1").
			Return(&domain.Candidate{ID: "c1", Name: "Juan Perez"}, nil)
		cal.On("CreateEvent", mock.Anything, "t1", mock.MatchedBy(func(ev domain.CalendarEvent) bool {
			return ev.Summary == "Entrevista: Juan Perez - Vendedor" && ev.Location == "Av. Larco 123"
		})).Return(&domain.CalendarEvent{ID: "ev1", HTMLLink: "https://cal/ev1"}, nil)
		repo.On("ScheduleInterview", mock.Anything, "t1", "c1", mock.Anything, mock.Anything).Return(nil)

		uc := usecase.NewInterviewUsecase(repo, cal)
		interview, err := uc.Schedule(context.Background(), tenant, "c1", req)

		assert.NoError(t, err)
		assert.Equal(t, "ev1", interview.CalendarEventID)
		assert.Equal(t, domain.InterviewScheduled, interview.State)
		assert.False(t, interview.Confirmed)
		repo.AssertExpectations(t)
	})

	t.Run("Should surface missing candidate untouched for the retry protocol", func(t *testing.T) {
		repo := new(CandidateRepoMock)
		cal := new(CalendarMock)
		repo.On("GetByID", mock.Anything, "t1", "ghost").
			Return(nil, domain.ErrCandidateNotFound)

		uc := usecase.NewInterviewUsecase(repo, cal)
		_, err := uc.Schedule(context.Background(), tenant, "ghost", req)

		assert.ErrorIs(t, err, domain.ErrCandidateNotFound)
		cal.AssertNotCalled(t, "CreateEvent")
	})
}

func TestReschedule(t *testing.T) {
	tenant := &domain.Tenant{ID: "t1"}
	newTime := time.Date(2025, 6, 18, 15, 0, 0, 0, time.UTC)

	t.Run("Should reset confirmation on reschedule", func(t *testing.T) {
		repo := new(CandidateRepoMock)
		cal := new(CalendarMock)
		confirmedAt := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
		repo.On("GetByID", mock.Anything, "t1", "c1").Return(&domain.Candidate{
			ID: "c1",
			Interview: &domain.Interview{
				DateTime:    time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC),
				State:       domain.InterviewConfirmed,
				Confirmed:   true,
				ConfirmedAt: &confirmedAt,
			},
		}, nil)
		repo.On("RescheduleInterview", mock.Anything, "t1", "c1",
			mock.MatchedBy(func(iv *domain.Interview) bool {
				return iv.DateTime.Equal(newTime) && !iv.Confirmed &&
					iv.ConfirmedAt == nil && iv.RescheduledAt != nil &&
					iv.State == domain.InterviewScheduled
			})).Return(nil)

		uc := usecase.NewInterviewUsecase(repo, cal)
		err := uc.Reschedule(context.Background(), tenant, "c1", newTime)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Should fail when no interview exists", func(t *testing.T) {
		repo := new(CandidateRepoMock)
		cal := new(CalendarMock)
		repo.On("GetByID", mock.Anything, "t1", "c1").Return(&domain.Candidate{ID: "c1"}, nil)

		uc := usecase.NewInterviewUsecase(repo, cal)
		err := uc.Reschedule(context.Background(), tenant, "c1", newTime)

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCandidatesForTomorrowReminder(t *testing.T) {
	repo := new(CandidateRepoMock)
	cal := new(CalendarMock)
	repo.On("FetchWithInterviewBetween", mock.Anything, "t1",
		mock.MatchedBy(func(from time.Time) bool {
			return from.Hour() == 0 && from.Minute() == 0
		}),
		mock.MatchedBy(func(to time.Time) bool {
			return to.Hour() == 0 && to.Minute() == 0
		}),
	).Return([]domain.Candidate{{ID: "c1"}}, nil)

	uc := usecase.NewInterviewUsecase(repo, cal)
	candidates, err := uc.CandidatesForTomorrowReminder(context.Background(), "t1")

	assert.NoError(t, err)
	assert.Len(t, candidates, 1)
	repo.AssertExpectations(t)
}
