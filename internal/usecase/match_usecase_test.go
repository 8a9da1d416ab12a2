package usecase_test

import (
	"context"
	"testing"

	"go-recruitment-chatbot/internal/domain"
	"go-recruitment-chatbot/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type StoreRepoMock struct {
	mock.Mock
}

func (m *StoreRepoMock) FetchByTenant(ctx context.Context, tenantID string) ([]domain.Store, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Store), args.Error(1)
}

func (m *StoreRepoMock) GetByID(ctx context.Context, tenantID, id string) (*domain.Store, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Store), args.Error(1)
}

func (m *StoreRepoMock) Create(ctx context.Context, store *domain.Store) error {
	return m.Called(ctx, store).Error(0)
}

func activeVacancy(id string, shift domain.ShiftType, slots int) domain.Vacancy {
	return domain.Vacancy{
		ID:             id,
		Position:       "Vendedor",
		Shift:          shift,
		AvailableSlots: slots,
		Status:         domain.VacancyActive,
	}
}

func TestFindMatchingStores(t *testing.T) {
	// Origin for every sub-test; stores sit at controlled latitude offsets
	// (0.001 degrees of latitude is roughly 0.11 km).
	gps := &domain.Coordinates{Lat: -12.1000, Lng: -77.0300}

	t.Run("Should exclude stores beyond the distance cutoff", func(t *testing.T) {
		repo := new(StoreRepoMock)
		repo.On("FetchByTenant", mock.Anything, "t1").Return([]domain.Store{
			{ID: "near", Lat: -12.1100, Lng: -77.0300,
				Vacancies: []domain.Vacancy{activeVacancy("v1", domain.ShiftMixed, 2)}},
			{ID: "far", Lat: -12.2000, Lng: -77.0300,
				Vacancies: []domain.Vacancy{activeVacancy("v2", domain.ShiftMixed, 2)}},
		}, nil)

		uc := usecase.NewMatchUsecase(repo, usecase.MatchConfig{MaxDistanceKm: 7, TieBandKm: 0.5, MaxResults: 3})
		matches, err := uc.FindMatchingStores(context.Background(), domain.MatchRequest{TenantID: "t1", GPS: gps})

		assert.NoError(t, err)
		assert.Len(t, matches, 1)
		assert.Equal(t, "near", matches[0].Store.ID)
	})

	t.Run("Should break near-ties by total compatible slots", func(t *testing.T) {
		repo := new(StoreRepoMock)
		repo.On("FetchByTenant", mock.Anything, "t1").Return([]domain.Store{
			{ID: "closest-few-slots", Lat: -12.1010, Lng: -77.0300,
				Vacancies: []domain.Vacancy{activeVacancy("v1", domain.ShiftMixed, 1)}},
			{ID: "close-many-slots", Lat: -12.1040, Lng: -77.0300,
				Vacancies: []domain.Vacancy{activeVacancy("v2", domain.ShiftMixed, 5)}},
		}, nil)

		uc := usecase.NewMatchUsecase(repo, usecase.MatchConfig{MaxDistanceKm: 7, TieBandKm: 0.5, MaxResults: 3})
		matches, err := uc.FindMatchingStores(context.Background(), domain.MatchRequest{TenantID: "t1", GPS: gps})

		assert.NoError(t, err)
		assert.Len(t, matches, 2)
		assert.Equal(t, "close-many-slots", matches[0].Store.ID)
		assert.Equal(t, "closest-few-slots", matches[1].Store.ID)
	})

	t.Run("Should cap the result list", func(t *testing.T) {
		stores := make([]domain.Store, 0, 5)
		for i := 0; i < 5; i++ {
			stores = append(stores, domain.Store{
				ID:  string(rune('a' + i)),
				Lat: -12.1100 - float64(i)*0.010, Lng: -77.0300,
				Vacancies: []domain.Vacancy{activeVacancy("v", domain.ShiftMixed, 1)},
			})
		}
		repo := new(StoreRepoMock)
		repo.On("FetchByTenant", mock.Anything, "t1").Return(stores, nil)

		uc := usecase.NewMatchUsecase(repo, usecase.MatchConfig{MaxDistanceKm: 7, TieBandKm: 0.5, MaxResults: 3})
		matches, err := uc.FindMatchingStores(context.Background(), domain.MatchRequest{TenantID: "t1", GPS: gps})

		assert.NoError(t, err)
		assert.Len(t, matches, 3)
	})

	t.Run("Should filter vacancies by declared shift availability", func(t *testing.T) {
		repo := new(StoreRepoMock)
		repo.On("FetchByTenant", mock.Anything, "t1").Return([]domain.Store{
			{ID: "s1", Lat: -12.1010, Lng: -77.0300, Vacancies: []domain.Vacancy{
				activeVacancy("rot", domain.ShiftRotating, 2),
				activeVacancy("clo", domain.ShiftClosing, 3),
				{ID: "inactive", Shift: domain.ShiftRotating, AvailableSlots: 4, Status: domain.VacancyInactive},
				{ID: "full", Shift: domain.ShiftRotating, AvailableSlots: 0, Status: domain.VacancyActive},
			}},
		}, nil)

		uc := usecase.NewMatchUsecase(repo, usecase.MatchConfig{})
		matches, err := uc.FindMatchingStores(context.Background(), domain.MatchRequest{
			TenantID: "t1", GPS: gps, DeclaredAvailability: domain.ShiftRotating,
		})

		assert.NoError(t, err)
		assert.Len(t, matches, 1)
		assert.Len(t, matches[0].Vacancies, 1)
		assert.Equal(t, "rot", matches[0].Vacancies[0].ID)
		assert.Equal(t, 2, matches[0].TotalSlots)
	})

	t.Run("Should return empty result when no location is known", func(t *testing.T) {
		repo := new(StoreRepoMock)

		uc := usecase.NewMatchUsecase(repo, usecase.MatchConfig{})
		matches, err := uc.FindMatchingStores(context.Background(), domain.MatchRequest{TenantID: "t1"})

		assert.NoError(t, err)
		assert.NotNil(t, matches)
		assert.Empty(t, matches)
		repo.AssertNotCalled(t, "FetchByTenant")
	})

	t.Run("Should resolve the candidate district through the gazetteer", func(t *testing.T) {
		repo := new(StoreRepoMock)
		repo.On("FetchByTenant", mock.Anything, "t1").Return([]domain.Store{
			{ID: "mf", District: "Miraflores",
				Vacancies: []domain.Vacancy{activeVacancy("v1", domain.ShiftMixed, 1)}},
		}, nil)

		uc := usecase.NewMatchUsecase(repo, usecase.MatchConfig{})
		matches, err := uc.FindMatchingStores(context.Background(), domain.MatchRequest{
			TenantID: "t1", District: "miraflores",
		})

		assert.NoError(t, err)
		assert.Len(t, matches, 1)
		assert.Equal(t, float64(0), matches[0].DistanceKm)
	})
}
