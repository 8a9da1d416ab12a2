package usecase

import (
	"context"
	"math"
	"sort"

	"go-recruitment-chatbot/internal/domain"
	"go-recruitment-chatbot/pkg/geo"
)

// MatchConfig carries the tunable matching constants. The cutoff and the
// tie band are configuration points, not business invariants.
type MatchConfig struct {
	MaxDistanceKm float64
	TieBandKm     float64
	MaxResults    int
}

type matchUsecase struct {
	storeRepo domain.StoreRepository
	cfg       MatchConfig
}

func NewMatchUsecase(storeRepo domain.StoreRepository, cfg MatchConfig) domain.MatchUsecase {
	if cfg.MaxDistanceKm <= 0 {
		cfg.MaxDistanceKm = 7.0
	}
	if cfg.TieBandKm <= 0 {
		cfg.TieBandKm = 0.5
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 3
	}
	return &matchUsecase{storeRepo: storeRepo, cfg: cfg}
}

// FindMatchingStores ranks tenant stores with compatible open vacancies by
// distance from the candidate's resolved location.
func (u *matchUsecase) FindMatchingStores(ctx context.Context, req domain.MatchRequest) ([]domain.StoreMatch, error) {
	origin := resolveCandidateLocation(req)
	if origin == nil {
		// No location, no matches. Falling back to naive string matching
		// produced wrong stores in practice, so we decline explicitly.
		return []domain.StoreMatch{}, nil
	}

	stores, err := u.storeRepo.FetchByTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	var matches []domain.StoreMatch
	for _, store := range stores {
		loc := resolveStoreLocation(store)
		if loc == nil {
			continue
		}

		distance := geo.DistanceKm(origin.Lat, origin.Lng, loc.Lat, loc.Lng)
		if distance > u.cfg.MaxDistanceKm {
			continue
		}

		compatible, slots := compatibleVacancies(store.Vacancies, req.DeclaredAvailability)
		if len(compatible) == 0 {
			continue
		}

		matches = append(matches, domain.StoreMatch{
			Store:      store,
			Vacancies:  compatible,
			TotalSlots: slots,
			DistanceKm: distance,
		})
	}

	u.rank(matches)

	if len(matches) > u.cfg.MaxResults {
		matches = matches[:u.cfg.MaxResults]
	}
	if matches == nil {
		matches = []domain.StoreMatch{}
	}
	return matches, nil
}

// rank sorts ascending by distance, except that stores whose distances
// differ by no more than the tie band are treated as equally distant and
// ordered by descending total compatible slots.
func (u *matchUsecase) rank(matches []domain.StoreMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if math.Abs(a.DistanceKm-b.DistanceKm) <= u.cfg.TieBandKm {
			return a.TotalSlots > b.TotalSlots
		}
		return a.DistanceKm < b.DistanceKm
	})
}

// resolveCandidateLocation prefers an explicit GPS pair over the district
// gazetteer.
func resolveCandidateLocation(req domain.MatchRequest) *geo.Point {
	if req.GPS != nil && req.GPS.Lat != 0 && req.GPS.Lng != 0 {
		return &geo.Point{Lat: req.GPS.Lat, Lng: req.GPS.Lng}
	}
	return geo.ResolveDistrict(req.District)
}

// resolveStoreLocation precedence: explicit lat/lng fields, then the
// coordinate object, then the district centroid.
func resolveStoreLocation(store domain.Store) *geo.Point {
	if store.Lat != 0 && store.Lng != 0 {
		return &geo.Point{Lat: store.Lat, Lng: store.Lng}
	}
	if store.Coords != nil && store.Coords.Lat != 0 && store.Coords.Lng != 0 {
		return &geo.Point{Lat: store.Coords.Lat, Lng: store.Coords.Lng}
	}
	return geo.ResolveDistrict(store.District)
}

func compatibleVacancies(vacancies []domain.Vacancy, declared domain.ShiftType) ([]domain.Vacancy, int) {
	var compatible []domain.Vacancy
	slots := 0
	for _, v := range vacancies {
		if !v.Matchable() {
			continue
		}
		if !v.Shift.Compatible(declared) {
			continue
		}
		compatible = append(compatible, v)
		slots += v.AvailableSlots
	}
	return compatible, slots
}
