package domain

import "context"

// ShiftType is the fixed set of shift requirements a vacancy can declare.
type ShiftType string

const (
	ShiftRotating ShiftType = "rotating"
	ShiftClosing  ShiftType = "closing"
	ShiftMixed    ShiftType = "mixed"
)

// Compatible reports whether a candidate's declared availability satisfies
// the vacancy's required shift. A "mixed" requirement accepts any declared
// availability, and a "mixed" declaration satisfies any requirement.
func (required ShiftType) Compatible(declared ShiftType) bool {
	if required == ShiftMixed || declared == ShiftMixed {
		return true
	}
	return required == declared
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type VacancyStatus string

const (
	VacancyActive   VacancyStatus = "active"
	VacancyInactive VacancyStatus = "inactive"
)

type Vacancy struct {
	ID             string        `json:"id"`
	Position       string        `json:"position"`
	Shift          ShiftType     `json:"shift"`
	Modality       string        `json:"modality"`
	AvailableSlots int           `json:"available_slots"`
	Status         VacancyStatus `json:"status"`
	MaxSalary      float64       `json:"max_salary"`
}

// Matchable reports whether the vacancy can still receive candidates.
func (v Vacancy) Matchable() bool {
	return v.Status == VacancyActive && v.AvailableSlots > 0
}

type Store struct {
	ID        string       `json:"id"`
	TenantID  string       `json:"tenant_id"`
	Name      string       `json:"name"`
	Address   string       `json:"address"`
	District  string       `json:"district"`
	Zone      string       `json:"zone"`
	BrandID   string       `json:"brand_id"`
	BrandName string       `json:"brand_name"`
	Lat       float64      `json:"lat"`
	Lng       float64      `json:"lng"`
	Coords    *Coordinates `json:"coords,omitempty"`
	Vacancies []Vacancy    `json:"vacancies"`
}

// StoreMatch is the ephemeral result of a matching request; never persisted.
type StoreMatch struct {
	Store      Store     `json:"store"`
	Vacancies  []Vacancy `json:"vacancies"`
	TotalSlots int       `json:"total_slots"`
	DistanceKm float64   `json:"distance_km"`
}

type StoreRepository interface {
	FetchByTenant(ctx context.Context, tenantID string) ([]Store, error)
	GetByID(ctx context.Context, tenantID, id string) (*Store, error)
	Create(ctx context.Context, store *Store) error
}

type MatchRequest struct {
	TenantID             string
	District             string
	GPS                  *Coordinates
	DeclaredAvailability ShiftType
}

type MatchUsecase interface {
	FindMatchingStores(ctx context.Context, req MatchRequest) ([]StoreMatch, error)
}
