package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-recruitment-chatbot/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type storeRepository struct {
	db *pgxpool.Pool
}

func NewStoreRepository(db *pgxpool.Pool) domain.StoreRepository {
	return &storeRepository{db: db}
}

const storeColumns = `id, tenant_id, name, address, district, zone, brand_id, brand_name, lat, lng, coords, vacancies`

func scanStore(row pgx.Row) (*domain.Store, error) {
	var s domain.Store
	var coordsRaw, vacanciesRaw []byte

	err := row.Scan(
		&s.ID, &s.TenantID, &s.Name, &s.Address, &s.District, &s.Zone,
		&s.BrandID, &s.BrandName, &s.Lat, &s.Lng, &coordsRaw, &vacanciesRaw,
	)
	if err != nil {
		return nil, err
	}

	if len(coordsRaw) > 0 {
		if err := json.Unmarshal(coordsRaw, &s.Coords); err != nil {
			return nil, fmt.Errorf("decode coords: %w", err)
		}
	}
	if err := json.Unmarshal(vacanciesRaw, &s.Vacancies); err != nil {
		return nil, fmt.Errorf("decode vacancies: %w", err)
	}
	return &s, nil
}

func (r *storeRepository) FetchByTenant(ctx context.Context, tenantID string) ([]domain.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE tenant_id = $1 ORDER BY name`

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stores := []domain.Store{}
	for rows.Next() {
		store, err := scanStore(rows)
		if err != nil {
			return nil, err
		}
		stores = append(stores, *store)
	}
	return stores, rows.Err()
}

func (r *storeRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE tenant_id = $1 AND id = $2`
	store, err := scanStore(r.db.QueryRow(ctx, query, tenantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return store, err
}

func (r *storeRepository) Create(ctx context.Context, store *domain.Store) error {
	var coordsRaw []byte
	if store.Coords != nil {
		var err error
		if coordsRaw, err = json.Marshal(store.Coords); err != nil {
			return fmt.Errorf("encode coords: %w", err)
		}
	}
	vacancies := store.Vacancies
	if vacancies == nil {
		vacancies = []domain.Vacancy{}
	}
	vacanciesRaw, err := json.Marshal(vacancies)
	if err != nil {
		return fmt.Errorf("encode vacancies: %w", err)
	}

	query := `
		INSERT INTO stores (id, tenant_id, name, address, district, zone, brand_id, brand_name, lat, lng, coords, vacancies)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.db.Exec(ctx, query,
		store.ID, store.TenantID, store.Name, store.Address, store.District, store.Zone,
		store.BrandID, store.BrandName, store.Lat, store.Lng, coordsRaw, vacanciesRaw,
	)
	return err
}
