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

type tenantRepository struct {
	db *pgxpool.Pool
}

func NewTenantRepository(db *pgxpool.Pool) domain.TenantRepository {
	return &tenantRepository{db: db}
}

const tenantColumns = `id, name, brand, webhook_origin, active, branding, alert_settings, created_at, updated_at`

func scanTenant(row pgx.Row) (*domain.Tenant, error) {
	var t domain.Tenant
	var brandingRaw, alertRaw []byte

	err := row.Scan(
		&t.ID, &t.Name, &t.Brand, &t.WebhookOrigin, &t.Active,
		&brandingRaw, &alertRaw, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(brandingRaw, &t.Branding); err != nil {
		return nil, fmt.Errorf("decode branding: %w", err)
	}
	if err := json.Unmarshal(alertRaw, &t.AlertSettings); err != nil {
		return nil, fmt.Errorf("decode alert_settings: %w", err)
	}
	return &t, nil
}

func (r *tenantRepository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	tenant, err := scanTenant(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTenantNotFound
	}
	return tenant, err
}

func (r *tenantRepository) GetByWebhookOrigin(ctx context.Context, origin string) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE webhook_origin = $1 AND active = true`
	tenant, err := scanTenant(r.db.QueryRow(ctx, query, origin))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTenantNotFound
	}
	return tenant, err
}

func (r *tenantRepository) Fetch(ctx context.Context) ([]domain.Tenant, error) {
	return r.fetch(ctx, `SELECT `+tenantColumns+` FROM tenants ORDER BY name`)
}

func (r *tenantRepository) FetchActive(ctx context.Context) ([]domain.Tenant, error) {
	return r.fetch(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE active = true ORDER BY name`)
}

func (r *tenantRepository) fetch(ctx context.Context, query string) ([]domain.Tenant, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tenants := []domain.Tenant{}
	for rows.Next() {
		tenant, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, *tenant)
	}
	return tenants, rows.Err()
}

func (r *tenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	brandingRaw, err := json.Marshal(tenant.Branding)
	if err != nil {
		return fmt.Errorf("encode branding: %w", err)
	}
	alertRaw, err := json.Marshal(tenant.AlertSettings)
	if err != nil {
		return fmt.Errorf("encode alert_settings: %w", err)
	}

	query := `
		INSERT INTO tenants (id, name, brand, webhook_origin, active, branding, alert_settings, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())`
	_, err = r.db.Exec(ctx, query,
		tenant.ID, tenant.Name, tenant.Brand, tenant.WebhookOrigin, tenant.Active,
		brandingRaw, alertRaw,
	)
	return err
}

func (r *tenantRepository) UpdateBranding(ctx context.Context, id string, branding domain.Branding) error {
	raw, err := json.Marshal(branding)
	if err != nil {
		return fmt.Errorf("encode branding: %w", err)
	}

	tag, err := r.db.Exec(ctx, `UPDATE tenants SET branding = $1, updated_at = NOW() WHERE id = $2`, raw, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTenantNotFound
	}
	return nil
}

func (r *tenantRepository) UpdateAlertSettings(ctx context.Context, id string, settings domain.AlertSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode alert_settings: %w", err)
	}

	tag, err := r.db.Exec(ctx, `UPDATE tenants SET alert_settings = $1, updated_at = NOW() WHERE id = $2`, raw, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTenantNotFound
	}
	return nil
}
