package domain

import (
	"context"
	"time"
)

// Branding holds per-tenant presentation settings used in outbound messages.
type Branding struct {
	LogoURL        string `json:"logo_url"`
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	ContactEmail   string `json:"contact_email"`
	ContactPhone   string `json:"contact_phone"`
}

// AlertSettings controls the daily unfilled-requisition alert job per tenant.
type AlertSettings struct {
	Enabled            bool `json:"enabled"`
	DaysWithoutFill    int  `json:"days_without_fill"`
	EmailNotifications bool `json:"email_notifications"`
}

type Tenant struct {
	ID            string        `json:"id"`
	Name          string        `json:"name" validate:"required,min=2,max=100"`
	Brand         string        `json:"brand"`
	WebhookOrigin string        `json:"webhook_origin" validate:"required"`
	Active        bool          `json:"active"`
	Branding      Branding      `json:"branding"`
	AlertSettings AlertSettings `json:"alert_settings"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type TenantRepository interface {
	GetByID(ctx context.Context, id string) (*Tenant, error)
	GetByWebhookOrigin(ctx context.Context, origin string) (*Tenant, error)
	Fetch(ctx context.Context) ([]Tenant, error)
	FetchActive(ctx context.Context) ([]Tenant, error)
	Create(ctx context.Context, tenant *Tenant) error
	UpdateBranding(ctx context.Context, id string, branding Branding) error
	UpdateAlertSettings(ctx context.Context, id string, settings AlertSettings) error
}

type TenantUsecase interface {
	// ResolveOrigin maps an inbound channel identifier to a tenant ID,
	// caching successful resolutions for the process lifetime.
	ResolveOrigin(ctx context.Context, originID string) (string, error)
	GetTenant(ctx context.Context, id string) (*Tenant, error)
	ListTenants(ctx context.Context) ([]Tenant, error)
	UpdateBranding(ctx context.Context, id string, branding Branding) error
	UpdateAlertSettings(ctx context.Context, id string, settings AlertSettings) error
}
