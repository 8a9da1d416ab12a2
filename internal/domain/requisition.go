package domain

import (
	"context"
	"time"
)

// Requisition is an open position tracked by the alerting subsystem. It is
// distinct from the vacancies the candidate-facing flow matches against.
type Requisition struct {
	ID             string     `json:"id"`
	TenantID       string     `json:"tenant_id"`
	Unit           string     `json:"unit"`
	BrandName      string     `json:"brand_name"`
	Position       string     `json:"position"`
	Status         string     `json:"status"`
	Approved       bool       `json:"approved"`
	RecruiterEmail string     `json:"recruiter_email"`
	OpenedAt       time.Time  `json:"opened_at"`
	FilledAt       *time.Time `json:"filled_at,omitempty"`
}

// DaysOpen counts whole days since the requisition was opened.
func (r Requisition) DaysOpen(now time.Time) int {
	return int(now.Sub(r.OpenedAt).Hours() / 24)
}

type RequisitionRepository interface {
	// FetchOpenByTenant returns active, approved, unfilled requisitions.
	FetchOpenByTenant(ctx context.Context, tenantID string) ([]Requisition, error)
}

// AlertSummary reports the outcome of one unfilled-requisition scan.
type AlertSummary struct {
	TenantsChecked int `json:"tenants_checked"`
	Flagged        int `json:"flagged"`
	EmailsSent     int `json:"emails_sent"`
}

type AlertUsecase interface {
	// RunUnfilledCheck scans a single tenant, or all active tenants when
	// tenantID is empty, and emails recruiters about stale requisitions.
	RunUnfilledCheck(ctx context.Context, tenantID string) (*AlertSummary, error)
}
