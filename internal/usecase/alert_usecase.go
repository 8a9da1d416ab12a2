package usecase

import (
	"context"
	"sort"
	"time"

	"go-recruitment-chatbot/internal/domain"
	"go-recruitment-chatbot/pkg/apperror"
	"go-recruitment-chatbot/pkg/logger"
)

type alertUsecase struct {
	tenantRepo      domain.TenantRepository
	requisitionRepo domain.RequisitionRepository
	mailer          domain.AlertMailer
	defaultDays     int
	now             func() time.Time
}

func NewAlertUsecase(
	tenantRepo domain.TenantRepository,
	requisitionRepo domain.RequisitionRepository,
	mailer domain.AlertMailer,
	defaultDays int,
) domain.AlertUsecase {
	if defaultDays <= 0 {
		defaultDays = 7
	}
	return &alertUsecase{
		tenantRepo:      tenantRepo,
		requisitionRepo: requisitionRepo,
		mailer:          mailer,
		defaultDays:     defaultDays,
		now:             time.Now,
	}
}

// RunUnfilledCheck flags requisitions open past the tenant threshold and
// emails each recruiter their slice of them. Per-tenant and per-email
// failures are logged and skipped so one bad tenant cannot stall the scan.
func (u *alertUsecase) RunUnfilledCheck(ctx context.Context, tenantID string) (*domain.AlertSummary, error) {
	var tenants []domain.Tenant
	if tenantID != "" {
		tenant, err := u.tenantRepo.GetByID(ctx, tenantID)
		if err != nil {
			return nil, apperror.NotFound("Tenant not found")
		}
		tenants = []domain.Tenant{*tenant}
	} else {
		var err error
		tenants, err = u.tenantRepo.FetchActive(ctx)
		if err != nil {
			return nil, apperror.Internal(err)
		}
	}

	summary := &domain.AlertSummary{}
	for i := range tenants {
		tenant := &tenants[i]
		if !tenant.AlertSettings.Enabled {
			continue
		}
		summary.TenantsChecked++

		flagged, err := u.staleRequisitions(ctx, tenant)
		if err != nil {
			logger.Log.Error("requisition scan failed", "tenant_id", tenant.ID, "error", err)
			continue
		}
		summary.Flagged += len(flagged)
		if len(flagged) == 0 {
			continue
		}

		if !tenant.AlertSettings.EmailNotifications {
			continue
		}
		if u.mailer == nil || !u.mailer.IsConfigured() {
			logger.Log.Warn("alert mailer not configured, skipping emails", "tenant_id", tenant.ID)
			continue
		}
		summary.EmailsSent += u.notifyRecruiters(tenant, flagged)
	}

	return summary, nil
}

func (u *alertUsecase) staleRequisitions(ctx context.Context, tenant *domain.Tenant) ([]domain.Requisition, error) {
	threshold := tenant.AlertSettings.DaysWithoutFill
	if threshold <= 0 {
		threshold = u.defaultDays
	}

	open, err := u.requisitionRepo.FetchOpenByTenant(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	now := u.now()
	var stale []domain.Requisition
	for _, req := range open {
		if req.DaysOpen(now) > threshold {
			stale = append(stale, req)
		}
	}
	return stale, nil
}

// notifyRecruiters groups flagged requisitions by recruiter and sends one
// digest per address. Returns the number of emails delivered.
func (u *alertUsecase) notifyRecruiters(tenant *domain.Tenant, flagged []domain.Requisition) int {
	byRecruiter := make(map[string][]domain.Requisition)
	for _, req := range flagged {
		if req.RecruiterEmail == "" {
			logger.Log.Warn("requisition has no recruiter email",
				"tenant_id", tenant.ID, "requisition_id", req.ID)
			continue
		}
		byRecruiter[req.RecruiterEmail] = append(byRecruiter[req.RecruiterEmail], req)
	}

	recipients := make([]string, 0, len(byRecruiter))
	for email := range byRecruiter {
		recipients = append(recipients, email)
	}
	sort.Strings(recipients)

	sent := 0
	for _, email := range recipients {
		reqs := byRecruiter[email]
		sort.Slice(reqs, func(i, j int) bool {
			if reqs[i].BrandName != reqs[j].BrandName {
				return reqs[i].BrandName < reqs[j].BrandName
			}
			return reqs[i].OpenedAt.Before(reqs[j].OpenedAt)
		})
		if err := u.mailer.SendRequisitionAlert(email, tenant, reqs); err != nil {
			logger.Log.Error("alert email failed",
				"tenant_id", tenant.ID, "recipient", email, "error", err)
			continue
		}
		sent++
	}
	return sent
}
