package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-recruitment-chatbot/internal/domain"
	"go-recruitment-chatbot/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type RequisitionRepoMock struct {
	mock.Mock
}

func (m *RequisitionRepoMock) FetchOpenByTenant(ctx context.Context, tenantID string) ([]domain.Requisition, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Requisition), args.Error(1)
}

type MailerMock struct {
	mock.Mock
}

func (m *MailerMock) SendRequisitionAlert(recipient string, tenant *domain.Tenant, requisitions []domain.Requisition) error {
	return m.Called(recipient, tenant, requisitions).Error(0)
}

func (m *MailerMock) IsConfigured() bool {
	return m.Called().Bool(0)
}

func alertTenant(id string, enabled bool, days int) domain.Tenant {
	return domain.Tenant{
		ID:     id,
		Name:   "Tenant " + id,
		Active: true,
		AlertSettings: domain.AlertSettings{
			Enabled:            enabled,
			DaysWithoutFill:    days,
			EmailNotifications: true,
		},
	}
}

func openFor(days int, recruiter string) domain.Requisition {
	return domain.Requisition{
		ID:             "r-" + recruiter,
		Position:       "Vendedor",
		Status:         "active",
		Approved:       true,
		RecruiterEmail: recruiter,
		OpenedAt:       time.Now().AddDate(0, 0, -days),
	}
}

func TestRunUnfilledCheck(t *testing.T) {
	t.Run("Should flag only requisitions past the tenant threshold", func(t *testing.T) {
		tenantRepo := new(TenantRepoMock)
		reqRepo := new(RequisitionRepoMock)
		mailer := new(MailerMock)

		tenantRepo.On("FetchActive", mock.Anything).
			Return([]domain.Tenant{alertTenant("t1", true, 10)}, nil)
		reqRepo.On("FetchOpenByTenant", mock.Anything, "t1").Return([]domain.Requisition{
			openFor(15, "ana@acme.pe"),
			openFor(5, "ana@acme.pe"),
		}, nil)
		mailer.On("IsConfigured").Return(true)
		mailer.On("SendRequisitionAlert", "ana@acme.pe", mock.Anything,
			mock.MatchedBy(func(reqs []domain.Requisition) bool { return len(reqs) == 1 })).
			Return(nil)

		uc := usecase.NewAlertUsecase(tenantRepo, reqRepo, mailer, 7)
		summary, err := uc.RunUnfilledCheck(context.Background(), "")

		assert.NoError(t, err)
		assert.Equal(t, 1, summary.TenantsChecked)
		assert.Equal(t, 1, summary.Flagged)
		assert.Equal(t, 1, summary.EmailsSent)
		mailer.AssertExpectations(t)
	})

	t.Run("Should skip tenants with alerts disabled", func(t *testing.T) {
		tenantRepo := new(TenantRepoMock)
		reqRepo := new(RequisitionRepoMock)
		mailer := new(MailerMock)

		tenantRepo.On("FetchActive", mock.Anything).
			Return([]domain.Tenant{alertTenant("t1", false, 7)}, nil)

		uc := usecase.NewAlertUsecase(tenantRepo, reqRepo, mailer, 7)
		summary, err := uc.RunUnfilledCheck(context.Background(), "")

		assert.NoError(t, err)
		assert.Equal(t, 0, summary.TenantsChecked)
		reqRepo.AssertNotCalled(t, "FetchOpenByTenant")
	})

	t.Run("Should send one digest per recruiter", func(t *testing.T) {
		tenantRepo := new(TenantRepoMock)
		reqRepo := new(RequisitionRepoMock)
		mailer := new(MailerMock)

		tenantRepo.On("FetchActive", mock.Anything).
			Return([]domain.Tenant{alertTenant("t1", true, 7)}, nil)
		reqRepo.On("FetchOpenByTenant", mock.Anything, "t1").Return([]domain.Requisition{
			openFor(20, "ana@acme.pe"),
			openFor(12, "ana@acme.pe"),
			openFor(9, "luis@acme.pe"),
		}, nil)
		mailer.On("IsConfigured").Return(true)
		mailer.On("SendRequisitionAlert", "ana@acme.pe", mock.Anything,
			mock.MatchedBy(func(reqs []domain.Requisition) bool { return len(reqs) == 2 })).
			Return(nil)
		mailer.On("SendRequisitionAlert", "luis@acme.pe", mock.Anything,
			mock.MatchedBy(func(reqs []domain.Requisition) bool { return len(reqs) == 1 })).
			Return(nil)

		uc := usecase.NewAlertUsecase(tenantRepo, reqRepo, mailer, 7)
		summary, err := uc.RunUnfilledCheck(context.Background(), "")

		assert.NoError(t, err)
		assert.Equal(t, 3, summary.Flagged)
		assert.Equal(t, 2, summary.EmailsSent)
		mailer.AssertExpectations(t)
	})

	t.Run("Should continue past a failing email", func(t *testing.T) {
		tenantRepo := new(TenantRepoMock)
		reqRepo := new(RequisitionRepoMock)
		mailer := new(MailerMock)

		tenantRepo.On("FetchActive", mock.Anything).
			Return([]domain.Tenant{alertTenant("t1", true, 7)}, nil)
		reqRepo.On("FetchOpenByTenant", mock.Anything, "t1").Return([]domain.Requisition{
			openFor(20, "ana@acme.pe"),
			openFor(20, "luis@acme.pe"),
		}, nil)
		mailer.On("IsConfigured").Return(true)
		mailer.On("SendRequisitionAlert", "ana@acme.pe", mock.Anything, mock.Anything).
			Return(errors.New("smtp down"))
		mailer.On("SendRequisitionAlert", "luis@acme.pe", mock.Anything, mock.Anything).
			Return(nil)

		uc := usecase.NewAlertUsecase(tenantRepo, reqRepo, mailer, 7)
		summary, err := uc.RunUnfilledCheck(context.Background(), "")

		assert.NoError(t, err)
		assert.Equal(t, 1, summary.EmailsSent)
		mailer.AssertExpectations(t)
	})

	t.Run("Should scan a single tenant when requested", func(t *testing.T) {
		tenantRepo := new(TenantRepoMock)
		reqRepo := new(RequisitionRepoMock)
		mailer := new(MailerMock)

		single := alertTenant("t9", true, 7)
		tenantRepo.On("GetByID", mock.Anything, "t9").Return(&single, nil)
		reqRepo.On("FetchOpenByTenant", mock.Anything, "t9").
			Return([]domain.Requisition{}, nil)

		uc := usecase.NewAlertUsecase(tenantRepo, reqRepo, mailer, 7)
		summary, err := uc.RunUnfilledCheck(context.Background(), "t9")

		assert.NoError(t, err)
		assert.Equal(t, 1, summary.TenantsChecked)
		assert.Equal(t, 0, summary.Flagged)
		tenantRepo.AssertNotCalled(t, "FetchActive")
	})
}
