package postgres

import (
	"context"

	"go-recruitment-chatbot/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type requisitionRepository struct {
	db *pgxpool.Pool
}

func NewRequisitionRepository(db *pgxpool.Pool) domain.RequisitionRepository {
	return &requisitionRepository{db: db}
}

func (r *requisitionRepository) FetchOpenByTenant(ctx context.Context, tenantID string) ([]domain.Requisition, error) {
	query := `
		SELECT id, tenant_id, unit, brand_name, position, status, approved,
		       COALESCE(recruiter_email, ''), opened_at, filled_at
		FROM requisitions
		WHERE tenant_id = $1
		  AND status = 'active'
		  AND approved = true
		  AND filled_at IS NULL
		ORDER BY opened_at`

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requisitions := []domain.Requisition{}
	for rows.Next() {
		var req domain.Requisition
		err := rows.Scan(
			&req.ID, &req.TenantID, &req.Unit, &req.BrandName, &req.Position,
			&req.Status, &req.Approved, &req.RecruiterEmail, &req.OpenedAt, &req.FilledAt,
		)
		if err != nil {
			return nil, err
		}
		requisitions = append(requisitions, req)
	}
	return requisitions, rows.Err()
}
