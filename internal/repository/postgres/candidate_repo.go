package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-recruitment-chatbot/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type candidateRepo struct {
	db *pgxpool.Pool
}

func NewCandidateRepo(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepo{db: db}
}

const candidateColumns = `id, tenant_id, phone, name, dni, email, status, interview, applications, created_at, updated_at`

func scanCandidate(row pgx.Row) (*domain.Candidate, error) {
	var c domain.Candidate
	var interviewRaw, applicationsRaw []byte

	err := row.Scan(
		&c.ID, &c.TenantID, &c.Phone, &c.Name, &c.DNI, &c.Email, &c.Status,
		&interviewRaw, &applicationsRaw, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(interviewRaw) > 0 {
		if err := json.Unmarshal(interviewRaw, &c.Interview); err != nil {
			return nil, fmt.Errorf("decode interview: %w", err)
		}
	}
	if err := json.Unmarshal(applicationsRaw, &c.Applications); err != nil {
		return nil, fmt.Errorf("decode applications: %w", err)
	}
	return &c, nil
}

func (r *candidateRepo) GetByID(ctx context.Context, tenantID, id string) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE tenant_id = $1 AND id = $2`
	candidate, err := scanCandidate(r.db.QueryRow(ctx, query, tenantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCandidateNotFound
	}
	return candidate, err
}

func (r *candidateRepo) GetByPhone(ctx context.Context, tenantID, phone string) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE tenant_id = $1 AND phone = $2`
	candidate, err := scanCandidate(r.db.QueryRow(ctx, query, tenantID, phone))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCandidateNotFound
	}
	return candidate, err
}

func (r *candidateRepo) Create(ctx context.Context, candidate *domain.Candidate) error {
	applications := candidate.Applications
	if applications == nil {
		applications = []domain.Application{}
	}
	applicationsRaw, err := json.Marshal(applications)
	if err != nil {
		return fmt.Errorf("encode applications: %w", err)
	}

	query := `
		INSERT INTO candidates (id, tenant_id, phone, name, dni, email, status, interview, applications, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULL, $8, NOW(), NOW())`
	_, err = r.db.Exec(ctx, query,
		candidate.ID, candidate.TenantID, candidate.Phone, candidate.Name,
		candidate.DNI, candidate.Email, candidate.Status, applicationsRaw,
	)
	return err
}

// ScheduleInterview writes the interview, the status change and the appended
// application snapshot in a single statement so partial writes cannot happen.
func (r *candidateRepo) ScheduleInterview(ctx context.Context, tenantID, id string, interview *domain.Interview, app *domain.Application) error {
	interviewRaw, err := json.Marshal(interview)
	if err != nil {
		return fmt.Errorf("encode interview: %w", err)
	}
	appRaw, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("encode application: %w", err)
	}

	query := `
		UPDATE candidates SET
			interview = $1,
			status = 'interview_scheduled',
			applications = COALESCE(applications, '[]'::jsonb) || $2::jsonb,
			updated_at = NOW()
		WHERE tenant_id = $3 AND id = $4`

	tag, err := r.db.Exec(ctx, query, interviewRaw, appRaw, tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCandidateNotFound
	}
	return nil
}

func (r *candidateRepo) ConfirmInterview(ctx context.Context, tenantID, id string, at time.Time) error {
	query := `
		UPDATE candidates SET
			interview = interview
				|| jsonb_build_object('state', 'confirmed', 'confirmed', true)
				|| jsonb_build_object('confirmed_at', to_jsonb($1::timestamptz)),
			updated_at = NOW()
		WHERE tenant_id = $2 AND id = $3 AND interview IS NOT NULL`

	tag, err := r.db.Exec(ctx, query, at, tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCandidateNotFound
	}
	return nil
}

func (r *candidateRepo) RescheduleInterview(ctx context.Context, tenantID, id string, interview *domain.Interview) error {
	interviewRaw, err := json.Marshal(interview)
	if err != nil {
		return fmt.Errorf("encode interview: %w", err)
	}

	query := `
		UPDATE candidates SET interview = $1, updated_at = NOW()
		WHERE tenant_id = $2 AND id = $3`

	tag, err := r.db.Exec(ctx, query, interviewRaw, tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCandidateNotFound
	}
	return nil
}

func (r *candidateRepo) FetchWithInterviewBetween(ctx context.Context, tenantID string, from, to time.Time) ([]domain.Candidate, error) {
	query := `
		SELECT ` + candidateColumns + `
		FROM candidates
		WHERE interview IS NOT NULL
		  AND interview->>'state' IN ('scheduled', 'confirmed')
		  AND (interview->>'date_time')::timestamptz >= $1
		  AND (interview->>'date_time')::timestamptz < $2`
	args := []any{from, to}
	if tenantID != "" {
		query += ` AND tenant_id = $3`
		args = append(args, tenantID)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := []domain.Candidate{}
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, *candidate)
	}
	return candidates, rows.Err()
}
