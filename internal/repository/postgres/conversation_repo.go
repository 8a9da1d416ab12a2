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

type conversationRepository struct {
	db *pgxpool.Pool
}

func NewConversationRepository(db *pgxpool.Pool) domain.ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) GetByPhone(ctx context.Context, phone string) (*domain.Conversation, error) {
	query := `
		SELECT phone, tenant_id, origin_id, state, candidate_data, messages, active, created_at, updated_at
		FROM conversations WHERE phone = $1`

	var conv domain.Conversation
	var dataRaw, messagesRaw []byte

	err := r.db.QueryRow(ctx, query, phone).Scan(
		&conv.Phone, &conv.TenantID, &conv.OriginID, &conv.State,
		&dataRaw, &messagesRaw, &conv.Active, &conv.CreatedAt, &conv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(dataRaw, &conv.CandidateData); err != nil {
		return nil, fmt.Errorf("decode candidate_data: %w", err)
	}
	if err := json.Unmarshal(messagesRaw, &conv.Messages); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	return &conv, nil
}

func (r *conversationRepository) Upsert(ctx context.Context, conv *domain.Conversation) error {
	dataRaw, err := json.Marshal(conv.CandidateData)
	if err != nil {
		return fmt.Errorf("encode candidate_data: %w", err)
	}
	messages := conv.Messages
	if messages == nil {
		messages = []domain.Message{}
	}
	messagesRaw, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("encode messages: %w", err)
	}

	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO conversations (phone, tenant_id, origin_id, state, candidate_data, messages, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (phone) DO UPDATE SET
			tenant_id = EXCLUDED.tenant_id,
			origin_id = EXCLUDED.origin_id,
			state = EXCLUDED.state,
			candidate_data = EXCLUDED.candidate_data,
			messages = EXCLUDED.messages,
			active = EXCLUDED.active,
			updated_at = NOW()`

	_, err = r.db.Exec(ctx, query,
		conv.Phone, conv.TenantID, conv.OriginID, string(conv.State),
		dataRaw, messagesRaw, conv.Active, conv.CreatedAt,
	)
	return err
}
