package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jhoicas/aviso-pontos/internal/domain/entity"
	"github.com/jhoicas/aviso-pontos/internal/domain/repository"
)

var _ repository.SentMessageRepository = (*SentMessageRepo)(nil)

// SentMessageRepo implementación de SentMessageRepository sobre SQLite.
type SentMessageRepo struct {
	db *sql.DB
}

// NewSentMessageRepository construye el adaptador sobre una base abierta con Open.
func NewSentMessageRepository(db *sql.DB) *SentMessageRepo {
	return &SentMessageRepo{db: db}
}

// Save registra un envío (exitoso o fallido).
func (r *SentMessageRepo) Save(ctx context.Context, m *entity.SentMessage) error {
	query := `
		INSERT INTO messages_sent (id, campaign, cpf, phone, message, expiring_points, balance,
			zaap_id, message_id, status, error, sent_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Campaign, m.CPF, m.Phone, m.Message, m.ExpiringPoints, m.Balance,
		nullString(m.ZaapID), nullString(m.MessageID), m.Status, nullString(m.Error),
		m.SentAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert sent message: %w", err)
	}
	return nil
}

// ListByCampaign devuelve los envíos de la campaña en orden cronológico.
func (r *SentMessageRepo) ListByCampaign(ctx context.Context, campaign string) ([]*entity.SentMessage, error) {
	query := `
		SELECT id, campaign, cpf, phone, message, expiring_points, balance,
			COALESCE(zaap_id, ''), COALESCE(message_id, ''), status, COALESCE(error, ''), sent_at
		FROM messages_sent WHERE campaign = ? ORDER BY sent_at, id`
	rows, err := r.db.QueryContext(ctx, query, campaign)
	if err != nil {
		return nil, fmt.Errorf("list sent messages: %w", err)
	}
	defer rows.Close()

	var list []*entity.SentMessage
	for rows.Next() {
		var (
			m      entity.SentMessage
			sentAt string
		)
		if err := rows.Scan(&m.ID, &m.Campaign, &m.CPF, &m.Phone, &m.Message, &m.ExpiringPoints, &m.Balance,
			&m.ZaapID, &m.MessageID, &m.Status, &m.Error, &sentAt); err != nil {
			return nil, fmt.Errorf("scan sent message: %w", err)
		}
		if m.SentAt, err = time.Parse(time.RFC3339Nano, sentAt); err != nil {
			return nil, fmt.Errorf("parse sent_at %q: %w", sentAt, err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SentCPFs devuelve los CPF con al menos un envío exitoso o no confirmado en la campaña.
func (r *SentMessageRepo) SentCPFs(ctx context.Context, campaign string) (map[string]struct{}, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT cpf FROM messages_sent WHERE campaign = ? AND status IN (?, ?)`,
		campaign, entity.SentMessageStatusSent, entity.SentMessageStatusUnknown)
	if err != nil {
		return nil, fmt.Errorf("list sent cpfs: %w", err)
	}
	defer rows.Close()

	out := make(map[string]struct{})
	for rows.Next() {
		var cpf string
		if err := rows.Scan(&cpf); err != nil {
			return nil, fmt.Errorf("scan cpf: %w", err)
		}
		out[cpf] = struct{}{}
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
