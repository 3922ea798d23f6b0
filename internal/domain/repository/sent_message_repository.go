package repository

import (
	"context"

	"github.com/jhoicas/aviso-pontos/internal/domain/entity"
)

// SentMessageRepository define el puerto del log de mensajes enviados (deduplicación por campaña).
type SentMessageRepository interface {
	Save(ctx context.Context, msg *entity.SentMessage) error
	ListByCampaign(ctx context.Context, campaign string) ([]*entity.SentMessage, error)
	// SentCPFs devuelve los CPF ya avisados en la campaña (envío exitoso o no confirmado).
	SentCPFs(ctx context.Context, campaign string) (map[string]struct{}, error)
}
