package ports

import (
	"context"

	"github.com/jhoicas/aviso-pontos/internal/application/dto"
)

// MessageSender define el puerto de salida hacia el proveedor de mensajería (WhatsApp).
// Los teléfonos llegan como DDD + número; el adaptador agrega el código de país.
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type MessageSender interface {
	SendText(ctx context.Context, phone, message string) (*dto.SendResult, error)
	SendImage(ctx context.Context, phone, caption, imageURL string) (*dto.SendResult, error)
	ChatMetadata(ctx context.Context, phone string) (*dto.ChatMetadataDTO, error)
}
