package entity

import "time"

// Estados de un mensaje registrado en el log de envíos.
const (
	SentMessageStatusSent   = "sent"
	SentMessageStatusFailed = "failed"
	// El proveedor pudo haber aceptado el mensaje (timeout, respuesta sin ids).
	SentMessageStatusUnknown = "unknown"
)

// SentMessage registro de un mensaje despachado dentro de una campaña.
// El par (Campaign, CPF) identifica al cliente ya notificado.
type SentMessage struct {
	ID             string
	Campaign       string
	CPF            string
	Phone          string
	Message        string
	ExpiringPoints string // decimal serializado
	Balance        string
	ZaapID         string
	MessageID      string
	Status         string
	Error          string
	SentAt         time.Time
}
