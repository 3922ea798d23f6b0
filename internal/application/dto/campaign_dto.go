package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// NotifyRequest parámetros de una ejecución de la campaña de aviso.
type NotifyRequest struct {
	AsOf   time.Time
	DryRun bool
	Limit  int // 0 = sin límite
}

// PlannedMessageDTO mensaje preparado para un socio.
type PlannedMessageDTO struct {
	CPF            string          `json:"-"`
	CPFMasked      string          `json:"cpf"`
	Phone          string          `json:"phone"`
	Message        string          `json:"message"`
	ExpiringPoints decimal.Decimal `json:"expiring_points"`
	NetBalance     decimal.Decimal `json:"net_balance"`
	ExpiresOn      time.Time       `json:"expires_on"`
}

// NotifyResultDTO resumen de una ejecución de la campaña.
type NotifyResultDTO struct {
	Campaign        string              `json:"campaign"`
	DryRun          bool                `json:"dry_run"`
	Candidates      int                 `json:"candidates"`
	AlreadyNotified int                 `json:"already_notified"`
	Ineligible      int                 `json:"ineligible"`
	Sent            int                 `json:"sent"`
	Failed          int                 `json:"failed"`
	Unknown         int                 `json:"unknown"` // sin confirmación del proveedor; no se reenvían
	Planned         []PlannedMessageDTO `json:"planned"`
}

// SentMessageDTO entrada del log de envíos.
type SentMessageDTO struct {
	CPFMasked string    `json:"cpf"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	ZaapID    string    `json:"zaap_id,omitempty"`
	MessageID string    `json:"message_id,omitempty"`
	Error     string    `json:"error,omitempty"`
	SentAt    time.Time `json:"sent_at"`
}

// FollowUpOutcomeDTO agregado por resultado de entrega.
type FollowUpOutcomeDTO struct {
	Outcome  string `json:"outcome"`
	Messages int    `json:"messages"`
	Redeemed int    `json:"redeemed"`
}

// FollowUpReportDTO efectividad de una campaña: entrega y rescates posteriores al envío.
type FollowUpReportDTO struct {
	Campaign       string               `json:"campaign"`
	Messages       int                  `json:"messages"`
	RedeemedAfter  int                  `json:"redeemed_after"`
	RedeemedPoints decimal.Decimal      `json:"redeemed_points"`
	Outcomes       []FollowUpOutcomeDTO `json:"outcomes"`
}
