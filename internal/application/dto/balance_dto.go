package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSnapshotDTO saldo de puntos de un socio a la fecha de referencia.
type BalanceSnapshotDTO struct {
	CPFMasked           string          `json:"cpf"`
	ReferenceDate       string          `json:"reference_date"`
	HasData             bool            `json:"has_data"`
	TotalCredits        decimal.Decimal `json:"total_credits"`
	TotalDebits         decimal.Decimal `json:"total_debits"`
	NetBalance          decimal.Decimal `json:"net_balance"`
	ExpiredCredits      decimal.Decimal `json:"expired_credits"`
	ExpiringSoonCredits decimal.Decimal `json:"expiring_soon_credits"`
	ExpiringDates       []time.Time     `json:"expiring_dates"`
	NextExpiration      *time.Time      `json:"next_expiration,omitempty"`
	RewardValue         decimal.Decimal `json:"reward_value_brl"` // floor(saldo / 100)

	// Datos del directorio de socios; vacíos si el CPF no está registrado.
	FirstName    string `json:"first_name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	WhatsAppLink string `json:"whatsapp_link,omitempty"`
	Message      string `json:"message,omitempty"` // solo con saldo >= mínimo de la campaña
}
