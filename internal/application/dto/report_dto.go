package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpiringCustomerDTO fila del reporte de socios con puntos por vencer.
type ExpiringCustomerDTO struct {
	CPF                 string          `json:"-"`
	CPFMasked           string          `json:"cpf"`
	Name                string          `json:"name"`
	FirstName           string          `json:"first_name"`
	Phone               string          `json:"phone,omitempty"`
	WhatsAppLink        string          `json:"whatsapp_link,omitempty"`
	NetBalance          decimal.Decimal `json:"net_balance"`
	ExpiringSoonCredits decimal.Decimal `json:"expiring_soon_credits"`
	ExpiredCredits      decimal.Decimal `json:"expired_credits"`
	NextExpiration      time.Time       `json:"next_expiration"`
	LastExpiration      time.Time       `json:"last_expiration"`
	RewardValue         decimal.Decimal `json:"reward_value_brl"`
}

// SkippedAccountDTO cuenta omitida del reporte por error de lectura o de datos.
type SkippedAccountDTO struct {
	CPFMasked string `json:"cpf"`
	Reason    string `json:"reason"`
}

// ExpiringReportDTO reporte completo de socios con puntos por vencer.
type ExpiringReportDTO struct {
	ReferenceDate       string                `json:"reference_date"`
	ExpirationCutoff    string                `json:"expiration_cutoff"`
	ExpiringSoonCutoff  string                `json:"expiring_soon_cutoff"`
	AccountsEvaluated   int                   `json:"accounts_evaluated"`
	TotalExpiringPoints decimal.Decimal       `json:"total_expiring_points"`
	Customers           []ExpiringCustomerDTO `json:"customers"`
	Skipped             []SkippedAccountDTO   `json:"skipped"`
}
