package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind tipo de movimiento en la cuenta corriente de puntos.
type MovementKind string

// Tipos de movimiento (columna tipo del libro: C, D, R).
const (
	MovementKindCredit     MovementKind = "C" // crédito (acumulación)
	MovementKindDebit      MovementKind = "D" // débito (ajuste a la baja)
	MovementKindRedemption MovementKind = "R" // rescate de puntos
)

// Valid indica si el tipo es uno de los conocidos.
func (k MovementKind) Valid() bool {
	switch k {
	case MovementKindCredit, MovementKindDebit, MovementKindRedemption:
		return true
	}
	return false
}

// CreditOrigin origen de un crédito. Solo los créditos de compra vencen.
type CreditOrigin string

const (
	CreditOriginPurchase           CreditOrigin = "COMPRA"
	CreditOriginRedemptionReversal CreditOrigin = "ESTORNO_RESGATE"
	CreditOriginMaintenance        CreditOrigin = "MANUTENCAO"
)

// Valid indica si el origen es uno de los conocidos.
func (o CreditOrigin) Valid() bool {
	switch o {
	case CreditOriginPurchase, CreditOriginRedemptionReversal, CreditOriginMaintenance:
		return true
	}
	return false
}

// Movement representa un asiento del libro de puntos de un cliente.
// RedeemedAmount llega precalculado desde el libro de rescates (por cuenta + lote).
type Movement struct {
	ID             string
	AccountID      string // CPF del cliente
	LotID          string // identificador del cupón/lote de crédito
	Sequence       int64  // orden original en el libro (desempate)
	RecordedAt     time.Time
	CouponDate     *time.Time // fecha del cupón; tiene prioridad sobre RecordedAt
	Amount         decimal.Decimal
	Kind           MovementKind
	Origin         CreditOrigin // solo para créditos
	RedeemedAmount decimal.Decimal
}

// SettlementDate devuelve la fecha usada para envejecer el lote:
// la fecha del cupón si existe, si no la fecha/hora registrada.
func (m Movement) SettlementDate() time.Time {
	if m.CouponDate != nil && !m.CouponDate.IsZero() {
		return *m.CouponDate
	}
	return m.RecordedAt
}

// IsPurchaseLot indica si el movimiento es un lote de compra sujeto a vencimiento.
func (m Movement) IsPurchaseLot() bool {
	return m.Kind == MovementKindCredit && m.Origin == CreditOriginPurchase
}
