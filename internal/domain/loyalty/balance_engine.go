// Package loyalty contiene el motor de saldo y vencimiento de puntos (servicio de dominio puro).
package loyalty

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/aviso-pontos/internal/domain/entity"
)

const daysPerYear = 365

// BalanceEngine reconstruye el saldo de una cuenta a partir de su libro de movimientos.
// Es determinista y sin estado: puede usarse desde varias goroutines a la vez.
type BalanceEngine struct {
	policy Policy
}

// NewBalanceEngine construye el motor. Devuelve *ConfigurationError si la política es inválida.
func NewBalanceEngine(policy Policy) (*BalanceEngine, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &BalanceEngine{policy: policy}, nil
}

// Policy devuelve la política con la que se construyó el motor.
func (e *BalanceEngine) Policy() Policy { return e.policy }

// Cutoffs devuelve el corte de vencimiento y el corte "por vencer" para la fecha de referencia.
// Un lote de compra con fecha < expiration está vencido; en [expiration, expiringSoon) está por vencer.
func (e *BalanceEngine) Cutoffs(today time.Time) (expiration, expiringSoon time.Time) {
	expiration = civilDate(today, today.Location()).AddDate(0, 0, -e.policy.PointsValidityDays)
	expiringSoon = expiration.AddDate(0, 0, e.policy.ExpiringSoonWindowDays)
	return expiration, expiringSoon
}

// ExpirationDate fecha de vencimiento de un lote: fecha de liquidación más la validez.
// Los múltiplos de 365 días se suman como años de calendario.
func (e *BalanceEngine) ExpirationDate(lotDate time.Time) time.Time {
	days := e.policy.PointsValidityDays
	return lotDate.AddDate(days/daysPerYear, 0, days%daysPerYear)
}

// ComputeBalance recorre el libro en orden de fecha de liquidación (desempate por Sequence y
// posición) y devuelve el saldo a la fecha today. La entrada no se modifica.
//
// Cualquier movimiento inválido aborta el cálculo con *DataError; no hay resultado parcial.
func (e *BalanceEngine) ComputeBalance(today time.Time, movements []entity.Movement) (*entity.BalanceSnapshot, error) {
	loc := today.Location()
	snap := &entity.BalanceSnapshot{
		ReferenceDate:       civilDate(today, loc),
		TotalCredits:        decimal.Zero,
		TotalDebits:         decimal.Zero,
		NetBalance:          decimal.Zero,
		ExpiredCredits:      decimal.Zero,
		ExpiringSoonCredits: decimal.Zero,
		ExpiringDates:       []time.Time{},
	}
	if len(movements) == 0 {
		return snap, nil
	}

	accountID := movements[0].AccountID
	for i := range movements {
		if err := validateMovement(i, accountID, movements[i]); err != nil {
			return nil, err
		}
	}

	ordered := make([]int, len(movements))
	for i := range ordered {
		ordered[i] = i
	}
	sort.SliceStable(ordered, func(a, b int) bool {
		ma, mb := movements[ordered[a]], movements[ordered[b]]
		da, db := ma.SettlementDate(), mb.SettlementDate()
		if !da.Equal(db) {
			return da.Before(db)
		}
		return ma.Sequence < mb.Sequence
	})

	expirationCutoff, expiringSoonCutoff := e.Cutoffs(today)

	credits, debits, net := decimal.Zero, decimal.Zero, decimal.Zero
	expired, expiringSoon := decimal.Zero, decimal.Zero
	var dates []time.Time

	for _, idx := range ordered {
		m := movements[idx]
		switch m.Kind {
		case entity.MovementKindCredit:
			credits = credits.Add(m.Amount)
			net = net.Add(m.Amount)
			if !m.IsPurchaseLot() {
				continue
			}
			available := m.Amount.Sub(m.RedeemedAmount)
			if !available.IsPositive() {
				continue
			}
			lotDate := civilDate(m.SettlementDate(), loc)
			switch {
			case lotDate.Before(expirationCutoff):
				expired = expired.Add(available)
			case lotDate.Before(expiringSoonCutoff):
				expiringSoon = expiringSoon.Add(available)
				dates = append(dates, e.ExpirationDate(lotDate))
			}
		case entity.MovementKindDebit, entity.MovementKindRedemption:
			debits = debits.Add(m.Amount)
			net = net.Sub(m.Amount)
		}
	}

	snap.AccountID = accountID
	snap.HasData = true
	snap.TotalCredits = credits
	snap.TotalDebits = debits
	snap.NetBalance = net.Sub(expired)
	snap.ExpiredCredits = expired
	snap.ExpiringSoonCredits = expiringSoon
	if dates != nil {
		snap.ExpiringDates = dates
	}
	return snap, nil
}

func validateMovement(i int, accountID string, m entity.Movement) error {
	fail := func(field, reason string) error {
		return &DataError{AccountID: m.AccountID, Index: i, Field: field, Reason: reason}
	}
	if m.AccountID == "" {
		return fail("account_id", "vacío")
	}
	if m.AccountID != accountID {
		return fail("account_id", "distinto al de la cuenta "+accountID)
	}
	if m.SettlementDate().IsZero() {
		return fail("timestamp", "sin fecha de liquidación ni fecha registrada")
	}
	if m.Amount.IsNegative() {
		return fail("amount", "negativo")
	}
	if !m.Kind.Valid() {
		return fail("kind", "desconocido: "+string(m.Kind))
	}
	if m.Kind == entity.MovementKindCredit {
		if !m.Origin.Valid() {
			return fail("origin", "desconocido: "+string(m.Origin))
		}
		if m.RedeemedAmount.IsNegative() {
			return fail("redeemed_amount", "negativo")
		}
	}
	return nil
}

// civilDate ancla a medianoche en loc el día calendario de t tal como viene, sin convertir
// de zona: las fechas del libro son reloj de pared (pgx las entrega en UTC).
func civilDate(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
