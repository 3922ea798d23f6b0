package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSnapshot saldo reconstruido de una cuenta a una fecha de referencia.
// Se construye por cálculo y no se modifica después.
type BalanceSnapshot struct {
	AccountID           string
	ReferenceDate       time.Time
	HasData             bool // false cuando no hubo movimientos
	TotalCredits        decimal.Decimal
	TotalDebits         decimal.Decimal
	NetBalance          decimal.Decimal
	ExpiredCredits      decimal.Decimal
	ExpiringSoonCredits decimal.Decimal
	ExpiringDates       []time.Time // en el orden del libro, sin ordenar
}

// NextExpiration devuelve la fecha de vencimiento más próxima entre los lotes por vencer.
func (s *BalanceSnapshot) NextExpiration() (time.Time, bool) {
	if len(s.ExpiringDates) == 0 {
		return time.Time{}, false
	}
	min := s.ExpiringDates[0]
	for _, d := range s.ExpiringDates[1:] {
		if d.Before(min) {
			min = d
		}
	}
	return min, true
}

// LastExpiration devuelve la fecha de vencimiento más lejana entre los lotes por vencer.
func (s *BalanceSnapshot) LastExpiration() (time.Time, bool) {
	if len(s.ExpiringDates) == 0 {
		return time.Time{}, false
	}
	max := s.ExpiringDates[0]
	for _, d := range s.ExpiringDates[1:] {
		if d.After(max) {
			max = d
		}
	}
	return max, true
}
