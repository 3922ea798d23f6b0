package loyalty_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"pgregory.net/rapid"

	"github.com/jhoicas/aviso-pontos/internal/domain/entity"
	"github.com/jhoicas/aviso-pontos/internal/domain/loyalty"
)

var kinds = []entity.MovementKind{
	entity.MovementKindCredit, entity.MovementKindDebit, entity.MovementKindRedemption,
}

var origins = []entity.CreditOrigin{
	entity.CreditOriginPurchase, entity.CreditOriginRedemptionReversal, entity.CreditOriginMaintenance,
}

func movementGen() *rapid.Generator[entity.Movement] {
	return rapid.Custom(func(t *rapid.T) entity.Movement {
		offset := rapid.IntRange(0, 800).Draw(t, "dias_atras")
		m := entity.Movement{
			AccountID:      testCPF,
			Sequence:       rapid.Int64Range(0, 50).Draw(t, "seq"),
			RecordedAt:     testToday.AddDate(0, 0, -offset),
			Amount:         decimal.NewFromInt(rapid.Int64Range(0, 5000).Draw(t, "monto")),
			Kind:           rapid.SampledFrom(kinds).Draw(t, "tipo"),
			RedeemedAmount: decimal.NewFromInt(rapid.Int64Range(0, 5000).Draw(t, "rescatado")),
		}
		if m.Kind == entity.MovementKindCredit {
			m.Origin = rapid.SampledFrom(origins).Draw(t, "origen")
		}
		return m
	})
}

func policyGen() *rapid.Generator[loyalty.Policy] {
	return rapid.Custom(func(t *rapid.T) loyalty.Policy {
		return loyalty.Policy{
			PointsValidityDays:     rapid.IntRange(1, 730).Draw(t, "validez"),
			ExpiringSoonWindowDays: rapid.IntRange(0, 90).Draw(t, "ventana"),
		}
	})
}

// El saldo neto siempre es créditos - débitos - vencidos.
func TestProperty_SaldoNetoCuadra(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e, err := loyalty.NewBalanceEngine(policyGen().Draw(t, "politica"))
		if err != nil {
			t.Fatalf("política generada inválida: %v", err)
		}
		in := rapid.SliceOf(movementGen()).Draw(t, "movimientos")

		snap, err := e.ComputeBalance(testToday, in)
		if err != nil {
			t.Fatalf("ComputeBalance: %v", err)
		}
		want := snap.TotalCredits.Sub(snap.TotalDebits).Sub(snap.ExpiredCredits)
		if !snap.NetBalance.Equal(want) {
			t.Fatalf("saldo %s, esperado %s", snap.NetBalance, want)
		}
		if len(snap.ExpiringDates) > len(in) {
			t.Fatalf("más fechas (%d) que movimientos (%d)", len(snap.ExpiringDates), len(in))
		}
	})
}

// Un lote sin disponible no aporta a ningún bucket.
func TestProperty_LotesSinDisponibleNoAportan(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e, _ := loyalty.NewBalanceEngine(loyalty.DefaultPolicy())
		in := rapid.SliceOf(movementGen()).Draw(t, "movimientos")
		for i := range in {
			if in[i].IsPurchaseLot() && in[i].RedeemedAmount.LessThan(in[i].Amount) {
				in[i].RedeemedAmount = in[i].Amount
			}
		}

		snap, err := e.ComputeBalance(testToday, in)
		if err != nil {
			t.Fatalf("ComputeBalance: %v", err)
		}
		if !snap.ExpiredCredits.IsZero() || !snap.ExpiringSoonCredits.IsZero() || len(snap.ExpiringDates) != 0 {
			t.Fatalf("lotes rescatados aportaron a buckets: %+v", snap)
		}
	})
}

// El resultado no depende del orden de entrada para movimientos con fecha y secuencia distintas.
func TestProperty_IndependienteDelOrdenDeEntrada(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e, _ := loyalty.NewBalanceEngine(loyalty.DefaultPolicy())
		in := rapid.SliceOf(movementGen()).Draw(t, "movimientos")
		for i := range in {
			in[i].Sequence = int64(i)
		}
		perm := rapid.Permutation(in).Draw(t, "permutacion")

		s1, err1 := e.ComputeBalance(testToday, in)
		s2, err2 := e.ComputeBalance(testToday, perm)
		if err1 != nil || err2 != nil {
			t.Fatalf("errores: %v %v", err1, err2)
		}
		if !s1.NetBalance.Equal(s2.NetBalance) || !s1.ExpiringSoonCredits.Equal(s2.ExpiringSoonCredits) {
			t.Fatalf("resultados distintos: %+v vs %+v", s1, s2)
		}
		if len(s1.ExpiringDates) != len(s2.ExpiringDates) {
			t.Fatalf("fechas distintas")
		}
		for i := range s1.ExpiringDates {
			if !s1.ExpiringDates[i].Equal(s2.ExpiringDates[i]) {
				t.Fatalf("orden de fechas distinto en %d", i)
			}
		}
	})
}
