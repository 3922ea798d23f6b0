package loyalty_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/aviso-pontos/internal/domain"
	"github.com/jhoicas/aviso-pontos/internal/domain/entity"
	"github.com/jhoicas/aviso-pontos/internal/domain/loyalty"
)

const testCPF = "52998224725"

var testToday = time.Date(2025, time.January, 15, 14, 30, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func pts(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func purchase(seq int64, date time.Time, amount, redeemed int64) entity.Movement {
	return entity.Movement{
		AccountID:      testCPF,
		Sequence:       seq,
		RecordedAt:     date,
		Amount:         pts(amount),
		Kind:           entity.MovementKindCredit,
		Origin:         entity.CreditOriginPurchase,
		RedeemedAmount: pts(redeemed),
	}
}

func redemption(seq int64, date time.Time, amount int64) entity.Movement {
	return entity.Movement{
		AccountID:  testCPF,
		Sequence:   seq,
		RecordedAt: date,
		Amount:     pts(amount),
		Kind:       entity.MovementKindRedemption,
	}
}

func newEngine(t *testing.T) *loyalty.BalanceEngine {
	t.Helper()
	e, err := loyalty.NewBalanceEngine(loyalty.DefaultPolicy())
	require.NoError(t, err)
	return e
}

func assertDecimal(t *testing.T, want int64, got decimal.Decimal, msg string) {
	t.Helper()
	assert.Truef(t, got.Equal(pts(want)), "%s: esperado %d, obtenido %s", msg, want, got)
}

// ── Construcción ─────────────────────────────────────────────────────────────

func TestNewBalanceEngine_PoliticaInvalida(t *testing.T) {
	cases := []loyalty.Policy{
		{PointsValidityDays: 0, ExpiringSoonWindowDays: 30},
		{PointsValidityDays: -1, ExpiringSoonWindowDays: 30},
		{PointsValidityDays: 365, ExpiringSoonWindowDays: -5},
	}
	for _, p := range cases {
		_, err := loyalty.NewBalanceEngine(p)
		require.Error(t, err)
		var cfgErr *loyalty.ConfigurationError
		assert.True(t, errors.As(err, &cfgErr), "debe ser ConfigurationError")
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	}
}

func TestNewBalanceEngine_VentanaCeroEsValida(t *testing.T) {
	_, err := loyalty.NewBalanceEngine(loyalty.Policy{PointsValidityDays: 365})
	assert.NoError(t, err)
}

// ── Cortes y fronteras ───────────────────────────────────────────────────────

func TestCutoffs_AnclaEnMedianoche(t *testing.T) {
	e := newEngine(t)
	exp, soon := e.Cutoffs(testToday)
	assert.Equal(t, day(2024, time.January, 16), exp)
	assert.Equal(t, day(2024, time.February, 15), soon)
}

func TestComputeBalance_LoteEnCorteEsPorVencer(t *testing.T) {
	e := newEngine(t)
	snap, err := e.ComputeBalance(testToday, []entity.Movement{
		purchase(1, day(2024, time.January, 16), 1000, 0),
	})
	require.NoError(t, err)

	assertDecimal(t, 1000, snap.ExpiringSoonCredits, "por vencer")
	assertDecimal(t, 0, snap.ExpiredCredits, "vencidos")
	assertDecimal(t, 1000, snap.NetBalance, "saldo")
	require.Len(t, snap.ExpiringDates, 1)
	assert.Equal(t, day(2025, time.January, 16), snap.ExpiringDates[0])
}

func TestComputeBalance_LoteAntesDelCorteEstaVencido(t *testing.T) {
	e := newEngine(t)
	snap, err := e.ComputeBalance(testToday, []entity.Movement{
		purchase(1, day(2024, time.January, 15), 1000, 0),
		purchase(2, day(2024, time.January, 16), 1000, 0),
	})
	require.NoError(t, err)

	assertDecimal(t, 2000, snap.TotalCredits, "créditos")
	assertDecimal(t, 1000, snap.ExpiredCredits, "vencidos")
	assertDecimal(t, 1000, snap.ExpiringSoonCredits, "por vencer")
	assertDecimal(t, 1000, snap.NetBalance, "saldo descuenta vencidos")
	assert.Len(t, snap.ExpiringDates, 1)
}

func TestComputeBalance_LoteEnCortePorVencerNoCuenta(t *testing.T) {
	e := newEngine(t)
	_, soon := e.Cutoffs(testToday)
	snap, err := e.ComputeBalance(testToday, []entity.Movement{
		purchase(1, soon, 700, 0),
		purchase(2, soon.AddDate(0, 0, -1), 300, 0),
	})
	require.NoError(t, err)

	assertDecimal(t, 300, snap.ExpiringSoonCredits, "solo el lote dentro de la ventana")
	assertDecimal(t, 0, snap.ExpiredCredits, "vencidos")
	assertDecimal(t, 1000, snap.NetBalance, "saldo")
}

func TestComputeBalance_HoraDelLoteNoCambiaClasificacion(t *testing.T) {
	e := newEngine(t)
	snap, err := e.ComputeBalance(testToday, []entity.Movement{
		purchase(1, time.Date(2024, time.January, 16, 23, 59, 0, 0, time.UTC), 100, 0),
	})
	require.NoError(t, err)
	assertDecimal(t, 100, snap.ExpiringSoonCredits, "por vencer")
}

func TestComputeBalance_FechaDelLibroSeTomaComoDiaCalendario(t *testing.T) {
	e := newEngine(t)
	brt := time.FixedZone("BRT", -3*60*60)
	today := time.Date(2025, time.January, 15, 10, 0, 0, 0, brt)
	coupon := day(2024, time.January, 16) // data_cupom decodificada por pgx en UTC
	m := purchase(1, day(2024, time.January, 16), 1000, 0)
	m.CouponDate = &coupon

	snap, err := e.ComputeBalance(today, []entity.Movement{m})
	require.NoError(t, err)

	assertDecimal(t, 1000, snap.ExpiringSoonCredits, "lote en el corte es por vencer")
	assertDecimal(t, 0, snap.ExpiredCredits, "vencidos")
	require.Len(t, snap.ExpiringDates, 1)
	assert.Equal(t, time.Date(2025, time.January, 16, 0, 0, 0, 0, brt), snap.ExpiringDates[0])
}

// ── Rescates parciales ──────────────────────────────────────────────────────

func TestComputeBalance_LoteTotalmenteRescatadoNoEntraEnBuckets(t *testing.T) {
	e := newEngine(t)
	snap, err := e.ComputeBalance(testToday, []entity.Movement{
		purchase(1, day(2024, time.January, 20), 500, 500),
		purchase(2, day(2023, time.June, 1), 200, 250),
	})
	require.NoError(t, err)

	assertDecimal(t, 0, snap.ExpiringSoonCredits, "por vencer")
	assertDecimal(t, 0, snap.ExpiredCredits, "vencidos")
	assert.Empty(t, snap.ExpiringDates)
	assertDecimal(t, 700, snap.TotalCredits, "créditos completos")
}

func TestComputeBalance_RescateParcialNeteaPorLote(t *testing.T) {
	e := newEngine(t)
	snap, err := e.ComputeBalance(testToday, []entity.Movement{
		purchase(1, day(2023, time.December, 1), 1000, 400),
		purchase(2, day(2024, time.February, 1), 800, 300),
		redemption(3, day(2024, time.March, 1), 700),
	})
	require.NoError(t, err)

	assertDecimal(t, 600, snap.ExpiredCredits, "vencido = 1000-400")
	assertDecimal(t, 500, snap.ExpiringSoonCredits, "por vencer = 800-300")
	assertDecimal(t, 700, snap.TotalDebits, "débitos")
	assertDecimal(t, 1800-700-600, snap.NetBalance, "saldo")
}

// ── Orígenes y tipos ────────────────────────────────────────────────────────

func TestComputeBalance_SoloComprasVencen(t *testing.T) {
	e := newEngine(t)
	old := day(2023, time.January, 1)
	snap, err := e.ComputeBalance(testToday, []entity.Movement{
		{AccountID: testCPF, RecordedAt: old, Amount: pts(100), Kind: entity.MovementKindCredit, Origin: entity.CreditOriginMaintenance},
		{AccountID: testCPF, RecordedAt: old, Amount: pts(50), Kind: entity.MovementKindCredit, Origin: entity.CreditOriginRedemptionReversal},
		{AccountID: testCPF, RecordedAt: old, Amount: pts(30), Kind: entity.MovementKindDebit},
	})
	require.NoError(t, err)

	assertDecimal(t, 150, snap.TotalCredits, "créditos")
	assertDecimal(t, 30, snap.TotalDebits, "débitos")
	assertDecimal(t, 0, snap.ExpiredCredits, "vencidos")
	assertDecimal(t, 120, snap.NetBalance, "saldo")
}

func TestComputeBalance_FechaCupomTienePrioridad(t *testing.T) {
	e := newEngine(t)
	coupon := day(2024, time.January, 20)
	m := purchase(1, day(2024, time.June, 1), 400, 0)
	m.CouponDate = &coupon

	snap, err := e.ComputeBalance(testToday, []entity.Movement{m})
	require.NoError(t, err)
	assertDecimal(t, 400, snap.ExpiringSoonCredits, "usa la fecha del cupón")
	assert.Equal(t, day(2025, time.January, 20), snap.ExpiringDates[0])
}

// ── Orden y determinismo ────────────────────────────────────────────────────

func TestComputeBalance_FechasEnOrdenDelLibro(t *testing.T) {
	e := newEngine(t)
	snap, err := e.ComputeBalance(testToday, []entity.Movement{
		purchase(2, day(2024, time.February, 10), 100, 0),
		purchase(1, day(2024, time.January, 30), 100, 0),
		purchase(3, day(2024, time.January, 30), 100, 0),
	})
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		day(2025, time.January, 30),
		day(2025, time.January, 30),
		day(2025, time.February, 10),
	}, snap.ExpiringDates)

	next, ok := snap.NextExpiration()
	require.True(t, ok)
	assert.Equal(t, day(2025, time.January, 30), next)
	last, ok := snap.LastExpiration()
	require.True(t, ok)
	assert.Equal(t, day(2025, time.February, 10), last)
}

func TestComputeBalance_Idempotente(t *testing.T) {
	e := newEngine(t)
	in := []entity.Movement{
		purchase(1, day(2023, time.November, 3), 1200, 100),
		purchase(2, day(2024, time.January, 25), 900, 0),
		redemption(3, day(2024, time.May, 2), 500),
		purchase(4, day(2024, time.October, 9), 300, 0),
	}
	s1, err1 := e.ComputeBalance(testToday, in)
	s2, err2 := e.ComputeBalance(testToday, in)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, s1, s2, "misma entrada y misma fecha producen el mismo saldo")
}

func TestComputeBalance_NoModificaLaEntrada(t *testing.T) {
	e := newEngine(t)
	in := []entity.Movement{
		purchase(2, day(2024, time.February, 10), 100, 0),
		purchase(1, day(2024, time.January, 30), 100, 0),
	}
	_, err := e.ComputeBalance(testToday, in)
	require.NoError(t, err)
	assert.Equal(t, int64(2), in[0].Sequence)
}

// ── Entrada vacía y errores ─────────────────────────────────────────────────

func TestComputeBalance_EntradaVaciaDevuelveCeros(t *testing.T) {
	e := newEngine(t)
	snap, err := e.ComputeBalance(testToday, nil)
	require.NoError(t, err)

	assert.False(t, snap.HasData)
	assert.True(t, snap.TotalCredits.IsZero())
	assert.True(t, snap.TotalDebits.IsZero())
	assert.True(t, snap.NetBalance.IsZero())
	assert.True(t, snap.ExpiredCredits.IsZero())
	assert.True(t, snap.ExpiringSoonCredits.IsZero())
	assert.Empty(t, snap.ExpiringDates)
	_, ok := snap.NextExpiration()
	assert.False(t, ok)
}

func TestComputeBalance_DatosInvalidosAbortan(t *testing.T) {
	base := purchase(1, day(2024, time.March, 1), 100, 0)

	cases := map[string]func(m *entity.Movement){
		"sin cuenta":         func(m *entity.Movement) { m.AccountID = "" },
		"sin fecha":          func(m *entity.Movement) { m.RecordedAt = time.Time{} },
		"monto negativo":     func(m *entity.Movement) { m.Amount = pts(-1) },
		"tipo desconocido":   func(m *entity.Movement) { m.Kind = "X" },
		"origen desconocido": func(m *entity.Movement) { m.Origin = "" },
		"rescate negativo":   func(m *entity.Movement) { m.RedeemedAmount = pts(-10) },
	}
	e := newEngine(t)
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			bad := base
			mutate(&bad)
			snap, err := e.ComputeBalance(testToday, []entity.Movement{base, bad})
			require.Error(t, err)
			assert.Nil(t, snap, "no hay saldo parcial")
			var dataErr *loyalty.DataError
			require.True(t, errors.As(err, &dataErr))
			assert.Equal(t, 1, dataErr.Index)
			assert.ErrorIs(t, err, domain.ErrDataQuality)
		})
	}
}

func TestComputeBalance_CuentasMezcladasSeRechazan(t *testing.T) {
	e := newEngine(t)
	other := purchase(2, day(2024, time.March, 1), 100, 0)
	other.AccountID = "11144477735"

	_, err := e.ComputeBalance(testToday, []entity.Movement{
		purchase(1, day(2024, time.March, 1), 100, 0),
		other,
	})
	var dataErr *loyalty.DataError
	require.True(t, errors.As(err, &dataErr))
	assert.Equal(t, "account_id", dataErr.Field)
}
