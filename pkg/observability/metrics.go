package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "aviso_pontos"

// Resultados de procesar una cuenta en el reporte.
const (
	ResultOK       = "ok"
	ResultSkipped  = "skipped"
	ResultNoData   = "no_data"
	ResultExpiring = "expiring"
)

// AccountsProcessed cuentas evaluadas por el reporte, por resultado.
var AccountsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "accounts_processed_total",
	Help:      "Cuentas evaluadas por el reporte de puntos por vencer.",
}, []string{"result"})

// BalanceComputeSeconds duración de la lectura + cálculo de saldo de una cuenta.
var BalanceComputeSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: namespace,
	Name:      "balance_compute_seconds",
	Help:      "Tiempo de lectura del libro y cálculo de saldo por cuenta.",
	Buckets:   prometheus.DefBuckets,
})

// MessagesTotal mensajes de la campaña por estado (sent, failed, skipped, dry_run).
var MessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "messages_total",
	Help:      "Mensajes de aviso procesados, por estado.",
}, []string{"status"})
