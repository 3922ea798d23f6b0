package points

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/aviso-pontos/internal/application/dto"
	"github.com/jhoicas/aviso-pontos/internal/application/message"
	"github.com/jhoicas/aviso-pontos/internal/domain/entity"
	"github.com/jhoicas/aviso-pontos/internal/domain/loyalty"
	"github.com/jhoicas/aviso-pontos/internal/domain/repository"
	"github.com/jhoicas/aviso-pontos/pkg/cpf"
	"github.com/jhoicas/aviso-pontos/pkg/observability"
	"github.com/jhoicas/aviso-pontos/pkg/phone"
)

// ReportConfig parámetros del procesamiento por lotes.
type ReportConfig struct {
	PoolSize     int           // cuentas procesadas en paralelo
	FetchTimeout time.Duration // límite por cuenta (lectura + cálculo); 0 = sin límite
}

// AccountBalance saldo calculado de una cuenta con sus datos de contacto (Customer puede ser nil).
type AccountBalance struct {
	CPF      string
	Snapshot *entity.BalanceSnapshot
	Customer *entity.Customer
}

// SkippedAccount cuenta que no se pudo evaluar.
type SkippedAccount struct {
	CPF string
	Err error
}

// ScanResult resultado de recorrer las cuentas con lotes en la ventana "por vencer".
type ScanResult struct {
	ReferenceDate      time.Time
	ExpirationCutoff   time.Time
	ExpiringSoonCutoff time.Time
	Evaluated          int
	Expiring           []AccountBalance // solo cuentas con puntos por vencer; mayor a menor, desempate por CPF
	Skipped            []SkippedAccount
}

// ReportUseCase evalúa en paralelo todas las cuentas candidatas.
//
// Un error de lectura o de datos en una cuenta no aborta el lote: la cuenta se
// registra como omitida y se sigue con las demás.
type ReportUseCase struct {
	ledger    repository.LedgerRepository
	customers repository.CustomerRepository
	engine    *loyalty.BalanceEngine
	cfg       ReportConfig
	log       zerolog.Logger
}

// NewReportUseCase construye el caso de uso. PoolSize < 1 se trata como 1.
func NewReportUseCase(
	ledger repository.LedgerRepository,
	customers repository.CustomerRepository,
	engine *loyalty.BalanceEngine,
	cfg ReportConfig,
	log zerolog.Logger,
) *ReportUseCase {
	if cfg.PoolSize < 1 {
		cfg.PoolSize = 1
	}
	return &ReportUseCase{ledger: ledger, customers: customers, engine: engine, cfg: cfg, log: log}
}

// Scan calcula el saldo de cada cuenta con lotes de compra liquidados en la ventana
// [corte de vencimiento, corte por vencer) y devuelve las que tienen puntos por vencer.
func (uc *ReportUseCase) Scan(ctx context.Context, asOf time.Time) (*ScanResult, error) {
	ctx, span := observability.Tracer().Start(ctx, "report.scan")
	defer span.End()

	expCutoff, soonCutoff := uc.engine.Cutoffs(asOf)
	accounts, err := uc.ledger.ListAccountsWithPurchaseLots(ctx, expCutoff, soonCutoff)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("report: listar cuentas: %w", err)
	}
	span.SetAttributes(attribute.Int("accounts.count", len(accounts)))

	type outcome struct {
		snap *entity.BalanceSnapshot
		err  error
	}
	results := make([]outcome, len(accounts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.cfg.PoolSize)
	for i, account := range accounts {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			snap, err := uc.computeAccount(gctx, account, asOf)
			results[i] = outcome{snap: snap, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}

	res := &ScanResult{
		ReferenceDate:      expCutoff.AddDate(0, 0, uc.engine.Policy().PointsValidityDays),
		ExpirationCutoff:   expCutoff,
		ExpiringSoonCutoff: soonCutoff,
		Evaluated:          len(accounts),
	}
	var expiringCPFs []string
	for i, r := range results {
		switch {
		case r.err != nil:
			observability.AccountsProcessed.WithLabelValues(observability.ResultSkipped).Inc()
			uc.log.Warn().Err(r.err).Str("cpf", cpf.Mask(accounts[i])).Msg("cuenta omitida del reporte")
			res.Skipped = append(res.Skipped, SkippedAccount{CPF: accounts[i], Err: r.err})
		case !r.snap.HasData:
			observability.AccountsProcessed.WithLabelValues(observability.ResultNoData).Inc()
		case r.snap.ExpiringSoonCredits.IsPositive():
			observability.AccountsProcessed.WithLabelValues(observability.ResultExpiring).Inc()
			res.Expiring = append(res.Expiring, AccountBalance{CPF: accounts[i], Snapshot: r.snap})
			expiringCPFs = append(expiringCPFs, accounts[i])
		default:
			observability.AccountsProcessed.WithLabelValues(observability.ResultOK).Inc()
		}
	}

	if len(expiringCPFs) > 0 {
		customers, err := uc.customers.ListByCPFs(ctx, expiringCPFs)
		if err != nil {
			return nil, fmt.Errorf("report: leer socios: %w", err)
		}
		for i := range res.Expiring {
			res.Expiring[i].Customer = customers[res.Expiring[i].CPF]
		}
	}

	sort.SliceStable(res.Expiring, func(a, b int) bool {
		ea, eb := res.Expiring[a].Snapshot.ExpiringSoonCredits, res.Expiring[b].Snapshot.ExpiringSoonCredits
		if !ea.Equal(eb) {
			return ea.GreaterThan(eb)
		}
		return res.Expiring[a].CPF < res.Expiring[b].CPF
	})

	uc.log.Info().
		Int("evaluadas", res.Evaluated).
		Int("por_vencer", len(res.Expiring)).
		Int("omitidas", len(res.Skipped)).
		Msg("reporte de puntos por vencer")
	return res, nil
}

func (uc *ReportUseCase) computeAccount(ctx context.Context, account string, asOf time.Time) (*entity.BalanceSnapshot, error) {
	ctx, span := observability.Tracer().Start(ctx, "report.account")
	defer span.End()
	span.SetAttributes(attribute.String("account.cpf", cpf.Mask(account)))

	if uc.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.cfg.FetchTimeout)
		defer cancel()
	}

	start := time.Now()
	defer func() { observability.BalanceComputeSeconds.Observe(time.Since(start).Seconds()) }()

	movements, err := uc.ledger.ListMovements(ctx, account)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("leer movimientos: %w", err)
	}
	snap, err := uc.engine.ComputeBalance(asOf, movements)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return snap, nil
}

// BuildReport ejecuta Scan y arma el reporte de salida.
func (uc *ReportUseCase) BuildReport(ctx context.Context, asOf time.Time) (*dto.ExpiringReportDTO, error) {
	scan, err := uc.Scan(ctx, asOf)
	if err != nil {
		return nil, err
	}
	return ToReportDTO(scan), nil
}

// ToReportDTO convierte el resultado del recorrido al DTO del reporte.
func ToReportDTO(scan *ScanResult) *dto.ExpiringReportDTO {
	out := &dto.ExpiringReportDTO{
		ReferenceDate:       scan.ReferenceDate.Format(dto.DateLayout),
		ExpirationCutoff:    scan.ExpirationCutoff.Format(dto.DateLayout),
		ExpiringSoonCutoff:  scan.ExpiringSoonCutoff.Format(dto.DateLayout),
		AccountsEvaluated:   scan.Evaluated,
		TotalExpiringPoints: decimal.Zero,
		Customers:           make([]dto.ExpiringCustomerDTO, 0, len(scan.Expiring)),
		Skipped:             make([]dto.SkippedAccountDTO, 0, len(scan.Skipped)),
	}
	for _, a := range scan.Expiring {
		out.TotalExpiringPoints = out.TotalExpiringPoints.Add(a.Snapshot.ExpiringSoonCredits)
		out.Customers = append(out.Customers, toExpiringCustomer(a))
	}
	for _, s := range scan.Skipped {
		out.Skipped = append(out.Skipped, dto.SkippedAccountDTO{CPFMasked: cpf.Mask(s.CPF), Reason: s.Err.Error()})
	}
	return out
}

func toExpiringCustomer(a AccountBalance) dto.ExpiringCustomerDTO {
	row := dto.ExpiringCustomerDTO{
		CPF:                 a.CPF,
		CPFMasked:           cpf.Mask(a.CPF),
		NetBalance:          a.Snapshot.NetBalance,
		ExpiringSoonCredits: a.Snapshot.ExpiringSoonCredits,
		ExpiredCredits:      a.Snapshot.ExpiredCredits,
		RewardValue:         message.RewardValue(a.Snapshot.NetBalance),
	}
	row.NextExpiration, _ = a.Snapshot.NextExpiration()
	row.LastExpiration, _ = a.Snapshot.LastExpiration()
	if a.Customer != nil {
		row.Name = a.Customer.Name
		row.FirstName = message.FirstName(a.Customer.Name)
		row.Phone = ContactPhone(a.Customer)
		if link, err := phone.WhatsAppLink(row.Phone); err == nil {
			row.WhatsAppLink = link
		}
	}
	return row
}

// ContactPhone teléfono de contacto del socio (DDD + número), o "" si no tiene.
func ContactPhone(c *entity.Customer) string {
	return phone.Select(phone.Join(c.DDD, c.Phone), phone.Join(c.DDD2, c.Phone2))
}
