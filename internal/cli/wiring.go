package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/aviso-pontos/internal/application/campaign"
	"github.com/jhoicas/aviso-pontos/internal/application/message"
	"github.com/jhoicas/aviso-pontos/internal/application/points"
	"github.com/jhoicas/aviso-pontos/internal/domain/loyalty"
	"github.com/jhoicas/aviso-pontos/internal/infrastructure/pdf"
	"github.com/jhoicas/aviso-pontos/internal/infrastructure/postgres"
	"github.com/jhoicas/aviso-pontos/internal/infrastructure/sqlite"
	"github.com/jhoicas/aviso-pontos/internal/infrastructure/zapi"
)

// services casos de uso conectados a sus adaptadores.
type services struct {
	pool     *pgxpool.Pool
	sentDB   *sql.DB
	Balance  *points.BalanceUseCase
	Report   *points.ReportUseCase
	Notify   *campaign.NotifyUseCase
	FollowUp *campaign.FollowUpUseCase
	PDF      *pdf.MarotoReportGenerator
}

// buildServices abre PostgreSQL y el log de envíos y arma los casos de uso.
func buildServices(ctx context.Context) (*services, error) {
	engine, err := loyalty.NewBalanceEngine(loyalty.Policy{
		PointsValidityDays:     cfg.Policy.PointsValidityDays,
		ExpiringSoonWindowDays: cfg.Policy.ExpiringSoonWindowDays,
	})
	if err != nil {
		return nil, err
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.Worker.PoolSize)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	sentDB, err := sqlite.Open(cfg.SentLog.Path)
	if err != nil {
		pool.Close()
		return nil, err
	}

	ledgerRepo := postgres.NewLedgerRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	sentRepo := sqlite.NewSentMessageRepository(sentDB)
	sender := zapi.NewClient(cfg.ZAPI)
	limiter := campaign.NewSendLimiter(cfg.ZAPI.RatePerMinute)

	report := points.NewReportUseCase(ledgerRepo, customerRepo, engine, points.ReportConfig{
		PoolSize:     cfg.Worker.PoolSize,
		FetchTimeout: cfg.Worker.FetchTimeout,
	}, log)

	templates := message.NewTemplates(cfg.Campaign.StoreName, cfg.Campaign.SenderName, cfg.Campaign.MinPoints)
	notify := campaign.NewNotifyUseCase(report, sentRepo, sender, templates, limiter, campaign.NotifyConfig{
		Campaign:    cfg.Campaign.Name,
		MinPoints:   cfg.Campaign.MinPoints,
		MinLeadDays: cfg.Campaign.MinLeadDays,
		ImageURL:    cfg.Campaign.ImageURL,
		SendTimeout: cfg.Worker.FetchTimeout,
	}, log)

	return &services{
		pool:     pool,
		sentDB:   sentDB,
		Balance:  points.NewBalanceUseCase(ledgerRepo, customerRepo, engine, templates),
		Report:   report,
		Notify:   notify,
		FollowUp: campaign.NewFollowUpUseCase(sentRepo, ledgerRepo, sender, limiter, log),
		PDF:      pdf.NewMarotoReportGenerator(),
	}, nil
}

// Close libera las conexiones.
func (s *services) Close() {
	if s.sentDB != nil {
		_ = s.sentDB.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
}
