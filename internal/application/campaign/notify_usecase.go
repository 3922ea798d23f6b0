// Package campaign contiene los casos de uso de la campaña de aviso de puntos por vencer:
// envío por WhatsApp con deduplicación y el seguimiento posterior.
package campaign

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"

	"github.com/jhoicas/aviso-pontos/internal/application/dto"
	"github.com/jhoicas/aviso-pontos/internal/application/message"
	"github.com/jhoicas/aviso-pontos/internal/application/points"
	"github.com/jhoicas/aviso-pontos/internal/application/ports"
	"github.com/jhoicas/aviso-pontos/internal/domain"
	"github.com/jhoicas/aviso-pontos/internal/domain/entity"
	"github.com/jhoicas/aviso-pontos/internal/domain/repository"
	"github.com/jhoicas/aviso-pontos/pkg/cpf"
	"github.com/jhoicas/aviso-pontos/pkg/observability"
	"github.com/jhoicas/aviso-pontos/pkg/phone"
)

// Estados de la métrica de mensajes además de sent/failed.
const (
	statusSkipped = "skipped"
	statusDryRun  = "dry_run"
)

// AccountScanner recorre las cuentas con puntos por vencer (implementado por points.ReportUseCase).
type AccountScanner interface {
	Scan(ctx context.Context, asOf time.Time) (*points.ScanResult, error)
}

// NotifyConfig parámetros de la campaña.
type NotifyConfig struct {
	Campaign    string
	MinPoints   int
	MinLeadDays int
	ImageURL    string        // si no está vacío se envía imagen con el texto como leyenda
	SendTimeout time.Duration // límite por llamada al proveedor
}

// NewSendLimiter limita las llamadas al proveedor a perMinute por minuto; <= 0 = sin límite.
func NewSendLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
}

// NotifyUseCase selecciona los socios elegibles, arma el mensaje y lo envía una sola vez por campaña.
type NotifyUseCase struct {
	scanner   AccountScanner
	sentLog   repository.SentMessageRepository
	sender    ports.MessageSender
	templates *message.Templates
	limiter   *rate.Limiter
	cfg       NotifyConfig
	log       zerolog.Logger
	now       func() time.Time
}

// NewNotifyUseCase construye el caso de uso.
func NewNotifyUseCase(
	scanner AccountScanner,
	sentLog repository.SentMessageRepository,
	sender ports.MessageSender,
	templates *message.Templates,
	limiter *rate.Limiter,
	cfg NotifyConfig,
	log zerolog.Logger,
) *NotifyUseCase {
	return &NotifyUseCase{
		scanner:   scanner,
		sentLog:   sentLog,
		sender:    sender,
		templates: templates,
		limiter:   limiter,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

// Execute corre la campaña a la fecha req.AsOf. En DryRun arma los mensajes sin enviar ni registrar.
//
// Un socio es elegible si no fue notificado en la campaña, tiene teléfono válido,
// puntos por vencer y saldo >= MinPoints, y su próximo vencimiento cae al menos
// MinLeadDays después de la fecha de referencia.
func (uc *NotifyUseCase) Execute(ctx context.Context, req dto.NotifyRequest) (*dto.NotifyResultDTO, error) {
	ctx, span := observability.Tracer().Start(ctx, "campaign.notify")
	defer span.End()
	span.SetAttributes(attribute.String("campaign", uc.cfg.Campaign), attribute.Bool("dry_run", req.DryRun))

	scan, err := uc.scanner.Scan(ctx, req.AsOf)
	if err != nil {
		return nil, err
	}
	already, err := uc.sentLog.SentCPFs(ctx, uc.cfg.Campaign)
	if err != nil {
		return nil, fmt.Errorf("campaign: leer log de envíos: %w", err)
	}

	res := &dto.NotifyResultDTO{
		Campaign: uc.cfg.Campaign,
		DryRun:   req.DryRun,
		Planned:  []dto.PlannedMessageDTO{},
	}
	minLead := time.Date(req.AsOf.Year(), req.AsOf.Month(), req.AsOf.Day(), 0, 0, 0, 0, req.AsOf.Location()).
		AddDate(0, 0, uc.cfg.MinLeadDays)

	for _, acc := range scan.Expiring {
		if req.Limit > 0 && len(res.Planned) >= req.Limit {
			break
		}
		res.Candidates++
		if _, ok := already[acc.CPF]; ok {
			res.AlreadyNotified++
			continue
		}
		planned, reason := uc.plan(acc, minLead)
		if planned == nil {
			res.Ineligible++
			observability.MessagesTotal.WithLabelValues(statusSkipped).Inc()
			uc.log.Debug().Str("cpf", cpf.Mask(acc.CPF)).Str("motivo", reason).Msg("socio no elegible")
			continue
		}
		res.Planned = append(res.Planned, *planned)
	}

	if req.DryRun {
		observability.MessagesTotal.WithLabelValues(statusDryRun).Add(float64(len(res.Planned)))
		return res, nil
	}

	for _, p := range res.Planned {
		status, err := uc.send(ctx, p)
		if err != nil {
			return res, err
		}
		switch status {
		case entity.SentMessageStatusSent:
			res.Sent++
		case entity.SentMessageStatusUnknown:
			res.Unknown++
		default:
			res.Failed++
		}
	}
	uc.log.Info().
		Str("campaign", uc.cfg.Campaign).
		Int("enviados", res.Sent).
		Int("fallidos", res.Failed).
		Int("sin_confirmar", res.Unknown).
		Int("ya_notificados", res.AlreadyNotified).
		Msg("campaña ejecutada")
	return res, nil
}

// plan arma el mensaje del socio o devuelve el motivo por el que no es elegible.
func (uc *NotifyUseCase) plan(acc points.AccountBalance, minLead time.Time) (*dto.PlannedMessageDTO, string) {
	if acc.Customer == nil {
		return nil, "sin registro en el directorio"
	}
	if !cpf.IsValid(acc.CPF) {
		return nil, "CPF inválido"
	}
	contact := points.ContactPhone(acc.Customer)
	if err := phone.Validate(contact); err != nil {
		return nil, err.Error()
	}
	minPoints := decimal.NewFromInt(int64(uc.cfg.MinPoints))
	snap := acc.Snapshot
	if snap.NetBalance.LessThan(minPoints) {
		return nil, "saldo debajo del mínimo"
	}
	next, ok := snap.NextExpiration()
	if !ok {
		return nil, "sin fecha de vencimiento"
	}
	if next.Before(minLead) {
		return nil, "vencimiento demasiado próximo"
	}
	text, err := uc.templates.Expiring(message.FirstName(acc.Customer.Name), acc.CPF, snap.ExpiringSoonCredits, next, snap.NetBalance)
	if err != nil {
		return nil, err.Error()
	}
	return &dto.PlannedMessageDTO{
		CPF:            acc.CPF,
		CPFMasked:      cpf.Mask(acc.CPF),
		Phone:          contact,
		Message:        text,
		ExpiringPoints: snap.ExpiringSoonCredits,
		NetBalance:     snap.NetBalance,
		ExpiresOn:      next,
	}, ""
}

// send despacha un mensaje, lo registra y devuelve el estado registrado. Devuelve error
// solo si no se pudo registrar (seguir enviando sin log rompería la deduplicación).
// Un timeout o una respuesta sin ids se registran como unknown: el aviso pudo llegar.
func (uc *NotifyUseCase) send(ctx context.Context, p dto.PlannedMessageDTO) (string, error) {
	ctx, span := observability.Tracer().Start(ctx, "campaign.send")
	defer span.End()
	span.SetAttributes(attribute.String("account.cpf", p.CPFMasked))

	if err := uc.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("campaign: %w", err)
	}

	sendCtx := ctx
	if uc.cfg.SendTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, uc.cfg.SendTimeout)
		defer cancel()
	}

	var (
		result *dto.SendResult
		err    error
	)
	if uc.cfg.ImageURL != "" {
		result, err = uc.sender.SendImage(sendCtx, p.Phone, p.Message, uc.cfg.ImageURL)
	} else {
		result, err = uc.sender.SendText(sendCtx, p.Phone, p.Message)
	}

	record := &entity.SentMessage{
		ID:             uuid.NewString(),
		Campaign:       uc.cfg.Campaign,
		CPF:            p.CPF,
		Phone:          p.Phone,
		Message:        p.Message,
		ExpiringPoints: p.ExpiringPoints.String(),
		Balance:        p.NetBalance.String(),
		Status:         entity.SentMessageStatusSent,
		SentAt:         uc.now(),
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		record.Status = entity.SentMessageStatusFailed
		if errors.Is(err, domain.ErrDeliveryUnknown) || errors.Is(err, context.DeadlineExceeded) {
			record.Status = entity.SentMessageStatusUnknown
		}
		record.Error = err.Error()
		uc.log.Error().Err(err).Str("cpf", p.CPFMasked).Msg("fallo al enviar mensaje")
	} else {
		record.ZaapID = result.ZaapID
		record.MessageID = result.MessageID
	}
	observability.MessagesTotal.WithLabelValues(record.Status).Inc()

	if serr := uc.sentLog.Save(ctx, record); serr != nil {
		return "", fmt.Errorf("campaign: registrar envío: %w", serr)
	}
	return record.Status, nil
}
