package campaign

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/jhoicas/aviso-pontos/internal/application/dto"
	"github.com/jhoicas/aviso-pontos/internal/application/ports"
	"github.com/jhoicas/aviso-pontos/internal/domain/entity"
	"github.com/jhoicas/aviso-pontos/internal/domain/repository"
	"github.com/jhoicas/aviso-pontos/pkg/cpf"
	"github.com/jhoicas/aviso-pontos/pkg/observability"
)

// Resultados de entrega que no vienen del proveedor.
const (
	OutcomeFailed      = "Falha no envio"   // el proveedor no aceptó el mensaje
	OutcomeLookupError = "Erro na consulta" // no se pudo consultar el chat
)

// FollowUpUseCase mide la efectividad de una campaña: estado del chat y rescates posteriores al envío.
type FollowUpUseCase struct {
	sentLog repository.SentMessageRepository
	ledger  repository.LedgerRepository
	sender  ports.MessageSender
	limiter *rate.Limiter
	log     zerolog.Logger
}

// NewFollowUpUseCase construye el caso de uso.
func NewFollowUpUseCase(
	sentLog repository.SentMessageRepository,
	ledger repository.LedgerRepository,
	sender ports.MessageSender,
	limiter *rate.Limiter,
	log zerolog.Logger,
) *FollowUpUseCase {
	return &FollowUpUseCase{sentLog: sentLog, ledger: ledger, sender: sender, limiter: limiter, log: log}
}

// ListMessages devuelve el log de envíos de la campaña con el CPF enmascarado.
func (uc *FollowUpUseCase) ListMessages(ctx context.Context, campaign string) ([]dto.SentMessageDTO, error) {
	msgs, err := uc.sentLog.ListByCampaign(ctx, campaign)
	if err != nil {
		return nil, fmt.Errorf("followup: leer log de envíos: %w", err)
	}
	out := make([]dto.SentMessageDTO, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, dto.SentMessageDTO{
			CPFMasked: cpf.Mask(m.CPF),
			Phone:     m.Phone,
			Status:    m.Status,
			ZaapID:    m.ZaapID,
			MessageID: m.MessageID,
			Error:     m.Error,
			SentAt:    m.SentAt,
		})
	}
	return out, nil
}

// Report agrupa los mensajes de la campaña por resultado de entrega y cuenta
// los socios que rescataron puntos después de recibirlos.
func (uc *FollowUpUseCase) Report(ctx context.Context, campaign string) (*dto.FollowUpReportDTO, error) {
	ctx, span := observability.Tracer().Start(ctx, "campaign.followup")
	defer span.End()

	msgs, err := uc.sentLog.ListByCampaign(ctx, campaign)
	if err != nil {
		return nil, fmt.Errorf("followup: leer log de envíos: %w", err)
	}

	rep := &dto.FollowUpReportDTO{Campaign: campaign, RedeemedPoints: decimal.Zero, Outcomes: []dto.FollowUpOutcomeDTO{}}
	byOutcome := make(map[string]*dto.FollowUpOutcomeDTO)

	for _, m := range msgs {
		outcome, err := uc.outcome(ctx, m)
		if err != nil {
			return nil, err
		}
		redemptions, err := uc.ledger.ListRedemptionsSince(ctx, m.CPF, m.SentAt)
		if err != nil {
			return nil, fmt.Errorf("followup: leer rescates: %w", err)
		}

		agg, ok := byOutcome[outcome]
		if !ok {
			agg = &dto.FollowUpOutcomeDTO{Outcome: outcome}
			byOutcome[outcome] = agg
		}
		agg.Messages++
		rep.Messages++
		if len(redemptions) > 0 {
			agg.Redeemed++
			rep.RedeemedAfter++
			for _, r := range redemptions {
				rep.RedeemedPoints = rep.RedeemedPoints.Add(r.Amount)
			}
		}
	}

	for _, agg := range byOutcome {
		rep.Outcomes = append(rep.Outcomes, *agg)
	}
	sort.Slice(rep.Outcomes, func(i, j int) bool { return rep.Outcomes[i].Outcome < rep.Outcomes[j].Outcome })

	uc.log.Info().Str("campaign", campaign).Int("mensajes", rep.Messages).Int("rescates", rep.RedeemedAfter).Msg("seguimiento de campaña")
	return rep, nil
}

// outcome consulta el estado del chat; un error de la consulta se agrupa en OutcomeLookupError, no aborta.
func (uc *FollowUpUseCase) outcome(ctx context.Context, m *entity.SentMessage) (string, error) {
	if m.Status == entity.SentMessageStatusFailed {
		return OutcomeFailed, nil
	}
	if err := uc.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("followup: %w", err)
	}
	meta, err := uc.sender.ChatMetadata(ctx, m.Phone)
	if err != nil {
		uc.log.Warn().Err(err).Str("cpf", cpf.Mask(m.CPF)).Msg("no se pudo consultar el chat")
		return OutcomeLookupError, nil
	}
	return meta.Outcome, nil
}
