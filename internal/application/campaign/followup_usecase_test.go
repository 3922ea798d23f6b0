package campaign_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/aviso-pontos/internal/application/campaign"
	"github.com/jhoicas/aviso-pontos/internal/application/dto"
	"github.com/jhoicas/aviso-pontos/internal/domain/entity"
)

func TestFollowUpReport_AgrupaPorResultado(t *testing.T) {
	sentAt := time.Date(2025, time.January, 10, 12, 0, 0, 0, time.UTC)
	sentLog := &memorySentLog{msgs: []*entity.SentMessage{
		{Campaign: "aviso", CPF: cpfMaria, Phone: "71991112222", Status: entity.SentMessageStatusSent, SentAt: sentAt},
		{Campaign: "aviso", CPF: cpfJoao, Phone: "71993334444", Status: entity.SentMessageStatusSent, SentAt: sentAt},
		{Campaign: "aviso", CPF: cpfPedro, Phone: "71995556666", Status: entity.SentMessageStatusFailed, SentAt: sentAt},
		{Campaign: "otra", CPF: cpfAna, Phone: "71990000000", Status: entity.SentMessageStatusSent, SentAt: sentAt},
	}}
	sender := &fakeSender{metadata: map[string]*dto.ChatMetadataDTO{
		"71991112222": {Phone: "5571991112222", Found: true, Outcome: "Phone found"},
	}}
	ledger := &fakeLedger{redemptions: map[string][]entity.Movement{
		cpfMaria: {
			{AccountID: cpfMaria, Kind: entity.MovementKindRedemption, Amount: decimal.NewFromInt(1000), RecordedAt: sentAt.Add(48 * time.Hour)},
			{AccountID: cpfMaria, Kind: entity.MovementKindRedemption, Amount: decimal.NewFromInt(500), RecordedAt: sentAt.Add(-time.Hour)},
		},
	}}

	uc := campaign.NewFollowUpUseCase(sentLog, ledger, sender, campaign.NewSendLimiter(0), zerolog.Nop())
	rep, err := uc.Report(context.Background(), "aviso")
	require.NoError(t, err)

	assert.Equal(t, 3, rep.Messages)
	assert.Equal(t, 1, rep.RedeemedAfter)
	assert.True(t, rep.RedeemedPoints.Equal(decimal.NewFromInt(1000)))
	require.Len(t, rep.Outcomes, 3)
	assert.Equal(t, campaign.OutcomeLookupError, rep.Outcomes[0].Outcome)
	assert.Equal(t, campaign.OutcomeFailed, rep.Outcomes[1].Outcome)
	assert.Equal(t, "Phone found", rep.Outcomes[2].Outcome)
	assert.Equal(t, 1, rep.Outcomes[2].Redeemed)
}

func TestListMessages_EnmascaraCPF(t *testing.T) {
	sentLog := &memorySentLog{msgs: []*entity.SentMessage{
		{Campaign: "aviso", CPF: cpfMaria, Phone: "71991112222", Status: entity.SentMessageStatusSent},
	}}
	uc := campaign.NewFollowUpUseCase(sentLog, &fakeLedger{}, &fakeSender{}, campaign.NewSendLimiter(0), zerolog.Nop())

	out, err := uc.ListMessages(context.Background(), "aviso")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "529.XXX.247-XX", out[0].CPFMasked)
}

func TestFollowUpReport_ErroresDeConsultaEnUnSoloGrupo(t *testing.T) {
	sentAt := time.Date(2025, time.January, 10, 12, 0, 0, 0, time.UTC)
	sentLog := &memorySentLog{msgs: []*entity.SentMessage{
		{Campaign: "aviso", CPF: cpfMaria, Phone: "71991112222", Status: entity.SentMessageStatusSent, SentAt: sentAt},
		{Campaign: "aviso", CPF: cpfJoao, Phone: "71993334444", Status: entity.SentMessageStatusUnknown, SentAt: sentAt},
	}}
	sender := &fakeSender{metadataErrs: map[string]error{
		"71991112222": errors.New("zapi: timeout o cancelación: context deadline exceeded"),
		"71993334444": errors.New(`zapi: llamada HTTP fallida: Get "https://api.z-api.io/...": connection refused`),
	}}

	uc := campaign.NewFollowUpUseCase(sentLog, &fakeLedger{}, sender, campaign.NewSendLimiter(0), zerolog.Nop())
	rep, err := uc.Report(context.Background(), "aviso")
	require.NoError(t, err)

	require.Len(t, rep.Outcomes, 1)
	assert.Equal(t, campaign.OutcomeLookupError, rep.Outcomes[0].Outcome)
	assert.Equal(t, 2, rep.Outcomes[0].Messages)
}
