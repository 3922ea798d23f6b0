package campaign_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/aviso-pontos/internal/application/dto"
	"github.com/jhoicas/aviso-pontos/internal/application/points"
	"github.com/jhoicas/aviso-pontos/internal/domain"
	"github.com/jhoicas/aviso-pontos/internal/domain/entity"
)

var (
	errProvider = errors.New("z-api: 500")
	errDiskFull = errors.New("sqlite: disk full")
)

type fakeScanner struct {
	result *points.ScanResult
}

func (f *fakeScanner) Scan(context.Context, time.Time) (*points.ScanResult, error) {
	return f.result, nil
}

type memorySentLog struct {
	mu      sync.Mutex
	msgs    []*entity.SentMessage
	saveErr error
}

func (m *memorySentLog) Save(_ context.Context, msg *entity.SentMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.msgs = append(m.msgs, msg)
	return nil
}

func (m *memorySentLog) ListByCampaign(_ context.Context, campaign string) ([]*entity.SentMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.SentMessage
	for _, msg := range m.msgs {
		if msg.Campaign == campaign {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *memorySentLog) SentCPFs(ctx context.Context, campaign string) (map[string]struct{}, error) {
	msgs, _ := m.ListByCampaign(ctx, campaign)
	out := make(map[string]struct{})
	for _, msg := range msgs {
		if msg.Status == entity.SentMessageStatusSent || msg.Status == entity.SentMessageStatusUnknown {
			out[msg.CPF] = struct{}{}
		}
	}
	return out, nil
}

type fakeSender struct {
	mu           sync.Mutex
	texts        []string
	images       []string
	failFor      map[string]bool
	unknownFor   map[string]bool
	metadata     map[string]*dto.ChatMetadataDTO
	metadataErrs map[string]error
}

func (f *fakeSender) SendText(_ context.Context, phone, message string) (*dto.SendResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[phone] {
		return nil, errProvider
	}
	f.texts = append(f.texts, phone)
	if f.unknownFor[phone] {
		return nil, fmt.Errorf("zapi: send-text sin identificadores: %w", domain.ErrDeliveryUnknown)
	}
	return &dto.SendResult{ZaapID: "zaap-" + phone, MessageID: "msg-" + phone}, nil
}

func (f *fakeSender) SendImage(_ context.Context, phone, caption, _ string) (*dto.SendResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.images = append(f.images, phone)
	return &dto.SendResult{ZaapID: "zaap-img", MessageID: "msg-img"}, nil
}

func (f *fakeSender) ChatMetadata(_ context.Context, phone string) (*dto.ChatMetadataDTO, error) {
	if m, ok := f.metadata[phone]; ok {
		return m, nil
	}
	if err, ok := f.metadataErrs[phone]; ok {
		return nil, err
	}
	return nil, errProvider
}

type fakeLedger struct {
	redemptions map[string][]entity.Movement
}

func (f *fakeLedger) ListMovements(context.Context, string) ([]entity.Movement, error) {
	return nil, nil
}

func (f *fakeLedger) ListAccountsWithPurchaseLots(context.Context, time.Time, time.Time) ([]string, error) {
	return nil, nil
}

func (f *fakeLedger) ListRedemptionsSince(_ context.Context, cpf string, since time.Time) ([]entity.Movement, error) {
	var out []entity.Movement
	for _, r := range f.redemptions[cpf] {
		if !r.RecordedAt.Before(since) {
			out = append(out, r)
		}
	}
	return out, nil
}
