// Package points contiene los casos de uso de consulta de saldo y el reporte
// de socios con puntos por vencer.
package points

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/aviso-pontos/internal/application/dto"
	"github.com/jhoicas/aviso-pontos/internal/application/message"
	"github.com/jhoicas/aviso-pontos/internal/domain"
	"github.com/jhoicas/aviso-pontos/internal/domain/entity"
	"github.com/jhoicas/aviso-pontos/internal/domain/loyalty"
	"github.com/jhoicas/aviso-pontos/internal/domain/repository"
	"github.com/jhoicas/aviso-pontos/pkg/cpf"
	"github.com/jhoicas/aviso-pontos/pkg/phone"
)

// BalanceUseCase consulta el saldo de un socio a una fecha de referencia.
type BalanceUseCase struct {
	ledger    repository.LedgerRepository
	customers repository.CustomerRepository
	engine    *loyalty.BalanceEngine
	templates *message.Templates
}

// NewBalanceUseCase construye el caso de uso.
func NewBalanceUseCase(
	ledger repository.LedgerRepository,
	customers repository.CustomerRepository,
	engine *loyalty.BalanceEngine,
	templates *message.Templates,
) *BalanceUseCase {
	return &BalanceUseCase{ledger: ledger, customers: customers, engine: engine, templates: templates}
}

// Snapshot valida el CPF, lee el libro y calcula el saldo.
func (uc *BalanceUseCase) Snapshot(ctx context.Context, rawCPF string, asOf time.Time) (*entity.BalanceSnapshot, error) {
	id, err := cpf.Validate(rawCPF)
	if err != nil {
		return nil, err
	}
	movements, err := uc.ledger.ListMovements(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("balance: leer movimientos: %w", err)
	}
	snap, err := uc.engine.ComputeBalance(asOf, movements)
	if err != nil {
		return nil, err
	}
	if !snap.HasData {
		snap.AccountID = id
	}
	return snap, nil
}

// GetBalance devuelve el DTO de salida (CPF enmascarado) con los datos de contacto del socio
// y, si el saldo alcanza el mínimo, el mensaje de saldo listo para enviar por WhatsApp.
func (uc *BalanceUseCase) GetBalance(ctx context.Context, rawCPF string, asOf time.Time) (*dto.BalanceSnapshotDTO, error) {
	snap, err := uc.Snapshot(ctx, rawCPF, asOf)
	if err != nil {
		return nil, err
	}
	out := ToBalanceDTO(snap)

	customer, err := uc.customers.GetByCPF(ctx, snap.AccountID)
	if err != nil {
		return nil, fmt.Errorf("balance: leer socio: %w", err)
	}
	if customer == nil {
		return out, nil
	}
	out.FirstName = message.FirstName(customer.Name)
	out.Phone = ContactPhone(customer)
	if link, err := phone.WhatsAppLink(out.Phone); err == nil {
		out.WhatsAppLink = link
	}
	text, err := uc.templates.Balance(out.FirstName, snap.NetBalance, snap.AccountID)
	switch {
	case err == nil:
		out.Message = text
	case !errors.Is(err, domain.ErrBelowMinPoints):
		return nil, err
	}
	return out, nil
}

// ToBalanceDTO convierte el snapshot de dominio al DTO de la API.
func ToBalanceDTO(snap *entity.BalanceSnapshot) *dto.BalanceSnapshotDTO {
	out := &dto.BalanceSnapshotDTO{
		CPFMasked:           cpf.Mask(snap.AccountID),
		ReferenceDate:       snap.ReferenceDate.Format(dto.DateLayout),
		HasData:             snap.HasData,
		TotalCredits:        snap.TotalCredits,
		TotalDebits:         snap.TotalDebits,
		NetBalance:          snap.NetBalance,
		ExpiredCredits:      snap.ExpiredCredits,
		ExpiringSoonCredits: snap.ExpiringSoonCredits,
		ExpiringDates:       snap.ExpiringDates,
		RewardValue:         message.RewardValue(snap.NetBalance),
	}
	if next, ok := snap.NextExpiration(); ok {
		out.NextExpiration = &next
	}
	return out
}
