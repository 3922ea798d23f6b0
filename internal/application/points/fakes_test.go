package points_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/aviso-pontos/internal/domain/entity"
)

var errLedgerDown = errors.New("ledger caído")

type fakeLedger struct {
	mu        sync.Mutex
	movements map[string][]entity.Movement
	failing   map[string]error
	calls     int
}

func (f *fakeLedger) ListMovements(_ context.Context, cpf string) ([]entity.Movement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := f.failing[cpf]; err != nil {
		return nil, err
	}
	return f.movements[cpf], nil
}

func (f *fakeLedger) ListAccountsWithPurchaseLots(_ context.Context, _, _ time.Time) ([]string, error) {
	var out []string
	for k := range f.movements {
		out = append(out, k)
	}
	for k := range f.failing {
		out = append(out, k)
	}
	return out, nil
}

func (f *fakeLedger) ListRedemptionsSince(_ context.Context, _ string, _ time.Time) ([]entity.Movement, error) {
	return nil, nil
}

type fakeCustomers struct {
	byCPF map[string]*entity.Customer
	err   error
}

func (f *fakeCustomers) GetByCPF(_ context.Context, cpf string) (*entity.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byCPF[cpf], nil
}

func (f *fakeCustomers) ListByCPFs(_ context.Context, cpfs []string) (map[string]*entity.Customer, error) {
	out := make(map[string]*entity.Customer)
	for _, c := range cpfs {
		if v, ok := f.byCPF[c]; ok {
			out[c] = v
		}
	}
	return out, nil
}

func purchase(account string, at time.Time, amount int64) entity.Movement {
	return entity.Movement{
		AccountID:      account,
		RecordedAt:     at,
		Amount:         decimal.NewFromInt(amount),
		Kind:           entity.MovementKindCredit,
		Origin:         entity.CreditOriginPurchase,
		RedeemedAmount: decimal.Zero,
	}
}
