package repository

import (
	"context"
	"time"

	"github.com/jhoicas/aviso-pontos/internal/domain/entity"
)

// LedgerRepository define el puerto de lectura del libro de puntos (cuenta corriente).
type LedgerRepository interface {
	// ListMovements devuelve los movimientos de la cuenta ordenados por fecha de liquidación
	// y secuencia, con RedeemedAmount ya cruzado contra el libro de rescates.
	ListMovements(ctx context.Context, cpf string) ([]entity.Movement, error)
	// ListAccountsWithPurchaseLots lista las cuentas con lotes de compra liquidados en [from, to).
	ListAccountsWithPurchaseLots(ctx context.Context, from, to time.Time) ([]string, error)
	// ListRedemptionsSince devuelve los rescates de la cuenta desde la fecha indicada.
	ListRedemptionsSince(ctx context.Context, cpf string, since time.Time) ([]entity.Movement, error)
}
