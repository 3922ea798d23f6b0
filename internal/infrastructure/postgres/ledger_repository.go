package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/aviso-pontos/internal/domain/entity"
	"github.com/jhoicas/aviso-pontos/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo lee la cuenta corriente de puntos (sl_movimentacao_conta_corrente)
// y el libro de rescates por lote (sl_resgate_lote).
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

const movementColumns = `
	mov.id::text, mov.usuario, COALESCE(mov.cupom, ''), mov.sequencia,
	mov.data_hora, mov.data_cupom, mov.valor, mov.tipo, COALESCE(mov.origem, '')`

// ListMovements devuelve los movimientos de la cuenta con el total rescatado por lote.
func (r *LedgerRepo) ListMovements(ctx context.Context, cpf string) ([]entity.Movement, error) {
	query := `
		SELECT` + movementColumns + `,
			COALESCE(res.valor_resgatado, 0)
		FROM sl_movimentacao_conta_corrente mov
		LEFT JOIN (
			SELECT usuario, cupom, SUM(valor) AS valor_resgatado
			FROM sl_resgate_lote
			GROUP BY usuario, cupom
		) res ON mov.tipo = 'C' AND res.usuario = mov.usuario AND res.cupom = mov.cupom
		WHERE mov.usuario = $1
		ORDER BY COALESCE(mov.data_cupom, mov.data_hora), mov.sequencia`
	rows, err := r.q.Query(ctx, query, cpf)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows, true)
}

// ListAccountsWithPurchaseLots lista las cuentas con créditos de compra liquidados en [from, to).
func (r *LedgerRepo) ListAccountsWithPurchaseLots(ctx context.Context, from, to time.Time) ([]string, error) {
	query := `
		SELECT DISTINCT usuario
		FROM sl_movimentacao_conta_corrente
		WHERE tipo = 'C' AND origem = 'COMPRA'
			AND COALESCE(data_cupom, data_hora) >= $1
			AND COALESCE(data_cupom, data_hora) < $2
		ORDER BY usuario`
	rows, err := r.q.Query(ctx, query, wallClock(from), wallClock(to))
	if err != nil {
		return nil, fmt.Errorf("list accounts with purchase lots: %w", err)
	}
	defer rows.Close()
	var list []string
	for rows.Next() {
		var cpf string
		if err := rows.Scan(&cpf); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		list = append(list, cpf)
	}
	return list, rows.Err()
}

// ListRedemptionsSince devuelve los rescates (tipo R) de la cuenta registrados desde since.
func (r *LedgerRepo) ListRedemptionsSince(ctx context.Context, cpf string, since time.Time) ([]entity.Movement, error) {
	query := `
		SELECT` + movementColumns + `
		FROM sl_movimentacao_conta_corrente mov
		WHERE mov.usuario = $1 AND mov.tipo = 'R' AND mov.data_hora >= $2
		ORDER BY mov.data_hora, mov.sequencia`
	rows, err := r.q.Query(ctx, query, cpf, since)
	if err != nil {
		return nil, fmt.Errorf("list redemptions: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows, false)
}

// wallClock reescribe la fecha/hora de t en UTC sin convertirla. Las columnas del libro
// son timestamp/date sin zona y se comparan contra el reloj de pared de los cortes.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func scanMovements(rows pgx.Rows, withRedeemed bool) ([]entity.Movement, error) {
	var list []entity.Movement
	for rows.Next() {
		var (
			m          entity.Movement
			kind, orig string
		)
		dest := []any{
			&m.ID, &m.AccountID, &m.LotID, &m.Sequence,
			&m.RecordedAt, &m.CouponDate, &m.Amount, &kind, &orig,
		}
		if withRedeemed {
			dest = append(dest, &m.RedeemedAmount)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Kind = entity.MovementKind(kind)
		m.Origin = entity.CreditOrigin(orig)
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movements: %w", err)
	}
	return list, nil
}
