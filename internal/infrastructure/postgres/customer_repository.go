package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/aviso-pontos/internal/domain/entity"
	"github.com/jhoicas/aviso-pontos/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository sobre sl_usuarios.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `
	usuario, COALESCE(nome_cliente, ''), COALESCE(ddd, ''), COALESCE(telefone, ''),
	COALESCE(ddd2, ''), COALESCE(telefone2, '')`

// GetByCPF obtiene un socio por CPF; (nil, nil) si no existe.
func (r *CustomerRepo) GetByCPF(ctx context.Context, cpf string) (*entity.Customer, error) {
	query := `SELECT` + customerColumns + ` FROM sl_usuarios WHERE usuario = $1`
	var c entity.Customer
	err := r.q.QueryRow(ctx, query, cpf).Scan(&c.CPF, &c.Name, &c.DDD, &c.Phone, &c.DDD2, &c.Phone2)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// ListByCPFs obtiene los socios de la lista en una sola consulta, indexados por CPF.
func (r *CustomerRepo) ListByCPFs(ctx context.Context, cpfs []string) (map[string]*entity.Customer, error) {
	out := make(map[string]*entity.Customer, len(cpfs))
	if len(cpfs) == 0 {
		return out, nil
	}
	query := `SELECT` + customerColumns + ` FROM sl_usuarios WHERE usuario = ANY($1)`
	rows, err := r.q.Query(ctx, query, cpfs)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.CPF, &c.Name, &c.DDD, &c.Phone, &c.DDD2, &c.Phone2); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out[c.CPF] = &c
	}
	return out, rows.Err()
}
