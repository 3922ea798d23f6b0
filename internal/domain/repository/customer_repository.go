package repository

import (
	"context"

	"github.com/jhoicas/aviso-pontos/internal/domain/entity"
)

// CustomerRepository define el puerto de lectura del directorio de socios.
type CustomerRepository interface {
	// GetByCPF devuelve (nil, nil) si el socio no existe.
	GetByCPF(ctx context.Context, cpf string) (*entity.Customer, error)
	ListByCPFs(ctx context.Context, cpfs []string) (map[string]*entity.Customer, error)
}
