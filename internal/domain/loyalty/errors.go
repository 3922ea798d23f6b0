package loyalty

import (
	"fmt"

	"github.com/jhoicas/aviso-pontos/internal/domain"
)

// DataError movimiento con un campo ausente o mal formado.
// Aborta el cálculo de toda la cuenta; el llamador decide si registra y continúa.
type DataError struct {
	AccountID string
	Index     int // posición del movimiento en la entrada
	Field     string
	Reason    string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("loyalty: movimiento %d de la cuenta %q: %s %s", e.Index, e.AccountID, e.Field, e.Reason)
}

// Unwrap permite errors.Is(err, domain.ErrDataQuality).
func (e *DataError) Unwrap() error { return domain.ErrDataQuality }

// ConfigurationError política inválida; se detecta al construir el motor.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("loyalty: política inválida: %s %s", e.Field, e.Reason)
}

// Unwrap permite errors.Is(err, domain.ErrConfiguration).
func (e *ConfigurationError) Unwrap() error { return domain.ErrConfiguration }
