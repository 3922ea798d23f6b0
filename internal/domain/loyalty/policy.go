package loyalty

// Valores por defecto de la política del programa.
const (
	DefaultPointsValidityDays     = 365
	DefaultExpiringSoonWindowDays = 30
)

// Policy constantes de la política de vencimiento de puntos.
type Policy struct {
	PointsValidityDays     int // edad en días a partir de la cual un lote de compra vence
	ExpiringSoonWindowDays int // ancho de la ventana "por vencer", anclada en el corte de vencimiento
}

// DefaultPolicy devuelve la política estándar (365 días de validez, 30 de aviso).
func DefaultPolicy() Policy {
	return Policy{
		PointsValidityDays:     DefaultPointsValidityDays,
		ExpiringSoonWindowDays: DefaultExpiringSoonWindowDays,
	}
}

// Validate verifica los valores de la política.
func (p Policy) Validate() error {
	if p.PointsValidityDays <= 0 {
		return &ConfigurationError{Field: "points_validity_days", Reason: "debe ser mayor que cero"}
	}
	if p.ExpiringSoonWindowDays < 0 {
		return &ConfigurationError{Field: "expiring_soon_window_days", Reason: "no puede ser negativo"}
	}
	return nil
}
