// Package phone normaliza teléfonos brasileños (DDD + número) y arma enlaces de WhatsApp.
package phone

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jhoicas/aviso-pontos/internal/domain"
)

const countryCode = "55"

// Join concatena DDD y número dejando solo dígitos. Devuelve "" si el número está vacío.
func Join(ddd, number string) string {
	n := digits(number)
	if n == "" {
		return ""
	}
	return digits(ddd) + n
}

// Select elige el teléfono de contacto entre los dos registrados.
// Si uno falta devuelve el otro; un número de 10 dígitos cuyo tercer dígito es 1 o 3
// se considera fijo y se prefiere el secundario.
func Select(primary, secondary string) string {
	primary, secondary = strings.TrimSpace(primary), strings.TrimSpace(secondary)
	if primary == "" {
		return secondary
	}
	if secondary == "" {
		return primary
	}
	if len(primary) == 10 && (primary[2] == '1' || primary[2] == '3') {
		return secondary
	}
	return primary
}

// Validate exige 10 u 11 dígitos numéricos (DDD + número).
func Validate(p string) error {
	if len(p) != 10 && len(p) != 11 {
		return fmt.Errorf("phone: %q debe tener 10 u 11 dígitos, tiene %d: %w", p, len(p), domain.ErrInvalidPhone)
	}
	for _, r := range p {
		if r < '0' || r > '9' {
			return fmt.Errorf("phone: %q debe contener solo dígitos: %w", p, domain.ErrInvalidPhone)
		}
	}
	return nil
}

// WithCountryCode antepone el código de país (55) esperado por el proveedor de mensajería.
func WithCountryCode(p string) string {
	return countryCode + p
}

// WhatsAppLink devuelve https://wa.me/55<telefono>.
func WhatsAppLink(p string) (string, error) {
	if err := Validate(p); err != nil {
		return "", err
	}
	return "https://wa.me/" + WithCountryCode(p), nil
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}
