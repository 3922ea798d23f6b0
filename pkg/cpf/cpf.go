// Package cpf valida y enmascara el CPF (Cadastro de Pessoas Físicas, Brasil),
// identificador de la cuenta en el programa de puntos.
package cpf

import (
	"fmt"
	"unicode"

	"github.com/jhoicas/aviso-pontos/internal/domain"
)

// Validate verifica el CPF (con o sin puntos/guión) y devuelve sus 11 dígitos.
// Reglas: 11 dígitos, no todos iguales, y ambos dígitos verificadores módulo 11.
func Validate(s string) (string, error) {
	digits := extractDigits(s)
	if len(digits) != 11 {
		return "", fmt.Errorf("cpf: se esperaban 11 dígitos, se encontraron %d: %w", len(digits), domain.ErrInvalidCPF)
	}
	if allEqual(digits) {
		return "", fmt.Errorf("cpf: todos los dígitos son iguales: %w", domain.ErrInvalidCPF)
	}
	if d := checkDigit(digits[:9]); digits[9] != d {
		return "", fmt.Errorf("cpf: primer dígito verificador inválido: esperado %c, recibido %c: %w", d, digits[9], domain.ErrInvalidCPF)
	}
	if d := checkDigit(digits[:10]); digits[10] != d {
		return "", fmt.Errorf("cpf: segundo dígito verificador inválido: esperado %c, recibido %c: %w", d, digits[10], domain.ErrInvalidCPF)
	}
	return string(digits), nil
}

// IsValid atajo booleano de Validate.
func IsValid(s string) bool {
	_, err := Validate(s)
	return err == nil
}

// Mask oculta el CPF para mensajes y logs: "529.XXX.247-XX".
func Mask(s string) string {
	d := extractDigits(s)
	if len(d) != 11 {
		return "XXX.XXX.XXX-XX"
	}
	return fmt.Sprintf("%s.XXX.%s-XX", d[:3], d[6:9])
}

// checkDigit pesos decrecientes desde len(base)+1 hasta 2; dígito = (suma*10 % 11) % 10.
func checkDigit(base []byte) byte {
	var sum int
	weight := len(base) + 1
	for _, d := range base {
		sum += int(d-'0') * weight
		weight--
	}
	return byte('0' + (sum*10%11)%10)
}

func allEqual(d []byte) bool {
	for _, c := range d[1:] {
		if c != d[0] {
			return false
		}
	}
	return true
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			out = append(out, byte(r))
		}
	}
	return out
}
