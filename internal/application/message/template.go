// Package message arma los textos personalizados que se envían a los socios por WhatsApp.
package message

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	xmessage "golang.org/x/text/message"

	"github.com/jhoicas/aviso-pontos/internal/domain"
	"github.com/jhoicas/aviso-pontos/pkg/cpf"
)

// DefaultProgramName nombre del programa de fidelidad.
const DefaultProgramName = "Sempre Leitura"

// pointsPerReal cantidad de puntos que equivalen a R$1 de descuento.
var pointsPerReal = decimal.NewFromInt(100)

// Templates parámetros fijos de los mensajes de la campaña.
type Templates struct {
	StoreName   string
	SenderName  string
	ProgramName string
	MinPoints   decimal.Decimal // mínimo de saldo para enviar el mensaje de saldo
}

// NewTemplates construye las plantillas con el nombre de programa por defecto.
func NewTemplates(storeName, senderName string, minPoints int) *Templates {
	return &Templates{
		StoreName:   storeName,
		SenderName:  senderName,
		ProgramName: DefaultProgramName,
		MinPoints:   decimal.NewFromInt(int64(minPoints)),
	}
}

var (
	printer = xmessage.NewPrinter(language.BrazilianPortuguese)
	titler  = cases.Title(language.BrazilianPortuguese)
)

// FormatPoints formatea puntos sin decimales con separador de miles brasileño: 12.345.
func FormatPoints(points decimal.Decimal) string {
	return printer.Sprintf("%d", points.Floor().IntPart())
}

// RewardValue equivalente en reales del saldo: floor(puntos / 100).
func RewardValue(points decimal.Decimal) decimal.Decimal {
	if !points.IsPositive() {
		return decimal.Zero
	}
	return points.Div(pointsPerReal).Floor()
}

// FirstName primer nombre con mayúscula inicial: "MARIA DA SILVA" -> "Maria".
func FirstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return ""
	}
	return titler.String(strings.ToLower(fields[0]))
}

// Balance mensaje de saldo acumulado. Exige saldo >= MinPoints.
func (t *Templates) Balance(firstName string, points decimal.Decimal, customerCPF string) (string, error) {
	if points.LessThan(t.MinPoints) {
		return "", fmt.Errorf("message: saldo %s menor que %s: %w", points, t.MinPoints, domain.ErrBelowMinPoints)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Olá, %s! Tudo bem?\n\n", firstName)
	fmt.Fprintf(&b, "Aqui é a %s, da *%s*, e tenho uma notícia incrível:", t.SenderName, t.StoreName)
	fmt.Fprintf(&b, " você acumulou %s pontos no programa %s, que equivalem a *R$%s* de desconto na sua próxima compra em nossa loja! 🎉📚\n\n",
		FormatPoints(points), t.ProgramName, FormatPoints(RewardValue(points)))
	fmt.Fprintf(&b, "Passe na *%s* e conte conosco para escolher os melhores livros!\n\n", t.StoreName)
	b.WriteString("Estamos ansiosos para te receber! 😊\n\n")
	b.WriteString(footer(customerCPF))
	return strings.TrimSpace(b.String()), nil
}

// Expiring mensaje de aviso de puntos por vencer. Exige puntos por vencer >= MinPoints.
func (t *Templates) Expiring(firstName, customerCPF string, expiringPoints decimal.Decimal, expiresOn time.Time, balance decimal.Decimal) (string, error) {
	if expiringPoints.LessThan(t.MinPoints) {
		return "", fmt.Errorf("message: puntos por vencer %s menores que %s: %w", expiringPoints, t.MinPoints, domain.ErrBelowMinPoints)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Olá, %s! Tudo bem?\n\n", firstName)
	fmt.Fprintf(&b, "Aqui é a %s, da *%s*. Passando para avisar que *%s pontos* do seu saldo no programa %s vencem em *%s*. ⏳\n\n",
		t.SenderName, t.StoreName, FormatPoints(expiringPoints), t.ProgramName, expiresOn.Format("02/01/2006"))
	fmt.Fprintf(&b, "Hoje você tem %s pontos, que equivalem a *R$%s* de desconto na sua próxima compra em nossa loja. Aproveite antes que expirem! 📚\n\n",
		FormatPoints(balance), FormatPoints(RewardValue(balance)))
	b.WriteString("Estamos ansiosos para te receber! 😊\n\n")
	b.WriteString(footer(customerCPF))
	return strings.TrimSpace(b.String()), nil
}

func footer(customerCPF string) string {
	return fmt.Sprintf("*Pontuação vinculada ao CPF %s, intransferível e sujeita à validade dos pontos.", cpf.Mask(customerCPF))
}
