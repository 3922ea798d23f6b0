package message_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/aviso-pontos/internal/application/message"
	"github.com/jhoicas/aviso-pontos/internal/domain"
)

func newTemplates() *message.Templates {
	return message.NewTemplates("Livraria Leitura", "Júlia", 1000)
}

func TestFormatPoints_SeparadorDeMiles(t *testing.T) {
	assert.Equal(t, "999", message.FormatPoints(decimal.NewFromInt(999)))
	assert.Equal(t, "1.000", message.FormatPoints(decimal.NewFromInt(1000)))
	assert.Equal(t, "1.234.567", message.FormatPoints(decimal.NewFromInt(1234567)))
	assert.Equal(t, "1.500", message.FormatPoints(decimal.RequireFromString("1500.99")))
}

func TestRewardValue(t *testing.T) {
	assert.True(t, message.RewardValue(decimal.NewFromInt(1599)).Equal(decimal.NewFromInt(15)))
	assert.True(t, message.RewardValue(decimal.NewFromInt(-50)).IsZero())
}

func TestFirstName(t *testing.T) {
	assert.Equal(t, "Maria", message.FirstName("MARIA DA SILVA"))
	assert.Equal(t, "João", message.FirstName("  joão pedro "))
	assert.Equal(t, "", message.FirstName("   "))
}

func TestBalance_ContenidoDelMensaje(t *testing.T) {
	msg, err := newTemplates().Balance("Maria", decimal.NewFromInt(2550), "52998224725")
	require.NoError(t, err)

	assert.Contains(t, msg, "Olá, Maria! Tudo bem?")
	assert.Contains(t, msg, "2.550 pontos")
	assert.Contains(t, msg, "*R$25*")
	assert.Contains(t, msg, "*Livraria Leitura*")
	assert.Contains(t, msg, "529.XXX.247-XX")
	assert.NotContains(t, msg, "52998224725")
}

func TestBalance_DebajoDelMinimo(t *testing.T) {
	_, err := newTemplates().Balance("Maria", decimal.NewFromInt(999), "52998224725")
	assert.ErrorIs(t, err, domain.ErrBelowMinPoints)
}

func TestExpiring_ContenidoDelMensaje(t *testing.T) {
	expires := time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC)
	msg, err := newTemplates().Expiring("Ana", "11144477735", decimal.NewFromInt(1200), expires, decimal.NewFromInt(3400))
	require.NoError(t, err)

	assert.Contains(t, msg, "*1.200 pontos*")
	assert.Contains(t, msg, "*03/02/2025*")
	assert.Contains(t, msg, "Hoje você tem 3.400 pontos")
	assert.Contains(t, msg, "*R$34*")
	assert.Contains(t, msg, "111.XXX.777-XX")
}

func TestExpiring_DebajoDelMinimo(t *testing.T) {
	_, err := newTemplates().Expiring("Ana", "11144477735", decimal.NewFromInt(10), time.Now(), decimal.NewFromInt(5000))
	assert.ErrorIs(t, err, domain.ErrBelowMinPoints)
}
