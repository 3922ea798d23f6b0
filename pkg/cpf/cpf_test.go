package cpf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/aviso-pontos/internal/domain"
	"github.com/jhoicas/aviso-pontos/pkg/cpf"
)

func TestValidate_CPFValidoConYSinFormato(t *testing.T) {
	for _, in := range []string{"52998224725", "529.982.247-25", " 111.444.777-35 "} {
		got, err := cpf.Validate(in)
		require.NoError(t, err, in)
		assert.Len(t, got, 11)
	}
	got, _ := cpf.Validate("529.982.247-25")
	assert.Equal(t, "52998224725", got)
}

func TestValidate_CPFInvalido(t *testing.T) {
	cases := map[string]string{
		"pocos dígitos":       "5299822472",
		"demasiados dígitos":  "529982247250",
		"todos iguales":       "11111111111",
		"primer verificador":  "52998224735",
		"segundo verificador": "52998224726",
		"vacío":               "",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := cpf.Validate(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidCPF)
			assert.False(t, cpf.IsValid(in))
		})
	}
}

func TestMask(t *testing.T) {
	assert.Equal(t, "529.XXX.247-XX", cpf.Mask("52998224725"))
	assert.Equal(t, "111.XXX.777-XX", cpf.Mask("111.444.777-35"))
	assert.Equal(t, "XXX.XXX.XXX-XX", cpf.Mask("123"))
}
