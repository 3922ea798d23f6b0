package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/aviso-pontos/pkg/jwt"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := pkgjwt.Generate("secreto", "maria", pkgjwt.RoleOperator, "aviso-pontos", 5)
	require.NoError(t, err)

	sub, role, err := pkgjwt.Parse("secreto", tok)
	require.NoError(t, err)
	assert.Equal(t, "maria", sub)
	assert.Equal(t, pkgjwt.RoleOperator, role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := pkgjwt.Generate("secreto", "maria", pkgjwt.RoleAdmin, "aviso-pontos", 5)
	require.NoError(t, err)
	_, _, err = pkgjwt.Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate("secreto", "maria", pkgjwt.RoleAdmin, "aviso-pontos", -1)
	require.NoError(t, err)
	_, _, err = pkgjwt.Parse("secreto", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "maria", pkgjwt.RoleAdmin, "x", 5)
	assert.Error(t, err)
}
