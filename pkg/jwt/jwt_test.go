package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/braian-rent/braian-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests-0123456789"
	testIssuer = "braian-rent-test"
)

func TestGenerateAndParse_ConservaIdentidad(t *testing.T) {
	in := pkgjwt.Identity{UserID: "u-1", Role: "OWNER", Email: "marek@example.com", Name: "Marek"}
	tok, err := pkgjwt.Generate(testSecret, testIssuer, 60, in)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	out, err := pkgjwt.Parse(testSecret, testIssuer, tok)
	require.NoError(t, err)
	assert.Equal(t, in, *out)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIssuer, -1, pkgjwt.Identity{UserID: "u-1", Role: "OWNER"})
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, testIssuer, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIssuer, 60, pkgjwt.Identity{UserID: "u-1", Role: "OWNER"})
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto-abcdef", testIssuer, tok)
	assert.Error(t, err)
}

func TestParse_EmisorDistinto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "otro-servicio", 60, pkgjwt.Identity{UserID: "u-1", Role: "OWNER"})
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, testIssuer, tok)
	assert.Error(t, err, "un token de otro emisor con el mismo secreto debe rechazarse")

	_, err = pkgjwt.Parse(testSecret, "otro-servicio", tok)
	assert.NoError(t, err)
}

func TestParse_SinID(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIssuer, 60, pkgjwt.Identity{Role: "OWNER"})
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, testIssuer, tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", testIssuer, 60, pkgjwt.Identity{UserID: "u-1"})
	assert.Error(t, err)
}
