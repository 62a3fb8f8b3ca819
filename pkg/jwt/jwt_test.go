package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestGenerateParse(t *testing.T) {
	tok, err := Generate(secret, "u1", "t1", "manager", KindAccess, "invorya-test", time.Hour)
	require.NoError(t, err)

	claims, err := Parse(secret, tok, KindAccess)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "t1", claims.TenantID)
	assert.Equal(t, "manager", claims.Role)
	assert.Equal(t, "invorya-test", claims.Issuer)
}

func TestParse_Rechazos(t *testing.T) {
	access, err := Generate(secret, "u1", "t1", "admin", KindAccess, "", time.Hour)
	require.NoError(t, err)
	expired, err := Generate(secret, "u1", "t1", "admin", KindAccess, "", -time.Minute)
	require.NoError(t, err)

	_, err = Parse("otro-secret", access, KindAccess)
	assert.Error(t, err, "firma incorrecta")
	_, err = Parse(secret, expired, KindAccess)
	assert.Error(t, err, "expirado")
	_, err = Parse(secret, access, KindRefresh)
	assert.Error(t, err, "un access token no sirve como refresh")
	_, err = Parse(secret, "no-es-un-jwt", KindAccess)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "u1", "t1", "admin", KindAccess, "", time.Hour)
	assert.Error(t, err)
}
