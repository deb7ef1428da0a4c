package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"testing"
	"time"

	"github.com/campushub/backend/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKeySet(t *testing.T, ttl time.Duration) KeySet {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return KeySet{PrivateKey: key, PublicKey: &key.PublicKey, TTL: ttl}
}

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec(generateKeySet(t, time.Hour), generateKeySet(t, 24*time.Hour))
	require.NoError(t, err)
	return c
}

func TestCodec_SignAndVerify(t *testing.T) {
	c := newTestCodec(t)

	tests := []struct {
		name      string
		tokenType TokenType
	}{
		{"access", TokenTypeAccess},
		{"refresh", TokenTypeRefresh},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tok, err := c.Sign("u-123", "STUDENT", tc.tokenType)
			require.NoError(t, err)

			claims, err := c.Verify(tok, tc.tokenType)
			require.NoError(t, err)
			assert.Equal(t, "u-123", claims.UserID)
			assert.Equal(t, "STUDENT", claims.Role)
			assert.Equal(t, tc.tokenType, claims.Type)
			assert.NotEmpty(t, claims.ID, "jti must be set")
		})
	}
}

func TestCodec_Sign_TokensAreUnique(t *testing.T) {
	c := newTestCodec(t)

	t1, err := c.Sign("u-1", "STUDENT", TokenTypeRefresh)
	require.NoError(t, err)
	t2, err := c.Sign("u-1", "STUDENT", TokenTypeRefresh)
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2, "two mints for the same identity must differ")
}

func TestCodec_Verify_CrossTypeRejected(t *testing.T) {
	c := newTestCodec(t)

	access, err := c.Sign("u-1", "STUDENT", TokenTypeAccess)
	require.NoError(t, err)
	refresh, err := c.Sign("u-1", "STUDENT", TokenTypeRefresh)
	require.NoError(t, err)

	// Distinct key pairs per type: a cross-presented token fails signature
	// validation before the type tag is even reached.
	_, err = c.Verify(access, TokenTypeRefresh)
	require.Error(t, err)
	_, err = c.Verify(refresh, TokenTypeAccess)
	require.Error(t, err)
}

func TestCodec_Verify_TypeTagRejectedEvenWithSharedKeys(t *testing.T) {
	// Force both types onto one key pair so only the embedded tag can tell
	// them apart.
	shared := generateKeySet(t, time.Hour)
	c, err := NewCodec(shared, shared)
	require.NoError(t, err)

	access, err := c.Sign("u-1", "STUDENT", TokenTypeAccess)
	require.NoError(t, err)

	_, err = c.Verify(access, TokenTypeRefresh)
	assert.ErrorIs(t, err, common.ErrTokenTypeMismatch)
}

func TestCodec_Verify_Expired(t *testing.T) {
	c, err := NewCodec(generateKeySet(t, -time.Second), generateKeySet(t, 24*time.Hour))
	require.NoError(t, err)

	tok, err := c.Sign("u-1", "STUDENT", TokenTypeAccess)
	require.NoError(t, err)

	_, err = c.Verify(tok, TokenTypeAccess)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
	assert.NotErrorIs(t, err, common.ErrInvalidToken, "expired must stay distinct from forged")
}

func TestCodec_Verify_WrongKey(t *testing.T) {
	c1 := newTestCodec(t)
	c2 := newTestCodec(t)

	tok, err := c1.Sign("u-1", "STUDENT", TokenTypeAccess)
	require.NoError(t, err)

	_, err = c2.Verify(tok, TokenTypeAccess)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestCodec_Verify_Malformed(t *testing.T) {
	c := newTestCodec(t)

	_, err := c.Verify("not.a.jwt", TokenTypeAccess)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestNewCodec_Validation(t *testing.T) {
	valid := generateKeySet(t, time.Hour)

	_, err := NewCodec(KeySet{}, valid)
	assert.Error(t, err, "missing key material must be rejected")

	broken := valid
	broken.TTL = 0
	_, err = NewCodec(valid, broken)
	assert.Error(t, err, "zero ttl must be rejected")
}

func TestParseKeySet(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: publicDER,
	})

	ks, err := ParseKeySet(
		base64.StdEncoding.EncodeToString(privatePEM),
		base64.StdEncoding.EncodeToString(publicPEM),
		time.Hour,
	)
	require.NoError(t, err)
	assert.True(t, ks.PrivateKey.Equal(key))
	assert.True(t, ks.PublicKey.Equal(&key.PublicKey))
	assert.Equal(t, time.Hour, ks.TTL)

	_, err = ParseKeySet("%%%", "also-bad", time.Hour)
	assert.Error(t, err)
}
