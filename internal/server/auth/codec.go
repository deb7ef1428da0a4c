// Package auth implements the signed-token codec: claims go in, signed
// strings come out, and signed strings come back as verified claims. The
// codec is pure and does no I/O; revocation state lives in the refresh
// token repository.
package auth

import (
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/campushub/backend/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType tags a claims payload with the kind of token it was issued as.
// Verification rejects a payload whose tag does not match the expected
// kind, so an access token can never be redeemed where a refresh token is
// expected and vice versa.
type TokenType string

const (
	TokenTypeAccess  TokenType = "ACCESS_TOKEN"
	TokenTypeRefresh TokenType = "REFRESH_TOKEN"
)

// Claims is the signed token payload. The jti registered claim carries a
// random uuid so two tokens minted within the same second still differ,
// which keeps the store's (user_id, token) key collision-free.
type Claims struct {
	jwt.RegisteredClaims
	UserID string    `json:"userId"`
	Role   string    `json:"role"`
	Type   TokenType `json:"type"`
}

// KeySet holds the signing material and expiration policy for one token
// type.
type KeySet struct {
	PrivateKey *rsa.PrivateKey
	PublicKey  *rsa.PublicKey
	TTL        time.Duration
}

// Codec signs and verifies token payloads with a separate RSA key pair and
// TTL per token type. Immutable after construction and safe for concurrent
// use.
type Codec struct {
	access  KeySet
	refresh KeySet
}

func NewCodec(access, refresh KeySet) (*Codec, error) {
	for _, ks := range []KeySet{access, refresh} {
		if ks.PrivateKey == nil || ks.PublicKey == nil {
			return nil, errors.New("missing key material")
		}
		if ks.TTL <= 0 {
			return nil, errors.New("non-positive token ttl")
		}
	}
	return &Codec{access: access, refresh: refresh}, nil
}

// ParseKeySet decodes a key pair delivered as base64-encoded PEM strings,
// the form the configuration carries them in.
func ParseKeySet(privateB64, publicB64 string, ttl time.Duration) (KeySet, error) {
	privatePEM, err := base64.StdEncoding.DecodeString(privateB64)
	if err != nil {
		return KeySet{}, fmt.Errorf("decoding private key: %w", err)
	}
	publicPEM, err := base64.StdEncoding.DecodeString(publicB64)
	if err != nil {
		return KeySet{}, fmt.Errorf("decoding public key: %w", err)
	}

	private, err := jwt.ParseRSAPrivateKeyFromPEM(privatePEM)
	if err != nil {
		return KeySet{}, fmt.Errorf("parsing private key: %w", err)
	}
	public, err := jwt.ParseRSAPublicKeyFromPEM(publicPEM)
	if err != nil {
		return KeySet{}, fmt.Errorf("parsing public key: %w", err)
	}

	return KeySet{PrivateKey: private, PublicKey: public, TTL: ttl}, nil
}

func (c *Codec) keySet(tokenType TokenType) (KeySet, error) {
	switch tokenType {
	case TokenTypeAccess:
		return c.access, nil
	case TokenTypeRefresh:
		return c.refresh, nil
	default:
		return KeySet{}, fmt.Errorf("unknown token type %q", tokenType)
	}
}

// Sign produces a signed token for the given identity, selecting key and
// expiration by tokenType and embedding the type tag in the claims.
func (c *Codec) Sign(userID, role string, tokenType TokenType) (string, error) {
	ks, err := c.keySet(tokenType)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ks.TTL)),
		},
		UserID: userID,
		Role:   role,
		Type:   tokenType,
	}

	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(ks.PrivateKey)
}

// Verify validates signature and expiration against the key material for
// expectedType and rejects cross-type use. Failures map to the sentinels
// common.ErrInvalidToken, common.ErrTokenExpired and
// common.ErrTokenTypeMismatch.
func (c *Codec) Verify(tokenString string, expectedType TokenType) (*Claims, error) {
	ks, err := c.keySet(expectedType)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return ks.PublicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	if claims.Type != expectedType {
		return nil, common.ErrTokenTypeMismatch
	}

	return claims, nil
}
