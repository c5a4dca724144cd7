package identity

import (
	"context"
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/balance-app/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/balance-app/mocks/port/core"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clientID = "client-123.apps.googleusercontent.com"

var now = time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)

func sign(t *testing.T, claims profileClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("irrelevant"))
	require.NoError(t, err)
	return token
}

func validClaims() profileClaims {
	return profileClaims{
		Email:   "ada@example.com",
		Name:    "Ada Lovelace",
		Picture: "https://example.com/ada.png",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1122334455",
			Issuer:    "https://accounts.google.com",
			Audience:  jwt.ClaimStrings{clientID},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
		},
	}
}

func newDecoder(t *testing.T, clientID string) *JWTDecoder {
	return NewJWTDecoder(clientID, GoogleIssuers, coremocks.NewFixedTimeProvider(t, now), coremocks.NewPermissiveMockLogger(t))
}

func TestJWTDecoder_Decode(t *testing.T) {
	identity, err := newDecoder(t, clientID).Decode(context.Background(), sign(t, validClaims()))
	require.NoError(t, err)

	assert.Equal(t, "1122334455", identity.Subject)
	assert.Equal(t, "ada@example.com", identity.Email)
	assert.Equal(t, "Ada Lovelace", identity.Name)
	assert.Equal(t, "https://example.com/ada.png", identity.Picture)
}

func TestJWTDecoder_Rejections(t *testing.T) {
	cases := map[string]func(c *profileClaims){
		"expired":        func(c *profileClaims) { c.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Second)) },
		"not yet valid":  func(c *profileClaims) { c.NotBefore = jwt.NewNumericDate(now.Add(time.Hour)) },
		"wrong audience": func(c *profileClaims) { c.Audience = jwt.ClaimStrings{"someone-else"} },
		"wrong issuer":   func(c *profileClaims) { c.Issuer = "https://evil.example.com" },
		"no subject":     func(c *profileClaims) { c.Subject = "" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			claims := validClaims()
			mutate(&claims)

			identity, err := newDecoder(t, clientID).Decode(context.Background(), sign(t, claims))
			assert.Nil(t, identity)
			assert.ErrorIs(t, err, errs.ErrInvalidFederatedToken)
			assert.ErrorIs(t, err, errs.ErrAuth)
		})
	}
}

func TestJWTDecoder_Malformed(t *testing.T) {
	_, err := newDecoder(t, clientID).Decode(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, errs.ErrInvalidFederatedToken)
}

func TestJWTDecoder_NoClientIDSkipsAudience(t *testing.T) {
	claims := validClaims()
	claims.Audience = jwt.ClaimStrings{"anything"}

	_, err := newDecoder(t, "").Decode(context.Background(), sign(t, claims))
	assert.NoError(t, err)
}
