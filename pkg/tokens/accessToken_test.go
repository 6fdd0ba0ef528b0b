package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := []byte("secret")
	tok, err := NewAccessToken(42, "seller", time.Minute, secret)
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "seller", claims.Role)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestAccessTokenRejects(t *testing.T) {
	secret := []byte("secret")

	expired, err := NewAccessToken(1, "user", -time.Minute, secret)
	require.NoError(t, err)
	_, err = AccessClaimsFromToken(expired, secret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	good, err := NewAccessToken(1, "user", time.Minute, secret)
	require.NoError(t, err)
	_, err = AccessClaimsFromToken(good, []byte("other"))
	assert.Error(t, err)

	c := &AccessClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "abc"}}
	_, err = c.UserID()
	assert.Error(t, err)
}
