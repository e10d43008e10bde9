package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTer(ttl time.Duration) *JWTer {
	return &JWTer{Secret: []byte("test-secret"), Issuer: "microblog", TTL: ttl}
}

func TestIssueAndParse(t *testing.T) {
	j := newJWTer(time.Hour)

	tok, err := j.Issue("u1", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "microblog", claims.Issuer)
}

func TestParseExpired(t *testing.T) {
	// TTL 为负且超过 60s leeway
	j := newJWTer(-2 * time.Minute)
	tok, err := j.Issue("u1", "user")
	require.NoError(t, err)

	_, err = j.Parse(tok)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestParseTampered(t *testing.T) {
	j := newJWTer(time.Hour)
	tok, err := j.Issue("u1", "user")
	require.NoError(t, err)

	// 改签名最后一位
	mutated := tok[:len(tok)-1]
	if tok[len(tok)-1] == 'A' {
		mutated += "B"
	} else {
		mutated += "A"
	}
	_, err = j.Parse(mutated)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseWrongSecret(t *testing.T) {
	j := newJWTer(time.Hour)
	tok, err := j.Issue("u1", "user")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("other-secret"), Issuer: "microblog", TTL: time.Hour}
	_, err = other.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseWrongIssuer(t *testing.T) {
	j := newJWTer(time.Hour)
	tok, err := j.Issue("u1", "user")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("test-secret"), Issuer: "someone-else", TTL: time.Hour}
	_, err = other.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	j := newJWTer(time.Hour)
	_, err := j.Parse("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
