package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedify/backend/internal/infrastructure/config"
)

func newTestIssuer() *TokenIssuer {
	return NewTokenIssuer(&config.AuthConfig{Secret: "0123456789abcdef0123", TokenTTL: time.Hour})
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := newTestIssuer()

	token, expiresAt, err := issuer.Issue("user-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 2*time.Second)

	parsed, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", parsed.UserID)
}

func TestTokenIssuer_RejectsTampering(t *testing.T) {
	issuer := newTestIssuer()
	token, _, err := issuer.Issue("user-1")
	require.NoError(t, err)

	other := NewTokenIssuer(&config.AuthConfig{Secret: "another-secret-value-123"})
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	payload, signature, _ := strings.Cut(token, ".")
	forged, _, err := issuer.Issue("user-2")
	require.NoError(t, err)
	forgedPayload, _, _ := strings.Cut(forged, ".")
	_, err = issuer.Parse(forgedPayload + "." + signature)
	assert.ErrorIs(t, err, ErrInvalidToken)

	for _, bad := range []string{"", "abc", payload, "!!.!!", payload + ".AAAA"} {
		_, err := issuer.Parse(bad)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", bad)
	}
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := newTestIssuer()
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := issuer.Issue("user-1")
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenIssuer_InvalidUserID(t *testing.T) {
	issuer := newTestIssuer()
	_, _, err := issuer.Issue("")
	assert.Error(t, err)
	_, _, err = issuer.Issue("a|b")
	assert.Error(t, err)
}

func TestBcryptHasher(t *testing.T) {
	h := &BcryptHasher{cost: 4}

	hash, err := h.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	ok, err := h.Compare(hash, "secret123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Compare(hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = h.Compare("not-a-hash", "x")
	assert.Error(t, err)
}
