package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(t *testing.T, remoteAddr, userAgent string) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", nil)
	req.RemoteAddr = remoteAddr
	req.Header.Set("User-Agent", userAgent)

	return req
}

func TestHashSource_Deterministic(t *testing.T) {
	source := NewHashSource("salt")

	first, err := source.Identify(newRequest(t, "203.0.113.7:51234", "Mozilla/5.0"))
	require.NoError(t, err)

	second, err := source.Identify(newRequest(t, "203.0.113.7:9999", "Mozilla/5.0"))
	require.NoError(t, err)

	// port must not affect the identifier
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestHashSource_DistinguishesClients(t *testing.T) {
	source := NewHashSource("salt")

	base, err := source.Identify(newRequest(t, "203.0.113.7:51234", "Mozilla/5.0"))
	require.NoError(t, err)

	otherIP, err := source.Identify(newRequest(t, "203.0.113.8:51234", "Mozilla/5.0"))
	require.NoError(t, err)

	otherAgent, err := source.Identify(newRequest(t, "203.0.113.7:51234", "curl/8.0"))
	require.NoError(t, err)

	assert.NotEqual(t, base, otherIP)
	assert.NotEqual(t, base, otherAgent)
}

func TestHashSource_SaltChangesIdentifier(t *testing.T) {
	first, err := NewHashSource("salt-a").Identify(newRequest(t, "203.0.113.7:51234", "Mozilla/5.0"))
	require.NoError(t, err)

	second, err := NewHashSource("salt-b").Identify(newRequest(t, "203.0.113.7:51234", "Mozilla/5.0"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHashSource_PrefersForwardedFor(t *testing.T) {
	source := NewHashSource("salt")

	direct, err := source.Identify(newRequest(t, "203.0.113.7:51234", "Mozilla/5.0"))
	require.NoError(t, err)

	proxied := newRequest(t, "10.0.0.1:51234", "Mozilla/5.0")
	proxied.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	viaProxy, err := source.Identify(proxied)
	require.NoError(t, err)

	// the first forwarded hop is the client, so both must hash identically
	assert.Equal(t, direct, viaProxy)
}

func signedToken(t *testing.T, secret, subject string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}

func TestTokenSource_ValidToken(t *testing.T) {
	source := NewTokenSource("test-secret")

	req := newRequest(t, "203.0.113.7:51234", "Mozilla/5.0")
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "test-secret", "user-42"))

	id, err := source.Identify(req)
	require.NoError(t, err)
	assert.Equal(t, "user-42", id)
}

func TestTokenSource_MissingToken(t *testing.T) {
	source := NewTokenSource("test-secret")

	_, err := source.Identify(newRequest(t, "203.0.113.7:51234", "Mozilla/5.0"))
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestTokenSource_WrongSecret(t *testing.T) {
	source := NewTokenSource("test-secret")

	req := newRequest(t, "203.0.113.7:51234", "Mozilla/5.0")
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "other-secret", "user-42"))

	_, err := source.Identify(req)
	assert.Error(t, err)
}

func TestTokenSource_MalformedHeader(t *testing.T) {
	source := NewTokenSource("test-secret")

	req := newRequest(t, "203.0.113.7:51234", "Mozilla/5.0")
	req.Header.Set("Authorization", "Token abc123")

	_, err := source.Identify(req)
	assert.ErrorIs(t, err, ErrNoToken)
}
