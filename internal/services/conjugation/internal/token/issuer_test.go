package token

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gamma-omg/lexi-conjugation/internal/pkg/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer(t *testing.T) {
	issuer := NewIssuer(IssuerConfig{Secret: []byte("test_secret"), TTL: time.Hour})

	tk, err := issuer.Issue("admin")
	require.NoError(t, err)

	var claims jwt.RegisteredClaims
	_, err = jwt.ParseWithClaims(tk, &claims, func(t *jwt.Token) (any, error) {
		return []byte("test_secret"), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	require.NoError(t, err)

	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, "conjugation", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestIssuer_NoTTL(t *testing.T) {
	issuer := NewIssuer(IssuerConfig{Secret: []byte("test_secret"), Issuer: "ops"})

	tk, err := issuer.Issue("admin")
	require.NoError(t, err)

	var claims jwt.RegisteredClaims
	_, err = jwt.ParseWithClaims(tk, &claims, func(t *jwt.Token) (any, error) {
		return []byte("test_secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Issuer)
	assert.Nil(t, claims.ExpiresAt)
}

func TestIssuer_Expired(t *testing.T) {
	issuer := NewIssuer(IssuerConfig{Secret: []byte("test_secret"), TTL: time.Minute})
	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }

	tk, err := issuer.Issue("admin")
	require.NoError(t, err)

	_, err = jwt.Parse(tk, func(t *jwt.Token) (any, error) {
		return []byte("test_secret"), nil
	})
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestIssuer_EmptySubject(t *testing.T) {
	_, err := NewIssuer(IssuerConfig{Secret: []byte("test_secret")}).Issue("")
	assert.Error(t, err)
}

func TestIssuer_AcceptedByAuth(t *testing.T) {
	secret := []byte("test_secret")
	tk, err := NewIssuer(IssuerConfig{Secret: secret, TTL: time.Hour}).Issue("admin")
	require.NoError(t, err)

	var subject string
	h := middleware.Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject = middleware.SubjectFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPut, "/verbs", nil)
	req.Header.Set("Authorization", "Bearer "+tk)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", subject)
}
