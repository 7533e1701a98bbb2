package user

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	mgr := NewAdminTokenManager([]byte("test-secret"), time.Hour, "tinytunes")

	token, err := mgr.Generate()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := mgr.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "tinytunes", claims.Issuer)
}

func TestAdminTokenWrongSecret(t *testing.T) {
	token, err := NewAdminTokenManager([]byte("secret-a"), time.Hour, "tinytunes").Generate()
	require.NoError(t, err)

	_, err = NewAdminTokenManager([]byte("secret-b"), time.Hour, "tinytunes").Validate(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestAdminTokenExpired(t *testing.T) {
	mgr := &AdminTokenManager{secret: []byte("test-secret"), ttl: -time.Minute, issuer: "tinytunes"}

	token, err := mgr.Generate()
	require.NoError(t, err)

	_, err = mgr.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredSession)
}

func TestAdminTokenGarbage(t *testing.T) {
	mgr := NewAdminTokenManager([]byte("test-secret"), time.Hour, "tinytunes")

	_, err := mgr.Validate("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestHandleLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	mgr := NewAdminTokenManager([]byte("test-secret"), time.Hour, "tinytunes")
	handlers := NewAdminHandlers(string(hash), mgr, zerolog.Nop())

	t.Run("valid password issues a session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/auth/login", strings.NewReader(`{"password":"correct horse"}`))
		rec := httptest.NewRecorder()
		handlers.HandleLogin(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "accessToken")
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/auth/login", strings.NewReader(`{"password":"battery staple"}`))
		rec := httptest.NewRecorder()
		handlers.HandleLogin(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing password is a validation error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/auth/login", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		handlers.HandleLogin(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
