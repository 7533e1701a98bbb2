package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	httperrors "github.com/yoonseo-dev/tinytunes/pkg/http/errors"
)

var (
	ErrInvalidSession = errors.New("invalid admin session")
	ErrExpiredSession = errors.New("expired admin session")
)

// AdminClaims identify an authenticated admin session.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AdminTokenManager issues and validates admin session tokens.
type AdminTokenManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func NewAdminTokenManager(secret []byte, ttl time.Duration, issuer string) *AdminTokenManager {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &AdminTokenManager{secret: secret, ttl: ttl, issuer: issuer}
}

// Generate creates a signed admin session token.
func (m *AdminTokenManager) Generate() (string, error) {
	now := time.Now()
	claims := AdminClaims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   "admin",
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate parses a session token and checks its signature and expiry.
func (m *AdminTokenManager) Validate(tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredSession
		}
		return nil, ErrInvalidSession
	}
	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid || claims.Role != "admin" {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// AdminHandlers exposes admin authentication over REST.
type AdminHandlers struct {
	passwordHash []byte
	tokens       *AdminTokenManager
	logger       zerolog.Logger
}

func NewAdminHandlers(passwordHash string, tokens *AdminTokenManager, logger zerolog.Logger) *AdminHandlers {
	return &AdminHandlers{
		passwordHash: []byte(passwordHash),
		tokens:       tokens,
		logger:       logger.With().Str("component", "admin_auth").Logger(),
	}
}

// LoginRequest is the body for POST /v1/admin/auth/login.
type LoginRequest struct {
	Password string `json:"password"`
}

// HandleLogin checks the admin password and issues a session token.
func (h *AdminHandlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeInvalidRequest, "Method not allowed")
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.Password == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "password is required", "password")
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(req.Password)); err != nil {
		h.logger.Warn().Msg("admin login rejected")
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeLoginFailed, "Invalid password")
		return
	}

	token, err := h.tokens.Generate()
	if err != nil {
		h.logger.Error().Err(err).Msg("admin session issuance failed")
		httperrors.RespondInternalError(w, "Failed to create session")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"accessToken": token,
		"expiresIn":   int(h.tokens.ttl.Seconds()),
	})
}
