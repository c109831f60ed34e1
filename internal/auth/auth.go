package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/conference-registration-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName    = "auth_token"
	TokenDuration = 24 * time.Hour
	adminSubject  = "admin"
)

// Client-facing messages.
const (
	MsgLoginDisabled   = "connexion administrateur non configurée"
	MsgInvalidPassword = "mot de passe invalide"
	MsgTokenFailure    = "impossible de créer la session"
	MsgNoSession       = "authentification requise"
	MsgInvalidSession  = "session invalide ou expirée"
)

var ErrUnauthorized = errors.New("unauthorized")

type AuthHandler struct {
	cfg    *config.Config
	logger *slog.Logger
}

func NewAuthHandler(cfg *config.Config, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{cfg: cfg, logger: logger}
}

// Enabled reports whether admin routes require a session. Without an admin
// password they are open, which is only meant for local development.
func (h *AuthHandler) Enabled() bool {
	return h.cfg.AdminPassword != ""
}

// AuthInput carries the credentials huma operations authorize against.
type AuthInput struct {
	Cookie        string `header:"Cookie"`
	Authorization string `header:"Authorization"`
}

type LoginRequest struct {
	Body struct {
		Password string `json:"password" doc:"Admin password" minLength:"1"`
	}
}

type LoginResponse struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
}

func (h *AuthHandler) HandleLogin(ctx context.Context, input *LoginRequest) (*LoginResponse, error) {
	if !h.Enabled() {
		return nil, huma.Error404NotFound(MsgLoginDisabled)
	}
	if subtle.ConstantTimeCompare([]byte(input.Body.Password), []byte(h.cfg.AdminPassword)) != 1 {
		h.logger.WarnContext(ctx, "admin login failed")
		return nil, huma.Error401Unauthorized(MsgInvalidPassword)
	}

	token, err := h.GenerateToken()
	if err != nil {
		return nil, huma.Error500InternalServerError(MsgTokenFailure)
	}

	res := &LoginResponse{SetCookie: h.sessionCookie(token)}
	res.Body.Message = "Connexion réussie"
	res.Body.Token = token
	return res, nil
}

// Authorize checks the bearer token or the session cookie.
func (h *AuthHandler) Authorize(ctx context.Context, input AuthInput) error {
	if !h.Enabled() {
		return nil
	}

	tokenString := bearerToken(input.Authorization)
	if tokenString == "" {
		tokenString = cookieValue(input.Cookie)
	}
	if tokenString == "" {
		return huma.Error401Unauthorized(MsgNoSession)
	}

	if _, err := h.ParseToken(tokenString); err != nil {
		h.logger.WarnContext(ctx, "admin token rejected", "error", err)
		return huma.Error401Unauthorized(MsgInvalidSession)
	}
	return nil
}

func (h *AuthHandler) GenerateToken() (string, error) {
	claims := jwt.MapClaims{
		"sub": adminSubject,
		"exp": time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// ParseToken validates signature, expiry and subject and returns the claims.
func (h *AuthHandler) ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrUnauthorized
	}
	if sub, _ := claims.GetSubject(); sub != adminSubject {
		return nil, ErrUnauthorized
	}
	return claims, nil
}

func (h *AuthHandler) sessionCookie(token string) http.Cookie {
	return http.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  time.Now().Add(TokenDuration),
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	}
}

func bearerToken(header string) string {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

func cookieValue(header string) string {
	if header == "" {
		return ""
	}
	cookies, err := http.ParseCookie(header)
	if err != nil {
		return ""
	}
	for _, c := range cookies {
		if c.Name == CookieName {
			return c.Value
		}
	}
	return ""
}
