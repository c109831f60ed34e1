package auth

import (
	"context"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/conference-registration-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleLogin(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", AdminPassword: "s3cret"}
	handler := NewAuthHandler(cfg, nil)

	t.Run("ValidPassword", func(t *testing.T) {
		input := &LoginRequest{}
		input.Body.Password = "s3cret"

		resp, err := handler.HandleLogin(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, CookieName, resp.SetCookie.Name)
		assert.True(t, resp.SetCookie.HttpOnly)
		assert.Equal(t, resp.Body.Token, resp.SetCookie.Value)

		_, err = handler.ParseToken(resp.Body.Token)
		assert.NoError(t, err)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		input := &LoginRequest{}
		input.Body.Password = "nope"

		_, err := handler.HandleLogin(context.Background(), input)
		require.Error(t, err)

		var se huma.StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, 401, se.GetStatus())
		assert.Contains(t, err.Error(), MsgInvalidPassword)
	})
}

func TestHandleLogin_NotConfigured(t *testing.T) {
	handler := NewAuthHandler(&config.Config{}, nil)

	input := &LoginRequest{}
	input.Body.Password = "anything"
	_, err := handler.HandleLogin(context.Background(), input)
	require.Error(t, err)
}

func TestAuthorize(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", AdminPassword: "s3cret"}
	handler := NewAuthHandler(cfg, nil)

	token, err := handler.GenerateToken()
	require.NoError(t, err)

	t.Run("Cookie", func(t *testing.T) {
		assert.NoError(t, handler.Authorize(context.Background(), AuthInput{Cookie: "theme=dark; auth_token=" + token}))
	})

	t.Run("Bearer", func(t *testing.T) {
		assert.NoError(t, handler.Authorize(context.Background(), AuthInput{Authorization: "Bearer " + token}))
	})

	t.Run("Missing", func(t *testing.T) {
		err := handler.Authorize(context.Background(), AuthInput{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), MsgNoSession)
	})

	t.Run("Expired", func(t *testing.T) {
		expired := signedToken(t, cfg.JWTSecret, "admin", -time.Minute)
		assert.Error(t, handler.Authorize(context.Background(), AuthInput{Authorization: "Bearer " + expired}))
	})

	t.Run("WrongSubject", func(t *testing.T) {
		other := signedToken(t, cfg.JWTSecret, "someone", time.Hour)
		assert.Error(t, handler.Authorize(context.Background(), AuthInput{Authorization: "Bearer " + other}))
	})

	t.Run("Disabled", func(t *testing.T) {
		open := NewAuthHandler(&config.Config{}, nil)
		assert.NoError(t, open.Authorize(context.Background(), AuthInput{}))
	})
}
