package app

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthassist/backend/internal/api"
	"healthassist/backend/internal/config"
)

func testConfig(apiKey string) *config.Config {
	return &config.Config{
		AppPort:            0,
		AppEnv:             "test",
		APIKey:             apiKey,
		LLMProvider:        "gemini",
		LLMModel:           "gemini-2.5-flash",
		LogLevel:           "DEBUG",
		CORSAllowedOrigins: "*",
		StaticDir:          "./testdata",
		ShutdownTimeout:    time.Second,
	}
}

func TestNewApp(t *testing.T) {
	t.Run("Configured", func(t *testing.T) {
		app, err := NewApp(testConfig("key"), zerolog.Nop())
		require.NoError(t, err)
		require.NotNil(t, app)

		assert.True(t, app.Configured)
		assert.NotNil(t, app.Repo)
		assert.NotNil(t, app.Server)
	})

	t.Run("Missing API key still serves", func(t *testing.T) {
		app, err := NewApp(testConfig(""), zerolog.Nop())
		require.NoError(t, err)
		assert.False(t, app.Configured)

		rr := httptest.NewRecorder()
		app.Server.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))
		require.Equal(t, http.StatusOK, rr.Code)

		var status api.StatusInfo
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
		assert.False(t, status.Configured)
		assert.Equal(t, config.MissingAPIKeyBanner, status.Banner)
	})

	t.Run("Unknown provider", func(t *testing.T) {
		cfg := testConfig("key")
		cfg.LLMProvider = "nope"

		_, err := NewApp(cfg, zerolog.Nop())
		assert.Error(t, err)
	})
}

func TestApp_SignInAndStartChatWithoutKey(t *testing.T) {
	app, err := NewApp(testConfig(""), zerolog.Nop())
	require.NoError(t, err)
	handler := app.Server.Handler

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"john.doe@example.com","password":"secret"}`)))
	require.Equal(t, http.StatusOK, rr.Code)

	var session api.SessionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &session))
	require.NotEmpty(t, session.SessionID)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", nil)
	req.Header.Set(api.SessionHeader, session.SessionID)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), config.MissingAPIKeyBanner)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestApp_Serve(t *testing.T) {
	app, err := NewApp(testConfig(""), zerolog.Nop())
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestNewLogger(t *testing.T) {
	cfg := testConfig("")
	cfg.LogLevel = "WARN"
	assert.Equal(t, zerolog.WarnLevel, newLogger(cfg).GetLevel())

	cfg.LogLevel = "bogus"
	assert.Equal(t, zerolog.InfoLevel, newLogger(cfg).GetLevel())
}
