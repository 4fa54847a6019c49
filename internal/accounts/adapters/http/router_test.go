package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	httpadapter "goaccounts/internal/accounts/adapters/http"
	"goaccounts/internal/accounts/adapters/http/middleware"
	"goaccounts/internal/accounts/adapters/memory"
	"goaccounts/internal/accounts/adapters/services"
	"goaccounts/internal/accounts/app"
	"goaccounts/internal/accounts/metrics"
)

const testSecret = "router-secret"

type testServer struct {
	app    *fiber.App
	health error
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	passwords := services.NewBcrypt(bcrypt.MinCost)
	tokens := services.NewJWT(testSecret)
	repo := memory.NewAccountRepository(passwords)
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	srv := &testServer{app: fiber.New()}
	httpadapter.SetupRouter(srv.app, httpadapter.Dependencies{
		Registration:   metrics.InstrumentRegistration(app.NewRegistrationUseCase(repo, tokens, ""), m),
		Authentication: metrics.InstrumentAuthentication(app.NewAuthenticationUseCase(repo, passwords, tokens), m),
		Accounts:       metrics.InstrumentAccount(app.NewAccountUseCase(repo, nil), m),
		Gatherer:       reg,
		Health: func(context.Context) error {
			return srv.health
		},
	})
	return srv
}

func (s *testServer) do(t *testing.T, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

const adaRegistration = `{"name":"Ada","email":"ada@example.com","password":"secret1","avatar":{"seed":"ada"}}`

func TestRegisterLoginLookup(t *testing.T) {
	srv := newTestServer(t)

	resp, body := srv.do(t, http.MethodPost, "/api/v1/accounts", adaRegistration)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.HeaderRequestID))
	assert.Equal(t, "success", body["status"])
	assert.NotEmpty(t, body["token"])
	avatar, ok := body["avatar"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "https://api.dicebear.com/6.x/adventurer/svg?seed=ada", avatar["url"])

	id, ok := body["id"].(string)
	require.True(t, ok)

	resp, body = srv.do(t, http.MethodPost, "/api/v1/sessions", `{"email":"ada@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, id, body["id"])
	assert.Equal(t, "success", body["status"])

	resp, body = srv.do(t, http.MethodGet, "/api/v1/accounts/"+id, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ada", body["name"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "password_hash")
	assert.NotContains(t, body, "PasswordHash")
}

func TestFailureStatusCodes(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := srv.do(t, http.MethodPost, "/api/v1/accounts", adaRegistration)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		status  int
		kind    string
		message string
		source  string
	}{
		{
			name:    "validation",
			method:  http.MethodPost,
			path:    "/api/v1/accounts",
			body:    `{"name":"","email":"","password":""}`,
			status:  http.StatusBadRequest,
			kind:    "ValidationFailed",
			message: "Name is required, Email is required, Email format is invalid, Password is required, Password required min 6 characters",
			source:  app.SourceRegistration,
		},
		{
			name:    "already exists",
			method:  http.MethodPost,
			path:    "/api/v1/accounts",
			body:    adaRegistration,
			status:  http.StatusBadRequest,
			kind:    "AccountAlreadyExists",
			message: "Account already exists",
			source:  app.SourceRegistration,
		},
		{
			name:    "wrong password",
			method:  http.MethodPost,
			path:    "/api/v1/sessions",
			body:    `{"email":"ada@example.com","password":"nope"}`,
			status:  http.StatusUnauthorized,
			kind:    "InvalidCredentials",
			message: "Email or password is incorrect",
			source:  app.SourceLogin,
		},
		{
			name:    "unknown email",
			method:  http.MethodPost,
			path:    "/api/v1/sessions",
			body:    `{"email":"nobody@example.com","password":"secret1"}`,
			status:  http.StatusUnauthorized,
			kind:    "InvalidCredentials",
			message: "Email or password is incorrect",
			source:  app.SourceLogin,
		},
		{
			name:    "unknown account",
			method:  http.MethodGet,
			path:    "/api/v1/accounts/missing",
			status:  http.StatusNotFound,
			kind:    "AccountNotFound",
			message: "Account not found",
			source:  app.SourceGetAccount,
		},
		{
			name:    "malformed json",
			method:  http.MethodPost,
			path:    "/api/v1/sessions",
			body:    `{"email":`,
			status:  http.StatusBadRequest,
			message: "invalid request",
		},
		{
			name:    "unknown route",
			method:  http.MethodGet,
			path:    "/nope",
			status:  http.StatusNotFound,
			message: "Route not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := srv.do(t, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.message, body["error"])
			if tt.kind != "" {
				assert.Equal(t, tt.kind, body["kind"])
				assert.Equal(t, tt.source, body["source"])
			}
		})
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, body := srv.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, httpadapter.HealthOK, body["status"])

	srv.health = errors.New("database unreachable")

	resp, body = srv.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, httpadapter.HealthUnavailable, body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	srv.do(t, http.MethodPost, "/api/v1/sessions", `{"email":"nobody@example.com","password":"secret1"}`)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := srv.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `accounts_workflow_total{outcome="InvalidCredentials",workflow="login"} 1`)
}
