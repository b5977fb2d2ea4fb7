//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/doctrkr-backend/internal/adapter/postgres/testhelper"
	userrepo "github.com/heartmarshall/doctrkr-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/doctrkr-backend/internal/app"
	"github.com/heartmarshall/doctrkr-backend/internal/config"
	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

const (
	apiPrefix    = "/api/v1"
	testPassword = "correct-horse-battery"
)

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{APIPrefix: apiPrefix},
		Auth: config.AuthConfig{
			JWTSecret:  "test-secret-at-least-32-chars-long!!",
			JWTIssuer:  "doctrkr-test",
			TokenTTL:   time.Hour,
			BcryptCost: bcrypt.MinCost,
		},
		Storage: config.StorageConfig{
			Driver:         "local",
			LocalDir:       t.TempDir(),
			PublicBaseURL:  "/uploads",
			MaxUploadBytes: 1 << 20,
		},
		Public:     config.PublicConfig{BaseURL: "http://localhost:5173", RatePerMinute: 1000},
		Recipients: config.RecipientsConfig{MaxListingNo: 1000},
		Activity:   config.ActivityConfig{RetentionDays: 90},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type,X-Request-Id",
			MaxAge:         600,
		},
		RateLimit: config.RateLimitConfig{AuthPerMinute: 1000, CleanupInterval: time.Minute},
	}
}

// setupTestServer runs the full application against the shared
// testcontainers database.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, &slog.HandlerOptions{Level: slog.LevelWarn}))

	srv, err := app.NewServer(context.Background(), testConfig(t), pool, logger)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
	})

	return &testServer{URL: ts.URL, Client: ts.Client(), Pool: pool}
}

// createUser inserts a user with testPassword directly through the repository.
func createUser(t *testing.T, ts *testServer, role domain.Role, recipientID *uuid.UUID) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	name := "u" + uuid.NewString()[:12]
	u, err := userrepo.New(ts.Pool).Create(context.Background(), &domain.User{
		Username:     name,
		Email:        name + "@example.com",
		Fullname:     "Test " + string(role),
		PasswordHash: string(hash),
		Role:         role,
		RecipientID:  recipientID,
	})
	require.NoError(t, err)
	return u
}

// loginAs creates a user with the given role and returns its bearer token.
func loginAs(t *testing.T, ts *testServer, role domain.Role, recipientID *uuid.UUID) string {
	t.Helper()

	u := createUser(t, ts, role, recipientID)
	status, body := ts.do(t, http.MethodPost, "/auth/login", map[string]any{
		"username": u.Username,
		"password": testPassword,
	}, "")
	require.Equal(t, http.StatusOK, status, "login failed: %v", body)

	token, ok := body["token"].(string)
	require.True(t, ok, "expected token in login response")
	return token
}

// do sends a JSON request under the API prefix and decodes an object body.
func (ts *testServer) do(t *testing.T, method, path string, payload any, token string) (int, map[string]any) {
	t.Helper()

	status, raw := ts.doRaw(t, method, path, payload, token)
	var body map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body), "body: %s", raw)
	}
	return status, body
}

// doList is do for endpoints returning a bare JSON array.
func (ts *testServer) doList(t *testing.T, method, path string, token string) (int, []any) {
	t.Helper()

	status, raw := ts.doRaw(t, method, path, nil, token)
	var body []any
	if status == http.StatusOK {
		require.NoError(t, json.Unmarshal(raw, &body), "body: %s", raw)
	}
	return status, body
}

func (ts *testServer) doRaw(t *testing.T, method, path string, payload any, token string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL+apiPrefix+path, reader)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

// createRecipient creates an office through the API and returns its code.
func createRecipient(t *testing.T, ts *testServer, token, name string) uuid.UUID {
	t.Helper()

	status, body := ts.do(t, http.MethodPost, "/recipients", map[string]any{
		"recipientName": name + " " + uuid.NewString()[:8],
		"initial":       "RX",
	}, token)
	require.Equal(t, http.StatusCreated, status, "create recipient: %v", body)

	code, err := uuid.Parse(body["recipientCode"].(string))
	require.NoError(t, err)
	return code
}

// createTracker creates a tracker routed to the given recipients.
func createTracker(t *testing.T, ts *testServer, token string, confidential bool, recipients ...uuid.UUID) map[string]any {
	t.Helper()

	status, body := ts.do(t, http.MethodPost, "/trackers", map[string]any{
		"fromName":       "Provincial Office",
		"documentTitle":  "Budget request FY2026",
		"dateReceived":   "2026-03-09",
		"isConfidential": confidential,
		"recipientIds":   recipients,
	}, token)
	require.Equal(t, http.StatusCreated, status, "create tracker: %v", body)
	return body
}

func errorMessage(body map[string]any) string {
	msg, _ := body["error"].(string)
	return msg
}
