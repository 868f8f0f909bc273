package server

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/GriffinCanCode/AgentOS/filesystem/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/filesystem/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/filesystem/internal/infrastructure/tracing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	return newTestServerWith(t, func(*config.Config) {})
}

// newTestServerWith lets a test adjust the default config before the server
// is built. The allowed root is a fresh temp directory.
func newTestServerWith(t *testing.T, adjust func(*config.Config)) (*Server, string) {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Filesystem.AllowedPaths = []string{root}
	adjust(cfg)

	srv, err := NewServer(cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	return srv, root
}

func TestNewServerRequiresRoots(t *testing.T) {
	cfg := config.Default()
	cfg.Filesystem.AllowedPaths = nil

	_, err := NewServer(cfg, logging.NewNop())
	assert.Error(t, err)
}

func TestServerRoutes(t *testing.T) {
	srv, root := newTestServer(t)
	assert.Equal(t, []string{root}, srv.Sandbox().Roots())

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)
	assert.NotEmpty(t, w.Header().Get(tracing.RequestIDHeader))
}

func TestServerMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fsserver_http_requests_total")
}

func TestServerCompressesLargeResponses(t *testing.T) {
	srv, root := newTestServer(t)
	path := filepath.Join(root, "big.txt")
	content := strings.Repeat("compressible ", 1024)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	body, err := json.Marshal(map[string]string{"path": path})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/read-file", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	raw, err := io.ReadAll(zr)
	require.NoError(t, err)

	var out struct {
		Content string `json:"content"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, content, out.Content)
}

func TestServerDeniesEscapes(t *testing.T) {
	srv, root := newTestServer(t)

	body, err := json.Marshal(map[string]string{"path": filepath.Join(root, "..")})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/file-info", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"denied"`)
}

func TestNewServerBuildsLoggerFromConfig(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Filesystem.AllowedPaths = []string{root}
	cfg.Logging.Level = "error"

	srv, err := NewServer(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	assert.False(t, srv.logger.Core().Enabled(zapcore.WarnLevel))

	cfg.Logging.Level = "verbose"
	_, err = NewServer(cfg, nil)
	assert.Error(t, err)
}

func TestServerRunAndShutdownConcurrently(t *testing.T) {
	srv, _ := newTestServerWith(t, func(cfg *config.Config) {
		cfg.Server.Host = "127.0.0.1"
		cfg.Server.Port = "0"
	})

	done := make(chan error, 1)
	go func() { done <- srv.Run() }()

	require.NoError(t, srv.Shutdown(context.Background()))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
}

func TestServerShutdownBeforeRun(t *testing.T) {
	srv, _ := newTestServerWith(t, func(cfg *config.Config) {
		cfg.Server.Host = "127.0.0.1"
		cfg.Server.Port = "0"
	})

	require.NoError(t, srv.Shutdown(context.Background()))
	assert.NoError(t, srv.Run())
}

func TestServerGlobalRateLimit(t *testing.T) {
	srv, _ := newTestServerWith(t, func(cfg *config.Config) {
		cfg.RateLimit.Enabled = true
		cfg.RateLimit.RequestsPerSecond = 1000
		cfg.RateLimit.Burst = 1000
		cfg.RateLimit.GlobalRequestsPerSecond = 1
		cfg.RateLimit.GlobalBurst = 1
	})
	h := srv.Handler()

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	h.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)

	// a different client still hits the shared bucket
	second := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	h.ServeHTTP(second, req)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), `"kind":"rate_limited"`)
}
