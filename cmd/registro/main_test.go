package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/registro/internal/db"
)

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-a", ":9000", "-db", "test.sqlite3", "-l", "out.log"})
	require.NoError(t, err)
	assert.Equal(t, ":9000", opts.addr)
	assert.Equal(t, "test.sqlite3", opts.dsn)
	assert.Equal(t, "out.log", opts.logPath)
	assert.Empty(t, opts.configPath)

	_, err = parseFlags([]string{"serve"})
	assert.Error(t, err)
}

func TestLoadConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registro.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":7000\"\ndatabase:\n  dsn: file.sqlite3\n"), 0o600))

	t.Setenv("REGISTRO_DB_DSN", "env.sqlite3")

	cfg, err := loadConfig(options{configPath: path})
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "env.sqlite3", cfg.Database.DSN)

	cfg, err = loadConfig(options{configPath: path, addr: ":8000", dsn: "flag.sqlite3"})
	require.NoError(t, err)
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, "flag.sqlite3", cfg.Database.DSN)

	t.Setenv("REGISTRO_DB_DRIVER", "mysql")
	_, err = loadConfig(options{})
	assert.Error(t, err)
}

func TestSetupLoggerWritesFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "registro.log")
	closeLog, err := setupLogger(path)
	require.NoError(t, err)
	require.NotNil(t, closeLog)

	slog.Info("hello from test")
	slog.Error("failure from test")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.Contains(t, string(data), "failure from test")
}

func TestHandler(t *testing.T) {
	database := db.NewTestDB(t)
	handler, err := newHandler(resources(database, db.DriverSQLite, time.UTC), time.UTC)
	require.NoError(t, err)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp, err = http.Post(server.URL+"/api/user/create", "application/json",
		strings.NewReader(`{"name":"Ana","surname":"Soto","amount":10,"country":"CO","agentType":"YAPE"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(server.URL + "/users")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Ana")

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL+"/api/item/nope", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
