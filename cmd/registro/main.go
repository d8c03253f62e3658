package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/erazemk/registro/internal/api"
	"github.com/erazemk/registro/internal/config"
	"github.com/erazemk/registro/internal/db"
	"github.com/erazemk/registro/internal/model"
	"github.com/erazemk/registro/internal/record"
	"github.com/erazemk/registro/internal/store"
	"github.com/erazemk/registro/internal/web"
)

// levelRouter is a slog.Handler that routes INFO/WARN to stdout and ERROR+ to stderr.
type levelRouter struct {
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// setupLogger configures structured logging. INFO/WARN go to stdout, ERROR goes
// to stderr. If logPath is non-empty, all levels are also written to that file.
// Returns a cleanup function that closes the log file (if opened).
func setupLogger(logPath string) (func(), error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var cleanup func()

	stdoutW := io.Writer(os.Stdout)
	stderrW := io.Writer(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(os.Stdout, f)
		stderrW = io.MultiWriter(os.Stderr, f)
	}

	handler := &levelRouter{
		stdout: slog.NewTextHandler(stdoutW, opts),
		stderr: slog.NewTextHandler(stderrW, opts),
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}

// options holds the command-line flags. Empty values leave the file and
// environment settings untouched.
type options struct {
	configPath string
	envFile    string
	addr       string
	dsn        string
	logPath    string
}

func parseFlags(args []string) (options, error) {
	fs := flag.NewFlagSet("registro", flag.ContinueOnError)

	var opts options
	fs.StringVar(&opts.configPath, "config", "", "")
	fs.StringVar(&opts.configPath, "c", "", "")
	fs.StringVar(&opts.envFile, "env", ".env", "")
	fs.StringVar(&opts.envFile, "e", ".env", "")
	fs.StringVar(&opts.addr, "addr", "", "")
	fs.StringVar(&opts.addr, "a", "", "")
	fs.StringVar(&opts.dsn, "db", "", "")
	fs.StringVar(&opts.dsn, "d", "", "")
	fs.StringVar(&opts.logPath, "log", "", "")
	fs.StringVar(&opts.logPath, "l", "", "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: registro [flags]

Flags:
  -c, -config <path>      YAML config file (default: none)
  -e, -env <path>         dotenv file, skipped if missing (default: .env)
  -a, -addr <host:port>   listen address (default: :3000)
  -d, -db <dsn>           database path or connection string (default: registro.sqlite3)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -h, -help               show this help and exit

Environment:
  REGISTRO_ADDR, REGISTRO_DB_DRIVER, REGISTRO_DB_DSN, REGISTRO_TIMEZONE, REGISTRO_LOG,
  PORT, DATABASE_URL
`)
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return opts, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}
	return opts, nil
}

// loadConfig merges defaults, the optional config file, the environment
// (including the dotenv file) and the flags, in that order.
func loadConfig(opts options) (config.Config, error) {
	cfg := config.Default()
	if opts.envFile != "" {
		if err := config.LoadEnvFile(opts.envFile); err != nil {
			return cfg, err
		}
	}
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return cfg, err
		}
	}
	cfg.ApplyEnv()

	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	if opts.dsn != "" {
		cfg.Database.DSN = opts.dsn
	}
	if opts.logPath != "" {
		cfg.Log.Path = opts.logPath
	}

	return cfg, cfg.Validate()
}

// resources builds one service per record kind over database.
func resources(database *sql.DB, driver string, loc *time.Location) []api.Resource {
	var res []api.Resource
	for _, kind := range model.Kinds {
		svc := record.NewService(store.NewRecords(database, driver, kind.Table), loc)
		res = append(res, api.Resource{Kind: kind, Service: svc})
	}
	return res
}

// newHandler combines the API, the admin pages and the health check behind
// the request logger.
func newHandler(res []api.Resource, loc *time.Location) (http.Handler, error) {
	webRouter, err := web.NewRouter(loc, res...)
	if err != nil {
		return nil, fmt.Errorf("setting up web router: %w", err)
	}

	// API routes take priority, web routes handle the rest.
	mux := http.NewServeMux()
	mux.Handle("/api/", api.NewRouter(res...))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, "ok")
	})
	mux.Handle("/", webRouter)

	return api.LoggingMiddleware(mux), nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	closeLog, err := setupLogger(cfg.Log.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if closeLog != nil {
		defer closeLog()
	}

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("invalid timezone", "error", err)
		os.Exit(1)
	}

	database, err := db.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		slog.Error("failed to open database", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer database.Close()

	// Ensure schema exists (idempotent).
	if err := db.EnsureSchema(database, cfg.Database.Driver); err != nil {
		slog.Error("failed to ensure database schema", "error", err)
		os.Exit(1)
	}

	slog.Info("database ready", "driver", cfg.Database.Driver)

	handler, err := newHandler(resources(database, cfg.Database.Driver, loc), loc)
	if err != nil {
		slog.Error("failed to set up routes", "error", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", cfg.Server.Addr, "timezone", loc.String())
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped, closing database")
}
