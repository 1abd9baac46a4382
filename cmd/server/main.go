package main

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/justinas/nosurf"
	"github.com/spf13/pflag"

	"css-layout-builder/internal/catalog"
	"css-layout-builder/internal/config"
	"css-layout-builder/internal/editor"
	"css-layout-builder/internal/history"
	"css-layout-builder/internal/library"
	"css-layout-builder/internal/storage"
	"css-layout-builder/internal/templating"
	"css-layout-builder/web"
)

// application holds the application-wide dependencies for the editor server.
type application struct {
	logger        *slog.Logger
	cfg           *config.Config
	catalog       *catalog.Catalog
	library       *library.Manager
	preview       *templating.Engine
	templateCache map[string]*template.Template

	// mu guards session; the server edits one timeline.
	mu      sync.Mutex
	session *editor.Session
}

var functions = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

// newTemplateCache parses every page together with layout.html. Pages define
// the "content" block that layout.html renders.
func newTemplateCache() (map[string]*template.Template, error) {
	cache := map[string]*template.Template{}

	pages := []string{
		"editor.html",
		"library.html",
	}
	for _, page := range pages {
		ts, err := template.New("layout.html").Funcs(functions).ParseFS(web.Templates,
			"templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("error parsing page template %s: %w", page, err)
		}
		cache[page] = ts
	}
	return cache, nil
}

// newTemplateData creates the data shared by every page: CSRF token, active
// nav item and flash messages carried in the query string.
func (app *application) newTemplateData(r *http.Request, activeNav string) map[string]any {
	return map[string]any{
		"CSRFToken":   nosurf.Token(r),
		"ActiveNav":   activeNav,
		"Error":       r.URL.Query().Get("error"),
		"Notice":      r.URL.Query().Get("notice"),
		"CurrentYear": time.Now().Year(),
	}
}

// newApplication opens the configured store and template catalog. The
// returned close function releases the store.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, func() error, error) {
	store, closeStore, err := storage.Open(cfg.Store, cfg.DataDir, cfg.StoreName, logger)
	if err != nil {
		return nil, closeStore, fmt.Errorf("failed to open layout store: %w", err)
	}

	cat, err := catalog.Open(cfg.TemplatesFile)
	if err != nil {
		return nil, closeStore, err
	}

	cache, err := newTemplateCache()
	if err != nil {
		return nil, closeStore, err
	}

	var opts []history.Option
	if cfg.HistoryLimit > 0 {
		opts = append(opts, history.WithLimit(cfg.HistoryLimit))
	}

	app := &application{
		logger:        logger,
		cfg:           cfg,
		catalog:       cat,
		library:       library.NewManager(store, logger),
		preview:       templating.NewEngine(store),
		templateCache: cache,
		session:       editor.NewSession(logger, nil, opts...),
	}
	return app, closeStore, nil
}

func main() {
	fs := pflag.NewFlagSet("layout-server", pflag.ExitOnError)
	config.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := cfg.NewLogger(os.Stdout)

	app, closeStore, err := newApplication(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialise editor", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error("Failed to close layout store", "error", err)
		}
	}()
	logger.Info("Editor ready", "store", cfg.Store, "dataDir", cfg.DataDir, "templates", app.catalog.Len())

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           app.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       time.Minute,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting editor server", "address", cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Editor server failed", "error", err)
		}
	case <-ctx.Done():
		logger.Info("Shutting down editor server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown failed", "error", err)
		}
	}
}
