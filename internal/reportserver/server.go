package reportserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"ursbench/internal/store"
)

// Config captures the settings for serving a DuckDB-backed report.
type Config struct {
	Addr   string
	DBPath string
}

// Serve starts an HTTP server that hosts the report shell and data
// endpoints. It blocks until the context is cancelled or the server
// fails.
func Serve(ctx context.Context, cfg Config) error {
	if ctx == nil {
		return errors.New("reportserver: context is nil")
	}
	if cfg.Addr == "" {
		return errors.New("reportserver: addr is required")
	}
	if cfg.DBPath == "" {
		return errors.New("reportserver: db path is required")
	}

	db, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: NewHandler(cfg.DBPath, db),
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) || err == nil {
			return nil
		}
		return err
	}
}
