package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func (a *App) runServices(ctx context.Context, deps *Dependencies) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Log.Info("starting http server",
			"host", a.Cfg.Server.Host,
			"port", a.Cfg.Server.Port)

		err := deps.HTTPServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	// Планировщик запускает горутины внутри, сам не блокирует
	if deps.JobScheduler != nil {
		deps.JobScheduler.Start(gCtx)
	}

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.Log.Info("received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := deps.HTTPServer.Shutdown(shutdownCtx); err != nil {
			a.Log.Error("failed to shutdown http server", "error", err)
		}

		if deps.JobScheduler != nil {
			deps.JobScheduler.Wait()
		}

		a.closeDependencies(deps)

		a.Log.Info("application shutdown completed")
		return nil
	})

	if err := g.Wait(); err != nil {
		a.Log.Error("application error", "error", err)
		return err
	}

	return nil
}

// closeDependencies закрывает внешние клиенты, nil-поля пропускаются
func (a *App) closeDependencies(deps *Dependencies) {
	if deps == nil {
		return
	}

	if deps.DB != nil {
		if err := deps.DB.Close(); err != nil {
			a.Log.Error("failed to close database", "error", err)
		}
	}

	if deps.Cache != nil {
		if err := deps.Cache.Close(); err != nil {
			a.Log.Error("failed to close cache", "error", err)
		}
	}

	if deps.Publisher != nil {
		if err := deps.Publisher.Close(); err != nil {
			a.Log.Error("failed to close kafka producer", "error", err)
		}
	}
}
