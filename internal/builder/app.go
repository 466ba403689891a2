package builder

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

// App represents the application with all its components
type App struct {
	server *http.Server
	db     *pgxpool.Pool
	logger *zap.Logger

	// stopBackground cancels watchers started during Build.
	stopBackground context.CancelFunc
}

// Run serves HTTP until SIGINT/SIGTERM or a server error, then shuts down.
func (a *App) Run() error {
	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errChan:
		a.logger.Error("Server error", zap.Error(err))
		a.release()
		return err
	case sig := <-sigChan:
		a.logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	}

	return a.shutdown()
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.logger.Info("Shutting down server gracefully")

	err := a.server.Shutdown(ctx)
	if err != nil {
		a.logger.Error("Server shutdown error", zap.Error(err))
	}

	a.release()
	a.logger.Info("Application stopped")
	return err
}

func (a *App) release() {
	if a.stopBackground != nil {
		a.stopBackground()
	}

	if a.db != nil {
		a.logger.Info("Closing database connections")
		a.db.Close()
	}

	_ = a.logger.Sync()
}
