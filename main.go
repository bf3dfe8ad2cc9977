package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/locvowork/hr_records/internal/bootstrap"
	"github.com/locvowork/hr_records/internal/logger"
)

func main() {
	ctx := context.Background()

	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		logger.ErrorLog(ctx, "Failed to initialize application: %v", err)
		os.Exit(1)
	}

	go func() {
		if err := app.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorLog(ctx, "Server stopped: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		logger.ErrorLog(ctx, "Graceful shutdown failed: %v", err)
	}
}
