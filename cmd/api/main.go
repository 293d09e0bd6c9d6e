// Command api serves stateless ticket quotes over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fastprodman/ticketcalc/internal/api"
	"github.com/fastprodman/ticketcalc/internal/infra/logging"
	"github.com/fastprodman/ticketcalc/internal/infra/pricefile"
	"github.com/fastprodman/ticketcalc/internal/services/quote"
	"github.com/fastprodman/ticketcalc/pkg/envconf"
	"github.com/fastprodman/ticketcalc/pkg/shutdownqueue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	err := envconf.LoadDotenv(".env")
	if err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg := new(apiConfig)

	err = envconf.LoadWithPrefix(envPrefix, cfg)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.Setup(os.Stdout, cfg.Logging.Level)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := shutdownqueue.Shutdown(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	// --- Prices ---
	prices, err := pricefile.Load(cfg.PriceFile)
	if err != nil {
		return fmt.Errorf("load prices: %w", err)
	}

	quoteSrv := quote.New(prices)

	// --- HTTP server ---
	srv := api.NewServer(cfg.Port, quoteSrv)

	// Register HTTP server graceful shutdown
	shutdownqueue.Add("http server", func(c context.Context) error {
		slog.Info("Shut down server")

		err := srv.Shutdown(c)
		if err != nil {
			return fmt.Errorf("shutdown srv: %w", err)
		}

		return nil
	})

	// Run server
	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("API started", "port", cfg.Port, "categories", len(prices))

	// --- Wait until either context cancels or server errors out ---
	select {
	case <-ctx.Done():
		// graceful path; deferred shutdownqueue.Shutdown will run
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}
