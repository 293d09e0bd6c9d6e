// Command ticketcalc is the interactive ticket price calculator.
//
// Loyalty balances live for the lifetime of the process only.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fastprodman/ticketcalc/internal/console"
	"github.com/fastprodman/ticketcalc/internal/infra/logging"
	"github.com/fastprodman/ticketcalc/internal/infra/pricefile"
	"github.com/fastprodman/ticketcalc/internal/repos/loyalty/memory"
	"github.com/fastprodman/ticketcalc/internal/services/checkout"
	"github.com/fastprodman/ticketcalc/pkg/envconf"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running ticketcalc: %v\n", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	err := envconf.LoadDotenv(".env")
	if err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg := new(cliConfig)

	err = envconf.LoadWithPrefix(envPrefix, cfg)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.Setup(os.Stderr, cfg.LogLevel)

	var opts []console.Option

	if cfg.PriceFile.Path != "" {
		prices, err := pricefile.Load(cfg.PriceFile.Path)
		if err != nil {
			return fmt.Errorf("load prices: %w", err)
		}

		if missing := prices.Missing(); len(missing) > 0 {
			return fmt.Errorf("price file %s has no price for %v", cfg.PriceFile.Path, missing)
		}

		opts = append(opts, console.WithPriceList(prices))
	}

	// The ledger lives exactly as long as this session.
	svc := checkout.New(memory.New())

	err = console.NewSession(os.Stdin, os.Stdout, svc, opts...).Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stdout)

			return nil
		}

		return fmt.Errorf("session: %w", err)
	}

	return nil
}
