package main

import (
	"log/slog"

	"github.com/fastprodman/ticketcalc/internal/config"
)

const envPrefix = "TICKETCALC_"

type cliConfig struct {
	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"WARN"`
	PriceFile config.PriceFileConfig
}
