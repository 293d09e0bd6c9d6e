package main

import (
	"time"

	"github.com/fastprodman/ticketcalc/internal/config"
)

const envPrefix = "APP_"

type apiConfig struct {
	Port            uint16        `env:"PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	PriceFile       string        `env:"PRICE_FILE"`
	Logging         config.LoggingConfig
}
