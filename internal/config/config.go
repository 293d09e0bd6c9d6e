package config

import "log/slog"

type LoggingConfig struct {
	Level slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
}

type PriceFileConfig struct {
	// Path is empty when prices are entered interactively.
	Path string `env:"PRICE_FILE" envDefault:""`
}
