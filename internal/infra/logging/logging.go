package logging

import (
	"io"
	"log/slog"
)

// Setup sets slog's default logger to write JSON to w at the given level.
// The interactive CLI passes stderr so logs never mix with the operator prompts.
func Setup(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(
		slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}),
	)
	slog.SetDefault(logger)

	return logger
}
