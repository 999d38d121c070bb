package telemetry

import (
	"log/slog"
	"os"
)

// InitLogger installs a JSON slog logger tagged with the service name as the
// process-wide default.
func InitLogger(serviceName string) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})

	logger := slog.New(handler).With(
		slog.String("service", serviceName),
	)
	slog.SetDefault(logger)
}
