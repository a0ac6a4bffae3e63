package logger

import (
	"log/slog"
	"os"
)

var Log *slog.Logger

// Init sets up the process-wide structured logger. JSON output so log
// aggregators can parse fields without extra configuration.
func Init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	Log = slog.New(handler)
}
