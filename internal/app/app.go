package app

import (
	"io"
	"log/slog"
	"os"

	"github.com/vk/psfleet/internal/fleetdesc"
)

// App is the command line tool's top-level object.
type App struct {
	out    io.Writer
	logger *slog.Logger
	loader *fleetdesc.Loader
}

// NewApp constructs an App. Logs go to stderr; user-facing output to out.
func NewApp(out io.Writer, cfg *Config) *App {
	return &App{
		out:    out,
		logger: newLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr),
		loader: fleetdesc.NewLoader(),
	}
}
