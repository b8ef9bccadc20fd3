package dsdneo

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger wraps charmbracelet/log with per-component scoping, replacing
// the teacher's text_color_set/dw_printf console helpers with a single
// structured logger shared across the engine.
var Logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportCaller:    false,
	ReportTimestamp: true,
	Level:           log.InfoLevel,
})

// Component returns a logger scoped to the given subsystem name, the
// equivalent of the teacher's per-module debug-print prefixes.
func Component(name string) *log.Logger {
	return Logger.With("component", name)
}

// SetLogLevel adjusts the global log verbosity (wired to the CLI's
// -d/--debug flag in cmd/dsdneo/main.go).
func SetLogLevel(level log.Level) {
	Logger.SetLevel(level)
}
