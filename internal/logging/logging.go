// Package logging configures the global zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup points the global logger at stderr with a console writer; stdout is
// reserved for the MCP protocol. Unknown levels fall back to info.
func Setup(level string) {
	SetupWriter(os.Stderr, level)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, level string) {
	zerolog.TimeFieldFormat = time.RFC3339

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	cw := zerolog.NewConsoleWriter(func(cw *zerolog.ConsoleWriter) {
		cw.Out = w
		cw.TimeFormat = time.RFC3339
		cw.NoColor = true
	})

	log.Logger = zerolog.New(cw).With().Timestamp().Caller().Logger()
}
