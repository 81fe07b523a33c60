package main

import (
	"io"

	"github.com/rs/zerolog"
)

// cliLogger implements calculation.Logger on top of zerolog
type cliLogger struct {
	log zerolog.Logger
}

func newCLILogger(w io.Writer, debug bool) cliLogger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}
	return cliLogger{log: zerolog.New(out).Level(level).With().Timestamp().Logger()}
}

func (l cliLogger) Debugf(format string, args ...any) { l.log.Debug().Msgf(format, args...) }
func (l cliLogger) Infof(format string, args ...any)  { l.log.Info().Msgf(format, args...) }
func (l cliLogger) Warnf(format string, args ...any)  { l.log.Warn().Msgf(format, args...) }
func (l cliLogger) Errorf(format string, args ...any) { l.log.Error().Msgf(format, args...) }
