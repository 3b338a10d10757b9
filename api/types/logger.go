package types

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

type Logger interface {
	Printf(format string, v ...interface{})
}

// WarnLogger is implemented by loggers with a warning level.
type WarnLogger interface {
	Warnf(format string, v ...interface{})
}

// this is a safeguard, breaking on compile time in case
// `ZerologLogger` does not adhere to our `Logger` interface.
// see https://golang.org/doc/faq#guarantee_satisfies_interface
var _ Logger = (*ZerologLogger)(nil)
var _ WarnLogger = (*ZerologLogger)(nil)

// ZerologLogger adapts a zerolog.Logger to Logger.
// Printf logs at info level, Warnf at warn level.
type ZerologLogger struct {
	zerolog.Logger
}

func NewZerologLogger(l zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{Logger: l}
}

func (l *ZerologLogger) Printf(format string, v ...interface{}) {
	l.Logger.Info().Msg(fmt.Sprintf(format, v...))
}

func (l *ZerologLogger) Warnf(format string, v ...interface{}) {
	l.Logger.Warn().Msg(fmt.Sprintf(format, v...))
}

// DefaultLogger returns a `Logger` implementation writing to stderr
func DefaultLogger() *ZerologLogger {
	return NewZerologLogger(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger())
}

// Warnf logs at warn level when the logger supports it, otherwise falls back to Printf.
func Warnf(logger Logger, format string, v ...interface{}) {
	if logger == nil {
		return
	}
	if w, ok := logger.(WarnLogger); ok {
		w.Warnf(format, v...)
		return
	}
	logger.Printf("WARN "+format, v...)
}
