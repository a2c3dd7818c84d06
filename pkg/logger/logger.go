package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones del logger.
type Config struct {
	Env   string // development escribe consola legible; cualquier otro valor, JSON
	Level string // trace, debug, info, warn, error (por defecto info)
}

// Logger envuelve zerolog para inyectarlo como dependencia en los casos de
// uso. Los eventos se emiten con los métodos por nivel (Info, Error, ...).
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger raíz y redirige también el logger global de
// zerolog, de modo que las librerías que lo usen salgan por el mismo writer.
func New(cfg Config) *Logger {
	var out io.Writer = os.Stdout
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	zl := zerolog.New(out).
		Level(levelOrInfo(cfg.Level)).
		With().Timestamp().
		Logger()
	log.Logger = zl
	return &Logger{zl: zl}
}

func levelOrInfo(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Component deriva un sublogger con el campo component fijo, para distinguir
// de qué módulo sale cada evento.
func (l *Logger) Component(name string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", name).Logger()}
}

func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With expone el builder de contexto de zerolog para campos arbitrarios.
func (l *Logger) With() zerolog.Context { return l.zl.With() }

// Zerolog devuelve el logger interno para quien necesite la API directa.
func (l *Logger) Zerolog() zerolog.Logger { return l.zl }
