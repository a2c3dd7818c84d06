package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_NivelConfigurado(t *testing.T) {
	l := New(Config{Env: "test", Level: "warn"})
	assert.Equal(t, zerolog.WarnLevel, l.Zerolog().GetLevel())
}

func TestNew_NivelDesconocidoCaeEnInfo(t *testing.T) {
	for _, s := range []string{"", "verbose", "loquísimo"} {
		l := New(Config{Env: "test", Level: s})
		assert.Equal(t, zerolog.InfoLevel, l.Zerolog().GetLevel(), s)
	}
}

func TestComponent_ConservaElNivel(t *testing.T) {
	l := New(Config{Env: "test", Level: "error"}).Component("inventory")
	assert.Equal(t, zerolog.ErrorLevel, l.Zerolog().GetLevel())
}
