package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel_NivelExplicitoYDefaultPorEntorno(t *testing.T) {
	cases := []struct {
		env, level string
		want       zerolog.Level
	}{
		{"production", "trace", zerolog.TraceLevel},
		{"production", "warn", zerolog.WarnLevel},
		{"production", "", zerolog.InfoLevel},
		{"development", "", zerolog.DebugLevel},
		{"development", "error", zerolog.ErrorLevel},
		{"production", "no-existe", zerolog.InfoLevel},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, parseLevel(c.env, c.level), "env=%s level=%s", c.env, c.level)
	}
}

func TestComponent_AgregaCampoFijo(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{zl: zerolog.New(&buf)}

	l.Component("alerts").Warn().Msg("lote próximo a vencer")

	out := buf.String()
	assert.Contains(t, out, `"component":"alerts"`)
	assert.Contains(t, out, "lote próximo a vencer")
}
