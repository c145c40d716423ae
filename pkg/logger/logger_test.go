package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/identity-api/pkg/logger"
)

func TestNew_JSONConCamposFijos(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "info", Service: "identity-api", Output: &buf})

	l.Component("auth").Info().Str("kind", "tenant").Msg("login")

	var ev map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ev))
	assert.Equal(t, "identity-api", ev["service"])
	assert.Equal(t, "auth", ev["component"])
	assert.Equal(t, "tenant", ev["kind"])
	assert.Equal(t, "login", ev["message"])
}

func TestNew_NivelFiltra(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})

	l.Info().Msg("no debe salir")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("sí debe salir")
	assert.NotZero(t, buf.Len())
}

func TestOrNop(t *testing.T) {
	l := logger.OrNop(nil)
	require.NotNil(t, l)
	l.Error().Msg("descartado")
}
