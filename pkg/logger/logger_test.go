package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("desconocido"))
}

func TestNamed_AgregaComponente(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug").Named("tools")
	log.Info().Str("tool", "query_stock").Msg("herramienta invocada")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "tools", entry["component"])
	assert.Equal(t, "query_stock", entry["tool"])
	assert.Equal(t, "herramienta invocada", entry["message"])
}

func TestNewWithWriter_RespetaNivel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn")
	log.Info().Msg("no debe aparecer")
	assert.Zero(t, buf.Len())
}
