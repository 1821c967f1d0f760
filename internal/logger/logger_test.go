package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New("production", "warn", &buf)

	log.Info().Msg("dropped")
	log.Warn().Str("order_id", "wo1").Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "wo1", entry["order_id"])
	assert.Equal(t, "production", entry["env"])
	assert.NotContains(t, buf.String(), "dropped")
}

func TestNew_DevelopmentIsConsole(t *testing.T) {
	var buf bytes.Buffer
	log := New("development", "bogus", &buf)

	log.Debug().Msg("hidden")
	log.Info().Msg("order created")

	assert.Contains(t, buf.String(), "order created")
	assert.NotContains(t, buf.String(), "hidden")
	assert.NotContains(t, buf.String(), `"message"`)
}

func TestOpenFile_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")

	f, err := OpenFile(path)
	require.NoError(t, err)
	_, err = f.WriteString("hello\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}
