package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "brevio.log")

	logger, err := New(Options{FilePath: path})
	require.NoError(t, err)

	logger.Info("catalog loaded", zap.Int("languages", 3))
	logger.Debug("hidden")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "catalog loaded", entry["message"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, float64(3), entry["languages"])
	assert.Contains(t, entry, "timestamp")
}

func TestNewConsoleOnlyMirrorsWarnings(t *testing.T) {
	var console bytes.Buffer

	logger, err := New(Options{Console: &console})
	require.NoError(t, err)

	logger.Info("quiet")
	logger.Warn("gateway request failed")
	_ = logger.Sync()

	assert.NotContains(t, console.String(), "quiet")
	assert.Contains(t, console.String(), "gateway request failed")
}

func TestNewDebugLowersConsoleLevel(t *testing.T) {
	var console bytes.Buffer

	logger, err := New(Options{Console: &console, Debug: true})
	require.NoError(t, err)

	logger.Debug("gateway request")
	_ = logger.Sync()

	assert.Contains(t, console.String(), "gateway request")
}

func TestNewWithoutSinksIsNop(t *testing.T) {
	logger, err := New(Options{})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
