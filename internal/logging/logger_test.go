package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_EmptyPathIsNop(t *testing.T) {
	logger, err := New(Options{})
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zap.ErrorLevel))
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ghagent.log")

	logger, err := New(Options{Path: path})
	require.NoError(t, err)

	logger.Error("exchange failed", zap.String("exchange_id", "abc"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "exchange failed"))
	assert.True(t, strings.Contains(string(data), `"exchange_id":"abc"`))
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	dir := t.TempDir()

	quiet, err := New(Options{Path: filepath.Join(dir, "quiet.log")})
	require.NoError(t, err)
	assert.False(t, quiet.Core().Enabled(zap.DebugLevel))

	verbose, err := New(Options{Path: filepath.Join(dir, "verbose.log"), Verbose: true})
	require.NoError(t, err)
	assert.True(t, verbose.Core().Enabled(zap.DebugLevel))
}

func TestNewOrNop_BadPath(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	// A regular file cannot be used as a directory
	logger := NewOrNop(Options{Path: filepath.Join(file, "sub", "ghagent.log")})
	assert.NotNil(t, logger)
}

func TestNewConsole(t *testing.T) {
	var buf strings.Builder

	logger := NewConsole(&buf, false)
	logger.Debug("hidden")
	logger.Info("stub server listening", zap.String("addr", ":8000"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "stub server listening")
	assert.Contains(t, out, `"addr": ":8000"`)

	assert.True(t, NewConsole(&buf, true).Core().Enabled(zap.DebugLevel))
}
