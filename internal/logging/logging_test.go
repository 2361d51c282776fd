package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tflash.log")

	logger, closer, err := New(Options{Level: "debug", File: path})
	require.NoError(t, err)
	logger.Debug("bound", "track", "1")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "bound")
	assert.Contains(t, string(data), "track=1")
}

func TestNew_DefaultLevelIsInfo(t *testing.T) {
	logger, closer, err := New(Options{})
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, log.InfoLevel, logger.GetLevel())
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNewWriter_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf)
	logger.SetLevel(log.WarnLevel)

	logger.Info("hidden")
	logger.Warn("shown", "err", "boom")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.Contains(out, "shown"))
}
