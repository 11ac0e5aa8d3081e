package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "lobsters.log")

	logger, closer, err := New(path, log.InfoLevel)
	require.NoError(t, err)
	logger.WithPrefix("core").Info("started", "mode", "Hottest")
	logger.Debug("hidden")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "core")
	assert.Contains(t, out, "started")
	assert.Contains(t, out, "mode=Hottest")
	assert.NotContains(t, out, "hidden")
}

func TestNew_AppendsAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lobsters.log")
	for _, msg := range []string{"first", "second"} {
		logger, closer, err := New(path, log.InfoLevel)
		require.NoError(t, err)
		logger.Info(msg)
		require.NoError(t, closer.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}

func TestNew_EmptyPathDiscards(t *testing.T) {
	logger, closer, err := New("", log.DebugLevel)
	require.NoError(t, err)
	logger.Info("nowhere")
	assert.NoError(t, closer.Close())
}
