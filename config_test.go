package surferrr

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	data := `headless: true
arguments:
  - --no-sandbox
  - --disable-dev-shm-usage
driver-path: /usr/bin/chromedriver
driver-port: 4444
user-agent: surferrr-test
window-width: 1280
window-height: 720
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Headless)
	assert.Equal(t, []string{"--no-sandbox", "--disable-dev-shm-usage"}, cfg.Arguments)
	assert.Equal(t, "/usr/bin/chromedriver", cfg.DriverPath)
	assert.Equal(t, 4444, cfg.DriverPort)
	assert.Equal(t, "surferrr-test", cfg.UserAgent)
	assert.Equal(t, 1280, cfg.WindowWidth)
	assert.Equal(t, 720, cfg.WindowHeight)
}

func TestLoadConfigZeroValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("headless: false\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.Headless)
	assert.Empty(t, cfg.Arguments)
	assert.Empty(t, cfg.DriverPath)
	assert.Zero(t, cfg.DriverPort)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
