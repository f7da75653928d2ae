package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, ".", cfg.VaultDir)
	assert.Equal(t, "Comics/Issues", cfg.IssuesFolder)
	assert.Equal(t, "Comics/Creators", cfg.CreatorsFolder)
	assert.Equal(t, 1000, cfg.RateLimitMs)
	assert.Equal(t, time.Second, cfg.RateLimitInterval())
	assert.True(t, cfg.CreateCreatorNotes)
	assert.True(t, cfg.CreateRoleNotes)
	assert.False(t, cfg.DownloadImages)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comic-search.yaml")
	content := "api_key: secret\nvault_dir: /vault\nrate_limit_ms: 2500\ndownload_images: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "/vault", cfg.VaultDir)
	assert.Equal(t, 2500, cfg.RateLimitMs)
	assert.True(t, cfg.DownloadImages)
	// Untouched keys keep their defaults.
	assert.Equal(t, "Comics/Roles", cfg.RolesFolder)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("COMIC_SEARCH_API_KEY", "from-env")
	t.Setenv("COMIC_SEARCH_RATE_LIMIT_MS", "3000")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.APIKey)
	assert.Equal(t, 3000, cfg.RateLimitMs)
}

func TestLoadEnforcesRateLimitFloor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comic-search.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rate_limit_ms: 50\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.RateLimitMs)
}

func TestWriteStarter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comic-search.yaml")

	require.NoError(t, WriteStarter(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.RateLimitMs)
	assert.True(t, cfg.CreateVolumeNotes)

	// A second write refuses to clobber.
	assert.Error(t, WriteStarter(path))
}
