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
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:5000", cfg.Server.Addr())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.Game.GracePeriod)
	assert.Empty(t, cfg.Game.WordsFile)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 32, cfg.Transport.SendBuffer)
	assert.Equal(t, time.Second, cfg.Transport.SendTimeout)
	assert.Equal(t, int64(4096), cfg.Transport.ReadLimit)
	assert.Equal(t, 54*time.Second, cfg.Transport.PingInterval)
	assert.Equal(t, 5.0, cfg.Transport.RateLimit)
	assert.Equal(t, 10, cfg.Transport.RateBurst)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("UNDERCOVER_GAME_GRACE_PERIOD", "2s")
	t.Setenv("UNDERCOVER_LOG_LEVEL", "debug")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 2*time.Second, cfg.Game.GracePeriod)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFlagsWinOverEnvironment(t *testing.T) {
	t.Setenv("PORT", "8081")

	cfg, err := Load([]string{"--port", "9000", "--host", "127.0.0.1", "--log-level", "warn"})
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "undercover.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  public_url: https://play.example.com
game:
  grace_period: 30s
  words_file: /etc/undercover/words.json
transport:
  rate_burst: 3
`), 0o600))

	cfg, err := Load([]string{"--config", path})
	require.NoError(t, err)

	assert.Equal(t, "https://play.example.com", cfg.Server.PublicURL)
	assert.Equal(t, 30*time.Second, cfg.Game.GracePeriod)
	assert.Equal(t, "/etc/undercover/words.json", cfg.Game.WordsFile)
	assert.Equal(t, 3, cfg.Transport.RateBurst)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)

	_, err = Load([]string{"--unknown"})
	assert.Error(t, err)

	t.Setenv("UNDERCOVER_SERVER_PORT", "70000")
	_, err = Load(nil)
	assert.ErrorContains(t, err, "invalid port")
}

func TestValidate(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	bad := *cfg
	bad.Transport.PingInterval = bad.Transport.PongWait
	assert.ErrorContains(t, bad.Validate(), "ping interval")

	bad = *cfg
	bad.Game.GracePeriod = -time.Second
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Transport.SendBuffer = 0
	assert.Error(t, bad.Validate())
}
