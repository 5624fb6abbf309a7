package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. UNDERCOVER_SERVER_PORT
const EnvPrefix = "UNDERCOVER"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Game      GameConfig      `mapstructure:"game"`
	Log       LogConfig       `mapstructure:"log"`
	Transport TransportConfig `mapstructure:"transport"`
}

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	PublicURL      string   `mapstructure:"public_url"`
}

type GameConfig struct {
	GracePeriod time.Duration `mapstructure:"grace_period"`
	WordsFile   string        `mapstructure:"words_file"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TransportConfig struct {
	SendBuffer   int           `mapstructure:"send_buffer"`
	SendTimeout  time.Duration `mapstructure:"send_timeout"`
	ReadLimit    int64         `mapstructure:"read_limit"`
	PongWait     time.Duration `mapstructure:"pong_wait"`
	PingInterval time.Duration `mapstructure:"ping_interval"`
	RateLimit    float64       `mapstructure:"rate_limit"`
	RateBurst    int           `mapstructure:"rate_burst"`
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.public_url", "http://localhost:3000")

	v.SetDefault("game.grace_period", "5s")
	v.SetDefault("game.words_file", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("transport.send_buffer", 32)
	v.SetDefault("transport.send_timeout", "1s")
	v.SetDefault("transport.read_limit", 4096)
	v.SetDefault("transport.pong_wait", "60s")
	v.SetDefault("transport.ping_interval", "54s")
	v.SetDefault("transport.rate_limit", 5)
	v.SetDefault("transport.rate_burst", 10)
}

// Load builds the configuration from, lowest to highest precedence:
// defaults, an optional config file, a .env file, the environment and
// command line flags.
func Load(args []string) (*Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	flags := pflag.NewFlagSet("undercover", pflag.ContinueOnError)
	configFile := flags.String("config", "", "path to a config file (yaml, json or toml)")
	flags.String("host", "0.0.0.0", "address to listen on")
	flags.Int("port", 5000, "port to listen on")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Deployment platforms set these without the prefix
	if err := v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("binding PORT: %w", err)
	}
	if err := v.BindEnv("server.allowed_origins", EnvPrefix+"_SERVER_ALLOWED_ORIGINS", "CORS_ORIGINS"); err != nil {
		return nil, fmt.Errorf("binding CORS_ORIGINS: %w", err)
	}

	for key, flag := range map[string]string{
		"server.host": "host",
		"server.port": "port",
		"log.level":   "log-level",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("binding flag %s: %w", flag, err)
		}
	}

	if *configFile != "" {
		v.SetConfigFile(*configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", *configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Server.AllowedOrigins = splitOrigins(cfg.Server.AllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot run with
func (c *Config) Validate() error {
	switch {
	case c.Server.Port < 1 || c.Server.Port > 65535:
		return fmt.Errorf("invalid port %d", c.Server.Port)
	case c.Game.GracePeriod < 0:
		return fmt.Errorf("grace period must not be negative")
	case c.Transport.SendBuffer < 1:
		return fmt.Errorf("transport send buffer must be positive")
	case c.Transport.ReadLimit < 1:
		return fmt.Errorf("transport read limit must be positive")
	case c.Transport.RateLimit <= 0 || c.Transport.RateBurst < 1:
		return fmt.Errorf("transport rate limit must be positive")
	case c.Transport.PingInterval >= c.Transport.PongWait:
		return fmt.Errorf("ping interval %s must be shorter than pong wait %s",
			c.Transport.PingInterval, c.Transport.PongWait)
	}
	return nil
}

// splitOrigins accepts both list values and a single comma separated string
func splitOrigins(in []string) []string {
	var out []string
	for _, entry := range in {
		for _, origin := range strings.Split(entry, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				out = append(out, origin)
			}
		}
	}
	return out
}
