package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Host    HostConfig    `mapstructure:"host"`
	Search  SearchConfig  `mapstructure:"search"`
	Minimap MinimapConfig `mapstructure:"minimap"`
	Log     LogConfig     `mapstructure:"log"`
	Simhost SimhostConfig `mapstructure:"simhost"`
}

type HostConfig struct {
	Transport    string        `mapstructure:"transport"` // websocket, http or local
	URL          string        `mapstructure:"url"`
	Fixture      string        `mapstructure:"fixture"` // only for the local transport
	PollInterval time.Duration `mapstructure:"poll_interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type SearchConfig struct {
	Mode string `mapstructure:"mode"`
}

type MinimapConfig struct {
	ZLevel  int `mapstructure:"z_level"`
	Width   int `mapstructure:"width"`
	Height  int `mapstructure:"height"`
	MaxZoom int `mapstructure:"max_zoom"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

type SimhostConfig struct {
	Addr    string `mapstructure:"addr"`
	Fixture string `mapstructure:"fixture"`
}

const (
	TransportWebsocket = "websocket"
	TransportHTTP      = "http"
	TransportLocal     = "local"
)

func SetDefaults(v *viper.Viper) {
	v.SetDefault("host.transport", TransportWebsocket)
	v.SetDefault("host.url", "ws://localhost:8080/ws")
	v.SetDefault("host.fixture", "")
	v.SetDefault("host.poll_interval", time.Second)
	v.SetDefault("host.timeout", 5*time.Second)
	v.SetDefault("search.mode", "substring")
	v.SetDefault("minimap.z_level", 1)
	v.SetDefault("minimap.width", 48)
	v.SetDefault("minimap.height", 16)
	v.SetDefault("minimap.max_zoom", 8)
	v.SetDefault("log.file", "camconsole.log")
	v.SetDefault("log.level", "info")
	v.SetDefault("simhost.addr", ":8080")
	v.SetDefault("simhost.fixture", "")
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("find home directory: %w", err)
		}
		// Search config in home directory with name ".camconsole" (without extension).
		v.AddConfigPath(home)
		v.SetConfigType("yaml")
		v.SetConfigName(".camconsole")
	}

	v.SetEnvPrefix("camconsole")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Host.Transport {
	case TransportWebsocket, TransportHTTP:
		if c.Host.URL == "" {
			return fmt.Errorf("host.url is required for the %s transport", c.Host.Transport)
		}
	case TransportLocal:
		if c.Host.Fixture == "" {
			return errors.New("host.fixture is required for the local transport")
		}
	default:
		return fmt.Errorf("unknown host.transport %q", c.Host.Transport)
	}
	if c.Host.PollInterval <= 0 {
		return fmt.Errorf("host.poll_interval must be positive: %s", c.Host.PollInterval)
	}
	if c.Host.Timeout <= 0 {
		return fmt.Errorf("host.timeout must be positive: %s", c.Host.Timeout)
	}

	switch c.Search.Mode {
	case "substring", "fuzzy":
	default:
		return fmt.Errorf("unknown search.mode %q", c.Search.Mode)
	}

	if c.Minimap.Width < 8 || c.Minimap.Height < 4 {
		return fmt.Errorf("minimap must be at least 8x4, got %dx%d", c.Minimap.Width, c.Minimap.Height)
	}
	if c.Minimap.MaxZoom < 1 {
		return fmt.Errorf("minimap.max_zoom must be at least 1: %d", c.Minimap.MaxZoom)
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("invalid log.level %q: %w", l.Level, err)
	}
	return level, nil
}
