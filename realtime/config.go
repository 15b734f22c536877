package realtime

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config websocket connection settings
type Config struct {
	WriteWait      time.Duration
	PongWait       time.Duration
	SendBuffer     int
	MaxMessageSize int64
}

// fileConfig realtime section as written in the config file, waits in seconds
type fileConfig struct {
	WriteWait      int   `mapstructure:"writeWait"`
	PongWait       int   `mapstructure:"pongWait"`
	SendBuffer     int   `mapstructure:"sendBuffer"`
	MaxMessageSize int64 `mapstructure:"maxMessageSize"`
}

// DefaultConfig settings used when no realtime section is configured
func DefaultConfig() *Config {
	return &Config{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		SendBuffer:     32,
		MaxMessageSize: 4096,
	}
}

// InitConfig initialize realtime configuration
func InitConfig() (*Config, error) {
	subv := viper.Sub("realtime")
	if subv == nil {
		return DefaultConfig(), nil
	}

	raw := fileConfig{}
	if err := subv.Unmarshal(&raw); err != nil {
		return nil, errors.Wrap(err, "invalid realtime configuration")
	}
	return raw.config(), nil
}

func (f fileConfig) config() *Config {
	config := DefaultConfig()
	if f.WriteWait > 0 {
		config.WriteWait = time.Duration(f.WriteWait) * time.Second
	}
	if f.PongWait > 0 {
		config.PongWait = time.Duration(f.PongWait) * time.Second
	}
	if f.SendBuffer > 0 {
		config.SendBuffer = f.SendBuffer
	}
	if f.MaxMessageSize > 0 {
		config.MaxMessageSize = f.MaxMessageSize
	}
	return config
}

func (c *Config) pingPeriod() time.Duration {
	return (c.PongWait * 9) / 10
}
