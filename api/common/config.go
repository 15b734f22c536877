package common

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config api configuration
type Config struct {
	Port           int           `mapstructure:"port"`
	ProxyCount     int           `mapstructure:"proxyCount"`
	MaxContentSize int64         `mapstructure:"maxContentSize"`
	ReadTimeout    time.Duration `mapstructure:"readTimeout"`
	WriteTimeout   time.Duration `mapstructure:"writeTimeout"`
	AllowedOrigins []string      `mapstructure:"allowedOrigins"`
}

// InitConfig initialize api configuration
func InitConfig() (*Config, error) {
	config := &Config{}
	subv := viper.Sub("api")
	if subv == nil {
		return nil, errors.New("missing api configuration")
	}
	if err := subv.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.MaxContentSize <= 0 {
		config.MaxContentSize = 1
	}
	if len(config.AllowedOrigins) == 0 {
		config.AllowedOrigins = []string{"*"}
	}
	return config, nil
}
