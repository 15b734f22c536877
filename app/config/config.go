package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config app configuration
type Config struct {
	JWTKey            string        `mapstructure:"jwtKey"`
	TokenExpiration   time.Duration `mapstructure:"tokenExpiration"`
	AdminEmails       []string      `mapstructure:"adminEmails"`
	PrimaryAdminEmail string        `mapstructure:"primaryAdminEmail"`
	DefaultLink       string        `mapstructure:"defaultLink"`
	ViewsMilestone    int           `mapstructure:"viewsMilestone"`
	PlaceholderImage  string        `mapstructure:"placeholderImage"`
}

// InitConfig initialize app configuration
func InitConfig() (*Config, error) {
	config := &Config{}
	subv := viper.Sub("app")
	if subv == nil {
		return nil, errors.New("missing app configuration")
	}
	if err := subv.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.JWTKey == "" {
		return nil, errors.New("app.jwtKey must be set")
	}
	config.setDefaults()
	return config, nil
}

func (c *Config) setDefaults() {
	if c.TokenExpiration <= 0 {
		c.TokenExpiration = 24 * 30
	}
	if c.DefaultLink == "" {
		c.DefaultLink = "/user-dashboard/products"
	}
	if c.ViewsMilestone <= 0 {
		c.ViewsMilestone = 100
	}
	if c.PlaceholderImage == "" {
		c.PlaceholderImage = "/placeholder.png"
	}
}

// IsAdminEmail reports whether email is granted the admin role on registration
func (c *Config) IsAdminEmail(email string) bool {
	for _, e := range c.AdminEmails {
		if strings.EqualFold(strings.TrimSpace(e), email) {
			return true
		}
	}
	return false
}

// Defaults returns a configuration with every default applied
func Defaults(jwtKey string) *Config {
	c := &Config{JWTKey: jwtKey}
	c.setDefaults()
	return c
}
