package mongodatabase

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// DBConfig configuration for db
type DBConfig struct {
	Host          string        `mapstructure:"host"`
	DBName        string        `mapstructure:"dbName"`
	MaxAttempts   int           `mapstructure:"maxAttempts"`
	RetryInterval time.Duration `mapstructure:"retryInterval"`
}

// InitConfig initialize database configuration
func InitConfig() (*DBConfig, error) {
	dbconfig := &DBConfig{}
	subv := viper.Sub("mongodatabase")
	if subv == nil {
		return nil, errors.New("missing mongodatabase configuration")
	}
	if err := subv.Unmarshal(&dbconfig); err != nil {
		return nil, err
	}
	if dbconfig.MaxAttempts <= 0 {
		dbconfig.MaxAttempts = 5
	}
	if dbconfig.RetryInterval <= 0 {
		dbconfig.RetryInterval = 2
	}
	return dbconfig, nil
}
