package realtime

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfigReadsSeconds(t *testing.T) {
	defer viper.Reset()
	viper.Set("realtime.writeWait", 5)
	viper.Set("realtime.pongWait", "60")
	viper.Set("realtime.sendBuffer", 8)

	conf, err := InitConfig()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, conf.WriteWait)
	assert.Equal(t, 60*time.Second, conf.PongWait)
	assert.Equal(t, 54*time.Second, conf.pingPeriod())
	assert.Equal(t, 8, conf.SendBuffer)
	assert.Equal(t, DefaultConfig().MaxMessageSize, conf.MaxMessageSize)
}

func TestInitConfigRejectsDurationStrings(t *testing.T) {
	defer viper.Reset()
	viper.Set("realtime.pongWait", "60s")

	_, err := InitConfig()
	assert.Error(t, err)
}

func TestInitConfigDefaults(t *testing.T) {
	viper.Reset()

	conf, err := InitConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), conf)
}
