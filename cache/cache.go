package cache

import (
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v7"
	"github.com/pkg/errors"
)

const oneHour int = 3600

// Expire18HR - 18 hours
const Expire18HR int = oneHour * 18

// ErrMiss key is absent from the cache
var ErrMiss = errors.New("cache miss")

// Cache redis cache
type Cache struct {
	Client *redis.Client
}

// New create new cache
func New(config *Config) *Cache {
	return &Cache{
		Client: redis.NewClient(&redis.Options{
			Addr:     getCacheURL(config),
			Password: config.Password,
			DB:       config.DB,
		}),
	}
}

// Close cache
func (c *Cache) Close() error {
	return c.Client.Close()
}

func getCacheURL(config *Config) string {
	return fmt.Sprintf("%s:%s", config.Host, config.Port)
}

// Ping checks the redis connection
func (c *Cache) Ping() error {
	return c.Client.Ping().Err()
}

// GetValue - get value string by key
func (c *Cache) GetValue(key string) (string, error) {
	val, err := c.Client.Get(key).Result()
	if err == redis.Nil {
		return "", ErrMiss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// SetValue - set value string by key
func (c *Cache) SetValue(key string, val string) error {
	return c.Client.Set(key, val, 0).Err()
}

// ExpireKey - set a redis key to expire
func (c *Cache) ExpireKey(key string, ttl int) {
	c.Client.Do("EXPIRE", key, fmt.Sprintf("%v", ttl))
}

// DeleteValue - delete value string by key
func (c *Cache) DeleteValue(key string) error {
	return c.Client.Del(key).Err()
}

// GetJSON decodes the cached value at key into out
func (c *Cache) GetJSON(key string, out interface{}) error {
	val, err := c.GetValue(key)
	if err != nil {
		return err
	}
	return errors.Wrap(json.Unmarshal([]byte(val), out), "unable to decode cached value")
}

// SetJSON stores v at key as JSON and expires it after ttl seconds
func (c *Cache) SetJSON(key string, v interface{}, ttl int) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "unable to encode value for cache")
	}
	if err := c.SetValue(key, string(data)); err != nil {
		return err
	}
	c.ExpireKey(key, ttl)
	return nil
}
