package config

import (
	"log"
	"os"
	"strconv"
	"sync"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

var (
	redisConfig *RedisConfig
	redisOnce   sync.Once
)

func LoadRedisConfig() *RedisConfig {
	redisOnce.Do(func() {
		redisConfig = newRedisConfig()
	})
	return redisConfig
}

func newRedisConfig() *RedisConfig {
	db := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			log.Printf("Warning: invalid REDIS_DB %q, using 0", raw)
		} else {
			db = n
		}
	}
	return &RedisConfig{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	}
}

// Enabled reports whether a Redis server was configured.
func (c *RedisConfig) Enabled() bool {
	return c.Addr != ""
}
