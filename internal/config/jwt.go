package config

import (
	"log"
	"os"
	"sync"
	"time"
)

type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

var (
	jwtConfig *JWTConfig
	jwtOnce   sync.Once
)

func LoadJWTConfig() *JWTConfig {
	jwtOnce.Do(func() {
		jwtConfig = newJWTConfig()
	})
	return jwtConfig
}

func newJWTConfig() *JWTConfig {
	expiresIn := 7 * 24 * time.Hour
	if raw := os.Getenv("JWT_EXPIRES_IN"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			log.Printf("Warning: invalid JWT_EXPIRES_IN %q, using %s", raw, expiresIn)
		} else {
			expiresIn = d
		}
	}
	return &JWTConfig{
		Secret:    os.Getenv("JWT_SECRET"),
		ExpiresIn: expiresIn,
	}
}
