package config

import (
	"log"
	"os"
	"sync"
)

type AppConfig struct {
	Name         string
	Env          string
	Port         string
	BaseURL      string
	AllowOrigins string
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		appConfig = newAppConfig()
	})
	return appConfig
}

func newAppConfig() *AppConfig {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
		log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
	}
	name := os.Getenv("APP_NAME")
	if name == "" {
		name = "SkillSnap"
	}
	return &AppConfig{
		Name:         name,
		Env:          env,
		Port:         getEnv("APP_PORT", ":8080"),
		BaseURL:      os.Getenv("APP_URL"),
		AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
	}
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
