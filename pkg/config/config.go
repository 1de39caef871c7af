package config

import (
	"time"

	"taskboard/pkg/view"
	"taskboard/utils"
)

type Config struct {
	ServerPort     string
	RuntimeEnv     string
	RequestTimeout time.Duration
	TimeLayout     string
	AllowedOrigins []string
	// RateLimit uses the limiter "<limit>-<period>" format, e.g. "60-M".
	RateLimit string
	RedisAddr string
}

func FromEnv() Config {
	return Config{
		ServerPort:     utils.GetEnvDefault("SERVER_PORT", "3000"),
		RuntimeEnv:     utils.GetEnvDefault("RUNTIME_ENV", "local"),
		RequestTimeout: utils.GetEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		TimeLayout:     utils.GetEnvDefault("TIME_LAYOUT", view.DefaultTimeLayout),
		AllowedOrigins: utils.GetEnvList("CORS_ALLOWED_ORIGINS"),
		RateLimit:      utils.GetEnvDefault("RATE_LIMIT", "60-M"),
		RedisAddr:      utils.GetEnvDefault("REDIS_ADDR", ""),
	}
}

func (c Config) IsProduction() bool {
	return c.RuntimeEnv == "aws" || c.RuntimeEnv == "production"
}
