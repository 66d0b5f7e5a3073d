package config

import "strings"

// RedisConfig contains Redis connection configuration for the redis session
// store.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}

// Sanitize applies guardrails to Redis configuration.
func (c *RedisConfig) Sanitize() {
	c.Addr = strings.TrimSpace(c.Addr)
	if c.Addr == "" {
		c.Addr = "localhost:6379"
	}
	if c.DB < 0 {
		c.DB = 0
	}
}
