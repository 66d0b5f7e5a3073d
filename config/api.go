package config

import (
	"strings"
	"time"
)

// APIConfig describes how to reach the library backend and how payment
// initialization retries behave.
type APIConfig struct {
	// BaseURL is the backend root, e.g. https://library.example.com/api.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	// Timeout bounds each individual HTTP request.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`

	// RetryMax bounds payment initialization attempts.
	RetryMax int `env:"RETRY_MAX" envDefault:"3"`

	// RetryBaseDelay is multiplied by the attempt number between retries.
	RetryBaseDelay time.Duration `env:"RETRY_BASE_DELAY" envDefault:"500ms"`
}

// Sanitize clamps out-of-range values to safe defaults.
func (c *APIConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	if c.RetryMax < 1 {
		c.RetryMax = 3
	}
	if c.RetryMax > 10 {
		c.RetryMax = 10
	}
	if c.RetryBaseDelay <= 0 {
		c.RetryBaseDelay = 500 * time.Millisecond
	}
}
