package config

import (
	"fmt"
	"strings"
)

// StoreMode selects where the session is persisted.
type StoreMode string

const (
	// StoreModeFile keeps the session in files under a config directory.
	StoreModeFile StoreMode = "file"
	// StoreModeRedis keeps the session in Redis, for shared environments.
	StoreModeRedis StoreMode = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for StoreMode.
func (s *StoreMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "file", "redis":
		*s = StoreMode(v)
		return nil
	default:
		return fmt.Errorf("invalid StoreMode: %q (valid options: file, redis)", v)
	}
}

// SessionConfig controls session persistence.
type SessionConfig struct {
	// Store selects the persistence backend.
	Store StoreMode `env:"STORE" envDefault:"file"`

	// Dir overrides the session directory for the file store. Empty means
	// a per-user default under the OS config directory.
	Dir string `env:"DIR"`

	// KeyPrefix namespaces the Redis keys for the redis store.
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"ilibrary:session:"`
}

// Sanitize applies guardrails to session configuration.
func (c *SessionConfig) Sanitize() {
	if c.Store == "" {
		c.Store = StoreModeFile
	}
	c.Dir = strings.TrimSpace(c.Dir)
	if c.KeyPrefix == "" {
		c.KeyPrefix = "ilibrary:session:"
	}
}
