// config_keys.go provides key-value access to the resolved configuration.
//
// Separated from config.go so the loading logic stays focused on precedence,
// while this file serves the "config" command where settings are addressed
// by string keys (e.g., "base_url").

package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
)

// ErrUnknownKey is returned when getting an unknown config key.
var ErrUnknownKey = errors.New("unknown config key")

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{"api_key", "model", "base_url", "timeout", "rate_limit", "source"}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
// The API key is always redacted.
func (c Config) Get(key string) (string, error) {
	switch key {
	case "api_key":
		return c.Redacted(), nil
	case "model":
		return c.Model, nil
	case "base_url":
		return c.BaseURL, nil
	case "timeout":
		if c.Timeout == 0 {
			return "none", nil
		}
		return c.Timeout.String(), nil
	case "rate_limit":
		if c.RateLimit == 0 {
			return "unlimited", nil
		}
		return strconv.FormatFloat(c.RateLimit, 'g', -1, 64), nil
	case "source":
		if c.Source == "" {
			return "environment", nil
		}
		return c.Source, nil
	default:
		return "", fmt.Errorf("%w: %s (valid: %v)", ErrUnknownKey, key, ValidKeys())
	}
}

// Map returns every key with its display value.
func (c Config) Map() map[string]string {
	m := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		v, _ := c.Get(k)
		m[k] = v
	}
	return m
}
