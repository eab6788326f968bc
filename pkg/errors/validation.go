package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// MaxNameLength is the longest entity name accepted.
const MaxNameLength = 256

// ValidateEntityName validates an entity name before it reaches a label.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters (they would corrupt labels and DOT output)
//   - Maximum length of MaxNameLength bytes
func ValidateEntityName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "entity name cannot be empty")
	}

	if len(name) > MaxNameLength {
		return New(ErrCodeInvalidName, "entity name too long (max %d characters)", MaxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "entity name %q contains control characters", name)
		}
	}

	return nil
}

// ValidateRedisURL validates a Redis connection URL.
// It accepts the redis, rediss and unix schemes.
func ValidateRedisURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidURL, "redis URL cannot be empty")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidURL, err, "invalid redis URL")
	}

	switch strings.ToLower(u.Scheme) {
	case "redis", "rediss":
		if u.Host == "" {
			return New(ErrCodeInvalidURL, "redis URL needs a host")
		}
	case "unix":
		if u.Path == "" {
			return New(ErrCodeInvalidURL, "unix redis URL needs a socket path")
		}
	default:
		return New(ErrCodeInvalidURL, "redis URL must use redis, rediss or unix scheme")
	}
	return nil
}
