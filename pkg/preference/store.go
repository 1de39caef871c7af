// Package preference persists user settings between runs, most importantly
// the task API base URL.
package preference

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	KeyAPIURL     = "API_URL"
	DefaultAPIURL = "http://127.0.0.1:8000"
)

var ErrReadOnly = errors.New("preference store is read-only")

type Store interface {
	// Get reports ok=false when the key has never been set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

// ResolveAPIURL reads the API_URL preference, falling back to DefaultAPIURL
// when it is unset or blank.
func ResolveAPIURL(ctx context.Context, store Store) (string, error) {
	value, ok, err := store.Get(ctx, KeyAPIURL)
	if err != nil {
		return "", fmt.Errorf("failed to read %s preference: %w", KeyAPIURL, err)
	}
	value = strings.TrimRight(strings.TrimSpace(value), "/")
	if !ok || value == "" {
		log.Debug().Str("apiUrl", DefaultAPIURL).Msg("No API_URL preference, using default")
		return DefaultAPIURL, nil
	}
	return value, nil
}

// NormalizeAPIURL validates a user supplied base URL before it is stored.
func NormalizeAPIURL(raw string) (string, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(raw), "/")
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid API URL %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("invalid API URL %q: scheme must be http or https", raw)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("invalid API URL %q: host is missing", raw)
	}
	return trimmed, nil
}
