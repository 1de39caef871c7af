package utils

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// LoadEnvFile overloads the process environment with the given dotenv files
// (".env" when none are given). A missing file is only noted at debug level.
func LoadEnvFile(filenames ...string) {
	// Overload so values edited in .env win over a stale shell export
	err := godotenv.Overload(filenames...)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Err(err).Msg("No .env file found")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("Error loading .env file")
	}
}

func GetEnvDefault(varName string, fallback string) string {
	if value, ok := os.LookupEnv(varName); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func GetEnvInt(varName string, fallback int) int {
	raw := GetEnvDefault(varName, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Warn().Err(err).Str("var", varName).Msgf("Invalid integer, using default %d", fallback)
		return fallback
	}
	return value
}

func GetEnvDuration(varName string, fallback time.Duration) time.Duration {
	raw := GetEnvDefault(varName, "")
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		log.Warn().Err(err).Str("var", varName).Msgf("Invalid duration, using default %s", fallback)
		return fallback
	}
	return value
}

// GetEnvList splits a comma separated variable, dropping blank entries.
func GetEnvList(varName string) []string {
	raw := GetEnvDefault(varName, "")
	if raw == "" {
		return nil
	}
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
