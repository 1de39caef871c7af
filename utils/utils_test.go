package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TB_STRING", "  value ")
	t.Setenv("TB_BLANK", "   ")
	t.Setenv("TB_INT", "7")
	t.Setenv("TB_BAD_INT", "seven")
	t.Setenv("TB_DURATION", "250ms")
	t.Setenv("TB_BAD_DURATION", "-1s")
	t.Setenv("TB_LIST", "a, b,,c ")

	assert.Equal(t, "value", GetEnvDefault("TB_STRING", "x"))
	assert.Equal(t, "x", GetEnvDefault("TB_BLANK", "x"))
	assert.Equal(t, "x", GetEnvDefault("TB_UNSET_FOR_TEST", "x"))
	assert.Equal(t, 7, GetEnvInt("TB_INT", 1))
	assert.Equal(t, 1, GetEnvInt("TB_BAD_INT", 1))
	assert.Equal(t, 250*time.Millisecond, GetEnvDuration("TB_DURATION", time.Second))
	assert.Equal(t, time.Second, GetEnvDuration("TB_BAD_DURATION", time.Second))
	assert.Equal(t, []string{"a", "b", "c"}, GetEnvList("TB_LIST"))
	assert.Nil(t, GetEnvList("TB_BLANK"))
}

func TestLoadEnvFileOverloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TB_FROM_FILE=file\n"), 0o600))
	t.Setenv("TB_FROM_FILE", "shell")

	LoadEnvFile(path)
	assert.Equal(t, "file", os.Getenv("TB_FROM_FILE"))
}

func TestLoadEnvFileMissingIsQuiet(t *testing.T) {
	previous := log.Logger
	defer func() {
		log.Logger = previous
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}()
	t.Setenv("LOG_LEVEL", "")
	var buf bytes.Buffer
	initLogger(&buf, false, false)

	LoadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.Empty(t, buf.String())

	// a directory exists but cannot be read as a file
	LoadEnvFile(t.TempDir())
	assert.Contains(t, buf.String(), "Error loading .env file")
}

func TestInitLoggerLevels(t *testing.T) {
	previous := log.Logger
	defer func() {
		log.Logger = previous
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}()
	var buf bytes.Buffer

	t.Setenv("LOG_LEVEL", "warn")
	initLogger(&buf, false, false)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	initLogger(&buf, true, false)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	initLogger(&buf, false, true)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}
