// internal/util/util_test.go
package util

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"

	"expense-tracker/internal/config"
)

func TestValidationErrorMatching(t *testing.T) {
	cause := errors.New("amount must be greater than zero")
	err := fmt.Errorf("collect input: %w", NewValidationError("amount", "-5", cause))

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "amount", vErr.Field)
	assert.Equal(t, "amount must be greater than zero", vErr.Reason())
	assert.Equal(t, `invalid amount "-5": amount must be greater than zero`, vErr.Error())
}

func TestNotFoundAndInvalidSelectionAreDistinct(t *testing.T) {
	assert.NotErrorIs(t, ErrInvalidSelection, ErrNotFound)
	assert.NotErrorIs(t, ErrNotFound, ErrInvalidSelection)
	assert.NotEqual(t, ErrNotFound.Error(), ErrInvalidSelection.Error())
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"":      slog.LevelInfo,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestInitLoggerWritesToFile(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(previous)
		logger = nil
	})

	path := filepath.Join(t.TempDir(), "logs", "expense.log")
	closer, err := InitLogger(config.LoggingConfig{Level: "info", Format: "json", File: path})
	require.NoError(t, err)

	GetLogger().Info("Transaction inserted", "id", 7)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"Transaction inserted"`)
	assert.Contains(t, string(data), `"id":7`)
}

func TestInitLoggerRotatesFile(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(previous)
		logger = nil
	})

	tests := []struct {
		name        string
		cfg         config.LoggingConfig
		wantSize    int
		wantBackups int
	}{
		{name: "configured", cfg: config.LoggingConfig{MaxSizeMB: 25, MaxBackups: 3}, wantSize: 25, wantBackups: 3},
		{name: "unset", cfg: config.LoggingConfig{}, wantSize: DefaultLogMaxSizeMB, wantBackups: DefaultLogMaxBackups},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.File = filepath.Join(t.TempDir(), "expense.log")
			closer, err := InitLogger(tt.cfg)
			require.NoError(t, err)
			defer closer.Close()

			rotating, ok := closer.(*lumberjack.Logger)
			require.True(t, ok, "log file should be a rotating writer, got %T", closer)
			assert.Equal(t, tt.cfg.File, rotating.Filename)
			assert.Equal(t, tt.wantSize, rotating.MaxSize)
			assert.Equal(t, tt.wantBackups, rotating.MaxBackups)
		})
	}
}

func TestInitLoggerRejectsUnknownFormat(t *testing.T) {
	_, err := InitLogger(config.LoggingConfig{Level: "info", Format: "xml", File: "-"})
	assert.Error(t, err)
}
