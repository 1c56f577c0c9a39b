package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNopLoggerBeforeInit(t *testing.T) {
	assert.NotNil(t, Log)
	assert.NotPanics(t, func() { Log.Info("discarded") })
}

func TestInitLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	cfg := &Config{
		Level:      "DEBUG",
		Filename:   path,
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
		Compress:   false,
	}

	err := InitLogger(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, Log)

	Log.Info("Test log message")
	Sync()

	// Verify file exists
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestInitLoggerConsoleOnly(t *testing.T) {
	err := InitLogger(&Config{Level: "WARN"})
	assert.NoError(t, err)
	assert.False(t, Log.Core().Enabled(-1))
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	cfg := &Config{
		Level:    "INVALID",
		Filename: filepath.Join(t.TempDir(), "test_invalid.log"),
	}

	err := InitLogger(cfg)
	assert.Error(t, err)
}
