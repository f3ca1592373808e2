package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogLevelFromString(t *testing.T) {
	assert.Equal(t, DEBUG, GetLogLevelFromString("DEBUG"))
	assert.Equal(t, INFO, GetLogLevelFromString("info"))
	assert.Equal(t, ERROR, GetLogLevelFromString("error"))
	assert.Equal(t, WARN, GetLogLevelFromString("bogus"))
}

func TestSetOutputFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "warn")

	Debugf("debug %d", 1)
	Infof("info %d", 2)
	Warnf("warn %d", 3)
	Errorf("error %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "debug 1")
	assert.NotContains(t, out, "info 2")
	assert.Contains(t, out, "WARN: ")
	assert.Contains(t, out, "warn 3")
	assert.Contains(t, out, "error 4")
	// Lshortfile must point at the caller, not at logger.go
	assert.Contains(t, out, "logger_test.go")
}

func TestInitLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "keeper.log")
	InitLogger(path, "info", false, 1)

	Info("hello file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello file")
}
