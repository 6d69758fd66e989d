package utilities

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(LevelInfo)
	t.Cleanup(func() {
		SetLevel(LevelInfo)
		setWriters(os.Stdout, os.Stdout, os.Stderr)
	})

	Debug("hidden %d", 1)
	Info("scored %s", "guest")
	Warn("cache miss")
	Error("weights broken")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INFO: ")
	assert.Contains(t, out, "scored guest")
	assert.Contains(t, out, "WARNING: ")
	assert.Contains(t, out, "ERROR: ")
	assert.Contains(t, out, "TestLogLevels", "caller is recorded")

	buf.Reset()
	SetLevel("debug")
	Debug("visible")
	assert.Contains(t, buf.String(), "DEBUG: ")
}
