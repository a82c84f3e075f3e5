package logger

import (
	"bytes"
	"testing"

	"stock-dashboard/src/models"

	"github.com/stretchr/testify/assert"
)

func TestLoggerThreshold(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&models.MConfig{LogLevel: "warning"}, "Test", &buf)

	l.Info("hidden %d", 1)
	l.Debug("hidden too")
	assert.Empty(t, buf.String())

	l.Warning("shown %s", "w")
	l.Error("shown %s", "e")
	out := buf.String()
	assert.Contains(t, out, "[Test] WARNING: shown w")
	assert.Contains(t, out, "[Test] ERROR: shown e")
}

func TestLoggerDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(nil, "Test", &buf)

	l.Debug("dropped")
	l.Info("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "[Test] INFO: kept")

	named := l.Named("Other")
	named.Info("x")
	assert.Contains(t, buf.String(), "[Other] INFO: x")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, levelDebug, ParseLevel("debug"))
	assert.Equal(t, levelWarning, ParseLevel(" WARN "))
	assert.Equal(t, levelInfo, ParseLevel("verbose"))
}
