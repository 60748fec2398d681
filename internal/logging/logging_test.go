package logging

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/Cyclone1070/salvage/internal/config"
	"github.com/Cyclone1070/salvage/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type memorySink struct {
	mu      sync.Mutex
	entries []history.Entry
}

func (m *memorySink) Append(e history.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
	_, err = ParseLevel("")
	assert.Error(t, err)
}

func TestParseLevel_MatchesConfigValidation(t *testing.T) {
	for _, level := range config.SupportedLogLevels {
		_, err := ParseLevel(level)
		assert.NoError(t, err, level)
	}
}

func TestNew_WritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.LogConfig{Level: "info", Development: false}

	logger, err := New(cfg, Options{Output: zapcore.AddSync(&buf)})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("disk detected", zap.String(FieldDevice, "/dev/sdb"))
	require.NoError(t, logger.Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"disk detected"`)
	assert.Contains(t, buf.String(), `"device":"/dev/sdb"`)
}

func TestNew_VerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.LogConfig{Level: "error", Development: true}

	logger, err := New(cfg, Options{Verbose: true, Output: zapcore.AddSync(&buf)})
	require.NoError(t, err)

	logger.Debug("running lsblk")
	assert.Contains(t, buf.String(), "running lsblk")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "chatty"}, Options{})
	assert.Error(t, err)
}

func TestSinkCore(t *testing.T) {
	sink := &memorySink{}
	logger, err := New(config.LogConfig{Level: "debug"}, Options{Sink: sink})
	require.NoError(t, err)

	logger.Debug("not recorded")
	logger.With(zap.String(FieldOperation, "mount")).
		Info("disk /dev/sdb1 mounted", zap.String(FieldDevice, "/dev/sdb1"))
	logger.Warn("no disks detected")
	logger.Error("file copy failed",
		zap.String(FieldCode, "FILE_002"),
		zap.String(FieldPath, "/mnt/sdb1/a.txt"),
		zap.Error(errors.New("no space left on device")))

	require.Len(t, sink.entries, 3)

	assert.Equal(t, history.LevelInfo, sink.entries[0].Level)
	assert.Equal(t, "mount", sink.entries[0].Operation)
	assert.Equal(t, "/dev/sdb1", sink.entries[0].Target)
	assert.Equal(t, "disk /dev/sdb1 mounted", sink.entries[0].Message)

	assert.Equal(t, history.LevelWarning, sink.entries[1].Level)

	assert.Equal(t, history.LevelError, sink.entries[2].Level)
	assert.Equal(t, "/mnt/sdb1/a.txt", sink.entries[2].Target)
	assert.Equal(t, "[FILE_002] file copy failed: no space left on device", sink.entries[2].Message)
	assert.False(t, sink.entries[2].Time.IsZero())
}
