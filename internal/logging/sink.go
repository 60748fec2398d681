package logging

import (
	"fmt"

	"github.com/Cyclone1070/salvage/internal/history"
	"go.uber.org/zap/zapcore"
)

// Field keys the sink lifts out of a log entry.
const (
	FieldOperation = "op"
	FieldDevice    = "device"
	FieldPath      = "path"
	FieldCode      = "code"
)

// Sink stores log entries as operation history.
type Sink interface {
	Append(history.Entry) error
}

// sinkCore is a zapcore.Core that forwards entries to a Sink.
type sinkCore struct {
	zapcore.LevelEnabler
	sink   Sink
	fields []zapcore.Field
}

// NewSinkCore returns a core that writes entries at or above min into sink.
func NewSinkCore(sink Sink, min zapcore.Level) zapcore.Core {
	return &sinkCore{LevelEnabler: min, sink: sink}
}

func (c *sinkCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &sinkCore{LevelEnabler: c.LevelEnabler, sink: c.sink}
	clone.fields = append(append(clone.fields, c.fields...), fields...)
	return clone
}

func (c *sinkCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *sinkCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	message := ent.Message
	if code := stringField(enc.Fields, FieldCode); code != "" {
		message = fmt.Sprintf("[%s] %s", code, message)
	}
	if errText := stringField(enc.Fields, "error"); errText != "" {
		message = fmt.Sprintf("%s: %s", message, errText)
	}

	target := stringField(enc.Fields, FieldDevice)
	if target == "" {
		target = stringField(enc.Fields, FieldPath)
	}

	return c.sink.Append(history.Entry{
		Time:      ent.Time,
		Level:     levelLabel(ent.Level),
		Operation: stringField(enc.Fields, FieldOperation),
		Target:    target,
		Message:   message,
	})
}

func (c *sinkCore) Sync() error { return nil }

func stringField(fields map[string]any, key string) string {
	v, ok := fields[key]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func levelLabel(l zapcore.Level) string {
	switch {
	case l >= zapcore.ErrorLevel:
		return history.LevelError
	case l == zapcore.WarnLevel:
		return history.LevelWarning
	default:
		return history.LevelInfo
	}
}
