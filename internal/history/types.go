package history

import (
	"fmt"
	"time"
)

// TimeLayout is the timestamp format used in exported history lines.
const TimeLayout = "2006-01-02 15:04:05"

// Level labels stored with each entry.
const (
	LevelInfo    = "INFO"
	LevelWarning = "WARNING"
	LevelError   = "ERROR"
)

// Entry is one recorded operation or log line.
type Entry struct {
	ID        string    `json:"id" yaml:"id"`
	Time      time.Time `json:"time" yaml:"time"`
	Level     string    `json:"level" yaml:"level"`
	Operation string    `json:"operation,omitempty" yaml:"operation,omitempty"`
	Target    string    `json:"target,omitempty" yaml:"target,omitempty"`
	Message   string    `json:"message" yaml:"message"`
}

// String formats the entry as "LEVEL [time]: message".
func (e Entry) String() string {
	return fmt.Sprintf("%s [%s]: %s", e.Level, e.Time.Local().Format(TimeLayout), e.Message)
}
