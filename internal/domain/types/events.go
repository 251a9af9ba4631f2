package types

import "time"

// LogRecord is a structured log line delivered to the registered log
// callback.
type LogRecord struct {
	Level string    `json:"level"`
	Text  string    `json:"text"`
	Time  time.Time `json:"time"`
}
