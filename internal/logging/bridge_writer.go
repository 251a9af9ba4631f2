package logging

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pairing/internal/domain"
)

// BridgeWriter turns zerolog JSON lines into LogRecords.
type BridgeWriter struct {
	pub Publisher
	now func() time.Time
}

// NewBridgeWriter returns a writer publishing to pub.
func NewBridgeWriter(pub Publisher) *BridgeWriter {
	return &BridgeWriter{pub: pub, now: time.Now}
}

var _ zerolog.LevelWriter = (*BridgeWriter)(nil)

// Write publishes p with the level found in the line itself.
func (w *BridgeWriter) Write(p []byte) (int, error) {
	return w.WriteLevel(zerolog.NoLevel, p)
}

// WriteLevel publishes p as a LogRecord. It never fails; a line that is not
// JSON is forwarded verbatim.
func (w *BridgeWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	w.pub.Publish(w.record(level, p))
	return len(p), nil
}

func (w *BridgeWriter) record(level zerolog.Level, p []byte) domain.LogRecord {
	rec := domain.LogRecord{Level: level.String(), Time: w.now()}

	var fields map[string]any
	if err := json.Unmarshal(p, &fields); err != nil {
		rec.Text = strings.TrimSpace(string(p))
		return rec
	}
	if lvl, ok := fields[zerolog.LevelFieldName].(string); ok && (level == zerolog.NoLevel || rec.Level == "") {
		rec.Level = lvl
	}
	if ts, ok := fields[zerolog.TimestampFieldName].(string); ok {
		if t, err := time.Parse(zerolog.TimeFieldFormat, ts); err == nil {
			rec.Time = t
		}
	}
	rec.Text = formatFields(fields)
	return rec
}

// formatFields renders "message k=v ..." with keys sorted.
func formatFields(fields map[string]any) string {
	var b strings.Builder
	if msg, ok := fields[zerolog.MessageFieldName].(string); ok {
		b.WriteString(msg)
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		switch k {
		case zerolog.MessageFieldName, zerolog.LevelFieldName, zerolog.TimestampFieldName:
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%v", k, fields[k])
	}
	return b.String()
}
