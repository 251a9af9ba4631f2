package mobile

import (
	"time"

	"pairing/internal/domain"
	"pairing/internal/events"
)

// HelloMessage is sent to a callback right after it is registered.
const HelloMessage = "Hello callback!"

// MessageCallback receives plain messages. Implementations must tolerate
// being called from a goroutine other than the one that registered them.
type MessageCallback interface {
	OnMessage(msg string)
}

// LogCallback receives log records. The same threading contract as
// MessageCallback applies.
type LogCallback interface {
	OnLog(level, text string, unixMillis int64)
}

// RegisterMessageCallback installs cb on the message bridge, replacing any
// previous callback, and sends HelloMessage through it.
func RegisterMessageCallback(cb MessageCallback) {
	if cb == nil {
		return
	}
	hub := events.Default()
	hub.Messages.Register(events.CallbackFunc[string](cb.OnMessage))
	hub.Messages.Publish(HelloMessage)
}

// RegisterLogCallback installs cb on the log bridge and sends HelloMessage
// through it as an info record.
func RegisterLogCallback(cb LogCallback) {
	if cb == nil {
		return
	}
	hub := events.Default()
	hub.Logs.Register(events.CallbackFunc[domain.LogRecord](func(r domain.LogRecord) {
		cb.OnLog(r.Level, r.Text, r.Time.UnixMilli())
	}))
	hub.Logs.Publish(domain.LogRecord{Level: "info", Text: HelloMessage, Time: time.Now()})
}

// PublishMessage queues msg for the message callback. It is dropped when no
// callback was registered.
func PublishMessage(msg string) {
	events.Default().Messages.Publish(msg)
}

// PublishLog queues a log record for the log callback.
func PublishLog(level, text string) {
	events.Default().Logs.Publish(domain.LogRecord{Level: level, Text: text, Time: time.Now()})
}
