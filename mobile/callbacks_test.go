package mobile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type messageSink chan string

func (s messageSink) OnMessage(msg string) { s <- msg }

type logEntry struct {
	level, text string
	at          int64
}

type logSink chan logEntry

func (s logSink) OnLog(level, text string, unixMillis int64) {
	s <- logEntry{level: level, text: text, at: unixMillis}
}

func next[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		require.FailNow(t, "callback was not invoked")
		var zero T
		return zero
	}
}

func TestRegisterMessageCallback_HelloThenMessagesInOrder(t *testing.T) {
	sink := make(messageSink, 16)
	RegisterMessageCallback(sink)

	assert.Equal(t, HelloMessage, next(t, sink))

	PublishMessage("one")
	PublishMessage("two")
	assert.Equal(t, "one", next(t, sink))
	assert.Equal(t, "two", next(t, sink))

	// A second registration replaces the first and says hello again.
	replacement := make(messageSink, 16)
	RegisterMessageCallback(replacement)
	assert.Equal(t, HelloMessage, next(t, replacement))
	PublishMessage("three")
	assert.Equal(t, "three", next(t, replacement))
	assert.Empty(t, sink)
}

func TestRegisterLogCallback_Hello(t *testing.T) {
	sink := make(logSink, 16)
	before := time.Now().UnixMilli()
	RegisterLogCallback(sink)

	hello := next(t, sink)
	assert.Equal(t, "info", hello.level)
	assert.Equal(t, HelloMessage, hello.text)
	assert.GreaterOrEqual(t, hello.at, before)

	PublishLog("warn", "disk almost full")
	got := next(t, sink)
	assert.Equal(t, "warn", got.level)
	assert.Equal(t, "disk almost full", got.text)
}

func TestRegisterNilCallbacksAreIgnored(t *testing.T) {
	assert.NotPanics(t, func() {
		RegisterMessageCallback(nil)
		RegisterLogCallback(nil)
	})
}
