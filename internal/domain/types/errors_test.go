package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	net := &NetworkingError{HTTPStatus: 409, Message: "full"}
	gen := Generalf("session id is empty")

	assert.Equal(t, KindNone, Classify(nil))
	assert.Equal(t, KindNetworking, Classify(net))
	assert.Equal(t, KindNetworking, Classify(fmt.Errorf("join: %w", net)))
	assert.Equal(t, KindGeneral, Classify(gen))
	assert.Equal(t, KindGeneral, Classify(errors.New("plain")), "unclassified errors are general")

	assert.True(t, IsNetworking(net))
	assert.False(t, IsNetworking(gen))
	assert.True(t, IsGeneral(gen))
	assert.False(t, IsGeneral(net))
}

func TestHTTPStatusOf(t *testing.T) {
	status, ok := HTTPStatusOf(fmt.Errorf("wrapped: %w", &NetworkingError{HTTPStatus: UnknownHTTPStatus}))
	assert.True(t, ok)
	assert.Equal(t, 520, status)

	_, ok = HTTPStatusOf(Generalf("local"))
	assert.False(t, ok)
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "networking error (status 404): unknown participant",
		(&NetworkingError{HTTPStatus: 404, Message: "unknown participant"}).Error())

	cause := errors.New("disk full")
	gen := &GeneralError{Message: "save key", Err: cause}
	assert.Equal(t, "save key: disk full", gen.Error())
	assert.ErrorIs(t, gen, cause)
}
