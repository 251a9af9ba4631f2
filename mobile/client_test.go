package mobile

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pairing/internal/domain"
	"pairing/internal/relay"
	"pairing/internal/relayserver"
	"pairing/internal/retry"
)

func newTestClient(t *testing.T, opts ...relayserver.Option) *Client {
	t.Helper()
	srv := httptest.NewServer(relayserver.New(opts...).Handler())
	t.Cleanup(srv.Close)
	c, err := newClient(srv.URL+"/", zerolog.Nop())
	require.NoError(t, err)
	return c
}

func decodeSession(t *testing.T, raw string) sessionJSON {
	t.Helper()
	var s sessionJSON
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	return s
}

func TestStatus(t *testing.T) {
	assert.Equal(t, StatusOK, Status(nil))
	assert.Equal(t, StatusGeneral, Status(domain.Generalf("bad id")))
	assert.Equal(t, StatusNetworking, Status(&domain.NetworkingError{HTTPStatus: 404}))
}

func TestClient_PairingFlow(t *testing.T) {
	c := newTestClient(t)

	started := c.StartSession("", "KA")
	require.Equal(t, StatusOK, started.Status, started.Message)
	sess := decodeSession(t, started.SessionJSON)
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, []string{"KA"}, sess.Keys)

	joined := c.JoinSession(sess.ID, "KB")
	require.Equal(t, StatusOK, joined.Status, joined.Message)
	assert.Equal(t, []string{"KA", "KB"}, decodeSession(t, joined.SessionJSON).Keys)

	part := c.Participants(sess.ID)
	require.Equal(t, StatusOK, part.Status)
	assert.Equal(t, sessionJSON{ID: sess.ID, Keys: []string{"KA", "KB"}}, decodeSession(t, part.SessionJSON))

	first := c.Refresh(sess.ID, "KA")
	require.Equal(t, StatusOK, first.Status, first.Message)
	assert.False(t, first.Ready)

	second := c.Refresh(sess.ID, "KB")
	require.Equal(t, StatusOK, second.Status, second.Message)
	assert.True(t, second.Ready)
	assert.True(t, second.Deleted)

	ack := c.Ack(ParticipantID("KA"), 2)
	require.Equal(t, StatusOK, ack.Status)
	assert.True(t, ack.Ready)

	del := c.Delete(ParticipantID("KA"))
	assert.Equal(t, StatusOK, del.Status)

	gone := c.Participants(sess.ID)
	require.Equal(t, StatusOK, gone.Status)
	assert.Empty(t, decodeSession(t, gone.SessionJSON).Keys)
}

func TestClient_GeneralFailures(t *testing.T) {
	c := newTestClient(t)

	joined := c.JoinSession("", "K")
	assert.Equal(t, StatusGeneral, joined.Status)
	assert.Zero(t, joined.HTTPStatus)
	assert.Empty(t, joined.SessionJSON)

	assert.Equal(t, StatusGeneral, c.Ack("", 1).Status)
	assert.Equal(t, StatusGeneral, c.Delete("").Status)
	assert.Equal(t, StatusGeneral, c.Refresh("S", "").Status)
}

func TestClient_NetworkingFailures(t *testing.T) {
	c := newTestClient(t, relayserver.WithCapacity(1))

	require.Equal(t, StatusOK, c.JoinSession("S", "K1").Status)

	full := c.JoinSession("S", "K2")
	assert.Equal(t, StatusNetworking, full.Status)
	assert.Equal(t, http.StatusConflict, full.HTTPStatus)

	unknown := c.Ack(ParticipantID("nobody"), 2)
	assert.Equal(t, StatusNetworking, unknown.Status)
	assert.Equal(t, http.StatusNotFound, unknown.HTTPStatus)
	assert.False(t, unknown.Ready)
}

func TestClient_UnreachableDirectory(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	policy := retry.DefaultPolicy()
	policy.InitialInterval = 10 * time.Millisecond
	policy.MaxElapsedTime = 100 * time.Millisecond
	c, err := newClient("http://"+addr+"/", zerolog.Nop(), relay.WithPolicy(policy), relay.WithTimeout(time.Second))
	require.NoError(t, err)

	res := c.Participants("S")
	assert.Equal(t, StatusNetworking, res.Status)
	assert.Equal(t, domain.UnknownHTTPStatus, res.HTTPStatus)
}

func TestClient_CreateKeyPairIsEmpty(t *testing.T) {
	c := newTestClient(t)

	kp := c.CreateKeyPair()
	assert.Equal(t, StatusOK, kp.Status)
	assert.Empty(t, kp.Private)
	assert.Empty(t, kp.Public)
}

func TestNewClient_RejectsBadLogLevel(t *testing.T) {
	_, err := NewClient("", "loud", 0)
	require.Error(t, err)
}
