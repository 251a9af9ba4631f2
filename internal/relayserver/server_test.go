package relayserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pairing/internal/domain"
	"pairing/internal/relayserver"
)

func pk(s string) domain.PublicKey { return domain.NewPublicKey(s) }

func TestJoin_AppendsInOrderAndIsIdempotent(t *testing.T) {
	s := relayserver.New()

	keys, err := s.Join("S", pk("A"))
	require.NoError(t, err)
	assert.Equal(t, []domain.PublicKey{pk("A")}, keys)

	_, err = s.Join("S", pk("B"))
	require.NoError(t, err)
	keys, err = s.Join("S", pk("A"))
	require.NoError(t, err)
	assert.Equal(t, []domain.PublicKey{pk("A"), pk("B")}, keys)

	assert.Empty(t, s.Participants("other"))
}

func TestJoin_Capacity(t *testing.T) {
	s := relayserver.New(relayserver.WithCapacity(2))
	_, err := s.Join("S", pk("A"))
	require.NoError(t, err)
	_, err = s.Join("S", pk("B"))
	require.NoError(t, err)

	_, err = s.Join("S", pk("C"))
	require.Error(t, err)

	// Rejoining with a present key is still allowed.
	_, err = s.Join("S", pk("B"))
	require.NoError(t, err)
}

func TestAck_ReadyNeedsEveryoneAtFullCount(t *testing.T) {
	s := relayserver.New()
	a, b := pk("A"), pk("B")
	_, _ = s.Join("S", a)

	ready, err := s.Ack(a.ParticipantID(), 1)
	require.NoError(t, err)
	assert.False(t, ready, "a lone participant is never ready")

	_, _ = s.Join("S", b)
	ready, err = s.Ack(a.ParticipantID(), 2)
	require.NoError(t, err)
	assert.False(t, ready)

	ready, err = s.Ack(b.ParticipantID(), 1)
	require.NoError(t, err)
	assert.False(t, ready, "stale count")

	ready, err = s.Ack(b.ParticipantID(), 2)
	require.NoError(t, err)
	assert.True(t, ready)

	_, err = s.Ack("unknown", 2)
	require.Error(t, err)
}

func TestDelete_DropsSessionWhenEveryoneDeleted(t *testing.T) {
	s := relayserver.New()
	a, b := pk("A"), pk("B")
	_, _ = s.Join("S", a)
	_, _ = s.Join("S", b)

	require.NoError(t, s.Delete(a.ParticipantID()))
	assert.Len(t, s.Participants("S"), 2, "tombstoned participants stay listed")

	require.NoError(t, s.Delete(b.ParticipantID()))
	assert.Empty(t, s.Participants("S"))

	require.Error(t, s.Delete(a.ParticipantID()))
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_ErrorBodies(t *testing.T) {
	h := relayserver.New(relayserver.WithCapacity(1)).Handler()

	cases := []struct {
		name, path, body string
		status           int
	}{
		{"malformed json", "/key", `{`, http.StatusBadRequest},
		{"missing key", "/key", `{"session_id":"S"}`, http.StatusBadRequest},
		{"unknown ack", "/ready", `{"uuid":"x","accepted":2}`, http.StatusNotFound},
		{"unknown delete", "/del", `{"peer_id":"x"}`, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := post(t, h, tc.path, tc.body)
			require.Equal(t, tc.status, rec.Code)
			var body domain.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.status, body.Status)
			assert.NotEmpty(t, body.Msg)
		})
	}

	require.Equal(t, http.StatusOK, post(t, h, "/key", `{"session_id":"S","key":"A"}`).Code)
	full := post(t, h, "/key", `{"session_id":"S","key":"B"}`)
	assert.Equal(t, http.StatusConflict, full.Code)
	assert.Contains(t, full.Body.String(), "session is full")
}

func TestHandler_WireShapes(t *testing.T) {
	h := relayserver.New().Handler()

	rec := post(t, h, "/key", `{"session_id":"S","key":"A"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"keys":[{"str":"A"}]}`, rec.Body.String())

	rec = post(t, h, "/part", `{"session_id":"nope"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"keys":[]}`, rec.Body.String())

	rec = post(t, h, "/ready", `{"uuid":"`+pk("A").ParticipantID().String()+`","accepted":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"is_ready":false}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/part", nil)
	get := httptest.NewRecorder()
	h.ServeHTTP(get, req)
	assert.Equal(t, http.StatusMethodNotAllowed, get.Code)
}

func TestJoin_KeyLiveInOneSessionAtATime(t *testing.T) {
	s := relayserver.New()
	k, p := pk("K"), pk("P")
	_, err := s.Join("S1", k)
	require.NoError(t, err)
	_, err = s.Join("S1", p)
	require.NoError(t, err)

	_, err = s.Join("S2", k)
	require.Error(t, err, "K is still live in S1")
	assert.Empty(t, s.Participants("S2"))

	// Ack and delete keep resolving to S1.
	ready, err := s.Ack(k.ParticipantID(), 2)
	require.NoError(t, err)
	assert.False(t, ready)
	require.NoError(t, s.Delete(k.ParticipantID()))
	assert.Equal(t, []domain.PublicKey{k, p}, s.Participants("S1"))

	// Once tombstoned in S1, K may start S2.
	_, err = s.Join("S2", k)
	require.NoError(t, err)

	// Finishing S1 must not forget K's membership in S2.
	require.NoError(t, s.Delete(p.ParticipantID()))
	assert.Empty(t, s.Participants("S1"))

	_, err = s.Join("S2", pk("Q"))
	require.NoError(t, err)
	ready, err = s.Ack(k.ParticipantID(), 2)
	require.NoError(t, err)
	assert.False(t, ready)
	assert.Equal(t, []domain.PublicKey{k, pk("Q")}, s.Participants("S2"))
}

func TestHandler_KeyInUseIsConflict(t *testing.T) {
	h := relayserver.New().Handler()
	require.Equal(t, http.StatusOK, post(t, h, "/key", `{"session_id":"S1","key":"K"}`).Code)

	rec := post(t, h, "/key", `{"session_id":"S2","key":"K"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "another session")
}
