package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pairing/internal/domain"
	"pairing/internal/services/session"
)

type call struct {
	op    string
	arg   string
	count int
}

// fakeDirectory records calls and replays scripted results.
type fakeDirectory struct {
	calls []call

	session domain.Session
	ready   bool
	err     error
}

func (f *fakeDirectory) JoinSession(_ context.Context, sk domain.SessionKey) (domain.Session, error) {
	f.calls = append(f.calls, call{op: "join", arg: sk.SessionID.String() + "/" + sk.Key.String()})
	if f.err != nil {
		return domain.Session{}, f.err
	}
	return domain.Session{ID: sk.SessionID, Keys: append(f.session.Keys, sk.Key)}, nil
}

func (f *fakeDirectory) Ack(_ context.Context, id string, n int) (bool, error) {
	f.calls = append(f.calls, call{op: "ack", arg: id, count: n})
	return f.ready, f.err
}

func (f *fakeDirectory) Participants(_ context.Context, id domain.SessionID) (domain.Session, error) {
	f.calls = append(f.calls, call{op: "part", arg: id.String()})
	if f.err != nil {
		return domain.Session{}, f.err
	}
	return domain.Session{ID: id, Keys: f.session.Keys}, nil
}

func (f *fakeDirectory) Delete(_ context.Context, id string) error {
	f.calls = append(f.calls, call{op: "del", arg: id})
	return f.err
}

func TestStartSession_GeneratesIDWhenEmpty(t *testing.T) {
	dir := &fakeDirectory{}
	svc := session.New(dir, session.WithIDGenerator(func() string { return "fresh" }))

	sess, err := svc.StartSession("", domain.NewPublicKey("K"))
	require.NoError(t, err)
	assert.Equal(t, domain.SessionID("fresh"), sess.ID)

	sess, err = svc.StartSession("given", domain.NewPublicKey("K"))
	require.NoError(t, err)
	assert.Equal(t, domain.SessionID("given"), sess.ID)
	assert.Equal(t, []call{{op: "join", arg: "fresh/K"}, {op: "join", arg: "given/K"}}, dir.calls)
}

func TestValidationFailuresAreGeneralAndSkipTheDirectory(t *testing.T) {
	dir := &fakeDirectory{}
	svc := session.New(dir)
	key := domain.NewPublicKey("K")

	_, err := svc.JoinSession("", key)
	assert.True(t, domain.IsGeneral(err))
	_, err = svc.JoinSession("  ", key)
	assert.True(t, domain.IsGeneral(err))
	_, err = svc.JoinSession("S", domain.PublicKey{})
	assert.True(t, domain.IsGeneral(err))
	_, err = svc.StartSession("", domain.PublicKey{})
	assert.True(t, domain.IsGeneral(err))
	_, err = svc.Ack("", 1)
	assert.True(t, domain.IsGeneral(err))
	_, err = svc.Ack("id", -1)
	assert.True(t, domain.IsGeneral(err))
	_, err = svc.Participants("")
	assert.True(t, domain.IsGeneral(err))
	err = svc.Delete("")
	assert.True(t, domain.IsGeneral(err))

	_, ok := domain.HTTPStatusOf(err)
	assert.False(t, ok)
	assert.Empty(t, dir.calls)
}

func TestNetworkingErrorsPassThrough(t *testing.T) {
	netErr := &domain.NetworkingError{HTTPStatus: 404, Message: "gone"}
	svc := session.New(&fakeDirectory{err: netErr})

	_, err := svc.Participants("S")
	require.ErrorIs(t, err, netErr)
	status, ok := domain.HTTPStatusOf(err)
	require.True(t, ok)
	assert.Equal(t, 404, status)

	ready, err := svc.Ack("id", 2)
	assert.False(t, ready)
	assert.Equal(t, domain.KindNetworking, domain.Classify(err))
}

func TestAckReturnsDirectoryFlagUnchanged(t *testing.T) {
	dir := &fakeDirectory{ready: true}
	svc := session.New(dir)

	ready, err := svc.Ack("id", 0)
	require.NoError(t, err)
	assert.True(t, ready)
	assert.Equal(t, []call{{op: "ack", arg: "id", count: 0}}, dir.calls)
}

func TestCreateKeyPairIsEmpty(t *testing.T) {
	kp, err := session.New(&fakeDirectory{}).CreateKeyPair()
	require.NoError(t, err)
	assert.Empty(t, kp.Private)
	assert.Empty(t, kp.Public)
}
