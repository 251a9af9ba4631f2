package relay

import (
	"context"

	"pairing/internal/domain"
)

// JoinSession adds key.Key to session key.SessionID and returns every key the
// directory now holds for it. The response does not echo the id, so the
// returned Session carries the one the caller supplied.
func (c *HTTP) JoinSession(ctx context.Context, key domain.SessionKey) (domain.Session, error) {
	c.Log.Info().Str("session_id", key.SessionID.String()).Str("key", key.Key.String()).Msg("joining session")

	var out domain.KeysResponse
	req := domain.JoinRequest{SessionID: key.SessionID.String(), Key: key.Key.String()}
	if err := c.post(ctx, "join", "key", req, &out); err != nil {
		return domain.Session{}, err
	}
	return domain.Session{ID: key.SessionID, Keys: out.Keys}, nil
}

// Ack reports that the caller stored expectedCount participants and returns
// whether the directory considers the session ready. Not ready is a plain
// false, not an error.
func (c *HTTP) Ack(ctx context.Context, correlationID string, expectedCount int) (bool, error) {
	c.Log.Info().Str("uuid", correlationID).Int("accepted", expectedCount).Msg("acking session")

	var out domain.AckResponse
	req := domain.AckRequest{UUID: correlationID, Accepted: expectedCount}
	if err := c.post(ctx, "ack", "ready", req, &out); err != nil {
		return false, err
	}
	return out.IsReady, nil
}

// Participants fetches the current key list without changing it.
func (c *HTTP) Participants(ctx context.Context, sessionID domain.SessionID) (domain.Session, error) {
	c.Log.Info().Str("session_id", sessionID.String()).Msg("requesting participants")

	var out domain.KeysResponse
	req := domain.ParticipantsRequest{SessionID: sessionID.String()}
	if err := c.post(ctx, "participants", "part", req, &out); err != nil {
		return domain.Session{}, err
	}
	return domain.Session{ID: sessionID, Keys: out.Keys}, nil
}

// Delete marks the participant deleted. The response body is ignored.
func (c *HTTP) Delete(ctx context.Context, peerID string) error {
	c.Log.Info().Str("peer_id", peerID).Msg("marking participant deleted")

	return c.post(ctx, "delete", "del", domain.DeleteRequest{PeerID: peerID}, nil)
}

var _ domain.DirectoryClient = (*HTTP)(nil)
