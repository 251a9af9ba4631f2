package types

// JoinRequest is the body of POST key.
type JoinRequest struct {
	SessionID string `json:"session_id"`
	Key       string `json:"key"`
}

// AckRequest is the body of POST ready. Accepted is the number of
// participants the caller has stored locally.
type AckRequest struct {
	UUID     string `json:"uuid"`
	Accepted int    `json:"accepted"`
}

// ParticipantsRequest is the body of POST part.
type ParticipantsRequest struct {
	SessionID string `json:"session_id"`
}

// DeleteRequest is the body of POST del.
type DeleteRequest struct {
	PeerID string `json:"peer_id"`
}

// KeysResponse is returned by both key and part.
type KeysResponse struct {
	Keys []PublicKey `json:"keys"`
}

// AckResponse is returned by ready.
type AckResponse struct {
	IsReady bool `json:"is_ready"`
}

// ErrorResponse is the structured error body sent with non-2xx statuses.
type ErrorResponse struct {
	Status int    `json:"status"`
	Msg    string `json:"msg"`
}
