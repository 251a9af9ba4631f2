package types

// SessionID identifies a pairing session on the directory.
type SessionID string

// String returns the string form of the session id.
func (id SessionID) String() string { return string(id) }

// ParticipantID identifies one participant of a session.
type ParticipantID string

// String returns the string form of the participant id.
func (id ParticipantID) String() string { return string(id) }
