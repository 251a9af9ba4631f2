package types

// Session is the client view of a directory session: its id and the keys of
// every participant, in the order the server reports them.
type Session struct {
	ID   SessionID   `json:"id"`
	Keys []PublicKey `json:"keys"`
}

// Contains reports whether key is one of the session's keys.
func (s Session) Contains(key PublicKey) bool {
	for _, k := range s.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// SessionKey asks the directory to add Key to session SessionID.
type SessionKey struct {
	SessionID SessionID `json:"session_id"`
	Key       PublicKey `json:"key"`
}
