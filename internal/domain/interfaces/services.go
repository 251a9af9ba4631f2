package interfaces

import domaintypes "pairing/internal/domain/types"

// SessionService composes directory calls into the operations the boundary
// layer exposes. Errors are *domaintypes.GeneralError or
// *domaintypes.NetworkingError.
type SessionService interface {
	StartSession(sessionID domaintypes.SessionID, key domaintypes.PublicKey) (domaintypes.Session, error)
	JoinSession(sessionID domaintypes.SessionID, key domaintypes.PublicKey) (domaintypes.Session, error)
	Ack(correlationID string, expectedCount int) (bool, error)
	Participants(sessionID domaintypes.SessionID) (domaintypes.Session, error)
	Delete(peerID string) error
	CreateKeyPair() (domaintypes.KeyPair, error)
}

// KeyGenerator produces key pairs on the host side.
type KeyGenerator interface {
	GenerateKeyPair() (domaintypes.KeyPair, error)
}
