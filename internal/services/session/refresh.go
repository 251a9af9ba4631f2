package session

import (
	"pairing/internal/domain"
)

// RefreshResult is the outcome of one Refresh round.
type RefreshResult struct {
	Session domain.Session
	Ready   bool
	Deleted bool
}

// Refresh runs one polling round for the participant holding mine:
//
//  1. Fetch the participants of id.
//  2. If someone else joined, ack the number of keys seen under our
//     participant id.
//  3. If the directory reports the session ready, mark ourselves deleted.
//
// Both the creator and the joiner call this repeatedly until Ready; a failed
// round can simply be retried.
func (s *Service) Refresh(id domain.SessionID, mine domain.PublicKey) (RefreshResult, error) {
	if mine.IsZero() {
		return RefreshResult{}, domain.Generalf("public key is empty")
	}
	sess, err := s.Participants(id)
	if err != nil {
		return RefreshResult{}, err
	}
	res := RefreshResult{Session: sess}
	if !sess.Contains(mine) {
		return res, domain.Generalf("session %s does not include our key", id)
	}
	if len(sess.Keys) < 2 {
		s.log.Debug().Str("session_id", id.String()).Msg("no peer yet")
		return res, nil
	}

	pid := mine.ParticipantID().String()
	ready, err := s.Ack(pid, len(sess.Keys))
	if err != nil {
		return res, err
	}
	res.Ready = ready
	if !ready {
		return res, nil
	}
	if err := s.Delete(pid); err != nil {
		return res, err
	}
	res.Deleted = true
	return res, nil
}
