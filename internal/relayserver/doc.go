// Package relayserver is an in-memory session directory speaking the same
// JSON protocol the relay client uses. It backs cmd/relay during development
// and serves as the remote side in tests.
//
// HTTP API (all POST, JSON bodies)
//
//	key    {session_id, key}   append key to the session, reply {keys}
//	ready  {uuid, accepted}    record the participant's stored count, reply {is_ready}
//	part   {session_id}        reply {keys} (empty for unknown sessions)
//	del    {peer_id}           tombstone the participant, reply {}
//
// Participants are identified by the hex SHA-256 of their key, so a key can
// be live in only one session at a time; joining a second session answers
// 409 until the key is deleted from the first. A session is
// ready once it has at least two participants and each of them acked a count
// equal to the current number of participants. When every participant of a
// session is deleted the session is dropped.
//
// Failures are answered with a non-2xx status and {status, msg}.
package relayserver
