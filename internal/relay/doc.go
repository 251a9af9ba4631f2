// Package relay provides an HTTP implementation of the domain.DirectoryClient
// interface.
//
// The relay is the remote session directory: devices post their public key
// under a shared session id, read back the participant list, report how many
// participants they stored and finally mark themselves deleted.
//
// Supported operations:
//   - JoinSession   POST key   {session_id, key}   -> {keys}
//   - Ack           POST ready {uuid, accepted}    -> {is_ready}
//   - Participants  POST part  {session_id}        -> {keys}
//   - Delete        POST del   {peer_id}           -> any 2xx
//
// Every call goes through a retry.Runner. Only failures that happen before a
// response arrives are retried; a received response is classified at once.
// All failures come back as *domain.NetworkingError carrying the observed HTTP
// status, or domain.UnknownHTTPStatus when there was none or the success body
// did not decode.
package relay
