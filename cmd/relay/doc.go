// Package main runs the in-memory session directory used during development
// and tests.
//
// HTTP API (POST, JSON)
//
//	/key    {session_id, key}  join; returns {keys}
//	/ready  {uuid, accepted}   ack;  returns {is_ready}
//	/part   {session_id}       participants; returns {keys}
//	/del    {peer_id}          delete; returns {}
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - Non-2xx responses carry {status, msg}.
//   - An access log records method, path, remote, status, bytes and duration
//     for each request.
//   - The default listen address is :8000. SIGINT or SIGTERM stops the
//     server gracefully.
package main
