// Package retry drives a call through exponential backoff bounded by a
// maximum total elapsed time.
//
// The policy is a pure function, Next, over the attempt count, the elapsed
// time and the failure seen on the last attempt:
//
//	Attempting -> Succeeded
//	Attempting -> RemoteRejected
//	Attempting -> TransientFailure -> Attempting   (budget remains)
//	Attempting -> TransientFailure -> Exhausted
//
// Only transient failures (no response obtained) are retried. Once the remote
// side answered, the outcome is final regardless of status.
//
// Run executes the machine with an injectable clock and sleeper so tests can
// drive it without waiting.
package retry
