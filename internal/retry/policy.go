package retry

import (
	"math"
	"time"
)

// Failure is what the last attempt produced.
type Failure int

const (
	// FailureNone means a success response was obtained.
	FailureNone Failure = iota
	// FailureRejected means a response was obtained with a non-success status.
	FailureRejected
	// FailureTransient means no response was obtained (connect, DNS, timeout).
	FailureTransient
)

func (f Failure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureRejected:
		return "rejected"
	case FailureTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// Outcome is the state the machine moves to after an attempt.
type Outcome int

const (
	Succeeded Outcome = iota
	RemoteRejected
	Retry
	Exhausted
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "succeeded"
	case RemoteRejected:
		return "remote_rejected"
	case Retry:
		return "retry"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Policy configures exponential backoff. A zero MaxElapsedTime never gives up.
type Policy struct {
	InitialInterval     time.Duration
	Multiplier          float64
	RandomizationFactor float64
	MaxInterval         time.Duration
	MaxElapsedTime      time.Duration
}

// Default backoff parameters; the elapsed ceiling is five seconds.
const (
	DefaultInitialInterval     = 500 * time.Millisecond
	DefaultMultiplier          = 1.5
	DefaultRandomizationFactor = 0.5
	DefaultMaxInterval         = 60 * time.Second
	DefaultMaxElapsedTime      = 5 * time.Second
)

// DefaultPolicy returns the reference policy.
func DefaultPolicy() Policy {
	return Policy{
		InitialInterval:     DefaultInitialInterval,
		Multiplier:          DefaultMultiplier,
		RandomizationFactor: DefaultRandomizationFactor,
		MaxInterval:         DefaultMaxInterval,
		MaxElapsedTime:      DefaultMaxElapsedTime,
	}
}

// State is the input to Next. Attempt is 1-based and counts the attempt that
// just finished. Rand is a sample in [0, 1) used for jitter.
type State struct {
	Attempt int
	Elapsed time.Duration
	Failure Failure
	Rand    float64
}

// Decision is the output of Next. Delay is only meaningful for Retry.
type Decision struct {
	Outcome Outcome
	Delay   time.Duration
}

// Next decides what happens after an attempt.
//
// The returned delay never overshoots the remaining budget, so the last
// attempt starts right at the ceiling and the total elapsed time of an
// exhausted run is at least MaxElapsedTime.
func Next(p Policy, s State) Decision {
	switch s.Failure {
	case FailureNone:
		return Decision{Outcome: Succeeded}
	case FailureRejected:
		return Decision{Outcome: RemoteRejected}
	}
	if p.MaxElapsedTime > 0 && s.Elapsed >= p.MaxElapsedTime {
		return Decision{Outcome: Exhausted}
	}
	delay := jitter(p.Interval(s.Attempt), p.RandomizationFactor, s.Rand)
	if p.MaxElapsedTime > 0 {
		if remaining := p.MaxElapsedTime - s.Elapsed; delay > remaining {
			delay = remaining
		}
	}
	return Decision{Outcome: Retry, Delay: delay}
}

// Interval returns the un-jittered delay after attempt n (1-based).
func (p Policy) Interval(n int) time.Duration {
	if p.InitialInterval <= 0 {
		return 0
	}
	if n < 1 {
		n = 1
	}
	mult := p.Multiplier
	if mult < 1.0 {
		mult = 1.0
	}
	d := float64(p.InitialInterval) * math.Pow(mult, float64(n-1))
	if p.MaxInterval > 0 && d > float64(p.MaxInterval) {
		d = float64(p.MaxInterval)
	}
	return time.Duration(d)
}

// jitter spreads d uniformly over [d-f*d, d+f*d].
func jitter(d time.Duration, factor, r float64) time.Duration {
	if factor <= 0 || d <= 0 {
		return d
	}
	if factor > 1 {
		factor = 1
	}
	delta := factor * float64(d)
	low := float64(d) - delta
	return time.Duration(low + r*(2*delta))
}
