package retry

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// Attempt performs one try. It reports the failure class alongside the value
// and the transport error, if any.
type Attempt[T any] func(ctx context.Context) (T, Failure, error)

// Runner executes attempts under a Policy. The zero value uses DefaultPolicy
// and the wall clock.
type Runner struct {
	Policy Policy

	// Now, Sleep and Rand default to the wall clock, a context-aware timer and
	// math/rand.
	Now   func() time.Time
	Sleep func(ctx context.Context, d time.Duration) error
	Rand  func() float64

	// OnRetry, when set, is called before each backoff sleep.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// NewRunner returns a Runner using p and the wall clock.
func NewRunner(p Policy) *Runner { return &Runner{Policy: p} }

// Report summarises a run.
type Report struct {
	Attempts int
	Elapsed  time.Duration
	Outcome  Outcome
}

// ExhaustedError is returned when transient failures outlast the elapsed
// budget. Err is the failure of the final attempt.
type ExhaustedError struct {
	Attempts int
	Elapsed  time.Duration
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("gave up after %d attempts in %s: %v", e.Attempts, e.Elapsed.Round(time.Millisecond), e.Err)
}

func (e *ExhaustedError) Unwrap() error { return e.Err }

// Run calls op until Next returns a terminal outcome. For Succeeded and
// RemoteRejected the last value is returned with a nil error; the caller
// classifies it. Exhaustion yields *ExhaustedError and cancellation of ctx
// yields ctx.Err().
func Run[T any](ctx context.Context, r *Runner, op Attempt[T]) (T, Report, error) {
	if r == nil {
		r = &Runner{Policy: DefaultPolicy()}
	}
	start := r.now()
	var rep Report
	for {
		rep.Attempts++
		v, failure, err := op(ctx)
		rep.Elapsed = r.now().Sub(start)

		d := Next(r.Policy, State{
			Attempt: rep.Attempts,
			Elapsed: rep.Elapsed,
			Failure: failure,
			Rand:    r.rand(),
		})
		rep.Outcome = d.Outcome

		switch d.Outcome {
		case Succeeded, RemoteRejected:
			return v, rep, nil
		case Exhausted:
			return v, rep, &ExhaustedError{Attempts: rep.Attempts, Elapsed: rep.Elapsed, Err: err}
		}

		if r.OnRetry != nil {
			r.OnRetry(rep.Attempts, d.Delay, err)
		}
		if err := r.sleep(ctx, d.Delay); err != nil {
			return v, rep, err
		}
	}
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Runner) rand() float64 {
	if r.Rand != nil {
		return r.Rand()
	}
	return rand.Float64()
}

func (r *Runner) sleep(ctx context.Context, d time.Duration) error {
	if r.Sleep != nil {
		return r.Sleep(ctx, d)
	}
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
