package domain

// Outcome classifies how a pipeline stage produced its value.
type Outcome int

const (
	// OutcomeOK means the stage's primary path succeeded.
	OutcomeOK Outcome = iota
	// OutcomeFallback means the stage recovered through its deterministic
	// local fallback; Reason records why.
	OutcomeFallback
	// OutcomeFatal means the stage failed with no fallback; Err is set and
	// the session must end in ERRORED.
	OutcomeFatal
)

// Result is the explicit per-stage outcome type. Fallback usage is carried in
// the value rather than hidden behind exception-style recovery so it stays
// observable and testable.
type Result[T any] struct {
	Value   T
	Outcome Outcome
	Reason  string
	Err     error
}

// OK wraps a successful stage value.
func OK[T any](value T) Result[T] {
	return Result[T]{Value: value, Outcome: OutcomeOK}
}

// Fallback wraps a locally recovered stage value with the recovery reason.
func Fallback[T any](value T, reason string) Result[T] {
	return Result[T]{Value: value, Outcome: OutcomeFallback, Reason: reason}
}

// Fatal wraps a stage failure that terminates the session.
func Fatal[T any](err error) Result[T] {
	return Result[T]{Outcome: OutcomeFatal, Err: err}
}

// Degraded reports whether the stage used its fallback.
func (r Result[T]) Degraded() bool {
	return r.Outcome == OutcomeFallback
}
