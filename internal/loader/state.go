package loader

// Status tags the active variant of a State.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is the outcome of a fetch attempt. Items is only meaningful when
// Status is StatusLoaded, Err only when Status is StatusFailed.
type State[T any] struct {
	Status Status
	Items  []T
	Err    error
}

// Settled reports whether the attempt has reached Loaded or Failed.
func (s State[T]) Settled() bool {
	return s.Status == StatusLoaded || s.Status == StatusFailed
}

// Empty reports a successful load that returned no items. It is false for
// failed attempts so presenters can tell the two apart.
func (s State[T]) Empty() bool {
	return s.Status == StatusLoaded && len(s.Items) == 0
}

// ErrorText returns the failure description, or "" when not failed.
func (s State[T]) ErrorText() string {
	if s.Status != StatusFailed || s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

func idle[T any]() State[T] {
	return State[T]{Status: StatusIdle}
}

func loading[T any]() State[T] {
	return State[T]{Status: StatusLoading}
}

func loaded[T any](items []T) State[T] {
	return State[T]{Status: StatusLoaded, Items: items}
}

func failed[T any](err error) State[T] {
	return State[T]{Status: StatusFailed, Err: err}
}
