// Package loader fetches a named collection once per activation and exposes
// the outcome as a status-tagged State.
//
// A Loader moves Idle -> Loading -> Loaded | Failed. Fetch errors are
// recorded in the state and logged, never returned to the caller. Each
// attempt gets its own context, cancelled when the loader is deactivated or
// loaded again, and results from a superseded attempt are dropped.
package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DefaultTimeout bounds a single fetch attempt unless overridden with
// WithTimeout.
const DefaultTimeout = 10 * time.Second

var (
	ErrEmptyCollection = errors.New("collection name is empty")
	ErrTimeout         = errors.New("fetch timed out")
	ErrPanic           = errors.New("fetch panicked")
)

// FetchFunc retrieves every record of the named collection. Implementations
// should return promptly once ctx is done.
type FetchFunc[T any] func(ctx context.Context, collection string) ([]T, error)

type options struct {
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures a Loader.
type Option func(*options)

// WithTimeout sets the per-attempt timeout. Zero or negative disables it.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithLogger sets the sink for load diagnostics. Without it a loader logs to
// slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

type attempt struct {
	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}
}

type subscriber[T any] struct {
	id uint64
	fn func(State[T])
}

// Loader manages the fetch lifecycle of one collection.
type Loader[T any] struct {
	name  string
	fetch FetchFunc[T]
	opts  options

	// notifyMu serialises transitions with their delivery so no subscriber
	// sees a transition once Deactivate has returned.
	notifyMu sync.Mutex

	mu      sync.Mutex
	state   State[T]
	active  bool
	gen     uint64
	current *attempt
	subs    []subscriber[T]
	nextSub uint64
}

// New returns an Idle loader for the named collection.
func New[T any](name string, fetch FetchFunc[T], opts ...Option) *Loader[T] {
	o := options{
		timeout: DefaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Loader[T]{
		name:   name,
		fetch:  fetch,
		opts:   o,
		state:  idle[T](),
		active: true,
	}
}

// Load is a convenience for a one-shot load: it creates a loader, starts
// the fetch and waits for it to settle or for ctx to end.
func Load[T any](ctx context.Context, name string, fetch FetchFunc[T], opts ...Option) State[T] {
	l := New(name, fetch, opts...)
	defer l.Deactivate()
	l.Load(ctx)
	return l.Wait(ctx)
}

// Name returns the collection identifier.
func (l *Loader[T]) Name() string {
	return l.name
}

// State returns the current state.
func (l *Loader[T]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Active reports whether the loader has not been deactivated.
func (l *Loader[T]) Active() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

// Subscribe registers fn to receive every subsequent transition. fn runs on
// the goroutine that caused the transition and must not call Load or
// Deactivate. The returned func removes the subscription.
func (l *Loader[T]) Subscribe(fn func(State[T])) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextSub
	l.nextSub++
	l.subs = append(l.subs, subscriber[T]{id: id, fn: fn})

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, s := range l.subs {
			if s.id == id {
				l.subs = append(l.subs[:i:i], l.subs[i+1:]...)
				return
			}
		}
	}
}

// Load moves the loader to Loading and starts the fetch in the background.
// It returns the Loading state; the outcome is observed through Subscribe,
// Wait or State. A previous attempt still in flight is cancelled and its
// result ignored. Calling Load on a deactivated loader does nothing.
func (l *Loader[T]) Load(ctx context.Context) State[T] {
	l.notifyMu.Lock()
	defer l.notifyMu.Unlock()

	l.mu.Lock()
	if !l.active {
		st := l.state
		l.mu.Unlock()
		return st
	}

	l.gen++
	l.supersedeLocked()

	st := loading[T]()
	l.state = st

	if l.name == "" {
		subs := l.subscribersLocked()
		l.state = failed[T](ErrEmptyCollection)
		final := l.state
		l.mu.Unlock()

		l.opts.logger.Warn("collection load rejected", "error", ErrEmptyCollection)
		deliver(subs, st)
		deliver(subs, final)
		return final
	}

	var (
		actx   context.Context
		cancel context.CancelFunc
	)
	if l.opts.timeout > 0 {
		actx, cancel = context.WithTimeoutCause(ctx, l.opts.timeout, ErrTimeout)
	} else {
		actx, cancel = context.WithCancel(ctx)
	}
	a := &attempt{gen: l.gen, cancel: cancel, done: make(chan struct{})}
	l.current = a
	subs := l.subscribersLocked()
	l.mu.Unlock()

	l.opts.logger.Debug("collection load started", "collection", l.name)
	deliver(subs, st)

	go l.run(actx, a)
	return st
}

// Wait blocks until the current attempt settles, the loader is deactivated
// or ctx ends, and returns the state at that point.
func (l *Loader[T]) Wait(ctx context.Context) State[T] {
	for {
		l.mu.Lock()
		st, a, active := l.state, l.current, l.active
		l.mu.Unlock()

		if st.Status != StatusLoading || !active || a == nil {
			return st
		}

		select {
		case <-a.done:
		case <-ctx.Done():
			return l.State()
		}
	}
}

// Deactivate tears the loader down: the in-flight fetch is cancelled, its
// result will be discarded and no subscriber is called after Deactivate
// returns. The state is frozen as it was.
func (l *Loader[T]) Deactivate() {
	l.notifyMu.Lock()
	defer l.notifyMu.Unlock()

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.active {
		return
	}
	l.active = false
	l.gen++
	l.supersedeLocked()
	l.subs = nil
}

func (l *Loader[T]) run(ctx context.Context, a *attempt) {
	type result struct {
		items []T
		err   error
	}

	ch := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- result{err: fmt.Errorf("%w: %v", ErrPanic, r)}
			}
		}()
		items, err := l.fetch(ctx, l.name)
		ch <- result{items: items, err: err}
	}()

	var res result
	select {
	case res = <-ch:
	case <-ctx.Done():
		res.err = ctx.Err()
	}
	if res.err != nil && errors.Is(context.Cause(ctx), ErrTimeout) {
		res.err = fmt.Errorf("%w after %s", ErrTimeout, l.opts.timeout)
	}

	l.settle(a, res.items, res.err)
}

func (l *Loader[T]) settle(a *attempt, items []T, err error) {
	l.notifyMu.Lock()
	defer l.notifyMu.Unlock()

	l.mu.Lock()
	if !l.active || a.gen != l.gen {
		l.mu.Unlock()
		l.opts.logger.Debug("stale collection result dropped", "collection", l.name)
		return
	}

	if err != nil {
		l.state = failed[T](err)
	} else {
		l.state = loaded(items)
	}
	st := l.state
	l.current = nil
	subs := l.subscribersLocked()
	l.mu.Unlock()

	a.cancel()

	if err != nil {
		l.opts.logger.Warn("collection load failed", "collection", l.name, "error", err)
	} else {
		l.opts.logger.Debug("collection loaded", "collection", l.name, "items", len(items))
	}

	deliver(subs, st)
	close(a.done)
}

// supersedeLocked cancels the in-flight attempt and releases its waiters.
func (l *Loader[T]) supersedeLocked() {
	if l.current == nil {
		return
	}
	l.current.cancel()
	close(l.current.done)
	l.current = nil
}

func (l *Loader[T]) subscribersLocked() []subscriber[T] {
	if len(l.subs) == 0 {
		return nil
	}
	out := make([]subscriber[T], len(l.subs))
	copy(out, l.subs)
	return out
}

func deliver[T any](subs []subscriber[T], st State[T]) {
	for _, s := range subs {
		s.fn(st)
	}
}
