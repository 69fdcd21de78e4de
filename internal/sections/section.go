package sections

import (
	"context"
	"errors"

	"github.com/Zachkp/portfolio/internal/loader"
)

// Section is one collection-backed block of the page.
type Section interface {
	Meta() Meta
	// Render loads the collection once and returns the settled view.
	Render(ctx context.Context) View
	// Watch starts a load and reports every transition to fn until stop is
	// called. fn is not called after stop returns.
	Watch(ctx context.Context, fn func(View)) (stop func())
}

type section[T any] struct {
	meta  Meta
	fetch loader.FetchFunc[T]
	opts  []loader.Option
}

// New defines a section whose records are fetched by fetch.
func New[T any](m Meta, fetch loader.FetchFunc[T], opts ...loader.Option) Section {
	return &section[T]{meta: m, fetch: fetch, opts: opts}
}

func (s *section[T]) Meta() Meta {
	return s.meta
}

func (s *section[T]) Render(ctx context.Context) View {
	st := loader.Load(ctx, s.meta.Name, s.fetch, s.opts...)
	if !st.Settled() {
		// Wait gave up because ctx ended before the loader observed it.
		err := context.Cause(ctx)
		if err == nil {
			err = errors.New("load abandoned")
		}
		st = loader.State[T]{Status: loader.StatusFailed, Err: err}
	}
	return FromState(s.meta, st)
}

func (s *section[T]) Watch(ctx context.Context, fn func(View)) func() {
	l := loader.New(s.meta.Name, s.fetch, s.opts...)
	l.Subscribe(func(st loader.State[T]) {
		fn(FromState(s.meta, st))
	})
	l.Load(ctx)
	return l.Deactivate
}
