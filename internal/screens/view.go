// Package screens holds the per-screen form state of the app and the calls
// each screen makes. A screen's requests live only as long as the screen:
// closing it cancels what is in flight and discards late results.
package screens

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by screen actions once the screen is closed, or
// before it was opened.
var ErrClosed = errors.New("screen is closed")

// View is embedded by every screen.
type View struct {
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	closed bool
	busy   int
}

// Open starts the screen's lifetime under parent.
func (v *View) Open(parent context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cancel != nil {
		v.cancel()
	}
	v.ctx, v.cancel = context.WithCancel(parent)
	v.closed = false
}

// Close ends the lifetime. In-flight requests are cancelled and nothing they
// return reaches the session afterwards.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	if v.cancel != nil {
		v.cancel()
	}
}

// Submitting reports whether a request is outstanding, for a busy indicator.
func (v *View) Submitting() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.busy > 0
}

func (v *View) begin() (context.Context, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.ctx == nil || v.closed {
		return nil, false
	}
	v.busy++
	return v.ctx, true
}

func (v *View) end() {
	v.mu.Lock()
	v.busy--
	v.mu.Unlock()
}

// run performs fn under the view's context and, if the view is still open
// when it returns, hands the result to apply. apply runs under the view lock
// with a context that outlives the view, so a write it starts is not torn by
// a concurrent Close.
func run[T any](v *View, fn func(ctx context.Context) (T, error), apply func(ctx context.Context, out T)) (T, error) {
	var zero T
	ctx, ok := v.begin()
	if !ok {
		return zero, ErrClosed
	}
	defer v.end()

	out, err := fn(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return zero, ErrClosed
	}
	if err != nil {
		return zero, err
	}
	if apply != nil {
		apply(context.WithoutCancel(ctx), out)
	}
	return out, nil
}
