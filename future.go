// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gecon

import (
	"context"
	"sync"
	"time"

	"code.hybscloud.com/iox"
	"github.com/google/uuid"
)

// Future is a value that settles exactly once: resolved with a value,
// rejected with an error, or discarded with no value. It is the result of
// every policy call and is itself a Deferred, so sequences can await it.
type Future struct {
	id   string
	done chan struct{}

	mu        sync.Mutex
	settled   bool
	value     any
	err       error
	discarded bool
	onCancel  func()
}

// NewFuture returns a pending Future.
func NewFuture() *Future {
	return &Future{
		id:   uuid.NewString(),
		done: make(chan struct{}),
	}
}

// ID returns the unique identifier of the future, used in log records.
func (f *Future) ID() string {
	return f.id
}

func (f *Future) settle(v any, err error, discarded bool) bool {
	f.mu.Lock()
	if f.settled {
		f.mu.Unlock()
		return false
	}
	f.settled = true
	f.value, f.err, f.discarded = v, err, discarded
	f.onCancel = nil
	f.mu.Unlock()
	close(f.done)
	return true
}

// Resolve settles f with v. It reports false if f was already settled.
func (f *Future) Resolve(v any) bool {
	return f.settle(v, nil, false)
}

// Reject settles f with err. It reports false if f was already settled.
func (f *Future) Reject(err error) bool {
	return f.settle(nil, err, false)
}

// discard settles f with no value.
func (f *Future) discard() bool {
	return f.settle(nil, nil, true)
}

// Cancel abandons a pending f: it settles with ErrCanceled and the work
// behind it (a timer, a goroutine's context) is released.
func (f *Future) Cancel() {
	f.mu.Lock()
	cancel := f.onCancel
	f.mu.Unlock()
	if f.settle(nil, ErrCanceled, false) && cancel != nil {
		cancel()
	}
}

func (f *Future) setCanceler(fn func()) {
	f.mu.Lock()
	if !f.settled {
		f.onCancel = fn
	}
	f.mu.Unlock()
}

// Done returns a channel closed when f settles.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Poll returns iox.ErrWouldBlock while f is pending, its outcome afterwards.
func (f *Future) Poll() (any, error) {
	select {
	case <-f.done:
	default:
		return nil, iox.ErrWouldBlock
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.err
}

// Await blocks until f settles or ctx ends.
// A discarded future yields (nil, nil).
func (f *Future) Await(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.Poll()
	case <-ctx.Done():
		return nil, context.Cause(ctx)
	}
}

// Discarded reports whether f settled with no value because the run
// behind it lost authority or the call was dropped.
func (f *Future) Discarded() bool {
	select {
	case <-f.done:
	default:
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.discarded
}

// After returns a Future that resolves with nil once d has elapsed.
// Cancel stops the timer.
func After(d time.Duration) *Future {
	f := NewFuture()
	t := time.AfterFunc(d, func() { f.Resolve(nil) })
	f.setCanceler(func() { t.Stop() })
	return f
}

// Async runs fn on a new goroutine and returns a Future for its result.
// Cancel cancels the context passed to fn.
func Async(ctx context.Context, fn func(ctx context.Context) (any, error)) *Future {
	f := NewFuture()
	ctx, cancel := context.WithCancel(ctx)
	f.setCanceler(cancel)
	go func() {
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				f.Reject(recovered(r))
			}
		}()
		v, err := fn(ctx)
		if err != nil {
			f.Reject(err)
			return
		}
		f.Resolve(v)
	}()
	return f
}
