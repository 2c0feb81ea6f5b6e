// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gecon

import (
	"context"
	"sync"
)

// First runs one call at a time and drops calls made while it is busy:
// their futures are discarded immediately.
type First struct {
	factory Factory
	opts    options
	gen     generation
	runs    runSet

	mu   sync.Mutex
	busy bool
}

// NewFirst wraps factory with the first-call-wins policy.
func NewFirst(factory Factory, opts ...Option) *First {
	return &First{factory: factory, opts: buildOptions(opts)}
}

// Call starts a run with args unless one is in flight.
func (w *First) Call(ctx context.Context, args ...any) *Future {
	f := NewFuture()
	w.mu.Lock()
	if w.busy {
		w.mu.Unlock()
		w.opts.logger.Debug("call dropped", "policy", "first", "call_id", f.ID())
		f.discard()
		return f
	}
	w.busy = true
	m := w.gen.next()
	rctx, release := w.runs.track(ctx, m)
	w.mu.Unlock()

	go func() {
		defer release()
		v, live, err := Execute(rctx, w.factory, args, w.gen.actual(m))
		w.mu.Lock()
		if w.gen.current() == m {
			w.busy = false
		} else {
			live = false
		}
		w.mu.Unlock()
		logOutcome(w.opts.logger, "first", f, live, err)
		settle(f, v, live, err)
	}()
	return f
}

// Stop discards the run in flight, if any, and accepts the next call.
func (w *First) Stop() {
	w.mu.Lock()
	m := w.gen.next()
	w.busy = false
	w.mu.Unlock()
	if w.opts.stopSuperseded {
		w.runs.cancelBelow(m)
	}
}
