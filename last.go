// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gecon

import (
	"context"
	"sync"
)

// Last starts a run on every call; only the most recent call settles with
// a value. Older runs in flight are superseded: they keep running until
// their next step settles, then their futures are discarded. With
// WithStopSuperseded their contexts are cancelled as well.
type Last struct {
	factory Factory
	opts    options
	gen     generation
	runs    runSet
	mu      sync.Mutex
}

// NewLast wraps factory with the last-call-wins policy.
func NewLast(factory Factory, opts ...Option) *Last {
	return &Last{factory: factory, opts: buildOptions(opts)}
}

// Call supersedes every earlier call and starts a run with args.
func (w *Last) Call(ctx context.Context, args ...any) *Future {
	f := NewFuture()
	w.mu.Lock()
	m := w.gen.next()
	rctx, release := w.runs.track(ctx, m)
	if w.opts.stopSuperseded {
		if n := w.runs.cancelBelow(m); n > 0 {
			w.opts.logger.Debug("runs superseded", "policy", "last", "call_id", f.ID(), "count", n)
		}
	}
	w.mu.Unlock()

	go func() {
		defer release()
		v, live, err := Execute(rctx, w.factory, args, w.gen.actual(m))
		logOutcome(w.opts.logger, "last", f, live, err)
		settle(f, v, live, err)
	}()
	return f
}

// Stop supersedes every call made so far.
func (w *Last) Stop() {
	w.mu.Lock()
	m := w.gen.next()
	if w.opts.stopSuperseded {
		w.runs.cancelBelow(m)
	}
	w.mu.Unlock()
}
