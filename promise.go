// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gecon

import "context"

// Promised starts a new run on every call. Stop invalidates every run in
// flight: their futures are discarded instead of settling with a value.
type Promised struct {
	factory Factory
	opts    options
	gen     generation
	runs    runSet
}

// Promisify wraps factory so every call runs on its own goroutine.
func Promisify(factory Factory, opts ...Option) *Promised {
	return &Promised{factory: factory, opts: buildOptions(opts)}
}

// Call starts a run with args.
func (w *Promised) Call(ctx context.Context, args ...any) *Future {
	f := NewFuture()
	m := w.gen.current()
	rctx, release := w.runs.track(ctx, m)
	go func() {
		defer release()
		v, live, err := Execute(rctx, w.factory, args, w.gen.actual(m))
		logOutcome(w.opts.logger, "promise", f, live, err)
		settle(f, v, live, err)
	}()
	return f
}

// Stop invalidates every run started so far.
func (w *Promised) Stop() {
	m := w.gen.next()
	if w.opts.stopSuperseded {
		n := w.runs.cancelBelow(m)
		w.opts.logger.Debug("runs cancelled", "policy", "promise", "count", n)
	}
}
