// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gecon

// defaultBacklog bounds the pending-call queue of Sync and LastSync.
const defaultBacklog = 1024

// Option configures a policy wrapper.
type Option func(*options)

type options struct {
	parallel       int
	backlog        int
	stopSuperseded bool
	logger         Logger
}

func defaultOptions() options {
	return options{
		parallel: 1,
		backlog:  defaultBacklog,
		logger:   NoOpLogger{},
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// WithParallel bounds how many queued calls of a Sync wrapper run at once.
// Values below 1 are treated as 1.
func WithParallel(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.parallel = n
	}
}

// WithBacklog bounds how many calls may wait in a Sync or LastSync queue.
// The bound is rounded up to a power of two.
func WithBacklog(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.backlog = n
		}
	}
}

// WithStopSuperseded cancels the context of runs that lose authority
// (superseded Last runs, runs invalidated by Promised.Stop), so pending
// timers, fetches and child tasks are aborted instead of running to
// completion.
func WithStopSuperseded() Option {
	return func(o *options) {
		o.stopSuperseded = true
	}
}

// WithLogger sets the Logger used by the wrapper.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
