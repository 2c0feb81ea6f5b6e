// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gecon

import (
	"context"

	"code.hybscloud.com/iox"
)

// Deferred is a value that settles later, possibly with a failure.
//
// Poll is non-blocking: it returns iox.ErrWouldBlock while the value is
// pending, and the settled value or failure afterwards.
type Deferred interface {
	Poll() (any, error)
}

// Canceler is implemented by deferred values that can be abandoned.
// After Cancel the value settles no further.
type Canceler interface {
	Cancel()
}

// notifier is implemented by deferred values that can signal settlement,
// letting waiters block instead of polling.
type notifier interface {
	Done() <-chan struct{}
}

// await blocks until d settles or ctx ends. Deferred values without a
// settlement channel are polled past the iox.ErrWouldBlock boundary with
// adaptive backoff. When ctx ends first, d is cancelled if it supports it.
func await(ctx context.Context, d Deferred) (any, error) {
	if n, ok := d.(notifier); ok {
		select {
		case <-n.Done():
			return d.Poll()
		case <-ctx.Done():
			return abandon(ctx, d)
		}
	}
	var bo iox.Backoff
	for {
		v, err := d.Poll()
		if !iox.IsWouldBlock(err) {
			return v, err
		}
		if ctx.Err() != nil {
			return abandon(ctx, d)
		}
		bo.Wait()
	}
}

func abandon(ctx context.Context, d Deferred) (any, error) {
	if c, ok := d.(Canceler); ok {
		c.Cancel()
	}
	return nil, context.Cause(ctx)
}
