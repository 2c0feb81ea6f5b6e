// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gecon

import "context"

// Caller is a policy wrapper around a Factory. Call starts or schedules a
// run and returns the Future of that call; Stop withdraws the wrapper's
// authority over calls it has not settled yet.
type Caller interface {
	Call(ctx context.Context, args ...any) *Future
	Stop()
}

var (
	_ Caller = (*Promised)(nil)
	_ Caller = (*First)(nil)
	_ Caller = (*Last)(nil)
	_ Caller = (*Sync)(nil)
	_ Caller = (*LastSync)(nil)
)

// settle delivers the outcome of a run to f.
func settle(f *Future, v any, live bool, err error) {
	switch {
	case !live:
		f.discard()
	case err != nil:
		f.Reject(err)
	default:
		f.Resolve(v)
	}
}

// logOutcome records how a call settled.
func logOutcome(l Logger, policy string, f *Future, live bool, err error) {
	switch {
	case !live:
		l.Debug("call discarded", "policy", policy, "call_id", f.ID())
	case err != nil:
		l.Debug("call failed", "policy", policy, "call_id", f.ID(), "error", err)
	default:
		l.Debug("call resolved", "policy", policy, "call_id", f.ID())
	}
}
