// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gecon_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/gecon"
)

var errBoom = errors.New("boom")

// resolved returns a settled deferred value.
func resolved(v any) *gecon.Future {
	f := gecon.NewFuture()
	f.Resolve(v)
	return f
}

// rejected returns a deferred value settled with err.
func rejected(err error) *gecon.Future {
	f := gecon.NewFuture()
	f.Reject(err)
	return f
}

// gated returns a factory whose sequence for argument k awaits gates[k]
// and then completes with k.
func gated(gates map[string]*gecon.Future) gecon.Factory {
	return func(args ...any) gecon.Sequence {
		k := args[0].(string)
		return gecon.Steps(gecon.Await(gates[k]), gecon.Plain(k))
	}
}

// await waits for f with a test deadline.
func await(t *testing.T, f *gecon.Future) (any, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	v, err := f.Await(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		t.Fatal("future did not settle")
	}
	return v, err
}

// eventually polls cond until it holds or the deadline passes.
func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not reached")
		}
		time.Sleep(time.Millisecond)
	}
}

// pendingFor reports whether f is still unsettled after d.
func pendingFor(f *gecon.Future, d time.Duration) bool {
	select {
	case <-f.Done():
		return false
	case <-time.After(d):
		return true
	}
}

// recorder collects events from concurrent runs.
type recorder struct {
	mu        sync.Mutex
	events    []string
	active    int
	maxActive int
}

func (r *recorder) enter(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "start "+name)
	r.active++
	r.maxActive = max(r.maxActive, r.active)
}

func (r *recorder) leave(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "end "+name)
	r.active--
}

func (r *recorder) snapshot() ([]string, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...), r.maxActive
}

// instrumented returns a factory whose sequence for argument k records
// its start when instantiated, waits d, records its end and completes
// with k.
func instrumented(rec *recorder, d time.Duration) gecon.Factory {
	return func(args ...any) gecon.Sequence {
		k := args[0].(string)
		rec.enter(k)
		pos := 0
		return gecon.SequenceFunc(func(in gecon.Outcome) (gecon.Step, error) {
			pos++
			switch pos {
			case 1:
				return gecon.Step{Value: gecon.Await(gecon.After(d))}, nil
			case 2:
				rec.leave(k)
				return gecon.Step{Value: gecon.Plain(k), Done: true}, nil
			default:
				return gecon.Step{}, gecon.ErrSequenceDone
			}
		})
	}
}
