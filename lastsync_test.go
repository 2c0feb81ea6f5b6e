// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gecon_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"code.hybscloud.com/gecon"
)

// tracked wraps factory so every instantiation is recorded.
func tracked(rec *recorder, factory gecon.Factory) gecon.Factory {
	return func(args ...any) gecon.Sequence {
		rec.enter(args[0].(string))
		return factory(args...)
	}
}

func TestLastSyncOvertakenDiscarded(t *testing.T) {
	gates := map[string]*gecon.Future{"a": gecon.NewFuture(), "b": resolved(nil), "c": resolved(nil)}
	rec := &recorder{}
	w := gecon.NewLastSync(tracked(rec, gated(gates)))
	fa := w.Call(context.Background(), "a")
	fb := w.Call(context.Background(), "b")
	fc := w.Call(context.Background(), "c")
	if !pendingFor(fc, 10*time.Millisecond) {
		t.Fatal("queued call settled while the first one runs")
	}
	gates["a"].Resolve(nil)
	if v, err := await(t, fa); err != nil || v != "a" {
		t.Fatalf("a got (%v, %v)", v, err)
	}
	if v, err := await(t, fb); v != nil || err != nil || !fb.Discarded() {
		t.Fatalf("overtaken b got (%v, %v, discarded=%v)", v, err, fb.Discarded())
	}
	if v, err := await(t, fc); err != nil || v != "c" {
		t.Fatalf("c got (%v, %v)", v, err)
	}
	events, maxActive := rec.snapshot()
	if want := []string{"start a", "start b", "start c"}; !reflect.DeepEqual(events, want) {
		t.Fatalf("events got %v, want %v", events, want)
	}
	if maxActive != 3 {
		t.Fatalf("instantiations got %d, want 3", maxActive)
	}
}

func TestLastSyncStop(t *testing.T) {
	gates := map[string]*gecon.Future{"a": gecon.NewFuture(), "b": resolved(nil), "c": resolved(nil)}
	w := gecon.NewLastSync(gated(gates))
	fa := w.Call(context.Background(), "a")
	fb := w.Call(context.Background(), "b")
	w.Stop()
	gates["a"].Resolve(nil)
	for _, f := range []*gecon.Future{fa, fb} {
		if _, err := await(t, f); err != nil || !f.Discarded() {
			t.Fatalf("stopped call got err=%v discarded=%v", err, f.Discarded())
		}
	}
	if v, err := await(t, w.Call(context.Background(), "c")); err != nil || v != "c" {
		t.Fatalf("call after Stop got (%v, %v)", v, err)
	}
}
