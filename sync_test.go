// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gecon_test

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"strings"
	"sync"
	"testing"
	"testing/quick"
	"time"

	"code.hybscloud.com/gecon"
	"code.hybscloud.com/iox"
)

func TestSyncSerial(t *testing.T) {
	rec := &recorder{}
	w := gecon.NewSync(instrumented(rec, 5*time.Millisecond))
	var futures []*gecon.Future
	for _, k := range []string{"a", "b", "c"} {
		futures = append(futures, w.Call(context.Background(), k))
	}
	for i, k := range []string{"a", "b", "c"} {
		if v, err := await(t, futures[i]); err != nil || v != k {
			t.Fatalf("%s got (%v, %v)", k, v, err)
		}
	}
	events, maxActive := rec.snapshot()
	want := []string{"start a", "end a", "start b", "end b", "start c", "end c"}
	if !reflect.DeepEqual(events, want) {
		t.Fatalf("events got %v, want %v", events, want)
	}
	if maxActive != 1 {
		t.Fatalf("max active got %d, want 1", maxActive)
	}
}

func TestSyncParallel(t *testing.T) {
	rec := &recorder{}
	w := gecon.NewSync(instrumented(rec, 10*time.Millisecond), gecon.WithParallel(2))
	keys := []string{"a", "b", "c", "d", "e"}
	var futures []*gecon.Future
	for _, k := range keys {
		futures = append(futures, w.Call(context.Background(), k))
	}
	for i, k := range keys {
		if v, err := await(t, futures[i]); err != nil || v != k {
			t.Fatalf("%s got (%v, %v)", k, v, err)
		}
	}
	events, maxActive := rec.snapshot()
	if maxActive > 2 {
		t.Fatalf("max active got %d, want <= 2", maxActive)
	}
	var starts []string
	for _, e := range events {
		if k, ok := strings.CutPrefix(e, "start "); ok {
			starts = append(starts, k)
		}
	}
	if !slices.Equal(starts, keys) {
		t.Fatalf("start order got %v, want %v", starts, keys)
	}
}

func TestSyncFailureIsolated(t *testing.T) {
	gates := map[string]*gecon.Future{
		"ok1": resolved(nil),
		"bad": rejected(errBoom),
		"ok2": resolved(nil),
	}
	w := gecon.NewSync(gated(gates))
	f1 := w.Call(context.Background(), "ok1")
	fbad := w.Call(context.Background(), "bad")
	f2 := w.Call(context.Background(), "ok2")
	if v, err := await(t, f1); err != nil || v != "ok1" {
		t.Fatalf("ok1 got (%v, %v)", v, err)
	}
	if _, err := await(t, fbad); !errors.Is(err, errBoom) {
		t.Fatalf("bad got %v, want %v", err, errBoom)
	}
	if v, err := await(t, f2); err != nil || v != "ok2" {
		t.Fatalf("ok2 got (%v, %v)", v, err)
	}
}

func TestSyncBacklogFull(t *testing.T) {
	gates := map[string]*gecon.Future{}
	for _, k := range []string{"a", "b", "c", "d", "e", "f"} {
		gates[k] = gecon.NewFuture()
	}
	// A backlog of 3 rounds up to 4 queued calls behind the running one.
	w := gecon.NewSync(gated(gates), gecon.WithBacklog(3))
	var futures []*gecon.Future
	for _, k := range []string{"a", "b", "c", "d", "e"} {
		futures = append(futures, w.Call(context.Background(), k))
	}
	ff := w.Call(context.Background(), "f")
	_, err := await(t, ff)
	if !errors.Is(err, gecon.ErrBacklogFull) {
		t.Fatalf("got %v, want ErrBacklogFull", err)
	}
	if !errors.Is(err, iox.ErrWouldBlock) {
		t.Fatalf("backlog error %v does not wrap ErrWouldBlock", err)
	}
	for _, g := range gates {
		g.Resolve(nil)
	}
	for i, k := range []string{"a", "b", "c", "d", "e"} {
		if v, err := await(t, futures[i]); err != nil || v != k {
			t.Fatalf("%s got (%v, %v)", k, v, err)
		}
	}
}

func TestSyncStopRejectsQueued(t *testing.T) {
	gates := map[string]*gecon.Future{"a": gecon.NewFuture(), "b": resolved(nil), "c": resolved(nil)}
	w := gecon.NewSync(gated(gates))
	fa := w.Call(context.Background(), "a")
	fb := w.Call(context.Background(), "b")
	fc := w.Call(context.Background(), "c")
	w.Stop()
	for _, f := range []*gecon.Future{fb, fc} {
		if _, err := await(t, f); !errors.Is(err, gecon.ErrStopped) {
			t.Fatalf("queued call got %v, want ErrStopped", err)
		}
	}
	gates["a"].Resolve(nil)
	if v, err := await(t, fa); err != nil || v != "a" {
		t.Fatalf("running call got (%v, %v)", v, err)
	}
}

func TestSyncQueuedContextCanceled(t *testing.T) {
	gates := map[string]*gecon.Future{"a": gecon.NewFuture(), "b": resolved(nil)}
	w := gecon.NewSync(gated(gates))
	fa := w.Call(context.Background(), "a")
	ctx, cancel := context.WithCancel(context.Background())
	fb := w.Call(ctx, "b")
	cancel()
	gates["a"].Resolve(nil)
	if v, err := await(t, fa); err != nil || v != "a" {
		t.Fatalf("a got (%v, %v)", v, err)
	}
	if _, err := await(t, fb); !errors.Is(err, context.Canceled) {
		t.Fatalf("b got %v, want context.Canceled", err)
	}
}

func TestSyncReentrantCall(t *testing.T) {
	var w *gecon.Sync
	var inner *gecon.Future
	factory := func(args ...any) gecon.Sequence {
		if args[0] == "outer" {
			inner = w.Call(context.Background(), "inner")
		}
		return gecon.Steps(gecon.Plain(args[0]))
	}
	w = gecon.NewSync(factory)
	if v, err := await(t, w.Call(context.Background(), "outer")); err != nil || v != "outer" {
		t.Fatalf("outer got (%v, %v)", v, err)
	}
	if v, err := await(t, inner); err != nil || v != "inner" {
		t.Fatalf("inner got (%v, %v)", v, err)
	}
}

func TestSyncOrderProperty(t *testing.T) {
	f := func(xs []uint8) bool {
		var mu sync.Mutex
		var started []uint8
		w := gecon.NewSync(func(args ...any) gecon.Sequence {
			x := args[0].(uint8)
			mu.Lock()
			started = append(started, x)
			mu.Unlock()
			return gecon.Steps(gecon.Await(gecon.After(time.Duration(x%3)*time.Microsecond)), gecon.Plain(x))
		}, gecon.WithParallel(int(len(xs)%4)+1))
		futures := make([]*gecon.Future, len(xs))
		for i, x := range xs {
			futures[i] = w.Call(context.Background(), x)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for i, x := range xs {
			v, err := futures[i].Await(ctx)
			if err != nil || v != x {
				return false
			}
		}
		mu.Lock()
		defer mu.Unlock()
		return slices.Equal(started, xs)
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 50}); err != nil {
		t.Fatal(err)
	}
}
