// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package gecon drives step sequences, suspendable computations that
// yield values to be resolved, and coordinates repeated calls of the same
// operation with call-concurrency policies.
//
// # Sequences
//
// A [Sequence] produces [Step]s on demand and is resumed with the
// [Outcome] of resolving each step's [Yield]: a plain value ([Plain]), a
// deferred value ([Await]), a nested sequence ([Nest]) or a nested task
// ([Child]). A failed resolution is injected as a Left outcome so the
// sequence may recover from it.
//
// Sequences are written either directly ([SequenceFunc], [Steps]) or as
// effectful computations on [code.hybscloud.com/kont]: [YieldBind],
// [YieldThen], [YieldCatch], [Return], [Fail] and [Loop] build a
// Cont-world computation that performs the [Suspend] effect; [FromEff]
// and [FromExpr] step it one effect at a time.
//
// # Execution
//
//   - [Call], [Go]: run a sequence with no coordination.
//   - [Execute]: run a sequence under a staleness predicate ([Actual]);
//     a run whose predicate turns false is abandoned after its current
//     step and settles with no value.
//
// # Tasks
//
// A [Task] is a cancellable unit of work with Run, Stop and Done.
// [SequenceTask] registers every task yielded during its run as a child
// and stops them all when stopped. [DelayTask] and [FetchTask] are leaf
// tasks backed by a timer and an HTTP request.
//
// # Policies
//
//   - [Promisify]: every call runs; Stop invalidates runs in flight.
//   - [NewFirst]: calls made while a run is in flight are dropped.
//   - [NewLast]: every call runs; only the most recent one settles with a value.
//   - [NewSync]: calls run in arrival order, [WithParallel] at a time.
//   - [NewLastSync]: calls run one at a time in arrival order; calls
//     overtaken while queued still run but are discarded.
//
// Every policy call returns a [Future]. A discarded future settles with
// no value and reports [Future.Discarded].
//
// # Example
//
//	search := gecon.NewLast(func(args ...any) gecon.Sequence {
//		return gecon.FromEff(gecon.YieldThen(gecon.Nest(gecon.Delay(50*time.Millisecond)),
//			gecon.YieldBind(gecon.Await(lookup(args[0].(string))), gecon.Return)))
//	})
//	search.Call(ctx, "go")
//	v, err := search.Call(ctx, "gopher").Await(ctx)
package gecon
