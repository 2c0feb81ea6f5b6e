// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gecon

import (
	"code.hybscloud.com/kont"
)

// Loop runs a recursive Cont-world sequence.
// step returns Left(nextState) to continue or Right(outcome) to finish.
func Loop[S any](initial S, step func(S) kont.Eff[kont.Either[S, Outcome]]) kont.Eff[Outcome] {
	return kont.Bind(step(initial), func(e kont.Either[S, Outcome]) kont.Eff[Outcome] {
		if left, ok := e.GetLeft(); ok {
			return Loop(left, step)
		}
		right, _ := e.GetRight()
		return kont.Pure(right)
	})
}

// Continue is a Loop step result that runs another iteration with s.
func Continue[S any](s S) kont.Eff[kont.Either[S, Outcome]] {
	return kont.Pure(kont.Left[S, Outcome](s))
}

// Break is a Loop step result that finishes the loop with o.
func Break[S any](o Outcome) kont.Eff[kont.Either[S, Outcome]] {
	return kont.Pure(kont.Right[S, Outcome](o))
}
