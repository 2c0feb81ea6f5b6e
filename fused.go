// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gecon

import (
	"code.hybscloud.com/kont"
)

// YieldBind yields y and passes its resolved value to f.
// A failure of y escapes the sequence.
// Fuses Perform(Suspend{Value: y}) + Bind + failure propagation.
func YieldBind(y Yield, f func(any) kont.Eff[Outcome]) kont.Eff[Outcome] {
	return kont.Bind(kont.Perform(Suspend{Value: y}), func(o Outcome) kont.Eff[Outcome] {
		if err, ok := o.GetLeft(); ok {
			return Fail(err)
		}
		v, _ := o.GetRight()
		return f(v)
	})
}

// YieldThen yields y, discards its value and continues with next.
// A failure of y escapes the sequence.
func YieldThen(y Yield, next kont.Eff[Outcome]) kont.Eff[Outcome] {
	return YieldBind(y, func(any) kont.Eff[Outcome] { return next })
}

// YieldCatch yields y and passes the full Outcome to f, which may recover
// from a failure of y.
func YieldCatch[B any](y Yield, f func(Outcome) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Suspend{Value: y}), f)
}

// Return completes a Cont-world sequence with v. If v is a Yield it is
// resolved as the final step.
func Return(v any) kont.Eff[Outcome] {
	return kont.Pure(Resolved(v))
}

// Fail completes a Cont-world sequence with err.
func Fail(err error) kont.Eff[Outcome] {
	return kont.Pure(Failed(err))
}
