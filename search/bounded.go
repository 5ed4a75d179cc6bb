package search

import (
	"fmt"
	"math"
)

// Settings control the bounded minimizer. The zero value
// and nil both select the defaults.
type Settings struct {
	XTol    float64 // absolute tolerance on the minimizer, 1e-5
	MaxEval int     // maximum number of evaluations, 500
}

// Result of bounded minimization.
type Result struct {
	X         float64
	F         float64
	Evals     int
	Converged bool
}

const (
	defaultXTol    = 1e-5
	defaultMaxEval = 500
)

var (
	sqrtEps    = math.Sqrt(2.2e-16)
	goldenMean = 0.5 * (3 - math.Sqrt(5))
)

// Bounded minimizes f in the open interval (lo, hi) with
// Brent's method, combining golden section steps and
// parabolic interpolation. Running out of evaluations is not
// an error; the best point found is returned with Converged
// unset.
func Bounded(
	f func(float64) float64,
	lo, hi float64,
	settings *Settings,
) (Result, error) {
	if !(lo < hi) {
		return Result{}, fmt.Errorf("bounded search in [%g, %g]: %w",
			lo, hi, ErrRange)
	}
	xtol, maxEval := defaultXTol, defaultMaxEval
	if settings != nil {
		if settings.XTol > 0 {
			xtol = settings.XTol
		}
		if settings.MaxEval > 0 {
			maxEval = settings.MaxEval
		}
	}

	a, b := lo, hi
	// x is the best point so far, w the second best, v the
	// previous value of w.
	v := a + goldenMean*(b-a)
	w, x := v, v
	fx := f(x)
	fv, fw := fx, fx
	evals := 1
	d, e := 0., 0.

	xm := 0.5 * (a + b)
	tol1 := sqrtEps*math.Abs(x) + xtol/3
	tol2 := 2 * tol1
	for math.Abs(x-xm) > tol2-0.5*(b-a) {
		if evals >= maxEval {
			return Result{X: x, F: fx, Evals: evals}, nil
		}
		golden := true
		if math.Abs(e) > tol1 {
			// Try a parabola through x, v and w.
			r := (x - w) * (fx - fv)
			q := (x - v) * (fx - fw)
			p := (x-v)*q - (x-w)*r
			q = 2 * (q - r)
			if q > 0 {
				p = -p
			}
			q = math.Abs(q)
			r = e
			e = d
			if math.Abs(p) < math.Abs(0.5*q*r) &&
				p > q*(a-x) && p < q*(b-x) {
				golden = false
				d = p / q
				u := x + d
				if u-a < tol2 || b-u < tol2 {
					d = tol1 * sign(xm-x)
				}
			}
		}
		if golden {
			if x >= xm {
				e = a - x
			} else {
				e = b - x
			}
			d = goldenMean * e
		}

		u := x + sign(d)*math.Max(math.Abs(d), tol1)
		fu := f(u)
		evals++

		if fu <= fx {
			if u >= x {
				a = x
			} else {
				b = x
			}
			v, fv = w, fw
			w, fw = x, fx
			x, fx = u, fu
		} else {
			if u < x {
				a = u
			} else {
				b = u
			}
			switch {
			case fu <= fw || w == x:
				v, fv = w, fw
				w, fw = u, fu
			case fu <= fv || v == x || v == w:
				v, fv = u, fu
			}
		}

		xm = 0.5 * (a + b)
		tol1 = sqrtEps*math.Abs(x) + xtol/3
		tol2 = 2 * tol1
	}

	return Result{X: x, F: fx, Evals: evals, Converged: true}, nil
}

// sign is 1 for zero.
func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
