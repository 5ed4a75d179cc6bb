// Package search implements the one-dimensional optimizers
// used to fit the model: a binary search over integers for
// unimodal functions, and Brent's bounded minimization over
// an interval of reals.
package search

import (
	"errors"
	"fmt"
)

// ErrRange is returned when the search range is empty.
var ErrRange = errors.New("empty search range")

// Convex returns the minimizer of f over the integers in
// [x1, x2], and the minimum, under the assumption that f is
// unimodal in that range. Ties are resolved towards lower x.
// f is evaluated at most once at each point.
func Convex(f func(int) float64, x1, x2 int) (
	x int,
	y float64,
	err error,
) {
	if x1 >= x2 {
		return x1, 0, fmt.Errorf("convex search in [%d, %d]: %w",
			x1, x2, ErrRange)
	}
	memo := make(map[int]float64)
	g := func(x int) float64 {
		if y, ok := memo[x]; ok {
			return y
		}
		y := f(x)
		memo[x] = y
		return y
	}
	x, y = convex(g, x1, x2)
	return x, y, nil
}

func convex(f func(int) float64, x1, x2 int) (int, float64) {
	y1, y2 := f(x1), f(x2)
	if x2-x1 == 1 {
		return better(x1, y1, x2, y2)
	}

	// Recurse on the half containing the minimum, or on both
	// halves if the midpoint is below both ends.
	x := x1 + (x2-x1)/2
	y := f(x)
	switch {
	case y >= y1:
		return convex(f, x1, x)
	case y >= y2:
		return convex(f, x, x2)
	}
	xl, yl := convex(f, x1, x)
	xr, yr := convex(f, x, x2)
	return better(xl, yl, xr, yr)
}

// better prefers the first point on ties.
func better(x1 int, y1 float64, x2 int, y2 float64) (int, float64) {
	if y1 <= y2 {
		return x1, y1
	}
	return x2, y2
}
