package search

import (
	"errors"
	"math"
	"testing"
)

func TestConvex(t *testing.T) {
	for i, c := range []struct {
		f      func(int) float64
		x1, x2 int
		x      int
	}{
		{
			f:  func(x int) float64 { return float64((x - 7) * (x - 7)) },
			x1: 0, x2: 20,
			x: 7,
		},
		{
			f:  func(x int) float64 { return float64((x - 7) * (x - 7)) },
			x1: 8, x2: 20,
			x: 8,
		},
		{
			f:  func(x int) float64 { return float64((x - 7) * (x - 7)) },
			x1: -30, x2: 3,
			x: 3,
		},
		{
			f:  func(x int) float64 { return math.Abs(float64(x) - 100.4) },
			x1: 1, x2: 1024,
			x: 100,
		},
		{
			// flat bottom, ties go left
			f: func(x int) float64 {
				if x >= 4 && x <= 9 {
					return 0
				}
				return 1
			},
			x1: 4, x2: 12,
			x: 4,
		},
		{
			// the lower end is outside the domain
			f: func(x int) float64 {
				if x < 1 {
					return math.Inf(1)
				}
				return float64(x)
			},
			x1: 0, x2: 1,
			x: 1,
		},
	} {
		x, y, err := Convex(c.f, c.x1, c.x2)
		if err != nil {
			t.Errorf("%d: unexpected error: %v", i, err)
			continue
		}
		if x != c.x {
			t.Errorf("%d: wrong minimizer: got %d, want %d", i, x, c.x)
		}
		if y != c.f(c.x) {
			t.Errorf("%d: wrong minimum: got %g, want %g", i, y, c.f(c.x))
		}
	}
}

func TestConvexBase(t *testing.T) {
	for i, c := range []struct {
		y5, y6 float64
		x      int
	}{
		{1, 2, 5},
		{2, 1, 6},
		{1, 1, 5},
	} {
		f := func(x int) float64 {
			if x == 5 {
				return c.y5
			}
			return c.y6
		}
		x, _, err := Convex(f, 5, 6)
		if err != nil {
			t.Errorf("%d: unexpected error: %v", i, err)
			continue
		}
		if x != c.x {
			t.Errorf("%d: got %d, want %d", i, x, c.x)
		}
	}
}

func TestConvexEvaluatesOnce(t *testing.T) {
	calls := make(map[int]int)
	f := func(x int) float64 {
		calls[x]++
		return float64((x - 37) * (x - 37))
	}
	if _, _, err := Convex(f, 0, 1000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for x, n := range calls {
		if n != 1 {
			t.Errorf("f(%d) evaluated %d times", x, n)
		}
	}
}

func TestConvexRange(t *testing.T) {
	f := func(x int) float64 { return 0 }
	for _, r := range [][2]int{{3, 3}, {4, 2}} {
		if _, _, err := Convex(f, r[0], r[1]); !errors.Is(err, ErrRange) {
			t.Errorf("[%d, %d]: got %v, want ErrRange", r[0], r[1], err)
		}
	}
}
