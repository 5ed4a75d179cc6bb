package kernel

import (
	"bitbucket.org/dtolpin/gogp/kernel"
	"math"
)

// The Gaussian smoothing window. The window spans ceil(1+6*std)
// days, and the weight of each day is the normal covariance
// between the day and the window's center.
type Gaussian struct {
	Std float64
}

// Width is the number of days covered by the window.
func (g Gaussian) Width() int {
	return int(math.Ceil(1 + 6*g.Std))
}

// Offset is the position of the window's first day relative
// to the smoothed day. For even widths the window extends one
// day further into the past.
func (g Gaussian) Offset() int {
	return -g.Width() / 2
}

// Weights returns the unnormalized weights of the window.
func (g Gaussian) Weights() []float64 {
	n := g.Width()
	w := make([]float64, n)
	center := float64(n-1) / 2
	for i := range w {
		w[i] = kernel.Normal.Cov(g.Std, float64(i), center)
	}
	return w
}
