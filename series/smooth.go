package series

import (
	"bitbucket.org/dtolpin/infrate/kernel"
	"math"
)

// Smooth returns a copy of s with counts replaced by their
// Gaussian rolling mean, rounded half to even. Missing days
// are left out of the means; a day is missing in the result
// only when its whole window is missing.
func Smooth(s Series, std float64) Series {
	if !(std > 0) {
		return Clone(s)
	}
	g := kernel.Gaussian{Std: std}
	w, off := g.Weights(), g.Offset()

	smoothed := Clone(s)
	for i := range s {
		sum, norm := 0., 0.
		for j := range w {
			k := i + off + j
			if k < 0 || k >= len(s) || s[k].Missing {
				continue
			}
			sum += w[j] * float64(s[k].New)
			norm += w[j]
		}
		if norm == 0 {
			smoothed[i].New = 0
			smoothed[i].Missing = true
			continue
		}
		smoothed[i].New = int(math.RoundToEven(sum / norm))
		smoothed[i].Missing = false
	}
	return smoothed
}
