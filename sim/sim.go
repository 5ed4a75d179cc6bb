// Package sim samples count series from the generative process
// that the model assumes.
package sim

import (
	"bitbucket.org/dtolpin/infrate/model"
	"bitbucket.org/dtolpin/infrate/series"
	"gonum.org/v1/gonum/stat/distuv"
	"math"
	"math/rand/v2"
	"time"
)

// Process generates daily counts. Each day's success
// probability q is drawn from the predictive beta prior, the
// daily rate from a gamma with shape R and rate (1-q)/q, and
// the count from a Poisson with that rate, which makes the
// count negative binomial. Missing is the probability of a
// day being unreported; unreported days are not sampled.
type Process struct {
	R, C    float64
	Hyper   model.Hyper
	Days    int
	Start   time.Time
	Missing float64
}

// Sample draws a series from the process.
func (p Process) Sample(src rand.Source) series.Series {
	s := make(series.Series, p.Days)
	missing := distuv.Bernoulli{P: p.Missing, Src: src}
	alpha, beta := p.Hyper.A, p.Hyper.B
	for i := range s {
		if i != 0 {
			alpha, beta = alpha/p.C, beta/p.C
		}
		s[i].Date = p.Start.AddDate(0, 0, i)
		if p.Missing > 0 && missing.Rand() == 1 {
			s[i].Missing = true
			continue
		}
		k := p.count(alpha, beta, src)
		s[i].New = k
		alpha += float64(k)
		beta += p.R
	}
	return s
}

func (p Process) count(alpha, beta float64, src rand.Source) int {
	q := distuv.Beta{Alpha: alpha, Beta: beta, Src: src}.Rand()
	if !(q > 0) {
		return 0
	}
	q = math.Min(q, 1-1e-12)
	lambda := distuv.Gamma{Alpha: p.R, Beta: (1 - q) / q, Src: src}.Rand()
	if !(lambda > 0) {
		return 0
	}
	return int(distuv.Poisson{Lambda: lambda, Src: src}.Rand())
}
