// Package model computes posteriors of the daily infection
// rate and the marginal likelihood of the model parameters.
//
// Daily new infection counts k follow a negative binomial
// distribution with failure count r and success probability
// q, and q has a conjugate beta prior. The posterior of the
// scaled daily rate q/(1-q) is then beta prime with
// parameters alpha and beta. Each day's predictive prior is
// the previous day's posterior with both parameters divided
// by the variance factor c.
package model

import (
	"bitbucket.org/dtolpin/infergo/model"
	"bitbucket.org/dtolpin/infrate/priors"
	"bitbucket.org/dtolpin/infrate/series"
	"errors"
	"fmt"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mathext"
	"math"
	"sort"
)

// Hyper are the parameters of the initial predictive prior.
type Hyper struct {
	A, B float64
}

// DefaultHyper is a weak initial prior on the daily rate.
var DefaultHyper = Hyper{A: 1, B: 3}

var ErrHyper = errors.New("non-positive prior pseudo-counts")

// Check returns ErrHyper unless both pseudo-counts are positive.
func (h Hyper) Check() error {
	if !(h.A > 0) || !(h.B > 0) {
		return fmt.Errorf("a=%g, b=%g: %w", h.A, h.B, ErrHyper)
	}
	return nil
}

// Day is a day of a count series with the parameters of the
// rate posterior.
type Day struct {
	series.Day
	Alpha, Beta float64
}

// Posteriors returns the days of s with posterior parameters
// for failure count r and variance factor c. A missing day
// adds no evidence, but the prior still decays. Negative
// counts and non-positive pseudo-counts are errors.
func Posteriors(s series.Series, r, c float64, h Hyper) ([]Day, error) {
	if len(s) == 0 {
		return nil, series.ErrEmpty
	}
	if err := h.Check(); err != nil {
		return nil, err
	}
	days := make([]Day, len(s))
	alpha, beta := h.A, h.B
	for i, d := range s {
		if i != 0 {
			alpha, beta = alpha/c, beta/c
		}
		if !d.Missing {
			if d.New < 0 {
				return nil, fmt.Errorf("%s: %d: %w",
					d.Date.Format(series.Layout), d.New, series.ErrNegative)
			}
			alpha += float64(d.New)
			beta += r
		}
		days[i] = Day{Day: d, Alpha: alpha, Beta: beta}
	}
	return days, nil
}

// LogPredictives returns the log predictive probability of
// each day's count given the previous days, NaN for missing
// days. The days must come from Posteriors with the same r.
func LogPredictives(days []Day, r float64) []float64 {
	lls := make([]float64, len(days))
	for i, d := range days {
		if d.Missing {
			lls[i] = math.NaN()
			continue
		}
		lls[i] = logPredictive(d.Alpha, d.Beta, float64(d.New), r)
	}
	return lls
}

func logPredictive(alpha, beta, k, r float64) float64 {
	ll := mathext.Lbeta(alpha, beta) - mathext.Lbeta(alpha-k, beta-r)
	// log(k) + logB(k, r) = -log C(k+r-1, k), and the binomial
	// coefficient is 1 when k is 0.
	if k > 0 {
		ll -= math.Log(k) + mathext.Lbeta(k, r)
	}
	return ll
}

// logMarginal sums the log predictive probabilities of the
// observed days.
func logMarginal(days []Day, r float64) float64 {
	ll := 0.
	for _, d := range days {
		if !d.Missing {
			ll += logPredictive(d.Alpha, d.Beta, float64(d.New), r)
		}
	}
	return ll
}

// LogMarginalLikelihood returns the log marginal likelihood of
// r and c given independent count series, plus the log prior
// densities. The sum does not depend on the order of the
// series.
func LogMarginalLikelihood(
	ss []series.Series,
	r, c float64,
	h Hyper,
	p *priors.Priors,
) (float64, error) {
	if len(ss) == 0 {
		return 0, fmt.Errorf("no series: %w", series.ErrEmpty)
	}
	lls := make([]float64, len(ss))
	for i, s := range ss {
		days, err := Posteriors(s, r, c, h)
		if err != nil {
			return 0, fmt.Errorf("series %d: %w", i, err)
		}
		lls[i] = logMarginal(days, r)
	}
	sort.Float64s(lls)
	return floats.Sum(lls) + p.Observe([]float64{r, c}), nil
}

// Model is the marginal likelihood of x = [r, c] given count
// series, as an infergo model.
type Model struct {
	Series []series.Series
	Hyper  Hyper
	Priors *priors.Priors
}

var _ model.Model = &Model{}

// NewModel validates the series and returns a model holding
// private copies of them.
func NewModel(ss []series.Series, h Hyper, p *priors.Priors) (*Model, error) {
	if len(ss) == 0 {
		return nil, fmt.Errorf("no series: %w", series.ErrEmpty)
	}
	if err := h.Check(); err != nil {
		return nil, err
	}
	m := &Model{
		Series: make([]series.Series, len(ss)),
		Hyper:  h,
		Priors: p,
	}
	for i, s := range ss {
		if err := series.Validate(s); err != nil {
			return nil, fmt.Errorf("series %d: %w", i, err)
		}
		m.Series[i] = series.Clone(s)
	}
	return m, nil
}

// Observe returns the log marginal likelihood, including the
// priors, of x = [r, c].
func (m *Model) Observe(x []float64) float64 {
	const (
		r = iota
		c
	)

	ll, err := LogMarginalLikelihood(m.Series, x[r], x[c], m.Hyper, m.Priors)
	if err != nil {
		// only an empty model can fail
		return math.NaN()
	}
	return ll
}
