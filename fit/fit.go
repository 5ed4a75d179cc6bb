// Package fit finds maximum marginal likelihood estimates of
// the failure count r and the variance factor c.
package fit

import (
	"bitbucket.org/dtolpin/infrate/model"
	"bitbucket.org/dtolpin/infrate/priors"
	"bitbucket.org/dtolpin/infrate/search"
	"bitbucket.org/dtolpin/infrate/series"
	"fmt"
	"gonum.org/v1/gonum/diff/fd"
	"log"
	"math"
)

// Options of the fit. A nil *Options selects DefaultOptions.
type Options struct {
	Hyper  model.Hyper
	Priors *priors.Priors
	// Bounds of c.
	CMin, CMax float64
	// The fitted r never exceeds MaxR, even if the likelihood
	// still grows, which happens when the counts are no more
	// dispersed than Poisson.
	MaxR int
	// Settings of the bounded minimizer over c.
	Settings *search.Settings
	// When set, every scored r is logged.
	Logger *log.Logger
}

// DefaultOptions are flat priors, c in [1, 100] and r up to 2^20.
func DefaultOptions() *Options {
	return &Options{
		Hyper: model.DefaultHyper,
		CMin:  1,
		CMax:  100,
		MaxR:  1 << 20,
	}
}

// Result of the fit.
type Result struct {
	R      int
	C      float64
	LogLik float64 // including the priors
	// Standard error of c from the curvature of the log
	// likelihood; NaN when c is at a bound or the curvature
	// is not positive.
	CStdErr float64
	Evals   int // number of distinct values of r scored
}

// Fit returns the r and c maximizing the marginal likelihood
// of independent count series, which all share r and c. For
// every r, c is found by bounded minimization of the negative
// log likelihood. The minimum over r is bracketed by doubling
// r, and then located by binary search in each half of the
// bracket, assuming the profile is unimodal in r.
func Fit(ss []series.Series, opts *Options) (*Result, error) {
	f, err := newFitter(ss, opts)
	if err != nil {
		return nil, err
	}

	p, r := 1, 2
	for r < f.opts.MaxR && f.objective(p) > f.objective(r) {
		p, r = r, 2*r
	}
	r = min(r, f.opts.MaxR)
	// The minimum may lie on either side of p.
	best, l1, err := search.Convex(f.objective, p/2, p)
	if err != nil {
		return nil, err
	}
	if p < r {
		r2, l2, err := search.Convex(f.objective, p, r)
		if err != nil {
			return nil, err
		}
		if l2 < l1 {
			best = r2
		}
	}

	c, nll, err := f.optC(best)
	if err != nil {
		return nil, err
	}
	return &Result{
		R:       best,
		C:       c,
		LogLik:  -nll,
		CStdErr: f.stdErrC(best, c, nll),
		Evals:   len(f.scores),
	}, nil
}

// OptC returns the c minimizing the negative log marginal
// likelihood for a given r, and the minimum.
func OptC(ss []series.Series, r int, opts *Options) (
	c, nll float64,
	err error,
) {
	f, err := newFitter(ss, opts)
	if err != nil {
		return 0, 0, err
	}
	return f.optC(r)
}

type fitter struct {
	m      *model.Model
	opts   *Options
	scores map[int]float64
}

func newFitter(ss []series.Series, opts *Options) (*fitter, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.MaxR <= 0 {
		o := *opts
		o.MaxR = DefaultOptions().MaxR
		opts = &o
	}
	if !(opts.CMin < opts.CMax) {
		return nil, fmt.Errorf("bounds of c [%g, %g]: %w",
			opts.CMin, opts.CMax, search.ErrRange)
	}
	m, err := model.NewModel(ss, opts.Hyper, opts.Priors)
	if err != nil {
		return nil, err
	}
	return &fitter{
		m:      m,
		opts:   opts,
		scores: make(map[int]float64),
	}, nil
}

// nll is the negative log marginal likelihood.
func (f *fitter) nll(r, c float64) float64 {
	return -f.m.Observe([]float64{r, c})
}

func (f *fitter) optC(r int) (c, nll float64, err error) {
	if r < 1 {
		return 0, 0, fmt.Errorf("r=%d: %w", r, search.ErrRange)
	}
	res, err := search.Bounded(
		func(c float64) float64 { return f.nll(float64(r), c) },
		f.opts.CMin, f.opts.CMax, f.opts.Settings)
	if err != nil {
		return 0, 0, err
	}
	if !res.Converged && f.opts.Logger != nil {
		f.opts.Logger.Printf("r=%d: c did not converge in %d evaluations",
			r, res.Evals)
	}
	return res.X, res.F, nil
}

// objective is the profile negative log likelihood of r, with
// c optimized out. Scores are cached, and r below 1 is
// infinitely unlikely.
func (f *fitter) objective(r int) float64 {
	if r < 1 {
		return math.Inf(1)
	}
	if nll, ok := f.scores[r]; ok {
		return nll
	}
	c, nll, err := f.optC(r)
	if err != nil {
		// unreachable for r >= 1 and valid bounds
		panic(err)
	}
	f.scores[r] = nll
	if f.opts.Logger != nil {
		f.opts.Logger.Printf("r=%d c=%.6f nll=%.6f", r, c, nll)
	}
	return nll
}

// stdErrC is the Laplace approximation of the standard error
// of c at the optimum.
func (f *fitter) stdErrC(r int, c, nll float64) float64 {
	const step = 1e-3
	if c-f.opts.CMin < 2*step || f.opts.CMax-c < 2*step {
		return math.NaN()
	}
	h := fd.Derivative(
		func(c float64) float64 { return f.nll(float64(r), c) },
		c,
		&fd.Settings{
			Formula:     fd.Central2nd,
			Step:        step,
			OriginKnown: true,
			OriginValue: nll,
		})
	if !(h > 0) {
		return math.NaN()
	}
	return 1 / math.Sqrt(h)
}
