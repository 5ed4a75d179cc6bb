// Package priors provides log-densities to be used as priors
// on the model parameters r and c.
package priors

import (
	"bitbucket.org/dtolpin/infergo/dist"
	"bitbucket.org/dtolpin/infergo/model"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// LogDensity is the log density of a prior on a single
// parameter. A nil LogDensity is the flat prior.
type LogDensity func(float64) float64

// Priors on the model parameters. Nil priors, and a nil
// *Priors, contribute nothing.
type Priors struct {
	R LogDensity
	C LogDensity
}

var _ model.Model = &Priors{}

// Observe returns the log prior density of x = [r, c].
func (p *Priors) Observe(x []float64) float64 {
	const (
		r = iota
		c
	)

	ll := 0.
	if p == nil {
		return ll
	}
	if p.R != nil {
		ll += p.R(x[r])
	}
	if p.C != nil {
		ll += p.C(x[c])
	}
	return ll
}

func Normal(mu, sigma float64) LogDensity {
	return func(x float64) float64 {
		return dist.Normal.Logp(mu, sigma, x)
	}
}

// LogNormal is the density of x when log(x) is normal.
func LogNormal(mu, sigma float64) LogDensity {
	return func(x float64) float64 {
		if x <= 0 {
			return math.Inf(-1)
		}
		y := math.Log(x)
		return dist.Normal.Logp(mu, sigma, y) - y
	}
}

// Gamma has shape alpha and rate beta.
func Gamma(alpha, beta float64) LogDensity {
	return func(x float64) float64 {
		if x <= 0 {
			return math.Inf(-1)
		}
		return dist.Gamma.Logp(alpha, beta, x)
	}
}

func Expon(lambda float64) LogDensity {
	return func(x float64) float64 {
		if x < 0 {
			return math.Inf(-1)
		}
		return dist.Expon.Logp(lambda, x)
	}
}

// Parse builds a prior from a description such as
// "gamma:2,0.5". The families are normal:mu,sigma,
// lognormal:mu,sigma, gamma:alpha,beta and expon:lambda;
// an empty description, "flat" and "uniform" denote the flat
// prior, returned as nil.
func Parse(desc string) (LogDensity, error) {
	desc = strings.TrimSpace(desc)
	name, args := desc, ""
	if i := strings.IndexByte(desc, ':'); i >= 0 {
		name, args = desc[:i], desc[i+1:]
	}

	var params []float64
	if args != "" {
		for _, arg := range strings.Split(args, ",") {
			x, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
			if err != nil {
				return nil, fmt.Errorf("prior %q: %v", desc, err)
			}
			params = append(params, x)
		}
	}

	name = strings.ToLower(name)
	arity := map[string]int{
		"": 0, "flat": 0, "uniform": 0,
		"normal": 2, "lognormal": 2, "gamma": 2, "expon": 1,
	}
	n, ok := arity[name]
	if !ok {
		return nil, fmt.Errorf("prior %q: unknown family %q", desc, name)
	}
	if len(params) != n {
		return nil, fmt.Errorf("prior %q: want %d parameters, got %d",
			desc, n, len(params))
	}
	// All parameters are positive except for the location of
	// the normal families.
	for i, x := range params {
		if i == 0 && (name == "normal" || name == "lognormal") {
			continue
		}
		if !(x > 0) {
			return nil, fmt.Errorf("prior %q: parameter %d must be positive",
				desc, i+1)
		}
	}

	switch name {
	case "normal":
		return Normal(params[0], params[1]), nil
	case "lognormal":
		return LogNormal(params[0], params[1]), nil
	case "gamma":
		return Gamma(params[0], params[1]), nil
	case "expon":
		return Expon(params[0]), nil
	}
	return nil, nil
}
