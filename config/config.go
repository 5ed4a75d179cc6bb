// Package config reads fitting options from yaml files.
package config

import (
	"bitbucket.org/dtolpin/infrate/fit"
	"bitbucket.org/dtolpin/infrate/model"
	"bitbucket.org/dtolpin/infrate/priors"
	"bitbucket.org/dtolpin/infrate/report"
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
)

// Config mirrors the command-line options. Priors are
// descriptions accepted by priors.Parse.
type Config struct {
	A      float64 `yaml:"a"`
	B      float64 `yaml:"b"`
	RPrior string  `yaml:"rprior"`
	CPrior string  `yaml:"cprior"`
	CMin   float64 `yaml:"cmin"`
	CMax   float64 `yaml:"cmax"`
	MaxR   int     `yaml:"maxr"`
	Smooth float64 `yaml:"smooth"` // std of Gaussian smoothing, 0 for none
	Gamma  float64 `yaml:"gamma"`  // inverse infectious period
}

func Default() *Config {
	opts := fit.DefaultOptions()
	return &Config{
		A:     opts.Hyper.A,
		B:     opts.Hyper.B,
		CMin:  opts.CMin,
		CMax:  opts.CMax,
		MaxR:  opts.MaxR,
		Gamma: report.Gamma,
	}
}

// Load reads a configuration; fields absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read yaml: %w", err)
	}

	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}
	if err := c.Check(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Check validates the values.
func (c *Config) Check() error {
	switch {
	case !(c.A > 0) || !(c.B > 0):
		return fmt.Errorf("invalid prior pseudo-counts a=%g, b=%g", c.A, c.B)
	case !(c.CMin > 0) || !(c.CMin < c.CMax):
		return fmt.Errorf("invalid bounds of c [%g, %g]", c.CMin, c.CMax)
	case c.MaxR < 2:
		return fmt.Errorf("invalid maximum r %d", c.MaxR)
	case c.Smooth < 0:
		return fmt.Errorf("invalid smoothing std %g", c.Smooth)
	case !(c.Gamma > 0):
		return fmt.Errorf("invalid inverse infectious period %g", c.Gamma)
	}
	return nil
}

// Options builds fitting options from the configuration.
func (c *Config) Options() (*fit.Options, error) {
	if err := c.Check(); err != nil {
		return nil, err
	}
	rprior, err := priors.Parse(c.RPrior)
	if err != nil {
		return nil, err
	}
	cprior, err := priors.Parse(c.CPrior)
	if err != nil {
		return nil, err
	}
	opts := fit.DefaultOptions()
	opts.Hyper = model.Hyper{A: c.A, B: c.B}
	opts.CMin, opts.CMax = c.CMin, c.CMax
	opts.MaxR = c.MaxR
	if rprior != nil || cprior != nil {
		opts.Priors = &priors.Priors{R: rprior, C: cprior}
	}
	return opts, nil
}
