package main

import (
	"bitbucket.org/dtolpin/infrate/config"
	"bitbucket.org/dtolpin/infrate/fit"
	"bitbucket.org/dtolpin/infrate/model"
	"bitbucket.org/dtolpin/infrate/report"
	"bitbucket.org/dtolpin/infrate/series"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

var (
	CONFIG  = ""
	REPORT  = false
	VERBOSE = false

	// Overrides of the configuration, applied when given on
	// the command line.
	cfg = config.Default()
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			`Fits the failure count r and the variance factor c
of the daily infection rate model. Invocation:
  %s [OPTIONS] < INPUT > OUTPUT
or
  %s [OPTIONS] selfcheck
INPUT is csv with date,new or region,date,new records.
In 'selfcheck' mode, the data hard-coded into the program is used,
to demonstrate basic functionality.
`, os.Args[0], os.Args[0])
		flag.PrintDefaults()
	}
	flag.StringVar(&CONFIG, "config", CONFIG, "yaml configuration file")
	flag.BoolVar(&REPORT, "report", REPORT,
		"output daily rates and reproduction numbers")
	flag.BoolVar(&VERBOSE, "v", VERBOSE, "log every scored r")
	flag.Float64Var(&cfg.A, "a", cfg.A, "initial prior pseudo-count a")
	flag.Float64Var(&cfg.B, "b", cfg.B, "initial prior pseudo-count b")
	flag.StringVar(&cfg.RPrior, "rprior", cfg.RPrior,
		"prior on r, e.g. gamma:2,0.1")
	flag.StringVar(&cfg.CPrior, "cprior", cfg.CPrior,
		"prior on c, e.g. lognormal:0,1")
	flag.Float64Var(&cfg.Smooth, "smooth", cfg.Smooth,
		"std of Gaussian smoothing of counts, 0 for none")
	flag.Float64Var(&cfg.Gamma, "gamma", cfg.Gamma,
		"inverse infectious period")
	flag.IntVar(&cfg.MaxR, "maxr", cfg.MaxR, "maximum r")
}

func main() {
	log.SetFlags(0)

	var (
		input  io.Reader = os.Stdin
		output io.Writer = os.Stdout
	)

	flag.Parse()
	switch {
	case flag.NArg() == 0:
	case flag.NArg() == 1 && flag.Arg(0) == "selfcheck":
		input = strings.NewReader(selfCheckData)
	default:
		flag.Usage()
		os.Exit(2)
	}

	conf, err := configure()
	if err != nil {
		log.Fatal(err)
	}
	opts, err := conf.Options()
	if err != nil {
		log.Fatal(err)
	}
	if VERBOSE {
		opts.Logger = log.New(os.Stderr, "", 0)
	}

	fmt.Fprint(os.Stderr, "loading...")
	named, err := series.Load(input)
	if err != nil {
		log.Fatal(err)
	}
	ss := make([]series.Series, len(named))
	for i, n := range named {
		ss[i] = n.Series
		if conf.Smooth > 0 {
			ss[i] = series.Smooth(n.Series, conf.Smooth)
		}
	}
	fmt.Fprintln(os.Stderr, "done")

	fmt.Fprint(os.Stderr, "fitting...")
	if VERBOSE {
		fmt.Fprintln(os.Stderr)
	}
	res, err := fit.Fit(ss, opts)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprintf(os.Stderr, "done, %d values of r scored\n", res.Evals)

	fmt.Fprintln(output, "r,c,loglik,cstderr")
	fmt.Fprintf(output, "%d,%f,%f,%f\n", res.R, res.C, res.LogLik, res.CStdErr)

	if !REPORT {
		return
	}
	for i, n := range named {
		days, err := model.Posteriors(ss[i], float64(res.R), res.C, opts.Hyper)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprintln(output)
		if n.Region != "" {
			fmt.Fprintf(output, "# %s\n", n.Region)
		}
		if err := report.Write(output,
			report.Rates(days, float64(res.R), conf.Gamma)); err != nil {
			log.Fatal(err)
		}
	}
}

// configure reads the configuration file, if any, and applies
// the options given on the command line over it.
func configure() (*config.Config, error) {
	if CONFIG == "" {
		return cfg, cfg.Check()
	}
	conf, err := config.Load(CONFIG)
	if err != nil {
		return nil, err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a":
			conf.A = cfg.A
		case "b":
			conf.B = cfg.B
		case "rprior":
			conf.RPrior = cfg.RPrior
		case "cprior":
			conf.CPrior = cfg.CPrior
		case "smooth":
			conf.Smooth = cfg.Smooth
		case "gamma":
			conf.Gamma = cfg.Gamma
		case "maxr":
			conf.MaxR = cfg.MaxR
		}
	})
	return conf, conf.Check()
}

var selfCheckData = `date,new
2020-03-20,2
2020-03-21,2
2020-03-22,11
2020-03-23,0
2020-03-24,8
2020-03-25,0
2020-03-26,15
2020-03-27,11
2020-03-28,18
2020-03-29,8
2020-03-30,15
2020-03-31,12
2020-04-01,
2020-04-02,19
2020-04-03,10
2020-04-04,20
2020-04-05,33
2020-04-06,31
2020-04-07,31
2020-04-08,65
2020-04-09,46
2020-04-10,44
2020-04-11,60
2020-04-12,57
2020-04-13,66
2020-04-14,74
2020-04-15,121
2020-04-16,94
2020-04-17,104
2020-04-18,120
2020-04-19,152
2020-04-20,114
2020-04-21,110
2020-04-22,175
2020-04-23,97
2020-04-24,120
2020-04-25,140
2020-04-26,171
2020-04-27,103
2020-04-28,71
2020-04-29,126
2020-04-30,
2020-05-01,94
2020-05-02,102
2020-05-03,91
2020-05-04,84
2020-05-05,66
2020-05-06,84
2020-05-07,79
2020-05-08,52
2020-05-09,40
2020-05-10,48
2020-05-11,40
2020-05-12,20
2020-05-13,22
2020-05-14,32
2020-05-15,19
2020-05-16,15
2020-05-17,17
2020-05-18,14
2020-05-19,12
2020-05-20,0
2020-05-21,21
2020-05-22,11
2020-05-23,4
2020-05-24,14
2020-05-25,10
2020-05-26,8
2020-05-27,13
2020-05-28,20
`
