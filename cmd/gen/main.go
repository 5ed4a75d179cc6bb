package main

import (
	"bitbucket.org/dtolpin/infrate/model"
	"bitbucket.org/dtolpin/infrate/series"
	"bitbucket.org/dtolpin/infrate/sim"
	"flag"
	"fmt"
	"gonum.org/v1/gonum/stat"
	"log"
	"math/rand/v2"
	"os"
	"time"
)

var (
	R       = 10.
	C       = 1.2
	A       = model.DefaultHyper.A
	B       = model.DefaultHyper.B
	DAYS    = 100
	REGIONS = 1
	MISSING = 0.
	START   = "2020-03-01"
	SEED    = uint64(time.Now().UTC().UnixNano())
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			`Generate test data. Invocation:
	%s  [OPTIONS] > OUTPUT
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Float64Var(&R, "r", R, "failure count")
	flag.Float64Var(&C, "c", C, "variance factor")
	flag.Float64Var(&A, "a", A, "initial prior pseudo-count a")
	flag.Float64Var(&B, "b", B, "initial prior pseudo-count b")
	flag.IntVar(&DAYS, "days", DAYS, "number of days")
	flag.IntVar(&REGIONS, "regions", REGIONS, "number of regions")
	flag.Float64Var(&MISSING, "missing", MISSING,
		"probability of a day being missing")
	flag.StringVar(&START, "start", START, "first date")
	flag.Uint64Var(&SEED, "seed", SEED, "random seed")
}

func main() {
	log.SetFlags(0)
	flag.Parse()

	start, err := time.Parse(series.Layout, START)
	if err != nil {
		log.Fatal(err)
	}
	p := sim.Process{
		R:       R,
		C:       C,
		Hyper:   model.Hyper{A: A, B: B},
		Days:    DAYS,
		Start:   start,
		Missing: MISSING,
	}
	src := rand.NewPCG(SEED, SEED)

	var counts []float64
	for i := 0; i != REGIONS; i++ {
		s := p.Sample(src)
		for _, d := range s {
			if !d.Missing {
				counts = append(counts, float64(d.New))
			}
		}
		region := ""
		if REGIONS > 1 {
			region = fmt.Sprintf("region%d", i+1)
		}
		if err := series.Write(os.Stdout, region, s); err != nil {
			log.Fatal(err)
		}
	}

	if len(counts) != 0 {
		mean, std := stat.MeanStdDev(counts, nil)
		fmt.Fprintf(os.Stderr, "%d observed days, mean %.2f, std %.2f\n",
			len(counts), mean, std)
	}
}
