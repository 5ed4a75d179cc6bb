package main

import (
	"bitbucket.org/dtolpin/infrate/model"
	"bitbucket.org/dtolpin/infrate/series"
	"flag"
	"fmt"
	"gonum.org/v1/gonum/stat"
	"log"
	"math"
	"os"
)

var (
	R    = 1.
	C    = 1.
	A    = model.DefaultHyper.A
	B    = model.DefaultHyper.B
	SKIP = 0
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			`Computes average negative log predictive density
of daily counts. Invocation:
	%s  [OPTIONS] < INPUT
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Float64Var(&R, "r", R, "failure count")
	flag.Float64Var(&C, "c", C, "variance factor")
	flag.Float64Var(&A, "a", A, "initial prior pseudo-count a")
	flag.Float64Var(&B, "b", B, "initial prior pseudo-count b")
	flag.IntVar(&SKIP, "s", SKIP, "initial days of each series to skip")
}

func main() {
	flag.Parse()

	named, err := series.Load(os.Stdin)
	if err != nil {
		log.Fatal(err)
	}

	var nlpds []float64
	for _, n := range named {
		if err := series.Validate(n.Series); err != nil {
			log.Fatalf("%s: %v", n.Region, err)
		}
		days, err := model.Posteriors(n.Series, R, C, model.Hyper{A: A, B: B})
		if err != nil {
			log.Fatal(err)
		}
		for i, ll := range model.LogPredictives(days, R) {
			if i < SKIP || math.IsNaN(ll) {
				continue
			}
			nlpds = append(nlpds, -ll)
		}
	}
	if len(nlpds) == 0 {
		log.Fatal("no observed days")
	}

	mean, std := stat.MeanStdDev(nlpds, nil)
	fmt.Printf("%f,%f\n", mean, std/math.Sqrt(float64(len(nlpds))))
}
