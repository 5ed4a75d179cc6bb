package sim

import (
	"bitbucket.org/dtolpin/infrate/model"
	"bitbucket.org/dtolpin/infrate/series"
	"math/rand/v2"
	"reflect"
	"testing"
	"time"
)

func TestSample(t *testing.T) {
	start := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range []Process{
		{R: 10, C: 1.1, Hyper: model.DefaultHyper, Days: 60, Start: start},
		{R: 2, C: 3, Hyper: model.DefaultHyper, Days: 30, Start: start, Missing: 0.2},
		{R: 50, C: 1, Hyper: model.Hyper{A: 100, B: 100}, Days: 10, Start: start},
	} {
		s := p.Sample(rand.NewPCG(1, uint64(i)))
		if len(s) != p.Days {
			t.Errorf("%d: got %d days, want %d", i, len(s), p.Days)
		}
		if err := series.Validate(s); err != nil {
			t.Errorf("%d: invalid series: %v", i, err)
		}
		if !s[0].Date.Equal(start) {
			t.Errorf("%d: starts on %v", i, s[0].Date)
		}
		if p.Missing == 0 && s.Observed() != p.Days {
			t.Errorf("%d: %d days missing", i, p.Days-s.Observed())
		}

		again := p.Sample(rand.NewPCG(1, uint64(i)))
		if !reflect.DeepEqual(s, again) {
			t.Errorf("%d: same seed, different series", i)
		}
	}
}

func TestSampleMissing(t *testing.T) {
	p := Process{R: 5, C: 1.2, Hyper: model.DefaultHyper, Days: 20, Missing: 1}
	s := p.Sample(rand.NewPCG(7, 7))
	if s.Observed() != 0 {
		t.Errorf("got %d observed days, want none", s.Observed())
	}
}
