package series

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse(Layout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// daily builds a series starting on 2020-03-01; negative
// counts stand for missing days.
func daily(counts ...int) Series {
	s := make(Series, len(counts))
	t := date("2020-03-01")
	for i, k := range counts {
		s[i] = Day{Date: t.AddDate(0, 0, i), New: k}
		if k < 0 {
			s[i].New = 0
			s[i].Missing = true
		}
	}
	return s
}

func TestValidate(t *testing.T) {
	gap := daily(1, 2, 3)
	gap[2].Date = gap[2].Date.AddDate(0, 0, 1)
	disorder := daily(1, 2, 3)
	disorder[1].Date, disorder[2].Date = disorder[2].Date, disorder[1].Date
	duplicate := daily(1, 2, 3)
	duplicate[2].Date = duplicate[1].Date
	negative := daily(1, 2, 3)
	negative[1].New = -4

	for i, c := range []struct {
		s   Series
		err error
	}{
		{daily(1, 2, 3), nil},
		{daily(1, -1, 3), nil},
		{daily(0), nil},
		{nil, ErrEmpty},
		{gap, ErrGap},
		{disorder, ErrOrder},
		{duplicate, ErrOrder},
		{negative, ErrNegative},
	} {
		err := Validate(c.s)
		if c.err == nil && err != nil {
			t.Errorf("%d: unexpected error: %v", i, err)
		}
		if c.err != nil && !errors.Is(err, c.err) {
			t.Errorf("%d: got %v, want %v", i, err, c.err)
		}
	}
}

func TestClone(t *testing.T) {
	s := daily(1, 2, 3)
	c := Clone(s)
	c[0].New = 10
	if s[0].New != 1 {
		t.Errorf("clone shares memory with the original")
	}
}

func TestLoad(t *testing.T) {
	named, err := Load(strings.NewReader(`region,date,new
za,2020-03-01,3
za,2020-03-02,
usa,2020-03-01,10
za,2020-03-03,5
usa,2020-03-02,NA
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(named) != 2 {
		t.Fatalf("got %d regions, want 2", len(named))
	}
	for i, c := range []struct {
		region  string
		new     []int
		missing []bool
	}{
		{"za", []int{3, 0, 5}, []bool{false, true, false}},
		{"usa", []int{10, 0}, []bool{false, true}},
	} {
		n := named[i]
		if n.Region != c.region {
			t.Errorf("%d: got region %q, want %q", i, n.Region, c.region)
		}
		if len(n.Series) != len(c.new) {
			t.Errorf("%d: got %d days, want %d", i, len(n.Series), len(c.new))
			continue
		}
		for j, d := range n.Series {
			if d.New != c.new[j] || d.Missing != c.missing[j] {
				t.Errorf("%d: day %d: got %v, want %d/%v",
					i, j, d, c.new[j], c.missing[j])
			}
		}
		if err := Validate(n.Series); err != nil {
			t.Errorf("%d: invalid series: %v", i, err)
		}
	}
}

func TestLoadSingle(t *testing.T) {
	named, err := Load(strings.NewReader("2020-03-01,1\n2020-03-02,2\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(named) != 1 || named[0].Region != "" || len(named[0].Series) != 2 {
		t.Errorf("got %v, want one unnamed series of two days", named)
	}
}

func TestLoadErrors(t *testing.T) {
	for i, input := range []string{
		"",
		"2020-03-01,1\n2020-03-02,1.5\n",
		"2020-03-01,1\nnot a date,2\n",
		"2020-03-01,1,2,3\n",
	} {
		if _, err := Load(strings.NewReader(input)); err == nil {
			t.Errorf("%d: no error", i)
		}
	}
}

func TestFromCumulative(t *testing.T) {
	obs := []Cumulative{
		{date("2020-03-01"), 10},
		{date("2020-03-02"), 120},
		{date("2020-03-03"), 150},
		{date("2020-03-05"), 200},
		{date("2020-03-06"), 230},
		{date("2020-03-07"), 260},
	}
	s, err := FromCumulative(obs, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := daily(120, 30, -1, -1, 30, 30)
	if len(s) != len(want) {
		t.Fatalf("got %d days, want %d", len(s), len(want))
	}
	for i := range s {
		if s[i].New != want[i].New || s[i].Missing != want[i].Missing {
			t.Errorf("day %d: got %v, want %v", i, s[i], want[i])
		}
	}
	if !s[0].Date.Equal(date("2020-03-02")) {
		t.Errorf("starts on %s, want 2020-03-02", s[0].Date.Format(Layout))
	}
	if err := Validate(s); err != nil {
		t.Errorf("invalid series: %v", err)
	}

	if _, err := FromCumulative(obs, 1000); !errors.Is(err, ErrEmpty) {
		t.Errorf("got %v, want ErrEmpty", err)
	}
	obs[3], obs[4] = obs[4], obs[3]
	if _, err := FromCumulative(obs, 100); !errors.Is(err, ErrOrder) {
		t.Errorf("got %v, want ErrOrder", err)
	}
}

func TestSmooth(t *testing.T) {
	s := daily(5, 5, -1, 5, 5, 5, 5, 5, -1, 5)
	sm := Smooth(s, 3.5)
	if len(sm) != len(s) {
		t.Fatalf("got %d days, want %d", len(sm), len(s))
	}
	for i, d := range sm {
		if d.Missing || d.New != 5 {
			t.Errorf("day %d: got %v, want 5", i, d)
		}
		if !d.Date.Equal(s[i].Date) {
			t.Errorf("day %d: date changed", i)
		}
	}
	if !s[2].Missing {
		t.Errorf("input modified")
	}

	sm = Smooth(daily(0, 0, 0, 100, 0, 0, 0), 1)
	if sm[3].New >= 100 || sm[3].New <= sm[2].New || sm[2].New != sm[4].New {
		t.Errorf("spike not smoothed symmetrically: %v", sm)
	}

	sm = Smooth(daily(1, 2, 3), 0)
	for i := range sm {
		if sm[i].New != i+1 {
			t.Errorf("zero std changed day %d: %v", i, sm[i])
		}
	}
}

func TestWriteLoad(t *testing.T) {
	s := daily(4, -1, 0, 12)
	var buf strings.Builder
	if err := Write(&buf, "za", s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Write(&buf, "usa", daily(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	named, err := Load(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(named) != 2 || named[0].Region != "za" || named[1].Region != "usa" {
		t.Fatalf("got %v", named)
	}
	for i := range s {
		if named[0].Series[i] != s[i] {
			t.Errorf("day %d: got %v, want %v", i, named[0].Series[i], s[i])
		}
	}
}
