// Package series holds daily new-infection count series and
// the data preparation that precedes model fitting.
package series

import (
	"errors"
	"fmt"
	"time"
)

// Day is a single day of a count series. When Missing is set,
// New carries no information.
type Day struct {
	Date    time.Time
	New     int
	Missing bool
}

// Series is a gap-free sequence of consecutive days.
type Series []Day

// Named is a series tagged with its region.
type Named struct {
	Region string
	Series Series
}

var (
	ErrEmpty    = errors.New("empty series")
	ErrOrder    = errors.New("dates are not increasing")
	ErrGap      = errors.New("missing calendar day")
	ErrNegative = errors.New("negative count")
)

// Layout is the date format of series files.
const Layout = "2006-01-02"

// Validate checks that s is non-empty, covers consecutive
// calendar days, and holds non-negative counts.
func Validate(s Series) error {
	if len(s) == 0 {
		return ErrEmpty
	}
	for i, d := range s {
		if !d.Missing && d.New < 0 {
			return fmt.Errorf("%s: %w %d",
				d.Date.Format(Layout), ErrNegative, d.New)
		}
		if i == 0 {
			continue
		}
		prev := s[i-1].Date
		if !d.Date.After(prev) {
			return fmt.Errorf("%s after %s: %w",
				d.Date.Format(Layout), prev.Format(Layout), ErrOrder)
		}
		if next := prev.AddDate(0, 0, 1); !d.Date.Equal(next) {
			return fmt.Errorf("%s: %w", next.Format(Layout), ErrGap)
		}
	}
	return nil
}

// Clone returns a copy of s sharing no memory with it.
func Clone(s Series) Series {
	if s == nil {
		return nil
	}
	c := make(Series, len(s))
	copy(c, s)
	return c
}

// Observed returns the number of days with a count.
func (s Series) Observed() int {
	n := 0
	for _, d := range s {
		if !d.Missing {
			n++
		}
	}
	return n
}

// Cumulative is a cumulative count reported on a date.
type Cumulative struct {
	Date  time.Time
	Total float64
}

// FromCumulative turns cumulative counts, sorted by date,
// into a series of daily new counts. Leading days with fewer
// than minPositive cumulative infections are dropped, and
// unreported days within the range become missing, as does
// the day following one. The count of the first day is its
// cumulative total.
func FromCumulative(obs []Cumulative, minPositive float64) (Series, error) {
	start := 0
	for start != len(obs) && !(obs[start].Total > 0 && obs[start].Total >= minPositive) {
		start++
	}
	obs = obs[start:]
	if len(obs) == 0 {
		return nil, ErrEmpty
	}

	first, last := obs[0].Date, obs[len(obs)-1].Date
	var s Series
	prev, known := 0., true
	i := 0
	for date := first; !date.After(last); date = date.AddDate(0, 0, 1) {
		d := Day{Date: date, Missing: true}
		if i != len(obs) && obs[i].Date.Equal(date) {
			total := obs[i].Total
			if known {
				d.New = int(total - prev)
				d.Missing = false
			}
			prev, known = total, true
			i++
		} else {
			known = false
		}
		s = append(s, d)
	}
	if i != len(obs) {
		return nil, fmt.Errorf("%s: %w",
			obs[i].Date.Format(Layout), ErrOrder)
	}
	return s, nil
}
