// Package report derives daily infection rates and effective
// reproduction numbers from the rate posteriors.
package report

import (
	"bitbucket.org/dtolpin/infrate/model"
	"bitbucket.org/dtolpin/infrate/series"
	"fmt"
	"gonum.org/v1/gonum/stat/distuv"
	"io"
	"math"
)

// Gamma is the default inverse infectious period, in days.
const Gamma = 1. / 5

// Quantiles of the reported credible bands.
const (
	Lo = 0.05
	Hi = 0.95
)

// Row is a day of the report. Rates are the posterior median
// and quantiles of the daily infection rate; Rt is the
// effective reproduction number implied by the change of the
// median rate to the next day, and RtLo, RtHi its band.
type Row struct {
	series.Day
	Rate, RateLo, RateHi float64
	Rt, RtLo, RtHi       float64
	// Ratio of the median rate to the previous day's, NaN on
	// the first day. exp(-gamma) bounds it from below when
	// infections only end through recovery.
	Ratio float64
}

// Rates returns a row for every day but the last, which has
// no successor to derive the reproduction number from. r is
// the failure count the posteriors were computed with.
func Rates(days []model.Day, r, gamma float64) []Row {
	n := len(days)
	if n < 2 {
		return nil
	}
	med := make([]float64, n)
	lo := make([]float64, n)
	hi := make([]float64, n)
	for i, d := range days {
		b := distuv.Beta{Alpha: d.Alpha, Beta: d.Beta}
		med[i] = r * betaPrime(b.Quantile(0.5))
		lo[i] = r * betaPrime(b.Quantile(Lo))
		hi[i] = r * betaPrime(b.Quantile(Hi))
	}

	rows := make([]Row, n-1)
	for i := range rows {
		logm := math.Log(med[i])
		rows[i] = Row{
			Day:    days[i].Day,
			Rate:   med[i],
			RateLo: lo[i],
			RateHi: hi[i],
			Rt:     (math.Log(med[i+1])-logm)/gamma + 1,
			RtLo:   (math.Log(lo[i+1])-logm)/gamma + 1,
			RtHi:   (math.Log(hi[i+1])-logm)/gamma + 1,
			Ratio:  math.NaN(),
		}
		if i != 0 {
			rows[i].Ratio = med[i] / med[i-1]
		}
	}
	return rows
}

// betaPrime maps a beta variate to the beta prime variate
// with the same parameters.
func betaPrime(q float64) float64 {
	return q / (1 - q)
}

// Write writes the rows as csv with a header.
func Write(w io.Writer, rows []Row) error {
	if _, err := fmt.Fprintln(w,
		"date,new,rate,rate_lo,rate_hi,rt,rt_lo,rt_hi,ratio"); err != nil {
		return err
	}
	for _, row := range rows {
		count := ""
		if !row.Missing {
			count = fmt.Sprint(row.New)
		}
		if _, err := fmt.Fprintf(w, "%s,%s,%f,%f,%f,%f,%f,%f,%f\n",
			row.Date.Format(series.Layout), count,
			row.Rate, row.RateLo, row.RateHi,
			row.Rt, row.RtLo, row.RtHi, row.Ratio); err != nil {
			return err
		}
	}
	return nil
}
