package series

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// Load parses series from csv. A record is either date,new
// for a single unnamed region or region,date,new. A header
// line is skipped. Empty, NA and nan counts are missing.
// Regions are returned in the order of their first record.
func Load(rdr io.Reader) ([]Named, error) {
	var named []Named
	index := make(map[string]int)

	csv := csv.NewReader(rdr)
	csv.FieldsPerRecord = -1
	csv.TrimLeadingSpace = true
	line := 0
RECORDS:
	for {
		record, err := csv.Read()
		switch err {
		case nil:
			line++
			var region string
			switch len(record) {
			case 2:
			case 3:
				region, record = record[0], record[1:]
			default:
				return nil, fmt.Errorf("line %d: want 2 or 3 fields, got %d",
					line, len(record))
			}
			date, err := time.Parse(Layout, record[0])
			if err != nil {
				if line == 1 {
					// header
					continue
				}
				return nil, fmt.Errorf("line %d: %v", line, err)
			}
			day, err := parseDay(date, record[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %v", line, err)
			}
			i, ok := index[region]
			if !ok {
				i = len(named)
				index[region] = i
				named = append(named, Named{Region: region})
			}
			named[i].Series = append(named[i].Series, day)
		case io.EOF:
			break RECORDS
		default:
			return nil, err
		}
	}

	if len(named) == 0 {
		return nil, ErrEmpty
	}
	return named, nil
}

func parseDay(date time.Time, field string) (Day, error) {
	field = strings.TrimSpace(field)
	switch strings.ToLower(field) {
	case "", "na", "nan":
		return Day{Date: date, Missing: true}, nil
	}
	x, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return Day{}, err
	}
	if math.IsNaN(x) {
		return Day{Date: date, Missing: true}, nil
	}
	if x != math.Trunc(x) {
		return Day{}, fmt.Errorf("count %s is not an integer", field)
	}
	return Day{Date: date, New: int(x)}, nil
}

// Write writes s as date,new records, or as region,date,new
// records when region is not empty. Missing counts are
// written as empty fields.
func Write(w io.Writer, region string, s Series) error {
	prefix := ""
	if region != "" {
		prefix = region + ","
	}
	for _, d := range s {
		count := ""
		if !d.Missing {
			count = strconv.Itoa(d.New)
		}
		if _, err := fmt.Fprintf(w, "%s%s,%s\n",
			prefix, d.Date.Format(Layout), count); err != nil {
			return err
		}
	}
	return nil
}
