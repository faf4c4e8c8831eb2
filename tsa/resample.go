package tsa

import (
	"fmt"
	"time"
)

// Periodicity selects the calendar bucket used when resampling daily
// observations.
type Periodicity string

const (
	// Daily keeps every observation as its own bar.
	Daily Periodicity = "daily"
	// Weekly buckets observations into calendar weeks ending on Sunday.
	Weekly Periodicity = "weekly"
	// Monthly buckets observations into calendar months.
	Monthly Periodicity = "monthly"
)

// ParsePeriodicity converts a string into a Periodicity.
func ParsePeriodicity(s string) (Periodicity, error) {
	switch Periodicity(s) {
	case Daily, Weekly, Monthly:
		return Periodicity(s), nil
	}
	return "", fmt.Errorf("unknown periodicity %q (want daily, weekly or monthly)", s)
}

// Bar is an open-high-low-close summary of the observations falling in
// one calendar bucket. Date is the bucket label: the Sunday ending the
// week for Weekly, the last calendar day of the month for Monthly.
type Bar struct {
	Date  time.Time `json:"date"`
	Open  float64   `json:"open"`
	High  float64   `json:"high"`
	Low   float64   `json:"low"`
	Close float64   `json:"close"`
	Count int       `json:"count"` // observations aggregated into the bar
}

// bucketLabel maps an observation date to its bucket label in UTC.
func bucketLabel(d time.Time, p Periodicity) time.Time {
	d = d.UTC()
	switch p {
	case Weekly:
		// Sunday on or after d ends the week.
		offset := (7 - int(d.Weekday())) % 7
		d = d.AddDate(0, 0, offset)
	case Monthly:
		// Day 0 of the next month normalizes to the month's last day.
		d = time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// Resample groups an ordered series into calendar OHLC bars. Buckets
// with no observations produce no bar; gaps are skipped rather than
// zero-filled. Bars come out oldest first.
func Resample(s *Series, p Periodicity) []Bar {
	if s.Len() == 0 {
		return nil
	}

	bars := make([]Bar, 0, s.Len())
	current := Bar{}
	open := false

	for i, v := range s.Values {
		label := bucketLabel(s.Dates[i], p)
		if open && label.Equal(current.Date) {
			if v > current.High {
				current.High = v
			}
			if v < current.Low {
				current.Low = v
			}
			current.Close = v
			current.Count++
			continue
		}
		if open {
			bars = append(bars, current)
		}
		current = Bar{Date: label, Open: v, High: v, Low: v, Close: v, Count: 1}
		open = true
	}
	bars = append(bars, current)

	return bars
}

// Closes extracts the close series from a bar slice, dated by bucket
// label. The rest of the pipeline consumes this series.
func Closes(bars []Bar, name string) *Series {
	dates := make([]time.Time, len(bars))
	values := make([]float64, len(bars))
	for i, b := range bars {
		dates[i] = b.Date
		values[i] = b.Close
	}
	return &Series{Name: name, Dates: dates, Values: values}
}
