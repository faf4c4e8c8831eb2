package tsa

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Series is an ordered univariate time series. Dates and Values are
// parallel slices, oldest observation first.
type Series struct {
	Name   string
	Dates  []time.Time
	Values []float64
}

// NewSeries builds a Series from parallel date and value slices.
func NewSeries(name string, dates []time.Time, values []float64) (*Series, error) {
	if len(dates) != len(values) {
		return nil, fmt.Errorf("series %q: %d dates but %d values", name, len(dates), len(values))
	}
	return &Series{Name: name, Dates: dates, Values: values}, nil
}

// Len returns the number of observations.
func (s *Series) Len() int { return len(s.Values) }

// Mean returns the arithmetic mean, or NaN for an empty series.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return stat.Mean(s.Values, nil)
}

// Variance returns the unbiased sample variance (n-1 denominator).
func (s *Series) Variance() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	return stat.Variance(s.Values, nil)
}

// Std returns the sample standard deviation.
func (s *Series) Std() float64 { return math.Sqrt(s.Variance()) }

// Min returns the smallest value, or NaN for an empty series.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	min := s.Values[0]
	for _, v := range s.Values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the largest value, or NaN for an empty series.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	max := s.Values[0]
	for _, v := range s.Values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// First returns the oldest observation.
func (s *Series) First() (time.Time, float64, error) {
	if len(s.Values) == 0 {
		return time.Time{}, 0, errors.New("empty series")
	}
	return s.Dates[0], s.Values[0], nil
}

// Last returns the newest observation.
func (s *Series) Last() (time.Time, float64, error) {
	if len(s.Values) == 0 {
		return time.Time{}, 0, errors.New("empty series")
	}
	return s.Dates[len(s.Dates)-1], s.Values[len(s.Values)-1], nil
}

// Diff returns the first difference y_t - y_{t-1}. The result is one
// observation shorter and keeps the later date of each pair.
func (s *Series) Diff() *Series { return s.DiffN(1) }

// DiffN returns the n-th order difference y_t - y_{t-n}. The result is n
// observations shorter and keeps the later date of each pair; a series
// carrying no dates stays that way. Differencing a series at least as
// many times as it has points yields an empty series.
func (s *Series) DiffN(n int) *Series {
	name := s.Name + "_diff"
	if n <= 0 || len(s.Values) <= n {
		return &Series{Name: name}
	}
	values := make([]float64, len(s.Values)-n)
	for i := n; i < len(s.Values); i++ {
		values[i-n] = s.Values[i] - s.Values[i-n]
	}
	out := &Series{Name: name, Values: values}
	if len(s.Dates) == len(s.Values) {
		out.Dates = make([]time.Time, len(values))
		copy(out.Dates, s.Dates[n:])
	}
	return out
}

// Slice returns a copy of the observations in [start, end), with both
// bounds clamped to the series.
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Name: s.Name}
	}
	values := make([]float64, end-start)
	copy(values, s.Values[start:end])
	out := &Series{Name: s.Name, Values: values}
	if len(s.Dates) == len(s.Values) {
		out.Dates = make([]time.Time, end-start)
		copy(out.Dates, s.Dates[start:end])
	}
	return out
}

// Window returns a copy of the observations dated in [from, to],
// inclusive on both ends.
func (s *Series) Window(from, to time.Time) *Series {
	values := make([]float64, 0, len(s.Values))
	dates := make([]time.Time, 0, len(s.Dates))
	for i, d := range s.Dates {
		if d.Before(from) || d.After(to) {
			continue
		}
		dates = append(dates, d)
		values = append(values, s.Values[i])
	}
	return &Series{Name: s.Name, Dates: dates, Values: values}
}

// Copy returns a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)
	dates := make([]time.Time, len(s.Dates))
	copy(dates, s.Dates)
	return &Series{Name: s.Name, Dates: dates, Values: values}
}
