package tsa

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// Summary holds the descriptive statistics of one series, in the shape
// a quick `describe` printout wants.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	P25    float64 `json:"p25"`
	Median float64 `json:"median"`
	P75    float64 `json:"p75"`
	Max    float64 `json:"max"`
}

// Describe computes the summary statistics of a series. The sample
// standard deviation needs at least two observations; shorter input is
// an error. Errors from the underlying stats package are wrapped with
// the series name.
func Describe(s *Series) (*Summary, error) {
	if s.Len() < 2 {
		return nil, fmt.Errorf("describe %s: need at least 2 observations, have %d", s.Name, s.Len())
	}
	type calc struct {
		name string
		dst  *float64
		fn   func(stats.Float64Data) (float64, error)
	}
	out := &Summary{Count: s.Len()}
	steps := []calc{
		{"mean", &out.Mean, stats.Mean},
		{"std", &out.Std, stats.StandardDeviationSample},
		{"min", &out.Min, stats.Min},
		{"p25", &out.P25, func(d stats.Float64Data) (float64, error) { return stats.Percentile(d, 25) }},
		{"median", &out.Median, stats.Median},
		{"p75", &out.P75, func(d stats.Float64Data) (float64, error) { return stats.Percentile(d, 75) }},
		{"max", &out.Max, stats.Max},
	}
	for _, c := range steps {
		v, err := c.fn(s.Values)
		if err != nil {
			return nil, fmt.Errorf("describe %s: %s: %w", s.Name, c.name, err)
		}
		*c.dst = v
	}
	return out, nil
}
