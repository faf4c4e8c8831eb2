package tsa

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testSeries(t *testing.T, values ...float64) *Series {
	t.Helper()
	dates := make([]time.Time, len(values))
	for i := range dates {
		dates[i] = day(2020, time.January, 1).AddDate(0, 0, i)
	}
	s, err := NewSeries("test", dates, values)
	require.NoError(t, err)
	return s
}

func TestNewSeries_LengthMismatch(t *testing.T) {
	_, err := NewSeries("bad", []time.Time{day(2020, time.January, 1)}, []float64{1, 2})
	assert.Error(t, err)
}

func TestSeriesMoments(t *testing.T) {
	s := testSeries(t, 2, 4, 4, 4, 5, 5, 7, 9)
	assert.InDelta(t, 5.0, s.Mean(), 1e-12, "mean")
	assert.InDelta(t, 32.0/7.0, s.Variance(), 1e-12, "unbiased variance")
	assert.InDelta(t, 2.0, s.Min(), 1e-12, "min")
	assert.InDelta(t, 9.0, s.Max(), 1e-12, "max")
}

func TestSeriesFirstLast(t *testing.T) {
	s := testSeries(t, 1.5, 2.5, 3.5)
	d, v, err := s.First()
	require.NoError(t, err)
	assert.Equal(t, day(2020, time.January, 1), d)
	assert.InDelta(t, 1.5, v, 1e-12)

	d, v, err = s.Last()
	require.NoError(t, err)
	assert.Equal(t, day(2020, time.January, 3), d)
	assert.InDelta(t, 3.5, v, 1e-12)

	empty := &Series{Name: "empty"}
	_, _, err = empty.First()
	assert.Error(t, err)
}

func TestDiff(t *testing.T) {
	s := testSeries(t, 1, 3, 2, 6)
	d := s.Diff()

	assert.Equal(t, "test_diff", d.Name)
	assert.Equal(t, []float64{2, -1, 4}, d.Values)
	// Differences keep the later date of each pair.
	assert.Equal(t, day(2020, time.January, 2), d.Dates[0])
	assert.Equal(t, day(2020, time.January, 4), d.Dates[2])
}

func TestDiffN(t *testing.T) {
	s := testSeries(t, 1, 3, 2, 6, 10)
	d := s.DiffN(2)
	assert.Equal(t, []float64{1, 3, 8}, d.Values, "lag-2 difference y_t - y_{t-2}")

	assert.Equal(t, 0, s.DiffN(5).Len(), "differencing past the sample yields an empty series")
	assert.Equal(t, 0, s.DiffN(0).Len())

	bare := (&Series{Name: "bare", Values: []float64{1, 4, 9}}).Diff()
	assert.Equal(t, []float64{3, 5}, bare.Values)
	assert.Empty(t, bare.Dates, "a series without dates stays without dates")
}

func TestSliceClamps(t *testing.T) {
	s := testSeries(t, 1, 2, 3, 4, 5)
	assert.Equal(t, []float64{2, 3}, s.Slice(1, 3).Values)
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, s.Slice(-10, 99).Values)
	assert.Equal(t, 0, s.Slice(3, 2).Len())
}

func TestWindowInclusive(t *testing.T) {
	s := testSeries(t, 1, 2, 3, 4, 5)
	w := s.Window(day(2020, time.January, 2), day(2020, time.January, 4))
	assert.Equal(t, []float64{2, 3, 4}, w.Values)
}

func TestCopyIsDeep(t *testing.T) {
	s := testSeries(t, 1, 2, 3)
	c := s.Copy()
	c.Values[0] = 99
	assert.InDelta(t, 1.0, s.Values[0], 1e-12, "mutating the copy must not touch the original")
}
