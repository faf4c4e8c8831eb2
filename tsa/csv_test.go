package tsa

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fredFixture = `DATE,DGS10
2020-01-02,1.88
2020-01-03,1.80
2020-01-06,.
2020-01-07,1.83
2020-01-08,1.87
`

func TestReadCSV_DropsMissingRows(t *testing.T) {
	s, err := ReadCSV(strings.NewReader(fredFixture), ReadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "DGS10", s.Name, "series named after the value column header")
	assert.Equal(t, []float64{1.88, 1.80, 1.83, 1.87}, s.Values)
	require.Equal(t, 4, len(s.Dates))
	assert.Equal(t, day(2020, time.January, 2), s.Dates[0])
	assert.Equal(t, day(2020, time.January, 7), s.Dates[2], "the '.' row must not occupy a slot")
}

func TestReadCSV_NamedColumns(t *testing.T) {
	data := "DATE,DGS10,DGS30\n2020-01-02,1.88,2.33\n2020-01-03,1.80,2.26\n"
	s, err := ReadCSV(strings.NewReader(data), ReadOptions{ValueColumn: "DGS30"})
	require.NoError(t, err)
	assert.Equal(t, "DGS30", s.Name)
	assert.Equal(t, []float64{2.33, 2.26}, s.Values)
}

func TestReadCSV_UnknownColumn(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(fredFixture), ReadOptions{ValueColumn: "DGS2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DGS2")
}

func TestReadCSV_OutOfOrderDates(t *testing.T) {
	data := "DATE,DGS10\n2020-01-03,1.80\n2020-01-02,1.88\n"
	_, err := ReadCSV(strings.NewReader(data), ReadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of order")
}

func TestReadCSV_AllMissing(t *testing.T) {
	data := "DATE,DGS10\n2020-01-02,.\n2020-01-03,NA\n"
	_, err := ReadCSV(strings.NewReader(data), ReadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no usable observations")
}

func TestWriteCSV(t *testing.T) {
	s := testSeries(t, 1.88, 1.8)
	s.Name = "DGS10"

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, s))
	want := "DATE,DGS10\n2020-01-01,1.88\n2020-01-02,1.8\n"
	assert.Equal(t, want, buf.String())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := testSeries(t, 1.88, 1.8, 1.83)
	s.Name = "DGS10"

	path := filepath.Join(t.TempDir(), "dgs10.csv")
	require.NoError(t, SaveCSV(path, s))

	got, err := LoadCSV(path, ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, s.Name, got.Name)
	assert.Equal(t, s.Values, got.Values)
	assert.Equal(t, s.Dates, got.Dates)
}

func TestWriteBarsCSV(t *testing.T) {
	bars := []Bar{
		{Date: day(2020, time.January, 12), Open: 1.0, High: 1.5, Low: 0.8, Close: 1.1, Count: 5},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteBarsCSV(&buf, bars))
	want := "DATE,OPEN,HIGH,LOW,CLOSE,COUNT\n2020-01-12,1,1.5,0.8,1.1,5\n"
	assert.Equal(t, want, buf.String())
}
