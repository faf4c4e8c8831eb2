package tsa

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ReadOptions controls CSV parsing. FRED observation exports are
// two-column files (DATE,<SERIES_ID>) with ISO dates and a literal "."
// for missing observations (market holidays); the defaults match that
// format.
type ReadOptions struct {
	DateColumn  string // header of the date column (default: first column)
	ValueColumn string // header of the value column (default: second column)
	DateFormat  string // Go reference layout (default: "2006-01-02")
}

// missingMarkers are value fields treated as absent observations and
// dropped from the loaded series.
var missingMarkers = map[string]bool{"": true, ".": true, "NA": true, "NaN": true, "null": true}

// ReadCSV loads a series from FRED-style CSV data, dropping rows whose
// value field is missing or unparsable. The header row is required.
func ReadCSV(r io.Reader, opts ReadOptions) (*Series, error) {
	if opts.DateFormat == "" {
		opts.DateFormat = "2006-01-02"
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	dateIdx := 0
	if opts.DateColumn != "" {
		if dateIdx = columnIndex(header, opts.DateColumn); dateIdx < 0 {
			return nil, fmt.Errorf("date column %q not found in header %v", opts.DateColumn, header)
		}
	}
	valueIdx := 1
	if opts.ValueColumn != "" {
		if valueIdx = columnIndex(header, opts.ValueColumn); valueIdx < 0 {
			return nil, fmt.Errorf("value column %q not found in header %v", opts.ValueColumn, header)
		}
	}
	if len(header) <= valueIdx {
		return nil, fmt.Errorf("CSV has %d columns, need at least %d", len(header), valueIdx+1)
	}

	name := strings.TrimSpace(header[valueIdx])
	var dates []time.Time
	var values []float64
	dropped := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV row: %w", err)
		}
		if len(record) <= valueIdx || len(record) <= dateIdx {
			dropped++
			continue
		}

		raw := strings.TrimSpace(record[valueIdx])
		if missingMarkers[raw] {
			dropped++
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			dropped++
			continue
		}

		d, err := time.Parse(opts.DateFormat, strings.TrimSpace(record[dateIdx]))
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", record[dateIdx], err)
		}
		if len(dates) > 0 && d.Before(dates[len(dates)-1]) {
			return nil, fmt.Errorf("observations out of order: %s after %s",
				d.Format("2006-01-02"), dates[len(dates)-1].Format("2006-01-02"))
		}

		dates = append(dates, d)
		values = append(values, v)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("column %q: no usable observations", name)
	}
	logrus.Debugf("loaded %d observations for %s (%d missing rows dropped)", len(values), name, dropped)

	return &Series{Name: name, Dates: dates, Values: values}, nil
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

// LoadCSV reads a series from a CSV file on disk.
func LoadCSV(path string, opts ReadOptions) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := ReadCSV(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// WriteCSV writes a series as two-column CSV (date,value) with a header.
func WriteCSV(w io.Writer, s *Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"DATE", s.Name}); err != nil {
		return err
	}
	for i, v := range s.Values {
		row := []string{s.Dates[i].Format("2006-01-02"), strconv.FormatFloat(v, 'f', -1, 64)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes a series to a CSV file on disk.
func SaveCSV(path string, s *Series) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteCSV(f, s)
}

// WriteBarsCSV writes OHLC bars as CSV with a header.
func WriteBarsCSV(w io.Writer, bars []Bar) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"DATE", "OPEN", "HIGH", "LOW", "CLOSE", "COUNT"}); err != nil {
		return err
	}
	for _, b := range bars {
		row := []string{
			b.Date.Format("2006-01-02"),
			strconv.FormatFloat(b.Open, 'f', -1, 64),
			strconv.FormatFloat(b.High, 'f', -1, 64),
			strconv.FormatFloat(b.Low, 'f', -1, 64),
			strconv.FormatFloat(b.Close, 'f', -1, 64),
			strconv.Itoa(b.Count),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
