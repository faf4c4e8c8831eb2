// Package plot renders the pipeline's diagnostic charts as PNG images:
// close-price lines, ACF/PACF correlograms, residual scatters and
// forecast fans. All functions write to an io.Writer so callers decide
// between files and buffers.
package plot

import (
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/yieldlab/yieldlab/tsa"
)

const (
	lineWidth  = 1024
	lineHeight = 420
	stemWidth  = 820
	stemHeight = 360
)

// Line renders the series values against their dates as a single line
// chart. Needs at least two observations.
func Line(s *tsa.Series, title string, w io.Writer) error {
	if s.Len() < 2 {
		return fmt.Errorf("plot %s: need at least 2 observations, have %d", s.Name, s.Len())
	}
	c := chart.Chart{
		Title:  title,
		Width:  lineWidth,
		Height: lineHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    s.Name,
				XValues: s.Dates,
				YValues: s.Values,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 1.5,
				},
			},
		},
	}
	if err := c.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("plot %s: %w", s.Name, err)
	}
	return nil
}

// ACF renders the autocorrelation stems of a correlogram with its
// ±bound significance band.
func ACF(res *tsa.CorrelogramResult, title string, w io.Writer) error {
	return stems(res.ACF, res.ConfBound, title, w)
}

// PACF renders the partial autocorrelation stems of a correlogram with
// its ±bound significance band.
func PACF(res *tsa.CorrelogramResult, title string, w io.Writer) error {
	return stems(res.PACF, res.ConfBound, title, w)
}

// stems draws one vertical stem per lag (lag k at x=k, starting from
// lag zero) plus dashed confidence bounds and a zero line, the usual
// correlogram look.
func stems(vals []float64, bound float64, title string, w io.Writer) error {
	if len(vals) < 2 {
		return fmt.Errorf("plot %s: need at least 2 lags, have %d", title, len(vals))
	}
	xmax := float64(len(vals)-1) + 0.5

	series := []chart.Series{
		rule(0, -0.5, xmax, chart.ColorAlternateGray, nil),
		rule(bound, -0.5, xmax, chart.ColorRed, []float64{4, 4}),
		rule(-bound, -0.5, xmax, chart.ColorRed, []float64{4, 4}),
	}
	for i, v := range vals {
		x := float64(i)
		series = append(series, chart.ContinuousSeries{
			XValues: []float64{x, x},
			YValues: []float64{0, v},
			Style: chart.Style{
				StrokeColor: chart.ColorBlue,
				StrokeWidth: 2,
			},
		})
	}

	c := chart.Chart{
		Title:  title,
		Width:  stemWidth,
		Height: stemHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: -0.5, Max: xmax},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: -1.1, Max: 1.1},
		},
		Series: series,
	}
	if err := c.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("plot %s: %w", title, err)
	}
	return nil
}

// Residuals renders model residuals as dots over the observation index
// with a zero line.
func Residuals(resid []float64, title string, w io.Writer) error {
	if len(resid) < 2 {
		return fmt.Errorf("plot %s: need at least 2 residuals, have %d", title, len(resid))
	}
	xs := make([]float64, len(resid))
	for i := range xs {
		xs[i] = float64(i)
	}
	c := chart.Chart{
		Title:  title,
		Width:  lineWidth,
		Height: stemHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16},
		},
		Series: []chart.Series{
			rule(0, 0, float64(len(resid)-1), chart.ColorAlternateGray, nil),
			chart.ContinuousSeries{
				XValues: xs,
				YValues: resid,
				Style: chart.Style{
					StrokeWidth: 0,
					DotWidth:    3,
					DotColor:    chart.ColorBlue,
				},
			},
		},
	}
	if err := c.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("plot %s: %w", title, err)
	}
	return nil
}

// Forecast renders the tail of the history with the forecast path
// appended in red, both over the observation index.
func Forecast(s *tsa.Series, forecast []float64, tail int, title string, w io.Writer) error {
	if s.Len() < 2 || len(forecast) == 0 {
		return fmt.Errorf("plot %s: need at least 2 observations and a forecast", title)
	}
	if tail <= 0 || tail > s.Len() {
		tail = s.Len()
	}
	hist := s.Values[s.Len()-tail:]
	hx := make([]float64, len(hist))
	for i := range hx {
		hx[i] = float64(i)
	}
	// Anchor the forecast line to the last observed point.
	fx := []float64{hx[len(hx)-1]}
	fy := []float64{hist[len(hist)-1]}
	for i, v := range forecast {
		fx = append(fx, float64(len(hist)+i))
		fy = append(fy, v)
	}

	c := chart.Chart{
		Title:  title,
		Width:  lineWidth,
		Height: lineHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "history",
				XValues: hx,
				YValues: hist,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 1.5,
				},
			},
			chart.ContinuousSeries{
				Name:    "forecast",
				XValues: fx,
				YValues: fy,
				Style: chart.Style{
					StrokeColor:     chart.ColorRed,
					StrokeWidth:     1.5,
					StrokeDashArray: []float64{4, 4},
				},
			},
		},
	}
	c.Elements = []chart.Renderable{chart.Legend(&c)}
	if err := c.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("plot %s: %w", title, err)
	}
	return nil
}

// rule is a horizontal guide line spanning [x0, x1] at height y.
func rule(y, x0, x1 float64, color drawing.Color, dash []float64) chart.Series {
	return chart.ContinuousSeries{
		XValues: []float64{x0, x1},
		YValues: []float64{y, y},
		Style: chart.Style{
			StrokeColor:     color,
			StrokeWidth:     1,
			StrokeDashArray: dash,
		},
	}
}
