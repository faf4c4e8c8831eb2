// Package pipeline wires the tsa building blocks into the full
// analysis run: resample the daily series per periodicity, describe
// it, draw correlograms, test for unit roots, difference to
// stationarity, grid-search an AR order, check residuals and report
// the implied dynamics.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yieldlab/yieldlab/tsa"
	"github.com/yieldlab/yieldlab/tsa/plot"
)

// Config holds the knobs of one analysis run. Zero values fall back to
// the defaults below.
type Config struct {
	Periodicities []tsa.Periodicity // sampling frequencies to analyse
	MaxLag        int               // correlogram lags, clamped to the sample
	ADFLags       int               // ADF lag order; negative selects by AIC
	MaxDiff       int               // cap on differencing toward stationarity
	MaxOrder      int               // highest AR order tried
	Criterion     tsa.Criterion     // order-search criterion
	ForecastSteps int               // forecast horizon; 0 disables
	LjungBoxLags  int               // residual portmanteau lags
	PlotDir       string            // directory for PNG output; empty disables
	Source        string            // provenance recorded in the report
}

// DefaultConfig mirrors the usual interactive session: all three
// periodicities, two dozen correlogram lags, AIC everywhere.
func DefaultConfig() Config {
	return Config{
		Periodicities: []tsa.Periodicity{tsa.Daily, tsa.Weekly, tsa.Monthly},
		MaxLag:        24,
		ADFLags:       -1,
		MaxDiff:       2,
		MaxOrder:      8,
		Criterion:     tsa.CriterionAIC,
		ForecastSteps: 8,
		LjungBoxLags:  10,
	}
}

func (cfg Config) withDefaults() Config {
	def := DefaultConfig()
	if len(cfg.Periodicities) == 0 {
		cfg.Periodicities = def.Periodicities
	}
	if cfg.MaxLag == 0 {
		cfg.MaxLag = def.MaxLag
	}
	if cfg.MaxDiff == 0 {
		cfg.MaxDiff = def.MaxDiff
	}
	if cfg.MaxOrder == 0 {
		cfg.MaxOrder = def.MaxOrder
	}
	if cfg.Criterion == "" {
		cfg.Criterion = def.Criterion
	}
	if cfg.LjungBoxLags == 0 {
		cfg.LjungBoxLags = def.LjungBoxLags
	}
	return cfg
}

// Run analyses the daily series at every configured periodicity and
// assembles the report. A periodicity whose sample is too short for
// some step is skipped with a warning; it is an error only when every
// periodicity fails.
func Run(s *tsa.Series, cfg Config) (*tsa.Report, error) {
	cfg = cfg.withDefaults()
	report := &tsa.Report{
		Series:       s.Name,
		Source:       cfg.Source,
		GeneratedAt:  time.Now().UTC(),
		Observations: s.Len(),
	}

	for _, p := range cfg.Periodicities {
		pr, plots, err := analyzeOne(s, p, cfg)
		if err != nil {
			logrus.Warnf("skipping %s analysis of %s: %v", p, s.Name, err)
			continue
		}
		report.Results = append(report.Results, pr)
		report.Plots = append(report.Plots, plots...)
	}
	if len(report.Results) == 0 {
		return nil, fmt.Errorf("no periodicity of %s could be analysed", s.Name)
	}
	return report, nil
}

func analyzeOne(s *tsa.Series, p tsa.Periodicity, cfg Config) (*tsa.PeriodicityReport, []string, error) {
	bars := tsa.Resample(s, p)
	if len(bars) == 0 {
		return nil, nil, fmt.Errorf("no %s bars", p)
	}
	closes := tsa.Closes(bars, fmt.Sprintf("%s_%s", s.Name, p))
	logrus.Infof("resampled %s to %d %s bars", s.Name, len(bars), p)

	summary, err := tsa.Describe(closes)
	if err != nil {
		return nil, nil, err
	}

	maxLag := clampLag(cfg.MaxLag, closes.Len())
	if maxLag < 1 {
		return nil, nil, fmt.Errorf("%d bars leave no room for a correlogram", closes.Len())
	}
	cg := tsa.Correlogram(closes, maxLag)
	if cg == nil {
		return nil, nil, fmt.Errorf("%s close series is degenerate", p)
	}
	diff := closes.Diff()
	dcg := tsa.Correlogram(diff, clampLag(cfg.MaxLag, diff.Len()))
	if dcg == nil {
		return nil, nil, fmt.Errorf("%s differenced series is degenerate", p)
	}

	adfRaw, err := tsa.ADF(closes, cfg.ADFLags)
	if err != nil {
		return nil, nil, fmt.Errorf("adf on levels: %w", err)
	}
	logrus.Infof("%s ADF level: stat=%.4f p=%.4f lags=%d", p, adfRaw.Statistic, adfRaw.PValue, adfRaw.Lags)
	adfDiff, err := tsa.ADF(diff, cfg.ADFLags)
	if err != nil {
		return nil, nil, fmt.Errorf("adf on first difference: %w", err)
	}

	// KPSS complements the ADF but is not worth failing the run over.
	kpss, err := tsa.KPSS(closes, -1)
	if err != nil {
		logrus.Debugf("%s KPSS unavailable: %v", p, err)
		kpss = nil
	}

	d, _, err := tsa.DiffUntilStationary(closes, cfg.MaxDiff)
	if err != nil {
		return nil, nil, fmt.Errorf("integration order: %w", err)
	}
	modeled := closes
	if d > 0 {
		for i := 0; i < d; i++ {
			modeled = modeled.Diff()
		}
		modeled.Name = fmt.Sprintf("%s_d%d", closes.Name, d)
	}

	search, err := tsa.SelectOrder(modeled, tsa.OrderSearch{MaxOrder: cfg.MaxOrder, Criterion: cfg.Criterion})
	if err != nil {
		return nil, nil, err
	}
	model := search.Best
	logrus.Infof("%s order search: AR(%d) by %s over %d candidates (%d skipped)",
		p, search.BestOrder, search.Criterion, search.Evaluated, search.Skipped)

	resid := model.Residuals()
	var lb *tsa.LjungBoxResult
	if lbLags := clampLag(cfg.LjungBoxLags, len(resid)); lbLags >= 1 {
		lb, err = tsa.LjungBox(resid, lbLags, model.Order)
		if err != nil {
			logrus.Debugf("%s Ljung-Box unavailable: %v", p, err)
			lb = nil
		}
	}

	roots, err := tsa.CharacteristicRoots(model.Coeffs)
	if err != nil {
		return nil, nil, fmt.Errorf("characteristic roots: %w", err)
	}
	if roots.HasCycle {
		logrus.Infof("%s dynamics imply a %.1f-bar cycle", p, roots.CycleLen)
	}

	var forecast []float64
	if cfg.ForecastSteps > 0 {
		forecast = model.Forecast(cfg.ForecastSteps)
	}

	pr := &tsa.PeriodicityReport{
		Periodicity:      p,
		Bars:             len(bars),
		Start:            bars[0].Date.Format("2006-01-02"),
		End:              bars[len(bars)-1].Date.Format("2006-01-02"),
		Summary:          summary,
		Correlogram:      cg,
		DiffCorrelogram:  dcg,
		ADF:              adfRaw,
		ADFDiff:          adfDiff,
		KPSS:             kpss,
		IntegrationOrder: d,
		Search:           search,
		Model:            model,
		LjungBox:         lb,
		DurbinWatson:     tsa.DurbinWatson(resid),
		Roots:            roots,
		Forecast:         forecast,
	}

	var plots []string
	if cfg.PlotDir != "" {
		plots = renderPlots(cfg.PlotDir, closes, modeled, cg, dcg, resid, forecast, p)
	}
	return pr, plots, nil
}

// clampLag keeps a lag order usable on n observations, at most half the
// sample less one.
func clampLag(lag, n int) int {
	if max := (n - 2) / 2; lag > max {
		lag = max
	}
	return lag
}

// renderPlots writes the diagnostic charts for one periodicity and
// returns the paths that rendered cleanly. Chart failures are logged
// rather than propagated; the numeric report stands on its own.
func renderPlots(dir string, closes, modeled *tsa.Series, cg, dcg *tsa.CorrelogramResult,
	resid, forecast []float64, p tsa.Periodicity) []string {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logrus.Warnf("plot dir %s: %v", dir, err)
		return nil
	}

	var written []string
	render := func(kind string, fn func(w *os.File) error) {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", closes.Name, kind))
		f, err := os.Create(path)
		if err != nil {
			logrus.Warnf("plot %s: %v", path, err)
			return
		}
		defer f.Close()
		if err := fn(f); err != nil {
			logrus.Warnf("plot %s: %v", path, err)
			return
		}
		written = append(written, path)
	}

	render("close", func(w *os.File) error {
		return plot.Line(closes, fmt.Sprintf("%s close", closes.Name), w)
	})
	render("acf", func(w *os.File) error {
		return plot.ACF(cg, fmt.Sprintf("%s ACF", closes.Name), w)
	})
	render("pacf", func(w *os.File) error {
		return plot.PACF(cg, fmt.Sprintf("%s PACF", closes.Name), w)
	})
	render("acf_diff", func(w *os.File) error {
		return plot.ACF(dcg, fmt.Sprintf("%s diff ACF", closes.Name), w)
	})
	render("pacf_diff", func(w *os.File) error {
		return plot.PACF(dcg, fmt.Sprintf("%s diff PACF", closes.Name), w)
	})
	render("resid", func(w *os.File) error {
		return plot.Residuals(resid, fmt.Sprintf("%s AR residuals", closes.Name), w)
	})
	if len(forecast) > 0 {
		render("forecast", func(w *os.File) error {
			return plot.Forecast(modeled, forecast, 64, fmt.Sprintf("%s forecast (%s)", closes.Name, p), w)
		})
	}
	return written
}
