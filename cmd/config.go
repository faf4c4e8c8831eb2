package cmd

import (
	"bytes"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/yieldlab/yieldlab/tsa"
	"github.com/yieldlab/yieldlab/tsa/pipeline"
)

// Preset is the YAML form of the analysis settings, so a recurring run
// can be pinned in a file instead of a flag salad.
type Preset struct {
	Periodicities []string `yaml:"periodicities"`
	MaxLag        int      `yaml:"max_lag"`
	ADFLags       int      `yaml:"adf_lags"`
	MaxDiff       int      `yaml:"max_diff"`
	MaxOrder      int      `yaml:"max_order"`
	Criterion     string   `yaml:"criterion"`
	Forecast      int      `yaml:"forecast"`
	LjungBoxLags  int      `yaml:"ljung_box_lags"`
}

// applyPreset overlays a YAML preset file onto the config.
// Parsing is strict so typos in keys cause errors instead of being
// silently dropped; keys absent from the file keep their current value.
func applyPreset(cfg *pipeline.Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Fatalf("Failed to read preset file: %v", err)
	}

	p := Preset{
		Periodicities: periodicityStrings(cfg.Periodicities),
		MaxLag:        cfg.MaxLag,
		ADFLags:       cfg.ADFLags,
		MaxDiff:       cfg.MaxDiff,
		MaxOrder:      cfg.MaxOrder,
		Criterion:     string(cfg.Criterion),
		Forecast:      cfg.ForecastSteps,
		LjungBoxLags:  cfg.LjungBoxLags,
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&p); err != nil {
		logrus.Fatalf("Failed to parse preset YAML: %v", err)
	}

	cfg.Periodicities = parsePeriodicities(p.Periodicities)
	cfg.MaxLag = p.MaxLag
	cfg.ADFLags = p.ADFLags
	cfg.MaxDiff = p.MaxDiff
	cfg.MaxOrder = p.MaxOrder
	crit, err := tsa.ParseCriterion(p.Criterion)
	if err != nil {
		logrus.Fatalf("Invalid criterion in preset: %v", err)
	}
	cfg.Criterion = crit
	cfg.ForecastSteps = p.Forecast
	cfg.LjungBoxLags = p.LjungBoxLags
}
