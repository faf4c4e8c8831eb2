package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yieldlab/yieldlab/tsa"
	"github.com/yieldlab/yieldlab/tsa/pipeline"
)

func writePreset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preset.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestApplyPreset_PartialFileKeepsDefaults(t *testing.T) {
	path := writePreset(t, "max_order: 4\ncriterion: bic\n")

	cfg := pipeline.DefaultConfig()
	applyPreset(&cfg, path)

	assert.Equal(t, 4, cfg.MaxOrder)
	assert.Equal(t, tsa.CriterionBIC, cfg.Criterion)

	// Keys absent from the file keep their built-in values.
	def := pipeline.DefaultConfig()
	assert.Equal(t, def.Periodicities, cfg.Periodicities)
	assert.Equal(t, def.MaxLag, cfg.MaxLag)
	assert.Equal(t, def.ADFLags, cfg.ADFLags)
	assert.Equal(t, def.MaxDiff, cfg.MaxDiff)
	assert.Equal(t, def.ForecastSteps, cfg.ForecastSteps)
	assert.Equal(t, def.LjungBoxLags, cfg.LjungBoxLags)
}

func TestApplyPreset_FullOverride(t *testing.T) {
	path := writePreset(t, `periodicities: [weekly, monthly]
max_lag: 16
adf_lags: 2
max_diff: 1
max_order: 5
criterion: aicc
forecast: 0
ljung_box_lags: 12
`)

	cfg := pipeline.DefaultConfig()
	applyPreset(&cfg, path)

	assert.Equal(t, []tsa.Periodicity{tsa.Weekly, tsa.Monthly}, cfg.Periodicities)
	assert.Equal(t, 16, cfg.MaxLag)
	assert.Equal(t, 2, cfg.ADFLags)
	assert.Equal(t, 1, cfg.MaxDiff)
	assert.Equal(t, 5, cfg.MaxOrder)
	assert.Equal(t, tsa.CriterionAICc, cfg.Criterion)
	assert.Equal(t, 0, cfg.ForecastSteps)
	assert.Equal(t, 12, cfg.LjungBoxLags)
}

func TestPeriodicityStrings(t *testing.T) {
	got := periodicityStrings([]tsa.Periodicity{tsa.Daily, tsa.Monthly})
	assert.Equal(t, []string{"daily", "monthly"}, got)
}

func TestParsePeriodicities(t *testing.T) {
	got := parsePeriodicities([]string{"weekly", "daily"})
	assert.Equal(t, []tsa.Periodicity{tsa.Weekly, tsa.Daily}, got)
}
