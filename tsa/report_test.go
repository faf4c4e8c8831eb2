package tsa

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *Report {
	return &Report{
		Series:       "DGS10",
		Source:       "testdata/DGS10.csv",
		GeneratedAt:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Observations: 2500,
		Results: []*PeriodicityReport{
			{
				Periodicity:      Weekly,
				Bars:             520,
				Start:            "2014-03-02",
				End:              "2024-02-25",
				Summary:          &Summary{Count: 520, Mean: 2.31, Std: 0.88, Min: 0.52, Max: 4.98},
				ADF:              &ADFResult{Statistic: -1.42, PValue: 0.57, Lags: 4, NObs: 515},
				ADFDiff:          &ADFResult{Statistic: -9.81, PValue: 0.0, Lags: 3, NObs: 515, Stationary: true},
				IntegrationOrder: 1,
				Search: &SearchResult{
					BestOrder: 2,
					Criterion: CriterionAIC,
					Candidates: []CandidateScore{
						{Order: 1, Score: -120.5, AIC: -120.5, BIC: -112.1},
						{Order: 2, Score: -131.2, AIC: -131.2, BIC: -118.6},
					},
					Evaluated: 2,
				},
				Model: &ARModel{
					Order:  2,
					Const:  0.01,
					Coeffs: []float64{1.0, -0.5},
					Sigma2: 0.004,
					AIC:    -131.2,
					BIC:    -118.6,
					NObs:   517,
				},
				LjungBox:     &LjungBoxResult{Statistic: 9.3, PValue: 0.32, Lags: 10, DOF: 8},
				DurbinWatson: 1.97,
				Roots: &RootsResult{
					Roots:      []Root{{Re: 1, Im: 1, Modulus: 1.4142136}, {Re: 1, Im: -1, Modulus: 1.4142136}},
					Stationary: true,
					HasCycle:   true,
					CycleLen:   8.0,
				},
				Forecast: []float64{2.30, 2.29},
			},
		},
		Plots: []string{"plots/DGS10_weekly_acf.png"},
	}
}

func TestReport_WriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleReport().WriteJSON(&buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "DGS10", decoded["series"])
	assert.Equal(t, float64(2500), decoded["observations"])

	results, ok := decoded["results"].([]any)
	require.True(t, ok)
	require.Len(t, results, 1)
	weekly := results[0].(map[string]any)
	assert.Equal(t, "weekly", weekly["periodicity"])
	assert.Equal(t, float64(1), weekly["integration_order"])

	search := weekly["order_search"].(map[string]any)
	assert.Equal(t, float64(2), search["best_order"])
	assert.NotContains(t, search, "Best", "the winning model is reported once, under model")

	model := weekly["model"].(map[string]any)
	assert.Equal(t, float64(2), model["order"])

	roots := weekly["roots"].(map[string]any)
	assert.Equal(t, true, roots["has_cycle"])
	assert.InDelta(t, 8.0, roots["cycle_length"].(float64), 1e-9)

	// KPSS was absent; omitempty keeps the key out entirely.
	assert.NotContains(t, weekly, "kpss")
}

func TestReport_SaveJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, sampleReport().SaveJSON(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Report
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "DGS10", got.Series)
	require.Len(t, got.Results, 1)
	assert.Equal(t, Weekly, got.Results[0].Periodicity)
	assert.Equal(t, 2, got.Results[0].Model.Order)
}

func TestReport_Print(t *testing.T) {
	var buf bytes.Buffer
	sampleReport().Print(&buf)
	out := buf.String()

	assert.Contains(t, out, "=== DGS10 analysis ===")
	assert.Contains(t, out, "--- weekly bars ---")
	assert.Contains(t, out, "Bars                 : 520 (2014-03-02 .. 2024-02-25)")
	assert.Contains(t, out, "ADF level")
	assert.Contains(t, out, "Integration order    : 1")
	assert.Contains(t, out, "best AR(2) by aic")
	assert.Contains(t, out, "const 0.0100, phi1 1.0000, phi2 -0.5000")
	assert.Contains(t, out, "Implied cycle        : 8.00 bars")
	assert.Contains(t, out, "Plots written")
	assert.NotContains(t, out, "KPSS", "sections for absent results are skipped")
}
