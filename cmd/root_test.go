package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yieldlab/yieldlab/tsa"
	"github.com/yieldlab/yieldlab/tsa/pipeline"
)

func TestOverrideFromFlags_OnlyChangedFlagsApply(t *testing.T) {
	// GIVEN a handful of flags the user set explicitly
	require.NoError(t, analyzeCmd.Flags().Set("max-order", "12"))
	require.NoError(t, analyzeCmd.Flags().Set("criterion", "bic"))
	require.NoError(t, analyzeCmd.Flags().Set("forecast", "0"))

	// WHEN they are applied on top of the defaults
	cfg := pipeline.DefaultConfig()
	overrideFromFlags(analyzeCmd, &cfg)

	// THEN only the changed flags win, including an explicit zero
	assert.Equal(t, 12, cfg.MaxOrder)
	assert.Equal(t, tsa.CriterionBIC, cfg.Criterion)
	assert.Equal(t, 0, cfg.ForecastSteps, "an explicit --forecast=0 must override the default")

	def := pipeline.DefaultConfig()
	assert.Equal(t, def.MaxLag, cfg.MaxLag, "untouched flags keep the existing values")
	assert.Equal(t, def.Periodicities, cfg.Periodicities)
	assert.Equal(t, def.LjungBoxLags, cfg.LjungBoxLags)
}
