package tsa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectOrder_FindsAR2(t *testing.T) {
	s := ar2(1.0, 0.5, -0.3, 800, 41)
	res, err := SelectOrder(s, OrderSearch{MaxOrder: 6})
	require.NoError(t, err)

	require.NotNil(t, res.Best)
	assert.Equal(t, res.Best.Order, res.BestOrder)
	assert.GreaterOrEqual(t, res.BestOrder, 2, "a strong second lag cannot be underselected")
	assert.Equal(t, CriterionAIC, res.Criterion, "empty criterion defaults to AIC")
	assert.Equal(t, 6, res.Evaluated)
	assert.Equal(t, 0, res.Skipped)

	best := res.Best.AIC
	for _, c := range res.Candidates {
		assert.GreaterOrEqual(t, c.Score, best, "no candidate may beat the winner")
	}
}

func TestSelectOrder_BICCriterion(t *testing.T) {
	s := ar2(1.0, 0.5, -0.3, 400, 42)
	res, err := SelectOrder(s, OrderSearch{MaxOrder: 4, Criterion: CriterionBIC})
	require.NoError(t, err)

	assert.Equal(t, CriterionBIC, res.Criterion)
	for _, c := range res.Candidates {
		assert.InDelta(t, c.BIC, c.Score, 1e-12, "score column mirrors the chosen criterion")
	}
}

func TestSelectOrder_SkipsUnfittableOrders(t *testing.T) {
	// Ten observations: AR(4) and above cannot be identified, the
	// search records the skips and still returns a winner.
	s := ar1(0.4, 10, 43)
	res, err := SelectOrder(s, OrderSearch{MaxOrder: 8})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Evaluated)
	assert.Equal(t, 5, res.Skipped)
	require.NotNil(t, res.Best)
	assert.LessOrEqual(t, res.BestOrder, 3)
}

func TestSelectOrder_AllOrdersFail(t *testing.T) {
	s := &Series{Name: "three", Values: []float64{1, 2, 1}}
	_, err := SelectOrder(s, OrderSearch{MaxOrder: 5})
	assert.Error(t, err)
}

func TestSelectOrder_BadMaxOrder(t *testing.T) {
	_, err := SelectOrder(ar1(0.4, 100, 44), OrderSearch{MaxOrder: 0})
	assert.Error(t, err)
}

func TestParseCriterion(t *testing.T) {
	c, err := ParseCriterion("bic")
	require.NoError(t, err)
	assert.Equal(t, CriterionBIC, c)

	c, err = ParseCriterion("")
	require.NoError(t, err)
	assert.Equal(t, CriterionAIC, c, "empty input falls back to AIC")

	_, err = ParseCriterion("hqic")
	assert.Error(t, err)
}
