package tsa

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Criterion names the information criterion an order search minimises.
type Criterion string

const (
	CriterionAIC  Criterion = "aic"
	CriterionAICc Criterion = "aicc"
	CriterionBIC  Criterion = "bic"
)

// ParseCriterion maps a user-supplied string onto a Criterion.
func ParseCriterion(s string) (Criterion, error) {
	switch Criterion(s) {
	case CriterionAIC, CriterionAICc, CriterionBIC:
		return Criterion(s), nil
	case "":
		return CriterionAIC, nil
	}
	return "", fmt.Errorf("unknown criterion %q (want aic, aicc or bic)", s)
}

// Of extracts the criterion value from a fitted model.
func (c Criterion) Of(m *ARModel) float64 {
	switch c {
	case CriterionAICc:
		return m.AICc
	case CriterionBIC:
		return m.BIC
	}
	return m.AIC
}

// OrderSearch configures the AR order grid search.
type OrderSearch struct {
	MaxOrder  int       // highest lag order tried, inclusive
	Criterion Criterion // defaults to AIC when empty
}

// CandidateScore records one evaluated order of the grid.
type CandidateScore struct {
	Order int     `json:"order"`
	Score float64 `json:"score"` // value of the search criterion
	AIC   float64 `json:"aic"`
	BIC   float64 `json:"bic"`
}

// SearchResult is the outcome of an order grid search. Best is kept
// out of the JSON form; reports embed the winning model on their own.
type SearchResult struct {
	Best       *ARModel         `json:"-"`
	BestOrder  int              `json:"best_order"`
	Criterion  Criterion        `json:"criterion"`
	Candidates []CandidateScore `json:"candidates"`
	Evaluated  int              `json:"evaluated"`
	Skipped    int              `json:"skipped"`
}

// SelectOrder fits AR(p) for p = 1..MaxOrder and keeps the model that
// minimises the criterion. Orders whose fit fails are skipped rather
// than aborting the search; it is an error only when every order fails.
func SelectOrder(s *Series, search OrderSearch) (*SearchResult, error) {
	if search.MaxOrder < 1 {
		return nil, fmt.Errorf("max order must be at least 1, got %d", search.MaxOrder)
	}
	crit := search.Criterion
	if crit == "" {
		crit = CriterionAIC
	}

	res := &SearchResult{Criterion: crit}
	bestScore := math.Inf(1)
	for p := 1; p <= search.MaxOrder; p++ {
		model, err := FitAR(s, p)
		if err != nil {
			logrus.Debugf("order search on %s: skipping AR(%d): %v", s.Name, p, err)
			res.Skipped++
			continue
		}
		res.Evaluated++
		score := crit.Of(model)
		res.Candidates = append(res.Candidates, CandidateScore{
			Order: p,
			Score: score,
			AIC:   model.AIC,
			BIC:   model.BIC,
		})
		if score < bestScore {
			bestScore = score
			res.Best = model
			res.BestOrder = p
		}
	}
	if res.Best == nil {
		return nil, fmt.Errorf("no AR order up to %d could be fit on %s", search.MaxOrder, s.Name)
	}
	return res, nil
}
