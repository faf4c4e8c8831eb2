package tsa

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// PeriodicityReport collects every artifact the pipeline produces for
// one sampling frequency of the input series.
type PeriodicityReport struct {
	Periodicity Periodicity `json:"periodicity"`
	Bars        int         `json:"bars"`
	Start       string      `json:"start"` // first bar label, YYYY-MM-DD
	End         string      `json:"end"`   // last bar label, YYYY-MM-DD

	Summary         *Summary           `json:"summary"`
	Correlogram     *CorrelogramResult `json:"correlogram"`      // close levels
	DiffCorrelogram *CorrelogramResult `json:"diff_correlogram"` // first difference

	ADF              *ADFResult  `json:"adf"`
	ADFDiff          *ADFResult  `json:"adf_diff"`
	KPSS             *KPSSResult `json:"kpss,omitempty"`
	IntegrationOrder int         `json:"integration_order"` // differences taken to reach stationarity

	Search       *SearchResult   `json:"order_search"`
	Model        *ARModel        `json:"model"`
	LjungBox     *LjungBoxResult `json:"ljung_box"`
	DurbinWatson float64         `json:"durbin_watson"`
	Roots        *RootsResult    `json:"roots"`
	Forecast     []float64       `json:"forecast,omitempty"`
}

// Report is the full output of one pipeline run across all requested
// periodicities.
type Report struct {
	Series       string    `json:"series"`
	Source       string    `json:"source"`
	GeneratedAt  time.Time `json:"generated_at"`
	Observations int       `json:"observations"` // daily rows after dropping missing values

	Results []*PeriodicityReport `json:"results"`
	Plots   []string             `json:"plots,omitempty"`
}

// WriteJSON writes the indented JSON form of the report.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// SaveJSON writes the report to a file, creating or truncating it.
func (r *Report) SaveJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	defer f.Close()
	if err := r.WriteJSON(f); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return f.Close()
}

// Print displays the report for terminal use, one section per
// periodicity.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "=== %s analysis ===\n", r.Series)
	fmt.Fprintf(w, "Source               : %s\n", r.Source)
	fmt.Fprintf(w, "Daily observations   : %d\n", r.Observations)
	for _, pr := range r.Results {
		pr.print(w)
	}
	if len(r.Plots) > 0 {
		fmt.Fprintf(w, "\nPlots written        : %s\n", strings.Join(r.Plots, ", "))
	}
}

func (pr *PeriodicityReport) print(w io.Writer) {
	fmt.Fprintf(w, "\n--- %s bars ---\n", pr.Periodicity)
	fmt.Fprintf(w, "Bars                 : %d (%s .. %s)\n", pr.Bars, pr.Start, pr.End)
	if pr.Summary != nil {
		fmt.Fprintf(w, "Close mean / std     : %.4f / %.4f\n", pr.Summary.Mean, pr.Summary.Std)
		fmt.Fprintf(w, "Close min / max      : %.4f / %.4f\n", pr.Summary.Min, pr.Summary.Max)
	}
	if pr.ADF != nil {
		fmt.Fprintf(w, "ADF level            : stat %.4f, p %.4f, lags %d\n", pr.ADF.Statistic, pr.ADF.PValue, pr.ADF.Lags)
	}
	if pr.ADFDiff != nil {
		fmt.Fprintf(w, "ADF first difference : stat %.4f, p %.4f, lags %d\n", pr.ADFDiff.Statistic, pr.ADFDiff.PValue, pr.ADFDiff.Lags)
	}
	if pr.KPSS != nil {
		fmt.Fprintf(w, "KPSS level           : stat %.4f, p %.4f\n", pr.KPSS.Statistic, pr.KPSS.PValue)
	}
	fmt.Fprintf(w, "Integration order    : %d\n", pr.IntegrationOrder)
	if pr.Search != nil {
		fmt.Fprintf(w, "Order search         : best AR(%d) by %s, %d fit, %d skipped\n",
			pr.Search.BestOrder, pr.Search.Criterion, pr.Search.Evaluated, pr.Search.Skipped)
	}
	if m := pr.Model; m != nil {
		fmt.Fprintf(w, "Model                : AR(%d), aic %.4f, bic %.4f, sigma2 %.6f\n", m.Order, m.AIC, m.BIC, m.Sigma2)
		fmt.Fprintf(w, "Coefficients         : const %.4f", m.Const)
		for i, c := range m.Coeffs {
			fmt.Fprintf(w, ", phi%d %.4f", i+1, c)
		}
		fmt.Fprintln(w)
	}
	if pr.LjungBox != nil {
		fmt.Fprintf(w, "Ljung-Box            : Q %.4f, p %.4f at %d lags\n", pr.LjungBox.Statistic, pr.LjungBox.PValue, pr.LjungBox.Lags)
	}
	if pr.DurbinWatson != 0 {
		fmt.Fprintf(w, "Durbin-Watson        : %.4f\n", pr.DurbinWatson)
	}
	if rt := pr.Roots; rt != nil {
		fmt.Fprintf(w, "Stationary           : %t\n", rt.Stationary)
		if rt.HasCycle {
			fmt.Fprintf(w, "Implied cycle        : %.2f bars\n", rt.CycleLen)
		}
	}
	if len(pr.Forecast) > 0 {
		fmt.Fprintf(w, "Forecast             :")
		for _, v := range pr.Forecast {
			fmt.Fprintf(w, " %.4f", v)
		}
		fmt.Fprintln(w)
	}
}
