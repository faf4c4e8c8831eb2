package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yieldlab/yieldlab/tsa"
	"github.com/yieldlab/yieldlab/tsa/pipeline"
)

var (
	// CLI flags shared by all commands
	logLevel string // Log verbosity level

	// CLI flags for the analyze command
	inputPath     string   // CSV file with the daily observations
	valueColumn   string   // Header of the value column (default: second column)
	periodicities []string // Sampling frequencies to analyse
	maxLag        int      // Correlogram lag depth
	adfLags       int      // ADF lag order, negative selects by AIC
	maxDiff       int      // Differencing cap when searching the integration order
	maxOrder      int      // Highest AR order in the grid search
	criterion     string   // Order-search criterion: aic, aicc or bic
	forecastSteps int      // Forecast horizon in bars, 0 disables
	ljungBoxLags  int      // Residual portmanteau lag depth
	reportPath    string   // JSON report destination, empty = stdout only
	plotDir       string   // PNG chart directory, empty disables plots
	presetPath    string   // YAML preset overriding the built-in defaults
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "yieldlab",
	Short: "Box-Jenkins analysis of FRED interest-rate series",
}

// setupLogging translates the --log flag into a logrus level.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// analyzeCmd runs the full pipeline on a CSV export using parameters
// from CLI flags, optionally seeded from a YAML preset.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Resample, test and model a daily series at several periodicities",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if inputPath == "" {
			logrus.Fatalf("No input CSV provided. Exiting analysis.")
		}

		cfg := pipeline.DefaultConfig()
		if presetPath != "" {
			applyPreset(&cfg, presetPath)
		}
		overrideFromFlags(cmd, &cfg)
		cfg.Source = inputPath
		cfg.PlotDir = plotDir

		series, err := tsa.LoadCSV(inputPath, tsa.ReadOptions{ValueColumn: valueColumn})
		if err != nil {
			logrus.Fatalf("Failed to load %s: %v", inputPath, err)
		}
		first, _, _ := series.First()
		last, _, _ := series.Last()
		logrus.Infof("Loaded %d observations of %s (%s .. %s)",
			series.Len(), series.Name, first.Format("2006-01-02"), last.Format("2006-01-02"))

		report, err := pipeline.Run(series, cfg)
		if err != nil {
			logrus.Fatalf("Analysis failed: %v", err)
		}

		report.Print(os.Stdout)
		if reportPath != "" {
			if err := report.SaveJSON(reportPath); err != nil {
				logrus.Fatalf("Failed to write report: %v", err)
			}
			logrus.Infof("Report written to %s", reportPath)
		}
	},
}

// overrideFromFlags applies flags the user set explicitly on top of the
// preset, so a preset file and ad-hoc overrides compose.
func overrideFromFlags(cmd *cobra.Command, cfg *pipeline.Config) {
	flags := cmd.Flags()
	if flags.Changed("periodicity") {
		cfg.Periodicities = parsePeriodicities(periodicities)
	}
	if flags.Changed("max-lag") {
		cfg.MaxLag = maxLag
	}
	if flags.Changed("adf-lags") {
		cfg.ADFLags = adfLags
	}
	if flags.Changed("max-diff") {
		cfg.MaxDiff = maxDiff
	}
	if flags.Changed("max-order") {
		cfg.MaxOrder = maxOrder
	}
	if flags.Changed("criterion") {
		crit, err := tsa.ParseCriterion(criterion)
		if err != nil {
			logrus.Fatalf("Invalid criterion: %v", err)
		}
		cfg.Criterion = crit
	}
	if flags.Changed("forecast") {
		cfg.ForecastSteps = forecastSteps
	}
	if flags.Changed("ljung-box-lags") {
		cfg.LjungBoxLags = ljungBoxLags
	}
}

// parsePeriodicities converts the --periodicity flag values, failing
// fast on an unknown frequency.
func parsePeriodicities(raw []string) []tsa.Periodicity {
	out := make([]tsa.Periodicity, 0, len(raw))
	for _, r := range raw {
		p, err := tsa.ParsePeriodicity(r)
		if err != nil {
			logrus.Fatalf("Invalid periodicity: %v", err)
		}
		out = append(out, p)
	}
	return out
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	def := pipeline.DefaultConfig()

	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	analyzeCmd.Flags().StringVar(&inputPath, "input", "", "CSV file with DATE,VALUE observations")
	analyzeCmd.Flags().StringVar(&valueColumn, "column", "", "Value column header (default: second column)")
	analyzeCmd.Flags().StringSliceVar(&periodicities, "periodicity", periodicityStrings(def.Periodicities), "Comma-separated sampling frequencies (daily, weekly, monthly)")
	analyzeCmd.Flags().IntVar(&maxLag, "max-lag", def.MaxLag, "Correlogram lag depth")
	analyzeCmd.Flags().IntVar(&adfLags, "adf-lags", def.ADFLags, "ADF lag order (negative selects by AIC)")
	analyzeCmd.Flags().IntVar(&maxDiff, "max-diff", def.MaxDiff, "Maximum differencing order")
	analyzeCmd.Flags().IntVar(&maxOrder, "max-order", def.MaxOrder, "Highest AR order in the grid search")
	analyzeCmd.Flags().StringVar(&criterion, "criterion", string(def.Criterion), "Order selection criterion (aic, aicc, bic)")
	analyzeCmd.Flags().IntVar(&forecastSteps, "forecast", def.ForecastSteps, "Forecast horizon in bars (0 disables)")
	analyzeCmd.Flags().IntVar(&ljungBoxLags, "ljung-box-lags", def.LjungBoxLags, "Ljung-Box lag depth on model residuals")
	analyzeCmd.Flags().StringVar(&reportPath, "output", "", "Write the JSON report to this path")
	analyzeCmd.Flags().StringVar(&plotDir, "plots", "", "Write PNG charts into this directory")
	analyzeCmd.Flags().StringVar(&presetPath, "config", "", "YAML preset for the analysis settings")

	// Attach `analyze` as a subcommand to `root`
	rootCmd.AddCommand(analyzeCmd)
}

func periodicityStrings(ps []tsa.Periodicity) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = string(p)
	}
	return out
}
