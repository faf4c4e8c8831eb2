package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yieldlab/yieldlab/tsa"
)

// CLI flags for the resample command
var (
	resampleInput  string // Source CSV with daily observations
	resampleColumn string // Value column header
	resamplePeriod string // Target periodicity
	resampleOutput string // Destination CSV, empty writes to stdout
)

// resampleCmd aggregates a daily CSV into OHLC bars without running the
// rest of the pipeline.
var resampleCmd = &cobra.Command{
	Use:   "resample",
	Short: "Aggregate a daily CSV into weekly or monthly OHLC bars",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		if resampleInput == "" {
			logrus.Fatalf("No input CSV provided. Exiting.")
		}
		p, err := tsa.ParsePeriodicity(resamplePeriod)
		if err != nil {
			logrus.Fatalf("Invalid periodicity: %v", err)
		}

		series, err := tsa.LoadCSV(resampleInput, tsa.ReadOptions{ValueColumn: resampleColumn})
		if err != nil {
			logrus.Fatalf("Failed to load %s: %v", resampleInput, err)
		}
		bars := tsa.Resample(series, p)
		logrus.Infof("Resampled %d observations into %d %s bars", series.Len(), len(bars), p)

		w := os.Stdout
		if resampleOutput != "" {
			f, err := os.Create(resampleOutput)
			if err != nil {
				logrus.Fatalf("Failed to create %s: %v", resampleOutput, err)
			}
			defer f.Close()
			w = f
		}
		if err := tsa.WriteBarsCSV(w, bars); err != nil {
			logrus.Fatalf("Failed to write bars: %v", err)
		}
	},
}

// init sets up resample flags and attaches the subcommand
func init() {
	resampleCmd.Flags().StringVar(&resampleInput, "input", "", "CSV file with DATE,VALUE observations")
	resampleCmd.Flags().StringVar(&resampleColumn, "column", "", "Value column header (default: second column)")
	resampleCmd.Flags().StringVar(&resamplePeriod, "periodicity", "weekly", "Target periodicity (daily, weekly, monthly)")
	resampleCmd.Flags().StringVar(&resampleOutput, "output", "", "Destination CSV file (default: stdout)")

	rootCmd.AddCommand(resampleCmd)
}
