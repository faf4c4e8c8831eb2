package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CLI flags for the fetch command
var (
	fetchSeries string // FRED series identifier
	fetchStart  string // First observation date, YYYY-MM-DD
	fetchEnd    string // Last observation date, YYYY-MM-DD
	fetchOutput string // Destination CSV path, empty derives <series>.csv
	fetchURL    string // Base URL of the FRED endpoint
)

const defaultFREDBase = "https://fred.stlouisfed.org"

// FREDClient downloads observation CSVs from the FRED fredgraph
// endpoint.
type FREDClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewFREDClient creates a client against the given base URL.
func NewFREDClient(baseURL string) *FREDClient {
	return &FREDClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
}

// FetchCSV retrieves the raw observation CSV of one series. start and
// end bound the observation window when non-empty.
func (c *FREDClient) FetchCSV(ctx context.Context, series, start, end string) ([]byte, error) {
	q := url.Values{}
	q.Set("id", series)
	if start != "" {
		q.Set("cosd", start)
	}
	if end != "" {
		q.Set("coed", end)
	}
	reqURL := fmt.Sprintf("%s/graph/fredgraph.csv?%s", c.baseURL, q.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", series, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", series, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: read body: %w", series, err)
	}
	return data, nil
}

// fetchCmd downloads one series so the analyze command can run offline
// afterwards.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download a FRED series as CSV",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		out := fetchOutput
		if out == "" {
			out = fetchSeries + ".csv"
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		client := NewFREDClient(fetchURL)
		data, err := client.FetchCSV(ctx, fetchSeries, fetchStart, fetchEnd)
		if err != nil {
			logrus.Fatalf("Fetch failed: %v", err)
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			logrus.Fatalf("Failed to write %s: %v", out, err)
		}
		fmt.Printf("Fetched %s -> %s (%d bytes)\n", fetchSeries, out, len(data))
	},
}

// init sets up fetch flags and attaches the subcommand
func init() {
	fetchCmd.Flags().StringVar(&fetchSeries, "series", "DGS10", "FRED series identifier")
	fetchCmd.Flags().StringVar(&fetchStart, "start", "", "First observation date (YYYY-MM-DD)")
	fetchCmd.Flags().StringVar(&fetchEnd, "end", "", "Last observation date (YYYY-MM-DD)")
	fetchCmd.Flags().StringVar(&fetchOutput, "output", "", "Destination CSV file (default: <series>.csv)")
	fetchCmd.Flags().StringVar(&fetchURL, "base-url", defaultFREDBase, "FRED endpoint base URL")

	rootCmd.AddCommand(fetchCmd)
}
