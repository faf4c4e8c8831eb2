// Package tsa studies the autoregressive structure of an interest-rate
// time series, following the classical Box-Jenkins workflow.
//
// # Reading Guide
//
// Start with these three files to understand the pipeline:
//   - series.go: the Series container (dates + values) and its transforms
//   - pipeline/pipeline.go: the end-to-end analysis (resample, diagnose,
//     fit, report)
//   - report.go: the result structures the pipeline assembles
//
// # Pipeline
//
// For each requested periodicity the pipeline runs, in order:
//  1. resample the daily observations to calendar OHLC bars and keep the
//     close (resample.go)
//  2. descriptive summary of the close series (describe.go)
//  3. ACF/PACF correlograms on the raw and first-differenced series
//     (correlogram.go)
//  4. augmented Dickey-Fuller and KPSS unit-root tests, raw and
//     differenced (adf.go, kpss.go)
//  5. AR(p) order search by information criterion on the stationary
//     series, with failed fits skipped (ar.go, order.go)
//  6. residual diagnostics: Ljung-Box and Durbin-Watson (diagnostics.go)
//  7. characteristic-polynomial roots of the fitted lag polynomial and
//     the implied stochastic cycle length (roots.go)
//
// Regressions (the ADF test equation and the AR conditional least
// squares fit) are solved by QR factorization on gonum matrices; tail
// probabilities come from gonum's distribution package.
package tsa
