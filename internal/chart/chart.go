package chart

import (
	"fmt"

	"github.com/Jacopo21/gutmann-privatebank/internal/models"
	"github.com/vicanso/go-charts/v2"
)

// Render produces a PNG fan chart of a projection: median line, 10th/90th
// percentile band and the cumulative investment line, x-axis in years.
func Render(result *models.ProjectionResult) ([]byte, error) {
	if result == nil || len(result.Records) == 0 {
		return nil, fmt.Errorf("no projection records to render")
	}

	n := len(result.Records)
	median := make([]float64, n)
	lower := make([]float64, n)
	upper := make([]float64, n)
	cumulative := make([]float64, n)
	xLabels := make([]string, n)

	for i, rec := range result.Records {
		median[i] = rec.Median
		lower[i] = rec.LowerP10
		upper[i] = rec.UpperP90
		cumulative[i] = rec.CumulativeContribution
		xLabels[i] = fmt.Sprintf("%.1fy", rec.Year)
	}

	// Y-axis range with padding
	minVal, maxVal := lower[0], upper[0]
	for i := 0; i < n; i++ {
		if lower[i] < minVal {
			minVal = lower[i]
		}
		if upper[i] > maxVal {
			maxVal = upper[i]
		}
	}
	padding := (maxVal - minVal) * 0.05
	if padding == 0 {
		padding = maxVal * 0.05
	}
	yMin := minVal - padding
	yMax := maxVal + padding

	title := fmt.Sprintf("Investment Growth Projection (%s)", result.RiskLabel)
	subtitle := fmt.Sprintf("Final Median: %.0f | Total Investment: %.0f | Total Return: %.0f",
		result.Summary.FinalMedian, result.Summary.TotalInvestment, result.Summary.TotalReturn)

	splitNum := 6
	if n <= 30 {
		splitNum = n / 3
		if splitNum < 3 {
			splitNum = 3
		}
	}

	p, err := charts.LineRender(
		[][]float64{median, lower, upper, cumulative},
		charts.TitleTextOptionFunc(title+"\n"+subtitle),
		charts.LegendOptionFunc(charts.LegendOption{
			Data: []string{
				"Median Projection",
				"Lower Bound (10%)",
				"Upper Bound (90%)",
				"Cumulative Investment",
			},
		}),
		charts.XAxisOptionFunc(charts.XAxisOption{
			Data:        xLabels,
			SplitNumber: splitNum,
			BoundaryGap: charts.FalseFlag(),
		}),
		charts.YAxisOptionFunc(charts.YAxisOption{
			Min:         &yMin,
			Max:         &yMax,
			DivideCount: 5,
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to generate chart bytes: %w", err)
	}
	return buf, nil
}
