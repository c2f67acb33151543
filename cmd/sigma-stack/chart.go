package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

func renderBenchChart(w io.Writer, results []benchResult) error {
	xLabels := make([]string, len(results))
	proveItems := make([]opts.LineData, len(results))
	verifyItems := make([]opts.LineData, len(results))
	sizeItems := make([]opts.BarData, len(results))
	for i, r := range results {
		xLabels[i] = strconv.Itoa(r.Clauses)
		proveItems[i] = opts.LineData{Value: float64(r.Prove.Microseconds()) / 1000}
		verifyItems[i] = opts.LineData{Value: float64(r.Verify.Microseconds()) / 1000}
		sizeItems[i] = opts.BarData{Value: r.ProofBytes}
	}

	timing := charts.NewLine()
	timing.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Stacked proof timing", Subtitle: "mean milliseconds per run"}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "sigma-stack bench", Width: "1200px", Height: "600px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "clauses"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "ms"}),
	)
	timing.SetXAxis(xLabels).
		AddSeries("prove", proveItems).
		AddSeries("verify", verifyItems).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}))

	size := charts.NewBar()
	size.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Proof size", Subtitle: fmt.Sprintf("%d ring sizes", len(results))}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "400px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "clauses"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "bytes"}),
	)
	size.SetXAxis(xLabels).
		AddSeries("proof bytes", sizeItems).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}))

	page := components.NewPage()
	page.AddCharts(timing, size)
	return page.Render(w)
}
