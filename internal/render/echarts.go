// Package render draws projected survey geometry. Two backends are
// provided: go-echarts HTML charts (the only backend that can draw the 3D
// view) and gonum/plot static images for the 2D views.
package render

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/speleodata/cavemap/internal/survey"
)

// HTML renders the projection as a self-contained ECharts HTML document.
func HTML(w io.Writer, p *survey.Projection) error {
	if p.Kind == survey.View3D {
		return html3D(w, p)
	}
	return html2D(w, p)
}

// html2D draws the passage as one two-point line series per shot; the series
// symbols mark the stations and the tooltip names them.
func html2D(w io.Writer, p *survey.Projection) error {
	lo, hi := bounds2D(p)
	// Expand both axes to the larger span so one survey unit covers the
	// same pixel distance horizontally and vertically.
	half := math.Max(hi.X-lo.X, hi.Y-lo.Y) / 2
	if half <= 0 || math.IsInf(half, 0) {
		half = 1
	}
	half *= 1.05
	cx, cy := (lo.X+hi.X)/2, (lo.Y+hi.Y)/2

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: p.Title,
			Width:     "900px",
			Height:    "900px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    p.Title,
			Subtitle: fmt.Sprintf("view=%s units=%s stations=%d", p.Kind, p.Units, len(p.Points)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Min: cx - half, Max: cx + half}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Min: cy - half, Max: cy + half}),
	)

	for _, seg := range p.Segments {
		line.AddSeries(seg.Name, []opts.LineData{
			{Value: []interface{}{seg.From.X, seg.From.Y}},
			{Value: []interface{}{seg.To.X, seg.To.Y}},
		}, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}))
	}

	return line.Render(w)
}

// html3D draws the full line plot with one Line3D series per shot, colored
// by elevation.
func html3D(w io.Writer, p *survey.Projection) error {
	minZ, maxZ := math.Inf(1), math.Inf(-1)
	for _, pt := range p.Points {
		minZ = math.Min(minZ, pt.Z)
		maxZ = math.Max(maxZ, pt.Z)
	}
	if maxZ <= minZ {
		maxZ = minZ + 1
	}

	line := charts.NewLine3D()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: p.Title,
			Width:     "900px",
			Height:    "900px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    p.Title,
			Subtitle: fmt.Sprintf("view=3d units=%s stations=%d", p.Units, len(p.Points)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "E", Type: "value"}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "N", Type: "value"}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "Z", Type: "value"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(minZ),
			Max:        float32(maxZ),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#313695", "#74add1", "#fdae61", "#a50026"}},
		}),
	)

	for _, seg := range p.Segments {
		line.AddSeries(seg.Name, []opts.Chart3DData{
			{Value: []interface{}{seg.From.X, seg.From.Y, seg.From.Z}},
			{Value: []interface{}{seg.To.X, seg.To.Y, seg.To.Z}},
		})
	}

	return line.Render(w)
}

func bounds2D(p *survey.Projection) (lo, hi survey.PlotPoint) {
	lo = survey.PlotPoint{X: math.Inf(1), Y: math.Inf(1)}
	hi = survey.PlotPoint{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, pt := range p.Points {
		lo.X = math.Min(lo.X, pt.X)
		lo.Y = math.Min(lo.Y, pt.Y)
		hi.X = math.Max(hi.X, pt.X)
		hi.Y = math.Max(hi.Y, pt.Y)
	}
	return lo, hi
}
