package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/speleodata/cavemap/internal/survey"
)

// Image renders a 2D projection to a static image file. The format follows
// the file extension (.png, .svg, .pdf, ...). The 3D view has no static
// backend; request it through HTML instead.
func Image(path string, p *survey.Projection) error {
	if !p.Kind.Is2D() {
		return fmt.Errorf("view %s cannot be rendered to a static image", p.Kind)
	}

	plt := plot.New()
	plt.Title.Text = p.Title
	plt.HideAxes()

	for _, seg := range p.Segments {
		l, err := plotter.NewLine(plotter.XYs{
			{X: seg.From.X, Y: seg.From.Y},
			{X: seg.To.X, Y: seg.To.Y},
		})
		if err != nil {
			return fmt.Errorf("segment %s: %w", seg.Name, err)
		}
		l.LineStyle.Color = color.Black
		l.LineStyle.Width = vg.Points(1)
		plt.Add(l)
	}

	xys := make(plotter.XYs, len(p.Points))
	for i, pt := range p.Points {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("station markers: %w", err)
	}
	scatter.GlyphStyle.Shape = draw.TriangleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(3)
	plt.Add(scatter)

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: p.Labels})
	if err != nil {
		return fmt.Errorf("station labels: %w", err)
	}
	plt.Add(labels)

	squareRanges(plt, p)

	if err := plt.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// squareRanges expands both axis ranges to the larger data span so the plot
// keeps a 1:1 aspect ratio inside the square canvas.
func squareRanges(plt *plot.Plot, p *survey.Projection) {
	lo, hi := bounds2D(p)
	half := math.Max(hi.X-lo.X, hi.Y-lo.Y) / 2
	if half <= 0 || math.IsInf(half, 0) {
		half = 1
	}
	half *= 1.05
	cx, cy := (lo.X+hi.X)/2, (lo.Y+hi.Y)/2
	plt.X.Min, plt.X.Max = cx-half, cx+half
	plt.Y.Min, plt.Y.Max = cy-half, cy+half
}
