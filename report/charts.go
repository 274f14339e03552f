package report

import (
	"image/color"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/giilab/giiscope/dataset"
	"github.com/giilab/giiscope/features"
	"github.com/giilab/giiscope/pkg/errors"
)

// HistogramGII saves a histogram of the observed GII values.
func HistogramGII(table *dataset.Table, path string) error {
	var values plotter.Values
	for _, rec := range table.Records {
		if rec.GIIValue.Valid {
			values = append(values, rec.GIIValue.Value)
		}
	}
	if len(values) == 0 {
		return errors.Wrap(errors.ErrEmptyData, "HistogramGII")
	}

	p := plot.New()
	p.Title.Text = "Gender Inequality Index distribution"
	p.X.Label.Text = "GII value"
	p.Y.Label.Text = "countries"

	hist, err := plotter.NewHist(values, 16)
	if err != nil {
		return errors.Wrap(err, "HistogramGII")
	}
	hist.FillColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	p.Add(hist, plotter.NewGrid())

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

// ScatterGII saves a scatter plot of the GII against one raw indicator,
// with an ordinary-least-squares trend line over the pairwise-complete rows.
func ScatterGII(table *dataset.Table, indicator string, path string) error {
	if _, known := features.RawDomains[indicator]; !known {
		return errors.NewValueError("ScatterGII", "unknown indicator: "+indicator)
	}

	var points plotter.XYs
	var xs, ys []float64
	for _, rec := range table.Records {
		v, _ := features.RawValue(rec, indicator)
		if !v.Valid || !rec.GIIValue.Valid {
			continue
		}
		points = append(points, plotter.XY{X: v.Value, Y: rec.GIIValue.Value})
		xs = append(xs, v.Value)
		ys = append(ys, rec.GIIValue.Value)
	}
	if len(points) < 2 {
		return errors.NewInsufficientDataError("ScatterGII", 2, len(points))
	}

	p := plot.New()
	p.Title.Text = "GII vs " + indicator
	p.X.Label.Text = indicator
	p.Y.Label.Text = "GII value"

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return errors.Wrap(err, "ScatterGII")
	}
	scatter.GlyphStyle.Radius = vg.Points(2)
	scatter.GlyphStyle.Color = color.RGBA{R: 70, G: 130, B: 180, A: 255}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	trend := plotter.NewFunction(func(x float64) float64 { return alpha + beta*x })
	trend.Color = color.RGBA{R: 200, G: 60, B: 60, A: 255}
	trend.Width = vg.Points(1.5)

	p.Add(scatter, trend, plotter.NewGrid())

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

// GroupBoxesGII saves one box plot of the observed GII values per
// human-development group, highest development first. Groups with no
// observed GII are skipped.
func GroupBoxesGII(table *dataset.Table, path string) error {
	var labels []string
	var groups []plotter.Values
	for _, group := range dataset.DevelopmentGroups {
		var values plotter.Values
		for _, rec := range table.Records {
			if rec.DevelopmentGroup == group && rec.GIIValue.Valid {
				values = append(values, rec.GIIValue.Value)
			}
		}
		if len(values) == 0 {
			continue
		}
		labels = append(labels, string(group))
		groups = append(groups, values)
	}
	if len(groups) == 0 {
		return errors.Wrap(errors.ErrEmptyData, "GroupBoxesGII")
	}

	p := plot.New()
	p.Title.Text = "GII by human development group"
	p.Y.Label.Text = "GII value"

	for i, values := range groups {
		box, err := plotter.NewBoxPlot(vg.Points(30), float64(i), values)
		if err != nil {
			return errors.Wrap(err, "GroupBoxesGII")
		}
		p.Add(box)
	}
	p.NominalX(labels...)

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}
