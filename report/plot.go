package report

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ysatoh/mlpipe/pkg/errors"
)

// SaveScoreCurve renders trial or candidate scores as a line chart and
// writes it to path. The format follows the file extension (.png, .svg,
// .pdf).
func SaveScoreCurve(path, title string, scores []float64) error {
	if len(scores) == 0 {
		return errors.NewValueError("report.SaveScoreCurve", "no scores to plot")
	}

	pts := make(plotter.XYs, len(scores))
	for i, score := range scores {
		pts[i].X = float64(i)
		pts[i].Y = score
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "score"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "score curve line failed")
	}
	p.Add(line)
	p.Add(plotter.NewGrid())

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "score curve save failed")
	}
	return nil
}
