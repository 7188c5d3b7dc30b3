package chart

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

const (
	tickSize    = 6
	tickPadding = 3
	axisStyle   = "stroke:currentColor;fill:none"
)

// Render draws the chart for sel into w as a standalone SVG document.
// Every call is a full redraw; identical inputs give byte-identical output.
func Render(w io.Writer, state *State, sel Selection) error {
	return WriteSVG(w, Layout(state, sel))
}

// WriteSVG serialises a positioned plot.
func WriteSVG(w io.Writer, plot Plot) error {
	ew := &errWriter{w: w}
	g := plot.Geometry
	pw, ph := g.PlotWidth(), g.PlotHeight()

	canvas := svg.New(ew)
	canvas.Start(g.Width, g.Height)
	canvas.Gtransform(fmt.Sprintf("translate(%d,%d)", g.Margins.Left, g.Margins.Top))

	// Month axis.
	canvas.Gtransform(fmt.Sprintf("translate(0,%d)", ph))
	canvas.Line(0, 0, pw, 0, axisStyle)
	for _, t := range plot.XTicks {
		x := px(t.Pos)
		canvas.Line(x, 0, x, tickSize, axisStyle)
		canvas.Text(x, tickSize+tickPadding+9, t.Text, "text-anchor:middle;font-size:10px")
	}
	canvas.Gend()

	// Temperature axis.
	canvas.Line(0, 0, 0, ph, axisStyle)
	for _, t := range plot.YTicks {
		y := px(t.Pos)
		canvas.Line(-tickSize, y, 0, y, axisStyle)
		canvas.Text(-tickSize-tickPadding, y, t.Text, "text-anchor:end;dominant-baseline:middle;font-size:10px")
	}

	canvas.Text(pw/2, ph+40, plot.XLabel, "text-anchor:middle")
	canvas.Text(-ph/2, -50, plot.YLabel, `transform="rotate(-90)"`, "text-anchor:middle")

	for _, line := range plot.Lines {
		xs := make([]int, len(line.Points))
		ys := make([]int, len(line.Points))
		for i, p := range line.Points {
			xs[i], ys[i] = px(p.X), px(p.Y)
		}
		canvas.Polyline(xs, ys, fmt.Sprintf("fill:none;stroke:%s;stroke-width:2", line.Color))
		if len(line.Points) == 1 {
			canvas.Circle(xs[0], ys[0], 3, "fill:"+line.Color)
		}
		canvas.Text(px(line.Label.X), px(line.Label.Y), line.Label.Text, "alignment-baseline:middle;font-size:12px")
	}

	canvas.Gend()
	canvas.End()
	return ew.err
}

func px(v float64) int {
	return int(math.Round(v))
}

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
