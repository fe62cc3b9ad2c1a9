// Package chart draws the two stacked bar charts as PNG files.
package chart

import (
	"math"
	"strconv"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/tyler180/floorball-appearances/internal/report"
)

const (
	divisionsFile     = "players_division_stack.png"
	participationFile = "players_per_league_stack.png"
)

// Files are the output paths for one run.
type Files struct {
	Divisions     string
	Participation string
}

// FileNames prefixes the stock chart names.
func FileNames(prefix string) Files {
	return Files{
		Divisions:     prefix + divisionsFile,
		Participation: prefix + participationFile,
	}
}

var errNothingToPlot = errors.New("nothing to plot")

// PlayerDivisions draws one bar per player (matrix rows) with a segment per
// division (matrix columns).
func PlayerDivisions(m *report.Matrix, path string) error {
	if m.Empty() {
		return errNothingToPlot
	}
	p := plot.New()
	p.Title.Text = "Player appearances by division/series (stacked)"
	p.Y.Label.Text = "Matches played"

	if err := addStacks(p, m, true); err != nil {
		return err
	}
	p.Legend.Top = true
	p.Legend.Left = false

	top := roundUp(max(25, m.MaxRowSum()+5), 5)
	p.Y.Min, p.Y.Max = 0, float64(top)
	p.Y.Tick.Marker = fixedTicks(top, 5)
	styleX(p)

	width := inches(max(12, 0.6*float64(max(len(m.Rows), len(m.Cols)))))
	if err := p.Save(width, 7*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	return nil
}

// Participation draws one bar per division (matrix rows) where every player
// who appeared adds one unit. No legend: the player list is too long.
func Participation(m *report.Matrix, path string) error {
	if m.Empty() {
		return errNothingToPlot
	}
	p := plot.New()
	p.Title.Text = "Number of distinct players per league (each player counts 1)"
	p.Y.Label.Text = "Number of players"

	if err := addStacks(p, m, false); err != nil {
		return err
	}

	top := max(5, m.MaxRowSum()+1)
	p.Y.Min, p.Y.Max = 0, float64(top)
	p.Y.Tick.Marker = fixedTicks(top, 1)
	styleX(p)

	width := inches(max(12, 0.6*float64(len(m.Rows))))
	height := inches(max(6, float64(len(m.Rows))/2))
	if err := p.Save(width, height, path); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	return nil
}

// addStacks adds one bar chart per matrix column stacked on the previous.
func addStacks(p *plot.Plot, m *report.Matrix, legend bool) error {
	p.Add(horizontalGrid())
	if legend {
		p.Legend.Add("Division/Series")
	}

	barWidth := vg.Points(math.Max(6, math.Min(28, 480/float64(len(m.Rows)))))
	var prev *plotter.BarChart
	for i, col := range m.Cols {
		vals := make(plotter.Values, len(m.Rows))
		for j, row := range m.Rows {
			vals[j] = float64(m.Get(row, col))
		}
		bc, err := plotter.NewBarChart(vals, barWidth)
		if err != nil {
			return errors.Wrapf(err, "bars for %s", col)
		}
		bc.LineStyle.Width = 0
		bc.Color = plotutil.Color(i)
		if prev != nil {
			bc.StackOn(prev)
		}
		p.Add(bc)
		if legend {
			p.Legend.Add(col, bc)
		}
		prev = bc
	}
	p.NominalX(m.Rows...)
	return nil
}

func horizontalGrid() *plotter.Grid {
	g := plotter.NewGrid()
	g.Vertical.Width = 0
	g.Horizontal.Width = vg.Points(0.5)
	g.Horizontal.Dashes = nil
	return g
}

func styleX(p *plot.Plot) {
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
}

func fixedTicks(top, step int) plot.ConstantTicks {
	var ticks plot.ConstantTicks
	for v := 0; v <= top; v += step {
		ticks = append(ticks, plot.Tick{Value: float64(v), Label: strconv.Itoa(v)})
	}
	return ticks
}

func roundUp(n, step int) int {
	if r := n % step; r != 0 {
		return n + step - r
	}
	return n
}

func inches(f float64) vg.Length {
	return vg.Length(f) * vg.Inch
}
