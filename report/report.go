// Package report renders descriptive statistics and SVG diagnostic
// plots over parsed GHMM output, reusing the same gonum plotting idiom
// the teacher's sequencing-QC tooling uses for its histograms and
// modelled-distribution overlays.
package report

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"ghmm_go/parse"
)

// IntegerTicks labels plot axes at whole numbers only, the natural
// scale for segment lengths and state indices.
type IntegerTicks struct{}

// Ticks implements plot.Ticker.
func (IntegerTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for i := int(math.Ceil(min)); i <= int(math.Floor(max)); i++ {
		ticks = append(ticks, plot.Tick{Value: float64(i), Label: fmt.Sprintf("%d", i)})
	}
	return ticks
}

// LogLikelihoodSummary holds the descriptive statistics of a batch of
// per-sequence Viterbi or Forward log-likelihoods.
type LogLikelihoodSummary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// SummarizeLogLikelihoods computes mean/stddev/min/max over lls via
// gonum/stat, mirroring the mean/stddev step GenerateGCContentLinePlot
// runs before building its modelled-normal overlay.
func SummarizeLogLikelihoods(lls []float64) LogLikelihoodSummary {
	if len(lls) == 0 {
		return LogLikelihoodSummary{}
	}
	mean := stat.Mean(lls, nil)
	stddev := stat.StdDev(lls, nil)
	mn, mx := lls[0], lls[0]
	for _, v := range lls {
		if v < mn {
			mn = v
		}
		if v > mx {
			mx = v
		}
	}
	return LogLikelihoodSummary{Count: len(lls), Mean: mean, StdDev: stddev, Min: mn, Max: mx}
}

func svgOf(p *plot.Plot) (string, error) {
	var buf bytes.Buffer
	writer, err := p.WriterTo(10*vg.Inch, 4*vg.Inch, "svg")
	if err != nil {
		return "", err
	}
	if _, err := writer.WriteTo(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// LogLikelihoodDistributionSVG plots a histogram of observed
// log-likelihoods against the Gaussian their mean/stddev implies,
// the same observed-vs-modelled overlay GenerateGCContentLinePlot
// builds for per-read GC content.
func LogLikelihoodDistributionSVG(lls []float64) (string, error) {
	if len(lls) == 0 {
		return "", fmt.Errorf("report: no log-likelihoods to plot")
	}
	p := plot.New()
	p.Title.Text = "Log-Likelihood Distribution"
	p.X.Label.Text = "Log-Likelihood"
	p.Y.Label.Text = "Sequence Count"

	mn, mx := lls[0], lls[0]
	for _, v := range lls {
		if v < mn {
			mn = v
		}
		if v > mx {
			mx = v
		}
	}
	const binCount = 50
	span := mx - mn
	if span <= 0 {
		span = 1
	}
	binWidth := span / float64(binCount)

	observed := make([]float64, binCount)
	for _, v := range lls {
		bin := int((v - mn) / binWidth)
		if bin >= binCount {
			bin = binCount - 1
		}
		if bin < 0 {
			bin = 0
		}
		observed[bin]++
	}

	mean := stat.Mean(lls, nil)
	stddev := stat.StdDev(lls, nil)
	total := float64(len(lls))
	normDist := distuv.Normal{Mu: mean, Sigma: stddev}
	scale := total * binWidth

	observedXY := make(plotter.XYs, binCount)
	expectedXY := make(plotter.XYs, binCount)
	for i := 0; i < binCount; i++ {
		x := mn + binWidth*float64(i) + binWidth/2
		observedXY[i].X = x
		observedXY[i].Y = observed[i]
		expectedXY[i].X = x
		if stddev > 0 {
			expectedXY[i].Y = normDist.Prob(x) * scale
		}
	}

	obsLine, err := plotter.NewLine(observedXY)
	if err != nil {
		return "", err
	}
	obsLine.Color = color.RGBA{B: 255, A: 255}
	obsLine.Width = vg.Points(2)

	expLine, err := plotter.NewLine(expectedXY)
	if err != nil {
		return "", err
	}
	expLine.Color = color.RGBA{R: 255, G: 100, B: 100, A: 255}
	expLine.Width = vg.Points(2)
	expLine.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}

	p.Add(obsLine, expLine)
	p.Legend.Add("Observed", obsLine)
	p.Legend.Add("Modelled Normal", expLine)
	p.Legend.Top = true

	return svgOf(p)
}

// SegmentLengthHistogramSVG plots the distribution of segment lengths
// a traceback assigns to stateName, the occupancy-duration counterpart
// to GenerateLengthLinePlotSVG's read-length histogram.
func SegmentLengthHistogramSVG(stateName string, segs []parse.Segment) (string, error) {
	var lengths []float64
	for _, s := range segs {
		if s.Name == stateName {
			lengths = append(lengths, float64(s.Length))
		}
	}
	if len(lengths) == 0 {
		return "", fmt.Errorf("report: no segments found for state %q", stateName)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s Segment Length Distribution", stateName)
	p.X.Label.Text = "Length"
	p.Y.Label.Text = "Occurrences"
	p.X.Tick.Marker = IntegerTicks{}

	minLen, maxLen := lengths[0], lengths[0]
	for _, l := range lengths {
		if l < minLen {
			minLen = l
		}
		if l > maxLen {
			maxLen = l
		}
	}

	binCount := int(maxLen-minLen) + 1
	if binCount > 100 {
		binCount = 100
	}
	binWidth := (maxLen - minLen + 1) / float64(binCount)
	counts := make([]float64, binCount)
	for _, l := range lengths {
		bin := int((l - minLen) / binWidth)
		if bin >= binCount {
			bin = binCount - 1
		}
		counts[bin]++
	}

	points := make(plotter.XYs, binCount)
	for i := 0; i < binCount; i++ {
		points[i].X = minLen + binWidth*float64(i) + binWidth/2
		points[i].Y = counts[i]
	}

	line, err := plotter.NewLine(points)
	if err != nil {
		return "", err
	}
	line.LineStyle.Color = color.RGBA{R: 50, G: 100, B: 200, A: 255}
	line.LineStyle.Width = vg.Points(2)
	p.Add(line)
	p.Legend.Add(stateName, line)
	p.Legend.Top = true

	return svgOf(p)
}

// StateOccupancy is the total number of positions a traceback assigns
// to one state, across however many sequences contributed segments.
type StateOccupancy struct {
	Name  string
	Total int
}

// StateOccupancySVG plots total occupied length per state as a bar-like
// line, the same per-position-category shape
// GeneratePerBaseSeqContentPlot draws for base composition.
func StateOccupancySVG(occ []StateOccupancy) (string, error) {
	if len(occ) == 0 {
		return "", fmt.Errorf("report: no state occupancy to plot")
	}
	p := plot.New()
	p.Title.Text = "State Occupancy"
	p.X.Label.Text = "State"
	p.Y.Label.Text = "Total Positions"
	p.X.Tick.Marker = IntegerTicks{}

	pts := make(plotter.XYs, len(occ))
	for i, o := range occ {
		pts[i].X = float64(i)
		pts[i].Y = float64(o.Total)
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return "", err
	}
	line.LineStyle.Color = color.RGBA{G: 150, A: 255}
	line.LineStyle.Width = vg.Points(2)
	p.Add(line)
	p.Legend.Add("Occupancy", line)
	p.Legend.Top = true

	return svgOf(p)
}

// TallyStateOccupancy sums segment lengths by state name across one or
// more tracebacks' Segments, in first-seen order.
func TallyStateOccupancy(segs []parse.Segment) []StateOccupancy {
	order := []string{}
	totals := map[string]int{}
	for _, s := range segs {
		if _, ok := totals[s.Name]; !ok {
			order = append(order, s.Name)
		}
		totals[s.Name] += s.Length
	}
	out := make([]StateOccupancy, len(order))
	for i, name := range order {
		out[i] = StateOccupancy{Name: name, Total: totals[name]}
	}
	return out
}
