package report

import (
	"strings"
	"testing"

	"ghmm_go/parse"
)

func sampleSegments() []parse.Segment {
	return []parse.Segment{
		{State: 1, Name: "a1", Length: 3},
		{State: 2, Name: "a2", Length: 12},
		{State: 3, Name: "h1", Length: 9},
		{State: 1, Name: "a1", Length: 3},
		{State: 2, Name: "a2", Length: 20},
		{State: 3, Name: "h1", Length: 7},
	}
}

func TestSummarizeLogLikelihoods(t *testing.T) {
	s := SummarizeLogLikelihoods([]float64{-10, -20, -30})
	if s.Count != 3 {
		t.Errorf("Count = %d, want 3", s.Count)
	}
	if s.Mean != -20 {
		t.Errorf("Mean = %v, want -20", s.Mean)
	}
	if s.Min != -30 || s.Max != -10 {
		t.Errorf("Min/Max = %v/%v, want -30/-10", s.Min, s.Max)
	}
}

func TestSummarizeLogLikelihoodsEmpty(t *testing.T) {
	s := SummarizeLogLikelihoods(nil)
	if s.Count != 0 {
		t.Errorf("Count = %d, want 0 for empty input", s.Count)
	}
}

func TestTallyStateOccupancy(t *testing.T) {
	occ := TallyStateOccupancy(sampleSegments())
	want := map[string]int{"a1": 6, "a2": 32, "h1": 16}
	if len(occ) != len(want) {
		t.Fatalf("len(occ) = %d, want %d", len(occ), len(want))
	}
	for _, o := range occ {
		if want[o.Name] != o.Total {
			t.Errorf("state %q total = %d, want %d", o.Name, o.Total, want[o.Name])
		}
	}
	if occ[0].Name != "a1" || occ[1].Name != "a2" || occ[2].Name != "h1" {
		t.Errorf("occupancy order = %v, want first-seen order a1,a2,h1", occ)
	}
}

func TestSegmentLengthHistogramSVG(t *testing.T) {
	svg, err := SegmentLengthHistogramSVG("a2", sampleSegments())
	if err != nil {
		t.Fatalf("SegmentLengthHistogramSVG() error = %v", err)
	}
	if !strings.Contains(svg, "<svg") {
		t.Errorf("output does not look like SVG: %q", svg[:min(len(svg), 80)])
	}
}

func TestSegmentLengthHistogramSVGUnknownState(t *testing.T) {
	_, err := SegmentLengthHistogramSVG("nonexistent", sampleSegments())
	if err == nil {
		t.Error("expected error for a state with no segments")
	}
}

func TestLogLikelihoodDistributionSVG(t *testing.T) {
	svg, err := LogLikelihoodDistributionSVG([]float64{-5, -6, -5.5, -7, -4.8, -6.2})
	if err != nil {
		t.Fatalf("LogLikelihoodDistributionSVG() error = %v", err)
	}
	if !strings.Contains(svg, "<svg") {
		t.Errorf("output does not look like SVG: %q", svg[:min(len(svg), 80)])
	}
}

func TestLogLikelihoodDistributionSVGEmpty(t *testing.T) {
	_, err := LogLikelihoodDistributionSVG(nil)
	if err == nil {
		t.Error("expected error for empty log-likelihood slice")
	}
}

func TestStateOccupancySVG(t *testing.T) {
	occ := TallyStateOccupancy(sampleSegments())
	svg, err := StateOccupancySVG(occ)
	if err != nil {
		t.Fatalf("StateOccupancySVG() error = %v", err)
	}
	if !strings.Contains(svg, "<svg") {
		t.Errorf("output does not look like SVG: %q", svg[:min(len(svg), 80)])
	}
}

func TestStateOccupancySVGEmpty(t *testing.T) {
	_, err := StateOccupancySVG(nil)
	if err == nil {
		t.Error("expected error for empty occupancy slice")
	}
}

func TestIntegerTicksSkipsFractionalRange(t *testing.T) {
	ticks := IntegerTicks{}.Ticks(1.2, 3.8)
	if len(ticks) != 2 {
		t.Fatalf("len(ticks) = %d, want 2 (2 and 3)", len(ticks))
	}
	if ticks[0].Label != "2" || ticks[1].Label != "3" {
		t.Errorf("tick labels = %q,%q, want 2,3", ticks[0].Label, ticks[1].Label)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
