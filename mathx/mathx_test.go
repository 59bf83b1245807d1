package mathx

import (
	"math"
	"math/rand"
	"testing"
)

func TestLogAdd(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want float64
	}{
		{"both zero", LogZero, LogZero, LogZero},
		{"equal halves", math.Log(0.5), math.Log(0.5), math.Log(1.0)},
		{"one zero", LogZero, math.Log(0.25), math.Log(0.25)},
		{"order independent", math.Log(0.1), math.Log(0.9), math.Log(0.9) + math.Log1p(math.Exp(math.Log(0.1)-math.Log(0.9)))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LogAdd(tt.x, tt.y)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("LogAdd(%v,%v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
			if sw := LogAdd(tt.y, tt.x); math.Abs(sw-got) > 1e-12 {
				t.Errorf("LogAdd not symmetric: %v vs %v", got, sw)
			}
		})
	}
}

func TestLogClip(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.0, LogZero},
		{-1.0, LogZero},
		{1.0, 0.0},
		{math.Exp(-3), -3},
	}
	for _, tt := range tests {
		got := LogClip(tt.in)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("LogClip(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDPDFNormalize(t *testing.T) {
	d := NewDPDF()
	if !d.SetDistrib(0, 4, []float64{1, 1, 1, 1}, true) {
		t.Fatal("SetDistrib failed")
	}
	for i := 0; i < 4; i++ {
		if got := d.P(i); math.Abs(got-0.25) > 1e-12 {
			t.Errorf("P(%d) = %v, want 0.25", i, got)
		}
		if got := d.LogP(i); math.Abs(got-math.Log(0.25)) > 1e-9 {
			t.Errorf("LogP(%d) = %v, want log(0.25)", i, got)
		}
	}
	if d.P(-1) != 0.0 || d.P(4) != 0.0 {
		t.Error("P outside support should be 0")
	}
	if d.LogP(-1) != LogZero || d.LogP(4) != LogZero {
		t.Error("LogP outside support should be LogZero")
	}
}

func TestDPDFNormalizeRejectsNonPositiveSum(t *testing.T) {
	d := NewDPDF()
	d.SetDistrib(0, 3, []float64{0, 0, 0}, false)
	if d.Normalize() {
		t.Error("Normalize should fail on a zero-sum distribution")
	}
}

func TestDPDFSetLogDistribRoundTrip(t *testing.T) {
	d := NewDPDF()
	logs := []float64{math.Log(0.2), math.Log(0.3), math.Log(0.5)}
	if !d.SetLogDistrib(1, 4, logs) {
		t.Fatal("SetLogDistrib failed")
	}
	for i, want := range logs {
		if got := d.LogP(i + 1); math.Abs(got-want) > 1e-12 {
			t.Errorf("LogP(%d) = %v, want %v", i+1, got, want)
		}
		if got := d.P(i + 1); math.Abs(got-math.Exp(want)) > 1e-12 {
			t.Errorf("P(%d) = %v, want %v", i+1, got, math.Exp(want))
		}
	}
}

func TestDPDFSetP(t *testing.T) {
	d := NewDPDF()
	d.SetConstDistrib(0, 3, 1.0)
	if !d.SetP(1, 0.5) {
		t.Fatal("SetP in range should succeed")
	}
	if got := d.P(1); got != 0.5 {
		t.Errorf("P(1) = %v, want 0.5", got)
	}
	if d.SetP(5, 0.1) {
		t.Error("SetP out of range should fail")
	}
}

func TestDPDFRandZDistribution(t *testing.T) {
	d := NewDPDF()
	d.SetDistrib(0, 3, []float64{0.0, 0.0, 1.0}, true)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		if got := d.RandZ(rng); got != 2 {
			t.Fatalf("RandZ() = %d, want 2 (point mass)", got)
		}
	}
}
