package pricing

import (
	"math"
	"testing"
)

func TestReanchor_KeepsDistances(t *testing.T) {
	got, ok := Reanchor(Levels{Entry: 100, Stop: 90, Target: 120}, 110)
	if !ok {
		t.Fatalf("ok=false want true")
	}
	want := Levels{Entry: 110, Stop: 100, Target: 130}
	if got != want {
		t.Fatalf("got=%+v want=%+v", got, want)
	}
}

func TestReanchor_RoundsToCents(t *testing.T) {
	got, ok := Reanchor(Levels{Entry: 10.1, Stop: 9.85, Target: 10.6}, 10.333)
	if !ok {
		t.Fatalf("ok=false want true")
	}
	want := Levels{Entry: 10.33, Stop: 10.08, Target: 10.83}
	if got != want {
		t.Fatalf("got=%+v want=%+v", got, want)
	}
}

func TestReanchor_UnusablePriceLeavesStatic(t *testing.T) {
	static := Levels{Entry: 100.125, Stop: 90.5, Target: 120.75}
	for _, live := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		got, ok := Reanchor(static, live)
		if ok {
			t.Fatalf("live=%v ok=true want false", live)
		}
		if got != static {
			t.Fatalf("live=%v got=%+v want untouched %+v", live, got, static)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.01},
		{2.344, 2.34},
		{-1.255, -1.26},
		{7, 7},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Fatalf("Round2(%v)=%v want %v", tt.in, got, tt.want)
		}
	}
}
