package utils

import (
	"go-companion-combat/internal/defs"
	"testing"
)

func TestChooseWeightedSkipsZeroWeights(t *testing.T) {
	rng := NewPRNGService(42)
	entries := []defs.WeightedEntry{
		{ID: "sheep", Weight: 0},
		{ID: "cow", Weight: 5},
	}
	for i := 0; i < 100; i++ {
		if got := rng.ChooseWeighted(entries); got != "cow" {
			t.Fatalf("expected cow, got %q", got)
		}
	}
}

func TestChooseWeightedEmpty(t *testing.T) {
	rng := NewPRNGService(1)
	if got := rng.ChooseWeighted(nil); got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
}

func TestChanceBounds(t *testing.T) {
	rng := NewPRNGService(7)
	for i := 0; i < 50; i++ {
		if !rng.Chance(1.0) {
			t.Fatal("Chance(1.0) must always succeed")
		}
		if rng.Chance(0) {
			t.Fatal("Chance(0) must never succeed")
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	cases := map[float64]float64{0: 0, 190: -170, -190: 170, 360: 0, 540: -180}
	for in, want := range cases {
		if got := NormalizeAngle(in); got != want {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", in, got, want)
		}
	}
}
