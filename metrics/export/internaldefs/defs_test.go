package internaldefs

import (
	"strings"
	"testing"
)

func TestCounterNamesUniqueAndPrefixed(t *testing.T) {
	seen := map[string]bool{}
	ids := map[uint16]bool{}
	for _, def := range CounterDefs {
		if !strings.HasPrefix(def.Name, "gocred_") || !strings.HasSuffix(def.Name, "_total") {
			t.Fatalf("counter %q must be gocred_*_total", def.Name)
		}
		if seen[def.Name] || ids[uint16(def.ID)] {
			t.Fatalf("duplicate counter definition %q", def.Name)
		}
		seen[def.Name] = true
		ids[uint16(def.ID)] = true
	}
}

func TestBoundsAgree(t *testing.T) {
	if len(HistogramBounds) != len(HistogramBoundValues)+1 {
		t.Fatalf("label bounds %d vs value bounds %d", len(HistogramBounds), len(HistogramBoundValues))
	}
	if len(HistogramBoundSuffix) != len(HistogramBounds) {
		t.Fatalf("suffixes %d vs bounds %d", len(HistogramBoundSuffix), len(HistogramBounds))
	}
	if HistogramBounds[len(HistogramBounds)-1] != "+Inf" {
		t.Fatal("last bound must be +Inf")
	}
}

func TestCumulativeBuckets(t *testing.T) {
	got := CumulativeBuckets(NormalizeBuckets([]uint64{1, 2, 3}))
	want := [8]uint64{1, 3, 6, 6, 6, 6, 6, 6}
	if got != want {
		t.Fatalf("got %v want %v", got, want)
	}
}
