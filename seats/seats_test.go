// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package seats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/housesim/models"
)

func TestHamiltonTwoParty_TotalPreserved(t *testing.T) {
	shares := []float64{0, 0.01, 0.1, 0.25, 1.0 / 3.0, 0.5, 0.5001, 0.666, 0.9, 0.99, 1}
	for total := 0; total <= 60; total++ {
		for _, share := range shares {
			a, b := HamiltonTwoParty(total, share)
			require.Equal(t, total, a+b, "total=%d share=%v", total, share)
			assert.GreaterOrEqual(t, a, 0)
			assert.GreaterOrEqual(t, b, 0)
		}
	}
}

func TestHamiltonTwoParty(t *testing.T) {
	tests := []struct {
		name  string
		total int
		share float64
		wantA int
		wantB int
	}{
		{"even split", 10, 0.5, 5, 5},
		{"remainder to larger fraction", 3, 1.0 / 3.0, 1, 2},
		{"odd total tie goes to first", 1, 0.5, 1, 0},
		{"clamped above one", 4, 1.7, 4, 0},
		{"clamped below zero", 4, -0.2, 0, 4},
		{"negative total", -3, 0.5, 0, 0},
		{"sixty-forty", 7, 0.6, 4, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := HamiltonTwoParty(tt.total, tt.share)
			assert.Equal(t, tt.wantA, a)
			assert.Equal(t, tt.wantB, b)
		})
	}
}

func TestHamiltonThreeParty(t *testing.T) {
	tests := []struct {
		name         string
		total        int
		shareA       float64
		shareB       float64
		wantA, wantB int
		wantBase     int
	}{
		{"baseline gets the rest", 10, 0.4, 0.3, 4, 3, 3},
		{"renormalized when over one", 10, 0.9, 0.9, 5, 5, 0},
		{"remainder ties follow fixed order", 2, 0.25, 0.25, 1, 0, 1},
		{"single seat tie goes to A", 1, 0.5, 0.5, 1, 0, 0},
		{"zero shares leave all to baseline", 5, 0, 0, 0, 0, 5},
		{"zero total", 0, 0.2, 0.2, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, base := HamiltonThreeParty(tt.total, tt.shareA, tt.shareB)
			assert.Equal(t, tt.wantA, a, "party A")
			assert.Equal(t, tt.wantB, b, "party B")
			assert.Equal(t, tt.wantBase, base, "baseline")
		})
	}
}

func TestHamiltonThreeParty_TotalPreserved(t *testing.T) {
	for total := 0; total <= 40; total++ {
		for _, sa := range []float64{0, 0.15, 0.33, 0.5, 0.8} {
			for _, sb := range []float64{0, 0.1, 0.33, 0.45, 0.7} {
				a, b, base := HamiltonThreeParty(total, sa, sb)
				require.Equal(t, total, a+b+base, "total=%d a=%v b=%v", total, sa, sb)
			}
		}
	}
}

func TestSainteLague(t *testing.T) {
	parties := []models.PartyID{"A", "B", "C"}

	t.Run("textbook example", func(t *testing.T) {
		shares := models.PartyShare{"A": 53000, "B": 24000, "C": 23000}
		got := SainteLague(shares, 7, parties)
		assert.Equal(t, map[models.PartyID]int{"A": 3, "B": 2, "C": 2}, got)
	})

	t.Run("ties favor lower id", func(t *testing.T) {
		shares := models.PartyShare{"A": 0.5, "B": 0.5}
		got := SainteLague(shares, 1, []models.PartyID{"B", "A"})
		assert.Equal(t, 1, got["A"])
		assert.Equal(t, 0, got["B"])
	})

	t.Run("all non-positive shares split evenly", func(t *testing.T) {
		got := SainteLague(models.PartyShare{"A": -1, "B": 0, "C": 0}, 6, parties)
		assert.Equal(t, map[models.PartyID]int{"A": 2, "B": 2, "C": 2}, got)
	})

	t.Run("zero seats lists every party", func(t *testing.T) {
		got := SainteLague(models.PartyShare{"A": 1}, 0, parties)
		assert.Len(t, got, 3)
	})

	t.Run("sums to total", func(t *testing.T) {
		shares := models.PartyShare{"A": 0.47, "B": 0.41, "C": 0.12}
		for total := 1; total <= 50; total++ {
			got := SainteLague(shares, total, parties)
			sum := 0
			for _, n := range got {
				sum += n
			}
			require.Equal(t, total, sum)
		}
	})
}
