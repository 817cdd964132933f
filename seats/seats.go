// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package seats holds the party-level seat allocation rules: Hamilton
// (largest remainder) for two and three parties, and Sainte-Lague.
package seats

import (
	"math"
	"sort"

	"github.com/danielhkuo/housesim/models"
)

// HamiltonTwoParty splits total seats between two parties by the largest
// remainder method. shareA is clamped to [0, 1]; a+b always equals total
// for total >= 0.
func HamiltonTwoParty(total int, shareA float64) (a, b int) {
	if total <= 0 {
		return 0, 0
	}
	shareA = clamp01(shareA)

	counts := largestRemainder(total, []float64{
		float64(total) * shareA,
		float64(total) * (1 - shareA),
	})
	return counts[0], counts[1]
}

// HamiltonThreeParty splits total seats between party A, party B and a
// baseline party that receives whatever share A and B leave over. If A and
// B together exceed 1 they are renormalized. Remainder ties go to A, then
// B, then the baseline.
func HamiltonThreeParty(total int, shareA, shareB float64) (a, b, baseline int) {
	if total <= 0 {
		return 0, 0, 0
	}
	shareA = clamp01(shareA)
	shareB = clamp01(shareB)
	if sum := shareA + shareB; sum > 1 {
		shareA /= sum
		shareB /= sum
	}
	shareBase := math.Max(0, 1-shareA-shareB)

	counts := largestRemainder(total, []float64{
		float64(total) * shareA,
		float64(total) * shareB,
		float64(total) * shareBase,
	})
	return counts[0], counts[1], counts[2]
}

// SainteLague allocates total seats by highest quotient share/(2s+1),
// one seat per round. Shares are normalized over parties first; quotient
// ties go to the lower party id. Every listed party appears in the result.
func SainteLague(shares models.PartyShare, total int, parties []models.PartyID) map[models.PartyID]int {
	out := make(map[models.PartyID]int, len(parties))
	for _, p := range parties {
		out[p] = 0
	}
	if total <= 0 || len(parties) == 0 {
		return out
	}

	norm := shares.Normalize(parties)
	order := models.SortedParties(parties)

	for round := 0; round < total; round++ {
		best := order[0]
		bestQuotient := -1.0
		for _, p := range order {
			q := norm[p] / float64(2*out[p]+1)
			if q > bestQuotient {
				best, bestQuotient = p, q
			}
		}
		out[best]++
	}
	return out
}

// largestRemainder floors every raw quota and hands the leftover seats out
// in descending order of fractional remainder, cycling through that order
// when more seats remain than entries. Equal remainders keep input order.
func largestRemainder(total int, raw []float64) []int {
	counts := make([]int, len(raw))
	remainders := make([]float64, len(raw))
	assigned := 0
	for i, r := range raw {
		floor := math.Floor(r)
		counts[i] = int(floor)
		remainders[i] = r - floor
		assigned += counts[i]
	}

	order := make([]int, len(raw))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return remainders[order[i]] > remainders[order[j]]
	})

	leftover := total - assigned
	for i := 0; i < leftover; i++ {
		counts[order[i%len(order)]]++
	}

	// Floating point can push the floors one past the total; take the excess
	// back from the smallest remainders.
	for i := len(order) - 1; leftover < 0; i-- {
		if i < 0 {
			i = len(order) - 1
		}
		if idx := order[i]; counts[idx] > 0 {
			counts[idx]--
			leftover++
		}
	}
	return counts
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
