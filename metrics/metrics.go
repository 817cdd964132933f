// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics scores how far a seat distribution sits from the votes
// that produced it.
package metrics

import (
	"math"

	"github.com/danielhkuo/housesim/models"
)

// SeatShares converts seat counts into shares over parties. When no seats
// were won the result is an even split, matching PartyShare.Normalize.
func SeatShares(counts map[models.PartyID]int, parties []models.PartyID) models.PartyShare {
	raw := make(models.PartyShare, len(parties))
	for _, p := range parties {
		raw[p] = float64(counts[p])
	}
	return raw.Normalize(parties)
}

// Gallagher returns the least-squares index sqrt(0.5 * sum (s - v)^2).
// Both vectors are renormalized over parties first.
func Gallagher(votes, seats models.PartyShare, parties []models.PartyID) float64 {
	v := votes.Normalize(parties)
	s := seats.Normalize(parties)

	var sum float64
	for _, p := range parties {
		d := s[p] - v[p]
		sum += d * d
	}
	return math.Sqrt(0.5 * sum)
}

// WastedVoteProxy returns 1 - sum min(vote, seat), the share of the vote
// not matched by seats.
func WastedVoteProxy(votes, seats models.PartyShare, parties []models.PartyID) float64 {
	v := votes.Normalize(parties)
	s := seats.Normalize(parties)

	var matched float64
	for _, p := range parties {
		matched += math.Min(v[p], s[p])
	}
	return math.Max(0, 1-matched)
}
