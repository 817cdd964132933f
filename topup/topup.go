// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package topup adds mixed-member correction seats on top of district
// results, pulling the total toward the Sainte-Lague ideal.
package topup

import (
	"github.com/danielhkuo/housesim/models"
	"github.com/danielhkuo/housesim/seats"
)

// Request carries the inputs of one top-up allocation.
type Request struct {
	Shares        models.PartyShare
	Parties       []models.PartyID
	CombinedTotal int
	DistrictSeats map[models.PartyID]int
	TopUpSeats    int
}

// Result holds the ideal allocation, the top-up awards and the final seats.
type Result struct {
	Ideal map[models.PartyID]int
	TopUp map[models.PartyID]int
	Final map[models.PartyID]int
}

// Allocate awards req.TopUpSeats one at a time to the party with the largest
// deficit ideal - district - awarded, ties by ascending party id.
func Allocate(req Request) Result {
	ideal := seats.SainteLague(req.Shares, req.CombinedTotal, req.Parties)
	order := models.SortedParties(req.Parties)

	topUp := make(map[models.PartyID]int, len(order))
	for _, p := range order {
		topUp[p] = 0
	}

	for i := 0; i < req.TopUpSeats && len(order) > 0; i++ {
		best := order[0]
		bestDeficit := deficit(ideal, req.DistrictSeats, topUp, best)
		for _, p := range order[1:] {
			if d := deficit(ideal, req.DistrictSeats, topUp, p); d > bestDeficit {
				best, bestDeficit = p, d
			}
		}
		topUp[best]++
	}

	final := make(map[models.PartyID]int, len(order))
	for _, p := range order {
		final[p] = req.DistrictSeats[p] + topUp[p]
	}

	return Result{Ideal: ideal, TopUp: topUp, Final: final}
}

func deficit(ideal, district, awarded map[models.PartyID]int, p models.PartyID) int {
	return ideal[p] - district[p] - awarded[p]
}
