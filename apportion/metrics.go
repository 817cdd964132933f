// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apportion

import (
	"github.com/danielhkuo/housesim/models"
	"github.com/danielhkuo/housesim/seats"
)

// senateVotes is the number of electors every state gets on top of its
// House delegation.
const senateVotes = 2

// DefaultTwoPartyShare is used for states missing from a vote-share feed.
const DefaultTwoPartyShare = 0.5

// ElectoralVotes returns electors per jurisdiction: House seats plus two
// for each apportioned state. A non-apportioned jurisdiction receives as
// many electors as the least populous state, which is what the 23rd
// Amendment allows the District of Columbia.
func ElectoralVotes(states []models.StateRecord, apportionment map[string]int) map[string]int {
	ev := make(map[string]int, len(states))
	smallest := 0
	for _, s := range states {
		if !s.Apportioned {
			continue
		}
		votes := apportionment[s.Code] + senateVotes
		ev[s.Code] = votes
		if smallest == 0 || votes < smallest {
			smallest = votes
		}
	}
	if smallest == 0 {
		smallest = 1 + senateVotes
	}
	for _, s := range states {
		if !s.Apportioned {
			ev[s.Code] = smallest
		}
	}
	return ev
}

// StateMetrics assembles the per-state view of an apportionment in the
// order of states. baseline may be nil, in which case SeatChange is zero.
// twoParty holds the first party's two-party share per state.
func StateMetrics(states []models.StateRecord, apportionment, baseline map[string]int, twoParty map[string]float64) []models.StateMetrics {
	ev := ElectoralVotes(states, apportionment)
	roster := models.DefaultRoster()

	out := make([]models.StateMetrics, 0, len(states))
	for _, s := range states {
		share, ok := twoParty[s.Code]
		if !ok {
			share = DefaultTwoPartyShare
		}

		m := models.StateMetrics{
			Name:           s.Name,
			Code:           s.Code,
			Region:         s.Region,
			Population:     s.Population,
			Apportioned:    s.Apportioned,
			ElectoralVotes: ev[s.Code],
			TwoPartyShare:  share,
		}

		if s.Apportioned {
			m.Seats = apportionment[s.Code]
			if baseline != nil {
				m.SeatChange = m.Seats - baseline[s.Code]
			}
			if m.Seats > 0 {
				m.PeoplePerSeat = float64(s.Population) / float64(m.Seats)
			}
			a, b := seats.HamiltonTwoParty(m.Seats, share)
			m.ProportionalSeats = map[models.PartyID]int{roster[0]: a, roster[1]: b}
		}

		out = append(out, m)
	}
	return out
}

// TotalElectoralVotes sums electors across every jurisdiction.
func TotalElectoralVotes(ev map[string]int) int {
	total := 0
	for _, v := range ev {
		total += v
	}
	return total
}
