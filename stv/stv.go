// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stv

import (
	"math"
	"sort"

	"github.com/danielhkuo/housesim/models"
)

// Result is the outcome of one STV count.
type Result struct {
	Elected      []string
	SeatsByParty map[models.PartyID]int
	Quota        float64
}

// DroopQuota returns floor(weight/(seats+1)) + 1.
func DroopQuota(weight float64, seats int) float64 {
	return math.Floor(weight/float64(seats+1)) + 1
}

// ballotState tracks a ballot's weight and its position in the ranking.
type ballotState struct {
	ranking []int
	weight  float64
	pos     int
}

func (b *ballotState) current() int {
	if b.pos < len(b.ranking) {
		return b.ranking[b.pos]
	}
	return -1
}

type counter struct {
	candidates []models.Candidate
	active     []bool
	numActive  int
	ballots    []ballotState
	elected    []string
}

// Count runs a single transferable vote count for seats seats. Ballots are
// copied; the caller's weights are never modified. Candidates that appear
// on a ballot but not on the slate are ignored.
func Count(seats int, candidates []models.Candidate, ballots []models.RankedBallot) Result {
	c := newCounter(candidates, ballots)

	var total float64
	for _, b := range c.ballots {
		total += b.weight
	}
	quota := DroopQuota(total, seats)

	for len(c.elected) < seats && c.numActive > 0 {
		remaining := seats - len(c.elected)
		if c.numActive <= remaining {
			c.electRemaining()
			break
		}

		tallies := c.tally()
		reached := c.atQuota(tallies, quota)
		if len(reached) == 0 {
			c.eliminate(c.lowest(tallies))
			continue
		}

		for _, idx := range reached {
			if len(c.elected) >= seats {
				break
			}
			c.electWithSurplus(idx, quota)
		}
	}

	return Result{
		Elected:      c.elected,
		SeatsByParty: seatsByParty(candidates, c.elected),
		Quota:        quota,
	}
}

func newCounter(candidates []models.Candidate, ballots []models.RankedBallot) *counter {
	index := make(map[string]int, len(candidates))
	for i, cand := range candidates {
		index[cand.ID] = i
	}

	c := &counter{
		candidates: candidates,
		active:     make([]bool, len(candidates)),
		numActive:  len(candidates),
		ballots:    make([]ballotState, 0, len(ballots)),
	}
	for i := range c.active {
		c.active[i] = true
	}

	for _, b := range ballots {
		if b.Weight <= 0 {
			continue
		}
		ranking := make([]int, 0, len(b.Ranking))
		for _, id := range b.Ranking {
			if i, ok := index[id]; ok {
				ranking = append(ranking, i)
			}
		}
		if len(ranking) == 0 {
			continue
		}
		c.ballots = append(c.ballots, ballotState{ranking: ranking, weight: b.Weight})
	}
	return c
}

// tally sums the weight of every ballot's current preference.
func (c *counter) tally() []float64 {
	tallies := make([]float64, len(c.candidates))
	for i := range c.ballots {
		if cur := c.ballots[i].current(); cur >= 0 {
			tallies[cur] += c.ballots[i].weight
		}
	}
	return tallies
}

// atQuota lists active candidates with tally >= quota, highest tally first
// and ties by ascending id.
func (c *counter) atQuota(tallies []float64, quota float64) []int {
	var reached []int
	for i, ok := range c.active {
		if ok && tallies[i] >= quota {
			reached = append(reached, i)
		}
	}
	sort.Slice(reached, func(a, b int) bool {
		ia, ib := reached[a], reached[b]
		if tallies[ia] != tallies[ib] {
			return tallies[ia] > tallies[ib]
		}
		return c.candidates[ia].ID < c.candidates[ib].ID
	})
	return reached
}

// lowest returns the active candidate with the smallest tally, ties by
// ascending id.
func (c *counter) lowest(tallies []float64) int {
	low := -1
	for i, ok := range c.active {
		if !ok {
			continue
		}
		if low < 0 || tallies[i] < tallies[low] ||
			(tallies[i] == tallies[low] && c.candidates[i].ID < c.candidates[low].ID) {
			low = i
		}
	}
	return low
}

// electWithSurplus elects idx and passes on its surplus. Ballots currently
// held by idx keep weight*surplus/tally; with no surplus they are spent.
func (c *counter) electWithSurplus(idx int, quota float64) {
	var held float64
	for i := range c.ballots {
		if c.ballots[i].current() == idx {
			held += c.ballots[i].weight
		}
	}

	factor := 0.0
	if surplus := held - quota; surplus > 0 && held > 0 {
		factor = surplus / held
	}
	for i := range c.ballots {
		if c.ballots[i].current() == idx {
			c.ballots[i].weight *= factor
		}
	}

	c.elected = append(c.elected, c.candidates[idx].ID)
	c.remove(idx)
}

func (c *counter) eliminate(idx int) {
	if idx >= 0 {
		c.remove(idx)
	}
}

// remove deactivates idx and advances every ballot past inactive candidates.
func (c *counter) remove(idx int) {
	c.active[idx] = false
	c.numActive--
	for i := range c.ballots {
		b := &c.ballots[i]
		for b.pos < len(b.ranking) && !c.active[b.ranking[b.pos]] {
			b.pos++
		}
	}
}

// electRemaining elects every active candidate in ascending id order.
func (c *counter) electRemaining() {
	var rest []string
	for i, ok := range c.active {
		if ok {
			rest = append(rest, c.candidates[i].ID)
		}
	}
	sort.Strings(rest)
	c.elected = append(c.elected, rest...)
	for i := range c.active {
		c.active[i] = false
	}
	c.numActive = 0
}

func seatsByParty(candidates []models.Candidate, elected []string) map[models.PartyID]int {
	out := make(map[models.PartyID]int)
	partyOf := make(map[string]models.PartyID, len(candidates))
	for _, cand := range candidates {
		out[cand.Party] = 0
		partyOf[cand.ID] = cand.Party
	}
	for _, id := range elected {
		out[partyOf[id]]++
	}
	return out
}
