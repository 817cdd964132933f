// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package ballots synthesizes deterministic ranked ballots for a district
// from party vote shares and a seed.
package ballots

import (
	"fmt"

	"github.com/danielhkuo/housesim/models"
)

// Request describes one district's synthetic electorate.
type Request struct {
	Shares  models.PartyShare
	Parties []models.PartyID
	Seed    int64
	Seats   int
	Count   int
}

// CandidateID names the i-th (zero based) candidate of a party. The index
// is zero padded so lexical order matches slate order.
func CandidateID(party models.PartyID, i int) string {
	return fmt.Sprintf("%s%02d", party, i+1)
}

// Slate returns seats+1 candidates for every party, grouped by party in
// roster order.
func Slate(parties []models.PartyID, seats int) []models.Candidate {
	if seats < 1 {
		seats = 1
	}
	perParty := seats + 1
	slate := make([]models.Candidate, 0, perParty*len(parties))
	for _, p := range parties {
		for i := 0; i < perParty; i++ {
			slate = append(slate, models.Candidate{ID: CandidateID(p, i), Party: p})
		}
	}
	return slate
}

// Synthesize builds the slate and req.Count ballots. Each ballot ranks a
// party drawn by share first, the remaining parties in shuffled order, and
// shuffles the candidates within every party. Every ballot ranks every
// candidate exactly once with weight 1.
func Synthesize(req Request) ([]models.Candidate, []models.RankedBallot) {
	slate := Slate(req.Parties, req.Seats)
	if len(req.Parties) == 0 || req.Count <= 0 {
		return slate, nil
	}

	shares := req.Shares.Normalize(req.Parties)
	cumulative := make([]float64, len(req.Parties))
	lastPositive := 0
	acc := 0.0
	for i, p := range req.Parties {
		acc += shares[p]
		cumulative[i] = acc
		if shares[p] > 0 {
			lastPositive = i
		}
	}

	buckets := make([][]string, len(req.Parties))
	for i, p := range req.Parties {
		for _, c := range slate {
			if c.Party == p {
				buckets[i] = append(buckets[i], c.ID)
			}
		}
	}

	stream := NewStream(req.Seed)
	ballots := make([]models.RankedBallot, req.Count)
	rest := make([]int, 0, len(req.Parties))
	for b := range ballots {
		first := lastPositive
		r := stream.Float()
		for i, c := range cumulative {
			if r < c {
				first = i
				break
			}
		}

		rest = rest[:0]
		for i := range req.Parties {
			if i != first {
				rest = append(rest, i)
			}
		}
		for i := len(rest) - 1; i > 0; i-- {
			j := stream.Intn(i + 1)
			rest[i], rest[j] = rest[j], rest[i]
		}

		ranking := make([]string, 0, len(slate))
		ranking = appendShuffled(ranking, buckets[first], &stream)
		for _, i := range rest {
			ranking = appendShuffled(ranking, buckets[i], &stream)
		}
		ballots[b] = models.RankedBallot{Ranking: ranking, Weight: 1}
	}

	return slate, ballots
}

// appendShuffled appends a Fisher-Yates shuffle of bucket to dst.
func appendShuffled(dst, bucket []string, stream *Stream) []string {
	start := len(dst)
	dst = append(dst, bucket...)
	part := dst[start:]
	for i := len(part) - 1; i > 0; i-- {
		j := stream.Intn(i + 1)
		part[i], part[j] = part[j], part[i]
	}
	return dst
}
