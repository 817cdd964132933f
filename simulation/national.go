// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package simulation

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/housesim/apportion"
	"github.com/danielhkuo/housesim/metrics"
	"github.com/danielhkuo/housesim/models"
)

// Bounds applied to the two-party vote-share feed.
const (
	MinFeedShare = 0.1
	MaxFeedShare = 0.9
)

// RunNational simulates every input concurrently and aggregates the
// results in input order. The first failing jurisdiction cancels the rest.
func (e *Engine) RunNational(ctx context.Context, inputs []JurisdictionInput, settings models.Settings) (models.NationalPRResult, error) {
	if len(inputs) == 0 {
		return models.NationalPRResult{}, fmt.Errorf("%w: no jurisdictions to simulate", models.ErrInvalidConfiguration)
	}

	start := time.Now()
	results := make([]models.JurisdictionPRResult, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, in := range inputs {
		g.Go(func() error {
			res, err := e.RunJurisdiction(gctx, in, settings)
			if err != nil {
				return fmt.Errorf("failed to simulate %s: %w", in.Code, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.NationalPRResult{}, err
	}

	out := Aggregate(inputs, results)
	e.logger.Info("National simulation complete",
		"jurisdictions", len(results),
		"seats", out.TotalSeats,
		"gallagher", out.Gallagher,
		"duration", time.Since(start))
	return out, nil
}

// Aggregate combines jurisdiction results. Vote shares are weighted by
// population, or by seats when no input carries a population. The party
// roster is the union of the jurisdiction rosters in order of appearance.
func Aggregate(inputs []JurisdictionInput, results []models.JurisdictionPRResult) models.NationalPRResult {
	var parties []models.PartyID
	seen := make(map[models.PartyID]bool)
	for _, r := range results {
		for _, p := range r.Parties {
			if !seen[p] {
				seen[p] = true
				parties = append(parties, p)
			}
		}
	}

	usePopulation := false
	for _, in := range inputs {
		if in.Population > 0 {
			usePopulation = true
			break
		}
	}

	out := models.NationalPRResult{
		Parties:       parties,
		SeatsByParty:  zeroSeats(parties),
		TopUpSeats:    zeroSeats(parties),
		Jurisdictions: results,
	}

	weighted := make(models.PartyShare, len(parties))
	for i, r := range results {
		out.TotalSeats += r.TotalSeats
		for _, p := range r.Parties {
			out.SeatsByParty[p] += r.FinalSeats[p]
			out.TopUpSeats[p] += r.TopUpSeats[p]
		}

		w := float64(r.TotalSeats)
		if usePopulation && i < len(inputs) {
			w = float64(inputs[i].Population)
		}
		for _, p := range r.Parties {
			weighted[p] += w * r.VoteShares[p]
		}
	}

	out.VoteShares = weighted.Normalize(parties)
	seatShares := metrics.SeatShares(out.SeatsByParty, parties)
	out.Gallagher = metrics.Gallagher(out.VoteShares, seatShares, parties)
	out.WastedVoteProxy = metrics.WastedVoteProxy(out.VoteShares, seatShares, parties)
	return out
}

// BuildInputs turns an apportionment and a two-party vote-share feed into
// simulation inputs, one per apportioned state with at least one seat, in
// the order of states. twoParty holds the Democratic share of the two-party
// vote, clamped to [MinFeedShare, MaxFeedShare]; states missing from the
// feed get an even split. thirdShare, clamped to [0, MaxThirdPartyShare],
// is carved out of both major parties for an independent slate.
func BuildInputs(states []models.StateRecord, apportionment map[string]int, twoParty map[string]float64, thirdShare float64) []JurisdictionInput {
	third := thirdShare
	if math.IsNaN(third) || third < 0 {
		third = 0
	}
	third = math.Min(third, models.MaxThirdPartyShare)

	parties := models.DefaultRoster()
	if third > 0 {
		parties = append(parties, models.PartyIndependent)
	}

	inputs := make([]JurisdictionInput, 0, len(apportionment))
	for _, s := range states {
		n := apportionment[s.Code]
		if !s.Apportioned || n < 1 {
			continue
		}

		share := FeedShare(twoParty, s.Code)
		shares := models.PartyShare{
			models.PartyDemocratic: share * (1 - third),
			models.PartyRepublican: (1 - share) * (1 - third),
		}
		if third > 0 {
			shares[models.PartyIndependent] = third
		}

		inputs = append(inputs, JurisdictionInput{
			Code:       s.Code,
			Seats:      n,
			Population: s.Population,
			VoteShares: shares,
			Parties:    append([]models.PartyID(nil), parties...),
		})
	}
	return inputs
}

// FeedShare reads one state's two-party share from the feed, clamped to
// the feed bounds. Missing or invalid entries yield an even split.
func FeedShare(twoParty map[string]float64, code string) float64 {
	v, ok := twoParty[code]
	if !ok || math.IsNaN(v) {
		return apportion.DefaultTwoPartyShare
	}
	return math.Max(MinFeedShare, math.Min(MaxFeedShare, v))
}
