// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package simulation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/danielhkuo/housesim/ballots"
	"github.com/danielhkuo/housesim/districts"
	"github.com/danielhkuo/housesim/metrics"
	"github.com/danielhkuo/housesim/models"
	"github.com/danielhkuo/housesim/stv"
	"github.com/danielhkuo/housesim/topup"
)

// districtSeedStride separates the ballot seeds of neighbouring districts.
const districtSeedStride = 1009

// JurisdictionInput is everything that varies per jurisdiction in a run.
// Population only weights national vote shares and is not part of the
// cache key.
type JurisdictionInput struct {
	Code       string
	Seats      int
	Population int64
	VoteShares models.PartyShare
	Parties    []models.PartyID
	Plan       *models.DistrictPlan
}

// Engine runs proportional-representation simulations against an injected
// result cache.
type Engine struct {
	cache  *Cache
	logger *slog.Logger
}

// NewEngine returns an engine using cache and logger. A nil cache gets a
// fresh one; a nil logger falls back to slog.Default.
func NewEngine(cache *Cache, logger *slog.Logger) *Engine {
	if cache == nil {
		cache = NewCache()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{cache: cache, logger: logger}
}

// Cache exposes the engine's result cache.
func (e *Engine) Cache() *Cache {
	return e.cache
}

// JurisdictionSeed derives a jurisdiction's seed by adding the code points
// of its code to base. The derivation is case sensitive.
func JurisdictionSeed(base int64, code string) int64 {
	seed := base
	for _, r := range code {
		seed += int64(r)
	}
	return seed
}

// TopUpSeats returns round(total * TopUpShare) when top-up is enabled,
// capped so at least one district seat remains.
func TopUpSeats(total int, s models.Settings) int {
	if !s.TopUpEnabled || total <= 1 {
		return 0
	}
	n := int(math.Round(float64(total) * s.TopUpShare))
	if n > total-1 {
		n = total - 1
	}
	if n < 0 {
		n = 0
	}
	return n
}

// prepared holds a jurisdiction input in the normalized form used for both
// the cache key and the computation.
type prepared struct {
	parties  []models.PartyID
	shares   models.PartyShare
	settings models.Settings
	key      string
}

func prepare(in JurisdictionInput, settings models.Settings) (prepared, error) {
	if in.Seats < 1 {
		return prepared{}, fmt.Errorf("%w: jurisdiction %q has %d seats", models.ErrInvalidConfiguration, in.Code, in.Seats)
	}
	parties, err := roster(in.Parties)
	if err != nil {
		return prepared{}, err
	}

	p := prepared{
		parties:  parties,
		shares:   in.VoteShares.Normalize(parties),
		settings: settings.Clamp(),
	}
	p.key, err = Key(in.Code, in.Seats, p.shares, p.parties, p.settings, in.Plan)
	if err != nil {
		return prepared{}, err
	}
	return p, nil
}

// InputKey returns the cache key RunJurisdiction would use for in.
func InputKey(in JurisdictionInput, settings models.Settings) (string, error) {
	p, err := prepare(in, settings)
	return p.key, err
}

// RunJurisdiction simulates one jurisdiction. Results for equal inputs are
// served from the cache and must not be mutated by the caller.
func (e *Engine) RunJurisdiction(ctx context.Context, in JurisdictionInput, settings models.Settings) (models.JurisdictionPRResult, error) {
	if err := ctx.Err(); err != nil {
		return models.JurisdictionPRResult{}, err
	}
	p, err := prepare(in, settings)
	if err != nil {
		return models.JurisdictionPRResult{}, err
	}

	res, hit, err := e.cache.GetOrCompute(p.key, func() (models.JurisdictionPRResult, error) {
		return e.compute(in.Code, in.Seats, p.shares, p.parties, p.settings, in.Plan), nil
	})
	if err != nil {
		return models.JurisdictionPRResult{}, err
	}
	if hit {
		e.logger.Debug("Jurisdiction served from cache", "jurisdiction", in.Code, "seats", in.Seats)
	}
	return res, nil
}

func (e *Engine) compute(code string, total int, shares models.PartyShare, parties []models.PartyID, settings models.Settings, override *models.DistrictPlan) models.JurisdictionPRResult {
	topUpCount := TopUpSeats(total, settings)
	plan := e.plan(code, total-topUpCount, settings, override)
	seed := JurisdictionSeed(settings.Seed, code)

	districtSeats := zeroSeats(parties)
	outcomes := make([]models.DistrictOutcome, len(plan.Districts))
	for i, d := range plan.Districts {
		local := shares
		if len(d.Shares) > 0 {
			local = d.Shares.Normalize(parties)
		}

		candidates, ballotSet := ballots.Synthesize(ballots.Request{
			Shares:  local,
			Parties: parties,
			Seed:    seed + int64(i)*districtSeedStride,
			Seats:   d.Seats,
			Count:   max(models.MinBallotsPerSeat, settings.BallotsPerSeat*d.Seats),
		})
		count := stv.Count(d.Seats, candidates, ballotSet)

		for _, p := range parties {
			districtSeats[p] += count.SeatsByParty[p]
		}
		outcomes[i] = models.DistrictOutcome{
			ID:           d.ID,
			Seats:        d.Seats,
			Ballots:      len(ballotSet),
			Quota:        count.Quota,
			Elected:      count.Elected,
			SeatsByParty: count.SeatsByParty,
		}
	}

	topUpSeats := zeroSeats(parties)
	final := zeroSeats(parties)
	for _, p := range parties {
		final[p] = districtSeats[p]
	}
	if topUpCount > 0 {
		alloc := topup.Allocate(topup.Request{
			Shares:        shares,
			Parties:       parties,
			CombinedTotal: total,
			DistrictSeats: districtSeats,
			TopUpSeats:    topUpCount,
		})
		topUpSeats, final = alloc.TopUp, alloc.Final
	}

	seatShares := metrics.SeatShares(final, parties)
	res := models.JurisdictionPRResult{
		Jurisdiction:    code,
		TotalSeats:      total,
		TopUpSeatCount:  topUpCount,
		Parties:         parties,
		VoteShares:      shares,
		DistrictSeats:   districtSeats,
		TopUpSeats:      topUpSeats,
		FinalSeats:      final,
		Gallagher:       metrics.Gallagher(shares, seatShares, parties),
		WastedVoteProxy: metrics.WastedVoteProxy(shares, seatShares, parties),
		Plan:            plan,
		Districts:       outcomes,
		Seed:            seed,
	}

	e.logger.Debug("Jurisdiction simulated",
		"jurisdiction", code,
		"seats", total,
		"districts", len(plan.Districts),
		"top_up", topUpCount,
		"gallagher", res.Gallagher)
	return res
}

// plan validates an override plan, falling back to a built plan when the
// override does not match the district seat total.
func (e *Engine) plan(code string, districtTotal int, s models.Settings, override *models.DistrictPlan) models.DistrictPlan {
	if override != nil {
		plan, err := districts.Validate(*override, code, districtTotal)
		if err == nil {
			return plan
		}
		if !errors.Is(err, models.ErrPlanMismatch) {
			e.logger.Error("Unexpected plan validation error", "jurisdiction", code, "error", err)
		} else {
			e.logger.Warn("Override plan rejected, rebuilding", "jurisdiction", code, "error", err)
		}
	}
	return districts.Build(code, districtTotal, s.DistrictTarget, s.DistrictMin, s.DistrictMax)
}

// roster copies parties, defaulting to the two-party roster. Empty or
// repeated ids are rejected.
func roster(parties []models.PartyID) ([]models.PartyID, error) {
	if len(parties) == 0 {
		return models.DefaultRoster(), nil
	}
	seen := make(map[models.PartyID]bool, len(parties))
	out := make([]models.PartyID, 0, len(parties))
	for _, p := range parties {
		if p == "" {
			return nil, fmt.Errorf("%w: empty party id", models.ErrInvalidConfiguration)
		}
		if seen[p] {
			return nil, fmt.Errorf("%w: duplicate party %q", models.ErrInvalidConfiguration, p)
		}
		seen[p] = true
		out = append(out, p)
	}
	return out, nil
}

func zeroSeats(parties []models.PartyID) map[models.PartyID]int {
	m := make(map[models.PartyID]int, len(parties))
	for _, p := range parties {
		m[p] = 0
	}
	return m
}
