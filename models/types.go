// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"math"
	"sort"
)

// Party identifiers used by the default roster
const (
	PartyDemocratic  PartyID = "D"
	PartyRepublican  PartyID = "R"
	PartyIndependent PartyID = "I"
)

// PartyID identifies a party. Ordering between parties is always taken from
// an explicit roster slice, never from map iteration.
type PartyID string

// DefaultRoster is the two-party roster used when a caller supplies none.
func DefaultRoster() []PartyID {
	return []PartyID{PartyDemocratic, PartyRepublican}
}

// SortedParties returns a copy of parties in ascending id order.
func SortedParties(parties []PartyID) []PartyID {
	out := make([]PartyID, len(parties))
	copy(out, parties)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// PartyShare maps a party to a share in [0, 1].
type PartyShare map[PartyID]float64

// Normalize returns the shares of the listed parties rescaled to sum to 1.
// Negative and NaN inputs count as zero; when nothing positive remains the
// result is an even split across parties.
func (s PartyShare) Normalize(parties []PartyID) PartyShare {
	out := make(PartyShare, len(parties))
	if len(parties) == 0 {
		return out
	}

	var sum float64
	for _, p := range parties {
		if v := s[p]; v > 0 && !math.IsInf(v, 1) {
			sum += v
		}
	}

	if sum <= 0 {
		even := 1.0 / float64(len(parties))
		for _, p := range parties {
			out[p] = even
		}
		return out
	}

	for _, p := range parties {
		v := s[p]
		if v > 0 && !math.IsInf(v, 1) {
			out[p] = v / sum
		} else {
			out[p] = 0
		}
	}
	return out
}

// Reference data

// StateRecord is one row of the population reference data. Apportioned is
// false for the display-only jurisdiction (the District of Columbia).
type StateRecord struct {
	Name        string `json:"name" yaml:"name"`
	Code        string `json:"code" yaml:"code"`
	Region      string `json:"region" yaml:"region"`
	Population  int64  `json:"population" yaml:"population"`
	Apportioned bool   `json:"apportioned" yaml:"apportioned"`
}

// Settings

// Settings controls the proportional-representation simulation. Every field
// is clamped independently by Clamp.
type Settings struct {
	DistrictTarget int     `json:"district_target" yaml:"district_target"`
	DistrictMin    int     `json:"district_min" yaml:"district_min"`
	DistrictMax    int     `json:"district_max" yaml:"district_max"`
	TopUpEnabled   bool    `json:"top_up_enabled" yaml:"top_up_enabled"`
	TopUpShare     float64 `json:"top_up_share" yaml:"top_up_share"`
	BallotsPerSeat int     `json:"ballots_per_seat" yaml:"ballots_per_seat"`
	Seed           int64   `json:"seed" yaml:"seed"`
}

// Settings bounds
const (
	MinDistrictSize    = 1
	MaxDistrictTarget  = 10
	MaxDistrictSize    = 12
	MaxTopUpShare      = 0.3
	MinBallotsPerSeat  = 100
	DefaultHouseSize   = 435
	MaxThirdPartyShare = 0.5
)

// DefaultSettings returns the settings used when none are configured.
func DefaultSettings() Settings {
	return Settings{
		DistrictTarget: 5,
		DistrictMin:    3,
		DistrictMax:    7,
		TopUpEnabled:   true,
		TopUpShare:     0.15,
		BallotsPerSeat: 2000,
		Seed:           2024,
	}
}

// Clamp returns a copy of s with every field forced into its valid range.
func (s Settings) Clamp() Settings {
	s.DistrictTarget = clampInt(s.DistrictTarget, MinDistrictSize, MaxDistrictTarget)
	s.DistrictMin = clampInt(s.DistrictMin, MinDistrictSize, MaxDistrictTarget)
	s.DistrictMax = clampInt(s.DistrictMax, s.DistrictMin, MaxDistrictSize)
	if math.IsNaN(s.TopUpShare) {
		s.TopUpShare = 0
	}
	s.TopUpShare = math.Max(0, math.Min(MaxTopUpShare, s.TopUpShare))
	if s.BallotsPerSeat < MinBallotsPerSeat {
		s.BallotsPerSeat = MinBallotsPerSeat
	}
	return s
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Districts and ballots

// DistrictSpec describes one multi-member district. Shares, when set,
// replaces the jurisdiction-wide vote shares inside this district.
type DistrictSpec struct {
	ID     string     `json:"id" yaml:"id"`
	Seats  int        `json:"seats" yaml:"seats"`
	Shares PartyShare `json:"shares,omitempty" yaml:"shares,omitempty"`
}

// DistrictPlan divides a jurisdiction's district seats into districts.
type DistrictPlan struct {
	Jurisdiction string         `json:"jurisdiction" yaml:"jurisdiction"`
	Districts    []DistrictSpec `json:"districts" yaml:"districts"`
}

// TotalSeats sums the seats across all districts.
func (p DistrictPlan) TotalSeats() int {
	total := 0
	for _, d := range p.Districts {
		total += d.Seats
	}
	return total
}

type Candidate struct {
	ID    string  `json:"id"`
	Party PartyID `json:"party"`
}

// RankedBallot ranks every candidate exactly once. Weight starts at 1 and
// is reduced by surplus transfers during counting.
type RankedBallot struct {
	Ranking []string `json:"ranking"`
	Weight  float64  `json:"weight"`
}

// Results

// DistrictOutcome is the STV count of a single district.
type DistrictOutcome struct {
	ID           string          `json:"id"`
	Seats        int             `json:"seats"`
	Ballots      int             `json:"ballots"`
	Quota        float64         `json:"quota"`
	Elected      []string        `json:"elected"`
	SeatsByParty map[PartyID]int `json:"seats_by_party"`
}

// JurisdictionPRResult is the outcome of simulating one jurisdiction.
// Values returned from the cache are shared and must be treated as read-only.
type JurisdictionPRResult struct {
	Jurisdiction    string            `json:"jurisdiction"`
	TotalSeats      int               `json:"total_seats"`
	TopUpSeatCount  int               `json:"top_up_seat_count"`
	Parties         []PartyID         `json:"parties"`
	VoteShares      PartyShare        `json:"vote_shares"`
	DistrictSeats   map[PartyID]int   `json:"district_seats"`
	TopUpSeats      map[PartyID]int   `json:"top_up_seats"`
	FinalSeats      map[PartyID]int   `json:"final_seats"`
	Gallagher       float64           `json:"gallagher"`
	WastedVoteProxy float64           `json:"wasted_vote_proxy"`
	Plan            DistrictPlan      `json:"plan"`
	Districts       []DistrictOutcome `json:"districts"`
	Seed            int64             `json:"seed"`
}

// NationalPRResult aggregates jurisdiction results in input order.
type NationalPRResult struct {
	TotalSeats      int                    `json:"total_seats"`
	Parties         []PartyID              `json:"parties"`
	VoteShares      PartyShare             `json:"vote_shares"`
	SeatsByParty    map[PartyID]int        `json:"seats_by_party"`
	TopUpSeats      map[PartyID]int        `json:"top_up_seats"`
	Gallagher       float64                `json:"gallagher"`
	WastedVoteProxy float64                `json:"wasted_vote_proxy"`
	Jurisdictions   []JurisdictionPRResult `json:"jurisdictions"`
}

// StateMetrics is the per-state view handed to the presentation layer.
type StateMetrics struct {
	Name              string          `json:"name"`
	Code              string          `json:"code"`
	Region            string          `json:"region"`
	Population        int64           `json:"population"`
	Apportioned       bool            `json:"apportioned"`
	Seats             int             `json:"seats"`
	SeatChange        int             `json:"seat_change"`
	ElectoralVotes    int             `json:"electoral_votes"`
	PeoplePerSeat     float64         `json:"people_per_seat"`
	TwoPartyShare     float64         `json:"two_party_share"`
	ProportionalSeats map[PartyID]int `json:"proportional_seats"`
}

// ElectionOutcome is a historical election replayed on a given apportionment.
type ElectionOutcome struct {
	Year           int             `json:"year"`
	Label          string          `json:"label"`
	VotesByParty   map[PartyID]int `json:"votes_by_party"`
	TotalVotes     int             `json:"total_votes"`
	Threshold      int             `json:"threshold"`
	Winner         PartyID         `json:"winner,omitempty"`
	HistoricWinner PartyID         `json:"historic_winner"`
	Flipped        bool            `json:"flipped"`
}

// Request types

type ApportionRequest struct {
	Seats    int                `json:"seats"`
	Baseline int                `json:"baseline,omitempty"`
	TwoParty map[string]float64 `json:"two_party,omitempty"`
}

type SimulateJurisdictionRequest struct {
	Code       string        `json:"code"`
	Seats      int           `json:"seats,omitempty"`
	HouseSize  int           `json:"house_size,omitempty"`
	VoteShares PartyShare    `json:"vote_shares"`
	Parties    []PartyID     `json:"parties,omitempty"`
	Settings   *Settings     `json:"settings,omitempty"`
	Plan       *DistrictPlan `json:"plan,omitempty"`
}

type SimulateNationalRequest struct {
	HouseSize       int                `json:"house_size,omitempty"`
	TwoParty        map[string]float64 `json:"two_party,omitempty"`
	ThirdPartyShare float64            `json:"third_party_share,omitempty"`
	Settings        *Settings          `json:"settings,omitempty"`
}

// Response types

type ApportionResponse struct {
	Seats          int            `json:"seats"`
	Baseline       int            `json:"baseline"`
	States         []StateMetrics `json:"states"`
	ElectoralVotes int            `json:"electoral_votes"`
}

type HistoryResponse struct {
	Seats     int               `json:"seats"`
	Elections []ElectionOutcome `json:"elections"`
}

type CacheResetResponse struct {
	Cleared int `json:"cleared"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
