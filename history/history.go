// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package history replays past presidential elections on the electoral
// votes produced by a different House size.
package history

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/housesim/models"
	"github.com/danielhkuo/housesim/seats"
)

// atLargeVotes is the number of electors a split state awards statewide.
const atLargeVotes = 2

//go:embed elections.yaml
var electionsYAML []byte

// Split describes a state that awards electors by congressional district.
// DistrictShare is the fraction of districts carried by the election's
// first party.
type Split struct {
	Code          string         `yaml:"code"`
	AtLarge       models.PartyID `yaml:"at_large"`
	DistrictShare float64        `yaml:"district_share"`
}

// Election is one historical result. States absent from StatesWon and
// Splits went to DefaultWinner.
type Election struct {
	Year           int                         `yaml:"year"`
	Label          string                      `yaml:"label"`
	Parties        []models.PartyID            `yaml:"parties"`
	HistoricWinner models.PartyID              `yaml:"historic_winner"`
	DefaultWinner  models.PartyID              `yaml:"default_winner"`
	StatesWon      map[models.PartyID][]string `yaml:"states_won"`
	Splits         []Split                     `yaml:"splits"`
}

type document struct {
	Elections []Election `yaml:"elections"`
}

// Load parses the embedded elections in chronological order.
func Load() ([]Election, error) {
	return Parse(electionsYAML)
}

// Parse decodes and validates an elections document.
func Parse(data []byte) ([]Election, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal elections: %w", err)
	}
	for _, e := range doc.Elections {
		if err := e.Validate(); err != nil {
			return nil, err
		}
	}
	sort.SliceStable(doc.Elections, func(i, j int) bool {
		return doc.Elections[i].Year < doc.Elections[j].Year
	})
	return doc.Elections, nil
}

// Validate checks that every referenced party is on the roster, that no
// state is assigned twice and that split shares lie in [0, 1].
func (e Election) Validate() error {
	if len(e.Parties) != 2 {
		return fmt.Errorf("election %d: expected two parties, got %d", e.Year, len(e.Parties))
	}
	onRoster := func(p models.PartyID) bool {
		return p == e.Parties[0] || p == e.Parties[1]
	}
	if !onRoster(e.DefaultWinner) || !onRoster(e.HistoricWinner) {
		return fmt.Errorf("election %d: winner not on roster", e.Year)
	}

	seen := make(map[string]bool)
	for p, codes := range e.StatesWon {
		if !onRoster(p) {
			return fmt.Errorf("election %d: party %q not on roster", e.Year, p)
		}
		for _, c := range codes {
			if seen[c] {
				return fmt.Errorf("election %d: state %s assigned twice", e.Year, c)
			}
			seen[c] = true
		}
	}
	for _, s := range e.Splits {
		if seen[s.Code] {
			return fmt.Errorf("election %d: state %s assigned twice", e.Year, s.Code)
		}
		seen[s.Code] = true
		if !onRoster(s.AtLarge) {
			return fmt.Errorf("election %d: split %s at-large party %q not on roster", e.Year, s.Code, s.AtLarge)
		}
		if s.DistrictShare < 0 || s.DistrictShare > 1 {
			return fmt.Errorf("election %d: split %s share %v out of range", e.Year, s.Code, s.DistrictShare)
		}
	}
	return nil
}

// Threshold is the number of electoral votes needed for a majority.
func Threshold(total int) int {
	return total/2 + 1
}

// Replay awards electoralVotes according to e. Ordinary states go entirely
// to their recorded winner; split states give two votes at large and
// divide the rest by largest remainder. Winner is empty when no party
// reaches the threshold, and Flipped reports any difference from the
// historic winner.
func Replay(e Election, electoralVotes map[string]int) models.ElectionOutcome {
	winnerOf := make(map[string]models.PartyID)
	for p, codes := range e.StatesWon {
		for _, c := range codes {
			winnerOf[c] = p
		}
	}
	splits := make(map[string]Split, len(e.Splits))
	for _, s := range e.Splits {
		splits[s.Code] = s
	}

	votes := make(map[models.PartyID]int, len(e.Parties))
	for _, p := range e.Parties {
		votes[p] = 0
	}

	total := 0
	for code, ev := range electoralVotes {
		total += ev
		if s, ok := splits[code]; ok {
			atLarge := min(atLargeVotes, ev)
			votes[s.AtLarge] += atLarge
			a, b := seats.HamiltonTwoParty(ev-atLarge, s.DistrictShare)
			votes[e.Parties[0]] += a
			votes[e.Parties[1]] += b
			continue
		}
		if p, ok := winnerOf[code]; ok {
			votes[p] += ev
		} else {
			votes[e.DefaultWinner] += ev
		}
	}

	out := models.ElectionOutcome{
		Year:           e.Year,
		Label:          e.Label,
		VotesByParty:   votes,
		TotalVotes:     total,
		Threshold:      Threshold(total),
		HistoricWinner: e.HistoricWinner,
	}
	for _, p := range e.Parties {
		if votes[p] >= out.Threshold {
			out.Winner = p
			break
		}
	}
	out.Flipped = out.Winner != e.HistoricWinner
	return out
}

// ReplayAll replays every election in chronological order.
func ReplayAll(elections []Election, electoralVotes map[string]int) []models.ElectionOutcome {
	sorted := append([]Election(nil), elections...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })

	out := make([]models.ElectionOutcome, len(sorted))
	for i, e := range sorted {
		out[i] = Replay(e, electoralVotes)
	}
	return out
}
