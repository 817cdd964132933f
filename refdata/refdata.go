// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package refdata embeds the population reference data: all 50 states plus
// the District of Columbia, which is carried for display only.
package refdata

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/housesim/models"
)

// StateCount is the number of apportioned states the data must cover.
const StateCount = 50

//go:embed states.yaml
var statesYAML []byte

type document struct {
	States []models.StateRecord `yaml:"states"`
}

// Load parses the embedded dataset.
func Load() ([]models.StateRecord, error) {
	return Parse(statesYAML)
}

// Parse decodes a states document and checks it covers every state.
func Parse(data []byte) ([]models.StateRecord, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal states: %w", err)
	}
	if err := Validate(doc.States); err != nil {
		return nil, err
	}
	return doc.States, nil
}

// Validate checks for duplicate codes, negative populations and at most one
// non-apportioned jurisdiction alongside exactly StateCount states.
func Validate(states []models.StateRecord) error {
	seen := make(map[string]bool, len(states))
	apportioned, other := 0, 0
	for _, s := range states {
		if len(s.Code) != 2 {
			return fmt.Errorf("state %q: code must be two letters", s.Name)
		}
		if seen[s.Code] {
			return fmt.Errorf("state %s: duplicate code", s.Code)
		}
		seen[s.Code] = true
		if s.Population < 0 {
			return fmt.Errorf("state %s: negative population", s.Code)
		}
		if s.Apportioned {
			apportioned++
		} else {
			other++
		}
	}
	if apportioned != StateCount {
		return fmt.Errorf("expected %d apportioned states, got %d", StateCount, apportioned)
	}
	if other > 1 {
		return fmt.Errorf("expected at most one non-apportioned jurisdiction, got %d", other)
	}
	return nil
}

// Populations returns code -> population for apportioned states only.
func Populations(states []models.StateRecord) map[string]int64 {
	pops := make(map[string]int64, len(states))
	for _, s := range states {
		if s.Apportioned {
			pops[s.Code] = s.Population
		}
	}
	return pops
}

// ByCode indexes states by their two-letter code.
func ByCode(states []models.StateRecord) map[string]models.StateRecord {
	out := make(map[string]models.StateRecord, len(states))
	for _, s := range states {
		out[s.Code] = s
	}
	return out
}
