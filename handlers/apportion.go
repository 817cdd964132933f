// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/housesim/apportion"
	"github.com/danielhkuo/housesim/cliparse"
	"github.com/danielhkuo/housesim/middleware"
	"github.com/danielhkuo/housesim/models"
	"github.com/danielhkuo/housesim/refdata"
	"github.com/danielhkuo/housesim/simulation"
)

// Bounds on the work a single request may trigger
const (
	MaxHouseSize      = 10000
	MaxBallotsPerSeat = 10000
)

type ApportionHandler struct {
	states []models.StateRecord
	cfg    cliparse.Config
}

func NewApportionHandler(states []models.StateRecord, cfg cliparse.Config) *ApportionHandler {
	return &ApportionHandler{states: states, cfg: cfg}
}

// GetStates handles GET /states?seats=N
func (h *ApportionHandler) GetStates(w http.ResponseWriter, r *http.Request) {
	seats, err := seatsParam(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respond(w, models.ApportionRequest{Seats: seats})
}

// Apportion handles POST /apportion
func (h *ApportionHandler) Apportion(w http.ResponseWriter, r *http.Request) {
	var req models.ApportionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	h.respond(w, req)
}

func (h *ApportionHandler) respond(w http.ResponseWriter, req models.ApportionRequest) {
	if req.Seats == 0 {
		req.Seats = models.DefaultHouseSize
	}
	if req.Baseline == 0 {
		req.Baseline = models.DefaultHouseSize
	}

	seats, err := apportionStates(h.states, req.Seats)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	baseline, err := apportionStates(h.states, req.Baseline)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	metrics := apportion.StateMetrics(h.states, seats, baseline, clampFeed(req.TwoParty))
	ev := apportion.ElectoralVotes(h.states, seats)

	middleware.JSONResponse(w, http.StatusOK, models.ApportionResponse{
		Seats:          req.Seats,
		Baseline:       req.Baseline,
		States:         metrics,
		ElectoralVotes: apportion.TotalElectoralVotes(ev),
	})
}

// apportionStates runs Huntington-Hill over the apportioned states
func apportionStates(states []models.StateRecord, seats int) (map[string]int, error) {
	if seats > MaxHouseSize {
		return nil, fmt.Errorf("%w: house size %d exceeds %d", models.ErrInvalidConfiguration, seats, MaxHouseSize)
	}
	return apportion.HuntingtonHill(refdata.Populations(states), seats)
}

// seatsParam reads the optional seats query parameter
func seatsParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("seats")
	if raw == "" {
		return models.DefaultHouseSize, nil
	}
	seats, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("seats must be an integer")
	}
	return seats, nil
}

// clampFeed applies the feed bounds to every entry
func clampFeed(feed map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(feed))
	for code := range feed {
		out[code] = simulation.FeedShare(feed, code)
	}
	return out
}

// writeEngineError maps engine errors to status codes
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidConfiguration):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Request cancelled")
	default:
		slog.Error("simulation failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Simulation failed")
	}
}
