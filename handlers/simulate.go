// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/housesim/auth"
	"github.com/danielhkuo/housesim/cliparse"
	"github.com/danielhkuo/housesim/middleware"
	"github.com/danielhkuo/housesim/models"
	"github.com/danielhkuo/housesim/refdata"
	"github.com/danielhkuo/housesim/simulation"
)

type SimulationHandler struct {
	engine *simulation.Engine
	states []models.StateRecord
	byCode map[string]models.StateRecord
	cfg    cliparse.Config
}

func NewSimulationHandler(engine *simulation.Engine, states []models.StateRecord, cfg cliparse.Config) *SimulationHandler {
	return &SimulationHandler{
		engine: engine,
		states: states,
		byCode: refdata.ByCode(states),
		cfg:    cfg,
	}
}

// settings returns the request settings or the configured defaults,
// clamped and with ballots per seat capped at MaxBallotsPerSeat
func (h *SimulationHandler) settings(s *models.Settings) models.Settings {
	out := h.cfg.Settings
	if s != nil {
		out = s.Clamp()
	}
	out.BallotsPerSeat = min(out.BallotsPerSeat, MaxBallotsPerSeat)
	return out
}

// SimulateJurisdiction handles POST /simulate/jurisdiction
func (h *SimulationHandler) SimulateJurisdiction(w http.ResponseWriter, r *http.Request) {
	var req models.SimulateJurisdictionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "code is required")
		return
	}
	state, ok := h.byCode[code]
	if !ok || !state.Apportioned {
		middleware.ErrorResponse(w, http.StatusNotFound, fmt.Sprintf("no apportioned state %q", code))
		return
	}

	seats := req.Seats
	if seats > MaxHouseSize {
		writeEngineError(w, fmt.Errorf("%w: %d seats exceeds %d", models.ErrInvalidConfiguration, seats, MaxHouseSize))
		return
	}
	if seats == 0 {
		houseSize := req.HouseSize
		if houseSize == 0 {
			houseSize = models.DefaultHouseSize
		}
		apportioned, err := apportionStates(h.states, houseSize)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		seats = apportioned[code]
	}

	in := simulation.JurisdictionInput{
		Code:       code,
		Seats:      seats,
		Population: state.Population,
		VoteShares: req.VoteShares,
		Parties:    req.Parties,
		Plan:       req.Plan,
	}
	settings := h.settings(req.Settings)

	key, err := simulation.InputKey(in, settings)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	etag := `"` + auth.Fingerprint(key) + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	res, err := h.engine.RunJurisdiction(r.Context(), in, settings)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	slog.Info("jurisdiction simulated",
		"request_id", middleware.RequestID(r.Context()),
		"jurisdiction", code,
		"seats", seats,
		"gallagher", res.Gallagher)

	middleware.JSONResponse(w, http.StatusOK, res)
}

// SimulateNational handles POST /simulate/national
func (h *SimulationHandler) SimulateNational(w http.ResponseWriter, r *http.Request) {
	var req models.SimulateNationalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	houseSize := req.HouseSize
	if houseSize == 0 {
		houseSize = models.DefaultHouseSize
	}
	seats, err := apportionStates(h.states, houseSize)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	inputs := simulation.BuildInputs(h.states, seats, req.TwoParty, req.ThirdPartyShare)
	res, err := h.engine.RunNational(r.Context(), inputs, h.settings(req.Settings))
	if err != nil {
		writeEngineError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, res)
}

// ResetCache handles POST /cache/reset
func (h *SimulationHandler) ResetCache(w http.ResponseWriter, r *http.Request) {
	if err := auth.ValidateRequest(r, h.cfg.AdminKey); err != nil {
		if errors.Is(err, auth.ErrAdminDisabled) {
			middleware.ErrorResponse(w, http.StatusForbidden, "Cache reset is disabled")
			return
		}
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	cleared := h.engine.Cache().Reset()
	slog.Info("cache reset", "request_id", middleware.RequestID(r.Context()), "cleared", cleared)

	middleware.JSONResponse(w, http.StatusOK, models.CacheResetResponse{Cleared: cleared})
}
