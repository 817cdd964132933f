// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/housesim/apportion"
	"github.com/danielhkuo/housesim/history"
	"github.com/danielhkuo/housesim/middleware"
	"github.com/danielhkuo/housesim/models"
)

type HistoryHandler struct {
	states    []models.StateRecord
	elections []history.Election
}

func NewHistoryHandler(states []models.StateRecord, elections []history.Election) *HistoryHandler {
	return &HistoryHandler{states: states, elections: elections}
}

// GetHistory handles GET /history?seats=N
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	seats, err := seatsParam(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	apportioned, err := apportionStates(h.states, seats)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	ev := apportion.ElectoralVotes(h.states, apportioned)

	middleware.JSONResponse(w, http.StatusOK, models.HistoryResponse{
		Seats:     seats,
		Elections: history.ReplayAll(h.elections, ev),
	})
}
