// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/housesim/cliparse"
	"github.com/danielhkuo/housesim/handlers"
	"github.com/danielhkuo/housesim/history"
	"github.com/danielhkuo/housesim/middleware"
	"github.com/danielhkuo/housesim/models"
	"github.com/danielhkuo/housesim/simulation"
)

func NewRouter(engine *simulation.Engine, states []models.StateRecord, elections []history.Election, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	apportionHandler := handlers.NewApportionHandler(states, cfg)
	simulationHandler := handlers.NewSimulationHandler(engine, states, cfg)
	historyHandler := handlers.NewHistoryHandler(states, elections)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Apportionment and per-state metrics
	mux.HandleFunc("GET /states", middleware.WithLogging(apportionHandler.GetStates))
	mux.HandleFunc("POST /apportion", middleware.WithLogging(apportionHandler.Apportion))

	// Proportional representation simulation
	mux.HandleFunc("POST /simulate/jurisdiction", middleware.WithLogging(simulationHandler.SimulateJurisdiction))
	mux.HandleFunc("POST /simulate/national", middleware.WithLogging(simulationHandler.SimulateNational))

	// Historical replay
	mux.HandleFunc("GET /history", middleware.WithLogging(historyHandler.GetHistory))

	// Admin
	mux.HandleFunc("POST /cache/reset", middleware.WithLogging(simulationHandler.ResetCache))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("housesim API v1"))
	})

	return mux
}
