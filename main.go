package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lmittmann/tint"

	"github.com/danielhkuo/housesim/cliparse"
	"github.com/danielhkuo/housesim/db"
	"github.com/danielhkuo/housesim/history"
	"github.com/danielhkuo/housesim/middleware"
	"github.com/danielhkuo/housesim/models"
	"github.com/danielhkuo/housesim/refdata"
	"github.com/danielhkuo/housesim/router"
	"github.com/danielhkuo/housesim/simulation"
)

func main() {
	var err error

	// .env first so ParseFlags sees it
	if err := cliparse.LoadDotEnv(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      cfg.LogLevel,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()
	states, err := loadStates(ctx, cfg)
	if err != nil {
		slog.Error("population data unavailable", "error", err)
		os.Exit(1)
	}

	elections, err := history.Load()
	if err != nil {
		slog.Error("historical elections unavailable", "error", err)
		os.Exit(1)
	}

	engine := simulation.NewEngine(simulation.NewCache(), logger)
	mux := router.NewRouter(engine, states, elections, cfg)

	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	slog.Info("Listening",
		"port", cfg.Port,
		"states", len(states),
		"admin", cfg.AdminKey != "",
		"seed", cfg.Settings.Seed)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "cached_results", engine.Cache().Len())
	}
}

// loadStates reads population data from the configured database, or from
// the embedded dataset when no database URL is set.
func loadStates(ctx context.Context, cfg cliparse.Config) ([]models.StateRecord, error) {
	embedded, err := refdata.Load()
	if err != nil {
		return nil, err
	}

	states := embedded
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer conn.Close()

		states, err = db.EnsureStates(ctx, conn, embedded)
		if err != nil {
			return nil, err
		}
		slog.Info("Population data loaded from database", "type", cfg.DatabaseType)
	}

	var total int64
	for _, s := range states {
		total += s.Population
	}
	slog.Info("Population data ready", "jurisdictions", len(states), "population", humanize.Comma(total))
	return states, nil
}
