// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/housesim/apportion"
	"github.com/danielhkuo/housesim/cliparse"
	"github.com/danielhkuo/housesim/models"
	"github.com/danielhkuo/housesim/refdata"
	"github.com/danielhkuo/housesim/simulation"
)

type simulateOptions struct {
	seats        int
	sharesFile   string
	settingsFile string
	state        string
	thirdParty   float64
}

func newSimulateCmd() *cobra.Command {
	var opts simulateOptions

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the multi-member STV simulation for one state or the whole House",
		Long: `Simulate apportions the House, splits each state into multi-member
districts, counts synthetic ranked ballots by STV and adds top-up seats.

The shares file maps state codes to the first party's two-party share:

  CA: 0.64
  TX: 0.47

States missing from the file are treated as even.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.seats, "seats", "s", models.DefaultHouseSize, "House size")
	cmd.Flags().StringVar(&opts.sharesFile, "shares", "", "YAML file of two-party shares by state")
	cmd.Flags().StringVar(&opts.settingsFile, "settings", "", "YAML file of simulation settings")
	cmd.Flags().StringVar(&opts.state, "state", "", "Simulate a single state by code")
	cmd.Flags().Float64Var(&opts.thirdParty, "third-party", 0, "Vote share carved out for an independent party")
	return cmd
}

func runSimulate(cmd *cobra.Command, opts simulateOptions) error {
	if err := checkSeats(opts.seats); err != nil {
		return err
	}

	settings := models.DefaultSettings()
	if opts.settingsFile != "" {
		var err error
		if settings, err = cliparse.LoadSettings(opts.settingsFile); err != nil {
			return err
		}
	}

	feed, err := loadShares(opts.sharesFile)
	if err != nil {
		return err
	}

	states, err := refdata.Load()
	if err != nil {
		return err
	}
	apportioned, err := apportion.HuntingtonHill(refdata.Populations(states), opts.seats)
	if err != nil {
		return err
	}
	inputs := simulation.BuildInputs(states, apportioned, feed, opts.thirdParty)

	engine := simulation.NewEngine(simulation.NewCache(), slog.Default())
	out := cmd.OutOrStdout()

	if opts.state != "" {
		code := strings.ToUpper(opts.state)
		for _, in := range inputs {
			if in.Code != code {
				continue
			}
			res, err := engine.RunJurisdiction(cmd.Context(), in, settings)
			if err != nil {
				return err
			}
			return printJurisdiction(out, res)
		}
		return fmt.Errorf("%w: unknown or unapportioned state %q", models.ErrInvalidConfiguration, code)
	}

	res, err := engine.RunNational(cmd.Context(), inputs, settings)
	if err != nil {
		return err
	}
	return printNational(out, res)
}

// loadShares reads a code -> share map. An empty path means no feed.
func loadShares(path string) (map[string]float64, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read shares: %w", err)
	}
	raw := map[string]float64{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse shares: %w", err)
	}
	feed := make(map[string]float64, len(raw))
	for code, v := range raw {
		feed[strings.ToUpper(code)] = v
	}
	return feed, nil
}

func printJurisdiction(w io.Writer, res models.JurisdictionPRResult) error {
	fmt.Fprintf(w, "%s: %d seats (%d top-up), seed %d\n\n",
		res.Jurisdiction, res.TotalSeats, res.TopUpSeatCount, res.Seed)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DISTRICT\tSEATS\tQUOTA\tELECTED\t")
	for _, d := range res.Districts {
		fmt.Fprintf(tw, "%s\t%d\t%.1f\t%s\t\n", d.ID, d.Seats, d.Quota, strings.Join(d.Elected, " "))
	}
	fmt.Fprintln(tw, "\t\t\t\t")
	fmt.Fprintln(tw, "PARTY\tVOTES\tDISTRICT\tTOP-UP\tFINAL\t")
	for _, p := range res.Parties {
		fmt.Fprintf(tw, "%s\t%.1f%%\t%d\t%d\t%d\t\n",
			p, 100*res.VoteShares[p], res.DistrictSeats[p], res.TopUpSeats[p], res.FinalSeats[p])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nGallagher %.4f, wasted vote proxy %.4f\n", res.Gallagher, res.WastedVoteProxy)
	return nil
}

func printNational(w io.Writer, res models.NationalPRResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PARTY\tVOTES\tSEATS\tTOP-UP\t")
	for _, p := range res.Parties {
		fmt.Fprintf(tw, "%s\t%.1f%%\t%d\t%d\t\n", p, 100*res.VoteShares[p], res.SeatsByParty[p], res.TopUpSeats[p])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%d seats across %d states, Gallagher %.4f, wasted vote proxy %.4f\n",
		res.TotalSeats, len(res.Jurisdictions), res.Gallagher, res.WastedVoteProxy)
	return nil
}
