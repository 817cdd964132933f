// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/housesim/apportion"
	"github.com/danielhkuo/housesim/models"
	"github.com/danielhkuo/housesim/refdata"
)

func newApportionCmd() *cobra.Command {
	var seats, baseline int

	cmd := &cobra.Command{
		Use:   "apportion",
		Short: "Apportion House seats and electoral votes by population",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkSeats(seats); err != nil {
				return err
			}
			states, err := refdata.Load()
			if err != nil {
				return err
			}
			pops := refdata.Populations(states)

			current, err := apportion.HuntingtonHill(pops, seats)
			if err != nil {
				return err
			}
			base, err := apportion.HuntingtonHill(pops, baseline)
			if err != nil {
				return fmt.Errorf("baseline: %w", err)
			}

			metrics := apportion.StateMetrics(states, current, base, nil)
			ev := apportion.TotalElectoralVotes(apportion.ElectoralVotes(states, current))

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "STATE\tPOPULATION\tSEATS\tCHANGE\tEV\tPER SEAT\t")
			for _, m := range metrics {
				perSeat := "-"
				if m.PeoplePerSeat > 0 {
					perSeat = humanize.Comma(int64(m.PeoplePerSeat))
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%+d\t%d\t%s\t\n",
					m.Code, humanize.Comma(m.Population), m.Seats, m.SeatChange, m.ElectoralVotes, perSeat)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n%d seats (baseline %d), %d electoral votes, %d needed to win\n",
				seats, baseline, ev, ev/2+1)
			return nil
		},
	}

	cmd.Flags().IntVarP(&seats, "seats", "s", models.DefaultHouseSize, "House size")
	cmd.Flags().IntVar(&baseline, "baseline", models.DefaultHouseSize, "House size to compare against")
	return cmd
}
