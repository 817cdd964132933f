// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/housesim/apportion"
	"github.com/danielhkuo/housesim/history"
	"github.com/danielhkuo/housesim/models"
	"github.com/danielhkuo/housesim/refdata"
)

func newHistoryCmd() *cobra.Command {
	var seats int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Replay past presidential elections on a different House size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkSeats(seats); err != nil {
				return err
			}
			states, err := refdata.Load()
			if err != nil {
				return err
			}
			elections, err := history.Load()
			if err != nil {
				return err
			}

			apportioned, err := apportion.HuntingtonHill(refdata.Populations(states), seats)
			if err != nil {
				return err
			}
			outcomes := history.ReplayAll(elections, apportion.ElectoralVotes(states, apportioned))

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "YEAR\tELECTION\tD\tR\tNEEDED\tWINNER\tACTUAL\t")
			for _, o := range outcomes {
				winner := string(o.Winner)
				if winner == "" {
					winner = "none"
				}
				if o.Flipped {
					winner += " *"
				}
				fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%s\t%s\t\n",
					o.Year, o.Label,
					o.VotesByParty[models.PartyDemocratic], o.VotesByParty[models.PartyRepublican],
					o.Threshold, winner, o.HistoricWinner)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&seats, "seats", "s", models.DefaultHouseSize, "House size")
	return cmd
}
