
// Command housesim runs apportionment, PR simulations and historical
// replays from the command line against the embedded population data.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/housesim/models"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "housesim",
		Short:         "House size, apportionment and proportional representation simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(tint.NewHandler(cmd.ErrOrStderr(), &tint.Options{
				Level:      level,
				TimeFormat: time.Kitchen,
			})))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(newApportionCmd())
	root.AddCommand(newSimulateCmd())
	root.AddCommand(newHistoryCmd())
	return root
}

// checkSeats validates a --seats value before any work is done
func checkSeats(seats int) error {
	if seats < 1 {
		return fmt.Errorf("%w: --seats must be positive", models.ErrInvalidConfiguration)
	}
	return nil
}
