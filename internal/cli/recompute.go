package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bensuskins/habit-hub/internal/services"
)

func newRecomputeStreaksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recompute-streaks",
		Short: "Rebuild routine streak counters from their completion logs",
		Long: "Streak counters are maintained incrementally on every toggle. This command re-derives them " +
			"from the full log history to repair drift after manual log edits. Best streaks are never lowered.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, cleanup, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			changed, err := services.NewRoutineService(app.database, app.clock).RecomputeAll(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %d routine(s)\n", changed)
			return nil
		},
	}
}
