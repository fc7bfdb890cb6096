package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/prepline/internal/ports/primary"
	"github.com/example/prepline/internal/wire"
)

// ReconcileCmd returns the reconcile command
func ReconcileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Mark orphaned in-progress runs as failed",
		Long: `Sweep production runs stranded in_progress by an interrupted cook and
mark them failed. Runs with no recorded consumption are swept immediately;
runs with consumption rows are swept once older than --older-than.

Stock is never adjusted by the sweep; the ledger either committed fully
or not at all.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			olderThan, _ := cmd.Flags().GetDuration("older-than")

			return wire.RunAdapter().Sweep(ctx, primary.SweepRequest{OlderThan: olderThan})
		},
	}

	cmd.Flags().Duration("older-than", time.Hour, "Minimum age before a run with consumption rows is considered stale")

	return cmd
}
