package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/prepline/internal/wire"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Inspect production runs",
}

var runListCmd = &cobra.Command{
	Use:   "list",
	Short: "List production runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		recipeID, _ := cmd.Flags().GetString("recipe")
		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")

		return wire.RunAdapter().List(ctx, recipeID, status, limit)
	},
}

var runShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show a run with its consumption rows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		return wire.RunAdapter().Show(ctx, args[0])
	},
}

// RunCmd returns the run command
func RunCmd() *cobra.Command {
	runListCmd.Flags().StringP("recipe", "r", "", "Filter by recipe ID")
	runListCmd.Flags().StringP("status", "s", "", "Filter by status (in_progress, completed, failed)")
	runListCmd.Flags().IntP("limit", "l", 0, "Maximum runs to list")

	runCmd.AddCommand(runListCmd)
	runCmd.AddCommand(runShowCmd)

	return runCmd
}
