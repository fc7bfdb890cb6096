package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/prepline/internal/wire"
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Inspect inventory items",
}

var itemListCmd = &cobra.Command{
	Use:   "list",
	Short: "List inventory items",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		name, _ := cmd.Flags().GetString("name")
		limit, _ := cmd.Flags().GetInt("limit")

		return wire.CatalogAdapter().ListItems(ctx, name, limit)
	},
}

var itemShowCmd = &cobra.Command{
	Use:   "show [item-id]",
	Short: "Show item details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		return wire.CatalogAdapter().ShowItem(ctx, args[0])
	},
}

// ItemCmd returns the item command
func ItemCmd() *cobra.Command {
	itemListCmd.Flags().StringP("name", "n", "", "Filter by name substring")
	itemListCmd.Flags().IntP("limit", "l", 0, "Maximum items to list")

	itemCmd.AddCommand(itemListCmd)
	itemCmd.AddCommand(itemShowCmd)

	return itemCmd
}
