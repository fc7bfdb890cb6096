package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/prepline/internal/wire"
)

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Inspect recipes and manage output links",
}

var recipeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recipes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		name, _ := cmd.Flags().GetString("name")
		limit, _ := cmd.Flags().GetInt("limit")

		return wire.CatalogAdapter().ListRecipes(ctx, name, limit)
	},
}

var recipeShowCmd = &cobra.Command{
	Use:   "show [recipe-id]",
	Short: "Show a recipe with its bill of materials",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		return wire.CatalogAdapter().ShowRecipe(ctx, args[0])
	},
}

var recipeLinkCmd = &cobra.Command{
	Use:   "link [recipe-id] [item-id]",
	Short: "Link an existing item as the recipe's output",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		return wire.CatalogAdapter().LinkOutput(ctx, args[0], args[1])
	},
}

// RecipeCmd returns the recipe command
func RecipeCmd() *cobra.Command {
	recipeListCmd.Flags().StringP("name", "n", "", "Filter by name substring")
	recipeListCmd.Flags().IntP("limit", "l", 0, "Maximum recipes to list")

	recipeCmd.AddCommand(recipeListCmd)
	recipeCmd.AddCommand(recipeShowCmd)
	recipeCmd.AddCommand(recipeLinkCmd)

	return recipeCmd
}
