package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/prepline/internal/cli"
	"github.com/example/prepline/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "prepline",
		Short:   "prepline - recipe-to-inventory production engine",
		Version: version.String(),
		Long: `prepline turns recipes into inventory movements. Preview what a batch
would deduct, execute quick cooks that consume ingredients and credit the
finished item, and reconcile runs interrupted mid-flight.`,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.SeedCmd())
	rootCmd.AddCommand(cli.CookCmd())
	rootCmd.AddCommand(cli.RecipeCmd())
	rootCmd.AddCommand(cli.ItemCmd())
	rootCmd.AddCommand(cli.RunCmd())
	rootCmd.AddCommand(cli.ReconcileCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
