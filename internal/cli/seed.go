package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/prepline/internal/db"
)

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load sample items and recipes",
		Long:  `Load a small fixture set (pantry items plus two recipes) for trying the engine out.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.GetDB()
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}

			if err := db.SeedFixtures(database); err != nil {
				return fmt.Errorf("failed to seed fixtures: %w", err)
			}

			fmt.Println("✓ Sample data loaded")
			fmt.Println("  Try: prepline recipe list")
			return nil
		},
	}
}
