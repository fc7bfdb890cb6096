package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/prepline/internal/config"
	"github.com/example/prepline/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the prepline database",
		Long:  `Initialize the prepline database at ~/.prepline/prepline.db with the required schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing prepline database at %s\n", dbPath)

			if err := db.InitSchema(); err != nil {
				return fmt.Errorf("failed to initialize schema: %w", err)
			}
			fmt.Println("✓ Database initialized successfully")

			if operator, _ := cmd.Flags().GetString("operator"); operator != "" {
				dir, err := config.DefaultConfigDir()
				if err != nil {
					return err
				}
				if err := config.SaveConfig(dir, &config.Config{Version: "1", Operator: operator}); err != nil {
					return fmt.Errorf("failed to save config: %w", err)
				}
				fmt.Printf("✓ Operator set to %s\n", operator)
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  prepline seed")
			fmt.Println("  prepline cook preview RCP-001")

			return nil
		},
	}

	cmd.Flags().String("operator", "", "Operator name recorded as run creator")

	return cmd
}
