package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/prepline/internal/wire"
)

var cookCmd = &cobra.Command{
	Use:   "cook",
	Short: "Preview and execute quick cooks",
	Long:  "Preview ingredient deductions for a recipe and execute production runs against inventory",
}

var cookPreviewCmd = &cobra.Command{
	Use:   "preview [recipe-id]",
	Short: "Show what a cook would deduct, without writing anything",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		_, err := wire.CookAdapter().Preview(ctx, args[0])
		return err
	},
}

var cookRunCmd = &cobra.Command{
	Use:   "run [recipe-id]",
	Short: "Execute a quick cook for a recipe",
	Long: `Execute a quick cook: resolve the output item, record a production run,
deduct ingredient stock, and credit the finished batch.

Shows the deduction preview and asks for confirmation unless --yes is given.
Insufficient stock is a warning, not a blocker.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		recipeID := args[0]
		skipConfirm, _ := cmd.Flags().GetBool("yes")

		adapter := wire.CookAdapter()
		preview, err := adapter.Preview(ctx, recipeID)
		if err != nil {
			return err
		}

		if !skipConfirm {
			prompt := "Proceed with cook?"
			if preview.HasInsufficientStock {
				prompt = color.New(color.FgYellow).Sprint("Stock is short.") + " Proceed anyway?"
			}
			if !confirm(prompt) {
				fmt.Println("Aborted")
				return nil
			}
		}

		return adapter.Execute(ctx, recipeID)
	},
}

var cookResolveCmd = &cobra.Command{
	Use:   "resolve [recipe-id]",
	Short: "Resolve or create the recipe's output item without cooking",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		return wire.CookAdapter().Resolve(ctx, args[0])
	},
}

// confirm prompts on stdin for a y/N answer.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// CookCmd returns the cook command
func CookCmd() *cobra.Command {
	cookRunCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	cookCmd.AddCommand(cookPreviewCmd)
	cookCmd.AddCommand(cookRunCmd)
	cookCmd.AddCommand(cookResolveCmd)

	return cookCmd
}
