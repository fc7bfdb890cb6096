// Package production contains the pure business logic for production
// runs. This file contains guard evaluation for the cook workflow.
package production

import (
	"errors"
	"fmt"

	"github.com/example/prepline/internal/core/measure"
)

// Validation sentinels. These are operator-recoverable conditions: the
// recipe needs editing, not the engine.
var (
	ErrNoIngredients = errors.New("recipe has no ingredients")
	ErrMissingYield  = errors.New("recipe has no yield")
)

// CookContext provides the context needed for cook guard evaluation.
// Populated by the caller from the fetched recipe - no I/O here.
type CookContext struct {
	RecipeID        string
	IngredientCount int
	YieldQuantity   float64
	YieldUnit       measure.Unit
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable context (populated when not allowed)
	Err     error  // Typed sentinel for caller branching (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
// The returned error wraps the sentinel so callers can use errors.Is.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	if r.Err != nil {
		return fmt.Errorf("%s: %w", r.Reason, r.Err)
	}
	return errors.New(r.Reason)
}

// CanCook evaluates whether a recipe is cookable at all.
// Rules: at least one ingredient, and a positive yield in a named unit.
// Insufficient stock is deliberately NOT a guard - it is advisory and the
// ledger is the final arbiter of negative stock.
func CanCook(ctx CookContext) GuardResult {
	if ctx.IngredientCount == 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("recipe %s", ctx.RecipeID),
			Err:     ErrNoIngredients,
		}
	}
	if ctx.YieldQuantity <= 0 || ctx.YieldUnit == "" {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("recipe %s", ctx.RecipeID),
			Err:     ErrMissingYield,
		}
	}
	return GuardResult{Allowed: true}
}
