package recipe

import "errors"

// Domain errors for recipe operations

var (
	// Entity validation errors
	ErrTitleRequired  = errors.New("recipe title is required")
	ErrTitleTooLong   = errors.New("recipe title must not exceed 255 characters")
	ErrNoInstructions = errors.New("recipe must have at least one step")

	// Lookup errors
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrHistoryNotFound = errors.New("history entry not found")
)
