package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNoIngredients  = errors.New("no ingredients")
	ErrInvalidIndex   = errors.New("invalid ingredient index")
	ErrSubmitInFlight = errors.New("a recipe is already being generated")
)

// User-facing messages for the two failure kinds. The underlying cause
// is only ever logged.
const (
	MsgNoIngredients    = "Please add at least one ingredient"
	MsgGenerationFailed = "Failed to generate recipe. Please try again."
)
