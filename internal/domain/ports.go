package domain

import "context"

// RecipeService turns an ordered ingredient list into a recipe.
// Implementations can be the remote HTTP endpoint or an in-process
// canned source for demos.
type RecipeService interface {
	Generate(ctx context.Context, ingredients []string) (*Recipe, error)
}

// IntentParser converts raw user input into structured intents.
type IntentParser interface {
	Parse(ctx context.Context, input string) (*Intent, error)
}

// Notifier delivers messages to the user. Implementations can write to
// the terminal or also speak through the TTS pipeline.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}
