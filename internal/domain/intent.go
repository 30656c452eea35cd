package domain

// IntentType classifies what the user wants to do.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentAddIngredient
	IntentRemoveIngredient
	IntentClearIngredients
	IntentListIngredients
	IntentCook
	IntentShowRecipe
	IntentReadAloud
	IntentHelp
	IntentQuit
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	switch i {
	case IntentAddIngredient:
		return "add_ingredient"
	case IntentRemoveIngredient:
		return "remove_ingredient"
	case IntentClearIngredients:
		return "clear_ingredients"
	case IntentListIngredients:
		return "list_ingredients"
	case IntentCook:
		return "cook"
	case IntentShowRecipe:
		return "show_recipe"
	case IntentReadAloud:
		return "read_aloud"
	case IntentHelp:
		return "help"
	case IntentQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Intent represents a parsed user action.
type Intent struct {
	Type    IntentType
	Payload string // ingredient text for add, 1-based position for remove
}
