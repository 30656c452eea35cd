package speech

// Every string RedChef says or prints as a reply lives here, so the
// tone can be changed in one place.

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/hammamikhairi/redchef/internal/domain"
)

func LineWelcome() string {
	return "Welcome to RedChef. Tell me what's in your fridge."
}

func LineBye() string {
	return "Bye. Enjoy your meal."
}

func LineAdded(ingredient string, total int) string {
	if total == 1 {
		return fmt.Sprintf("Added %s.", ingredient)
	}
	return fmt.Sprintf("Added %s. That's %d ingredients.", ingredient, total)
}

func LineRemoved(ingredient string) string {
	return fmt.Sprintf("Removed %s.", ingredient)
}

func LineCleared() string {
	return "Ingredient list cleared."
}

func LineInvalidIndex(payload string, count int) string {
	if count == 0 {
		return "There's nothing to remove."
	}
	return fmt.Sprintf("No ingredient %s. Pick a number from 1 to %d.", payload, count)
}

func LineStillCooking() string {
	return "Still cooking. Hang on."
}

func LineNoRecipe() string {
	return "No recipe yet. Add ingredients and say cook."
}

func LineSpeechDisabled() string {
	return "Read-aloud is off. Set AZURE_SPEECH_KEY and AZURE_SPEECH_REGION to enable it."
}

func LineUnknown(input string) string {
	return fmt.Sprintf("Didn't catch that: %s.", input)
}

// ── Cooking fillers ──────────────────────────────────────────────
// Spoken while the recipe service works. Randomized to avoid repetition.

var cookingFillers = []string{
	"Cooking something up.",
	"Let me see what I can make with that.",
	"Checking the cookbook.",
	"Give me a second.",
	"Heating the pan.",
}

// LineCooking returns a random filler for the Loading state.
func LineCooking() string {
	return cookingFillers[rand.Intn(len(cookingFillers))]
}

// CookingFillers returns every filler so they can be prefetched.
func CookingFillers() []string {
	out := make([]string, len(cookingFillers))
	copy(out, cookingFillers)
	return out
}

// ── Recipe narration ─────────────────────────────────────────────

// LineRecipeReady announces a result.
func LineRecipeReady(name string) string {
	return fmt.Sprintf("Your recipe is ready: %s.", name)
}

// RecipeScript returns the read-aloud narration for a recipe, one line
// per utterance: the name, then "Step N. <text>" per step in order.
func RecipeScript(r *domain.Recipe) []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.Steps)+1)
	out = append(out, fmt.Sprintf("%s. %s", r.Name, stepCount(len(r.Steps))))
	for i, step := range r.Steps {
		out = append(out, fmt.Sprintf("Step %d. %s", i+1, strings.TrimSpace(step)))
	}
	return out
}

func stepCount(n int) string {
	switch n {
	case 0:
		return "No steps."
	case 1:
		return "One step."
	default:
		return fmt.Sprintf("%d steps.", n)
	}
}
