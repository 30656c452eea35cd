package conversation

import (
	"context"
	"testing"

	"github.com/hammamikhairi/redchef/internal/domain"
	"github.com/hammamikhairi/redchef/internal/logger"
)

func TestKeywordParser(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	parser := NewKeywordParser(log)
	ctx := context.Background()

	tests := []struct {
		input       string
		wantType    domain.IntentType
		wantPayload string
	}{
		// Cook
		{"cook", domain.IntentCook, ""},
		{"Go", domain.IntentCook, ""},
		{"generate", domain.IntentCook, ""},
		{"cook!", domain.IntentCook, ""},

		// Remove
		{"rm 2", domain.IntentRemoveIngredient, "2"},
		{"remove #3", domain.IntentRemoveIngredient, "3"},
		{"del 1", domain.IntentRemoveIngredient, "1"},
		{"delete x", domain.IntentRemoveIngredient, "x"},

		// Add, explicit
		{"add tomatoes", domain.IntentAddIngredient, "tomatoes"},
		{"add   list ", domain.IntentAddIngredient, "list"},
		{"ADD Go", domain.IntentAddIngredient, "Go"},

		// Add, implicit
		{"eggs", domain.IntentAddIngredient, "eggs"},
		{"  olive oil  ", domain.IntentAddIngredient, "olive oil"},
		{"cooking wine", domain.IntentAddIngredient, "cooking wine"},
		{"removed skin chicken", domain.IntentAddIngredient, "removed skin chicken"},

		// List / clear / show / read
		{"list", domain.IntentListIngredients, ""},
		{"ls", domain.IntentListIngredients, ""},
		{"clear", domain.IntentClearIngredients, ""},
		{"recipe", domain.IntentShowRecipe, ""},
		{"show", domain.IntentShowRecipe, ""},
		{"read", domain.IntentReadAloud, ""},
		{"speak", domain.IntentReadAloud, ""},

		// Quit / help
		{"quit", domain.IntentQuit, ""},
		{"q", domain.IntentQuit, ""},
		{"help", domain.IntentHelp, ""},
		{"?", domain.IntentHelp, ""},

		// Empty
		{"", domain.IntentUnknown, ""},
		{"   ", domain.IntentUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			intent, err := parser.Parse(ctx, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if intent.Type != tt.wantType {
				t.Fatalf("input %q: expected %s, got %s", tt.input, tt.wantType, intent.Type)
			}
			if intent.Payload != tt.wantPayload {
				t.Fatalf("input %q: expected payload %q, got %q", tt.input, tt.wantPayload, intent.Payload)
			}
		})
	}
}
