// Package conversation provides command parsing and user notification implementations.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/redchef/internal/domain"
	"github.com/hammamikhairi/redchef/internal/logger"
)

// Compile-time interface check.
var _ domain.IntentParser = (*KeywordParser)(nil)

// KeywordParser matches user input to intents using keywords and simple
// patterns. Anything that is not a command is an ingredient.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex  *regexp.Regexp
	intent domain.IntentType
}

// NewKeywordParser creates a keyword-based command parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(cook|go|generate|submit|cook with redchef)[.!]?$`), domain.IntentCook},
		{regexp.MustCompile(`(?i)^(list|ls|ingredients)$`), domain.IntentListIngredients},
		{regexp.MustCompile(`(?i)^(clear|reset|clear all)$`), domain.IntentClearIngredients},
		{regexp.MustCompile(`(?i)^(recipe|show|show recipe)$`), domain.IntentShowRecipe},
		{regexp.MustCompile(`(?i)^(read|speak|read it|read aloud)$`), domain.IntentReadAloud},
		{regexp.MustCompile(`(?i)^(quit|exit|q|bye)$`), domain.IntentQuit},
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), domain.IntentHelp},
	}
	return p
}

// removeRule captures the 1-based position in "rm 2", "remove #2", "del 2".
var removeRule = regexp.MustCompile(`(?i)^(rm|remove|del|delete)\s+#?(\S+)$`)

// addRule captures the ingredient in "add tomatoes". The explicit form
// lets command words be used as ingredients.
var addRule = regexp.MustCompile(`(?i)^add\s+(.+)$`)

// Parse converts user input into an intent.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Intent, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	if m := addRule.FindStringSubmatch(trimmed); m != nil {
		return &domain.Intent{Type: domain.IntentAddIngredient, Payload: strings.TrimSpace(m[1])}, nil
	}

	if m := removeRule.FindStringSubmatch(trimmed); m != nil {
		return &domain.Intent{Type: domain.IntentRemoveIngredient, Payload: m[2]}, nil
	}

	for _, rule := range p.patterns {
		if rule.regex.MatchString(trimmed) {
			p.log.Debug("matched intent: %s", rule.intent)
			return &domain.Intent{Type: rule.intent}, nil
		}
	}

	return &domain.Intent{Type: domain.IntentAddIngredient, Payload: trimmed}, nil
}
