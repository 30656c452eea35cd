// Package recipe provides an in-process recipe service used in demo
// mode and tests. It never talks to the network: it picks the canned
// recipe whose key ingredients best match the request.
package recipe

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hammamikhairi/redchef/internal/domain"
	"github.com/hammamikhairi/redchef/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeService = (*MemoryService)(nil)

// entry is one canned recipe plus the ingredients that select it.
type entry struct {
	recipe domain.Recipe
	keys   []string
}

// Option configures the MemoryService.
type Option func(*MemoryService)

// WithDelay makes every Generate call wait d before answering, so the
// loading state is visible in demos.
func WithDelay(d time.Duration) Option {
	return func(s *MemoryService) { s.delay = d }
}

// MemoryService holds canned recipes in memory. Safe for concurrent use.
type MemoryService struct {
	mu      sync.RWMutex
	entries []entry
	delay   time.Duration
	log     *logger.Logger
}

// NewMemoryService creates a service preloaded with built-in recipes.
func NewMemoryService(log *logger.Logger, opts ...Option) *MemoryService {
	s := &MemoryService{log: log}
	for _, opt := range opts {
		opt(s)
	}
	s.seed()
	return s
}

// Add registers another canned recipe selected by the given key
// ingredients.
func (s *MemoryService) Add(r domain.Recipe, keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry{recipe: *r.Clone(), keys: normalize(keys)})
}

// Generate returns the canned recipe sharing the most key ingredients
// with the request. Ties go to the alphabetically first name. When
// nothing matches, a generic "use what you have" recipe is built from
// the ingredient list itself.
func (s *MemoryService) Generate(ctx context.Context, ingredients []string) (*domain.Recipe, error) {
	if len(ingredients) == 0 {
		return nil, domain.ErrNoIngredients
	}

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	have := make(map[string]bool, len(ingredients))
	for _, ing := range normalize(ingredients) {
		have[ing] = true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		e     *entry
		score int
	}
	var matches []scored
	for i := range s.entries {
		e := &s.entries[i]
		n := 0
		for _, k := range e.keys {
			if have[k] {
				n++
			}
		}
		if n > 0 {
			matches = append(matches, scored{e, n})
		}
	}

	if len(matches) == 0 {
		s.log.Debug("no canned recipe for %v, using pantry fallback", ingredients)
		return pantryRecipe(ingredients), nil
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].e.recipe.Name < matches[j].e.recipe.Name
	})

	best := matches[0]
	s.log.Debug("picked %q (%d/%d key ingredients)", best.e.recipe.Name, best.score, len(best.e.keys))
	return best.e.recipe.Clone(), nil
}

func normalize(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		s = strings.TrimSuffix(s, "es")
		s = strings.TrimSuffix(s, "s")
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func pantryRecipe(ingredients []string) *domain.Recipe {
	list := strings.Join(ingredients, ", ")
	return &domain.Recipe{
		Name: "Pantry Sauté",
		Steps: []string{
			fmt.Sprintf("Prep everything first: %s. Cut it all to bite size, no excuses.", list),
			"Get a wide pan screaming hot with a splash of oil.",
			"Add the firmest ingredients first, softest last. Keep it moving.",
			"Season with salt and pepper, taste, adjust.",
			"Plate it while it's hot. Done.",
		},
	}
}

func (s *MemoryService) seed() {
	s.entries = append(s.entries,
		entry{
			keys: normalize([]string{"egg", "milk", "butter", "cheese"}),
			recipe: domain.Recipe{
				Name: "Silky French Omelette",
				Steps: []string{
					"Crack the eggs into a bowl with a splash of milk and a pinch of salt. Beat until completely smooth.",
					"Melt a knob of butter in a non-stick pan over medium-low heat until it foams.",
					"Pour in the eggs and stir constantly with a spatula while shaking the pan. Small curds, no colour.",
					"When just set but still glossy, add the cheese and roll the omelette onto a warm plate.",
				},
			},
		},
		entry{
			keys: normalize([]string{"pasta", "tomato", "garlic", "basil", "olive oil"}),
			recipe: domain.Recipe{
				Name: "Blistered Tomato Spaghetti",
				Steps: []string{
					"Boil a big pot of heavily salted water and cook the pasta until just al dente.",
					"Meanwhile, fry sliced garlic in olive oil until pale gold.",
					"Add the tomatoes, crank the heat and let them blister and burst.",
					"Toss the pasta through the sauce with a ladle of pasta water until glossy.",
					"Finish with torn basil and a drizzle of olive oil.",
				},
			},
		},
		entry{
			keys: normalize([]string{"chicken", "rice", "soy sauce", "ginger", "garlic"}),
			recipe: domain.Recipe{
				Name: "Ginger Soy Chicken Rice Bowl",
				Steps: []string{
					"Rinse the rice until the water runs clear, then cook it.",
					"Slice the chicken thin and toss with soy sauce, grated ginger and garlic.",
					"Sear the chicken in a hot pan in batches. Do not crowd it.",
					"Spoon the chicken and pan juices over the rice and serve.",
				},
			},
		},
		entry{
			keys: normalize([]string{"flour", "egg", "milk", "sugar"}),
			recipe: domain.Recipe{
				Name: "Fluffy Pancakes",
				Steps: []string{
					"Whisk the flour and sugar, then beat in the egg and milk until just combined. Lumps are fine.",
					"Rest the batter for five minutes.",
					"Ladle onto a buttered pan over medium heat; flip when bubbles pop on the surface.",
				},
			},
		},
	)
}
