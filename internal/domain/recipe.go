// Package domain defines the core types and interfaces for RedChef.
// All other packages depend on domain; domain depends on nothing.
package domain

// Recipe is what the recipe service returns for a list of ingredients.
type Recipe struct {
	Name  string
	Steps []string // display order, may be empty
}

// Clone returns a deep copy so callers can hold on to a recipe without
// sharing the step slice.
func (r *Recipe) Clone() *Recipe {
	if r == nil {
		return nil
	}
	steps := make([]string, len(r.Steps))
	copy(steps, r.Steps)
	return &Recipe{Name: r.Name, Steps: steps}
}
