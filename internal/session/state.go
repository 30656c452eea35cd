// Package session implements the ingredient list and recipe submission
// state machine for one RedChef session.
//
// [State] is a value type with pure transitions; [Controller] owns one
// State, serializes access to it and performs the single outbound call
// to the recipe service.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hammamikhairi/redchef/internal/domain"
)

var errNoRecipe = errors.New("recipe service returned no recipe")

// State is everything one session knows. The zero value is a fresh
// session: empty list, empty draft, idle.
//
// Transitions never mutate the receiver; they return a new State whose
// ingredient slice is not shared with the old one.
type State struct {
	Ingredients []string
	Draft       string
	Status      domain.SubmissionStatus
	Message     string         // set only when Status is StatusError
	Recipe      *domain.Recipe // set only when Status is StatusResult

	cause error // diagnostic detail behind Message, never shown
}

// Cause returns the error that put the state into StatusError, or nil.
func (s State) Cause() error { return s.cause }

// Loading reports whether a submission is in flight.
func (s State) Loading() bool { return s.Status == domain.StatusLoading }

// CanSubmit reports whether the submit action is enabled: at least one
// ingredient and nothing in flight.
func (s State) CanSubmit() bool {
	return len(s.Ingredients) > 0 && !s.Loading()
}

// WithDraft replaces the draft buffer.
func (s State) WithDraft(text string) State {
	s.Draft = text
	return s
}

// AddIngredient commits draft to the end of the list and clears the
// draft. Whitespace-only drafts leave the state untouched.
func (s State) AddIngredient(draft string) State {
	name := strings.TrimSpace(draft)
	if name == "" {
		return s
	}
	next := make([]string, len(s.Ingredients), len(s.Ingredients)+1)
	copy(next, s.Ingredients)
	s.Ingredients = append(next, name)
	s.Draft = ""
	return s
}

// RemoveIngredient deletes the entry at position i. Later entries shift
// down by one. An out-of-range position returns the state unchanged and
// an error wrapping domain.ErrInvalidIndex.
func (s State) RemoveIngredient(i int) (State, error) {
	if i < 0 || i >= len(s.Ingredients) {
		return s, fmt.Errorf("remove %d of %d: %w", i, len(s.Ingredients), domain.ErrInvalidIndex)
	}
	next := make([]string, 0, len(s.Ingredients)-1)
	next = append(next, s.Ingredients[:i]...)
	next = append(next, s.Ingredients[i+1:]...)
	s.Ingredients = next
	return s, nil
}

// ClearIngredients empties the list. The submission state is kept.
func (s State) ClearIngredients() State {
	s.Ingredients = nil
	return s
}

// BeginSubmit starts a submission. The bool is true only when a request
// should be sent:
//
//   - already loading: unchanged, false
//   - empty list: StatusError with the validation message, false
//   - otherwise: StatusLoading with message and recipe cleared, true
func (s State) BeginSubmit() (State, bool) {
	if s.Loading() {
		return s, false
	}
	if len(s.Ingredients) == 0 {
		return s.fail(domain.MsgNoIngredients, domain.ErrNoIngredients), false
	}
	s.Status = domain.StatusLoading
	s.Message = ""
	s.Recipe = nil
	s.cause = nil
	return s, true
}

// Resolve settles an in-flight submission. Any error, or a nil recipe,
// becomes the generic failure message. Outside StatusLoading it is a
// no-op.
func (s State) Resolve(recipe *domain.Recipe, err error) State {
	if !s.Loading() {
		return s
	}
	if err == nil && recipe == nil {
		err = errNoRecipe
	}
	if err != nil {
		return s.fail(domain.MsgGenerationFailed, err)
	}
	s.Status = domain.StatusResult
	s.Recipe = recipe.Clone()
	s.Message = ""
	s.cause = nil
	return s
}

func (s State) fail(msg string, cause error) State {
	s.Status = domain.StatusError
	s.Message = msg
	s.Recipe = nil
	s.cause = cause
	return s
}

// clone returns a copy safe to hand to another goroutine.
func (s State) clone() State {
	if s.Ingredients != nil {
		ings := make([]string, len(s.Ingredients))
		copy(ings, s.Ingredients)
		s.Ingredients = ings
	}
	s.Recipe = s.Recipe.Clone()
	return s
}
