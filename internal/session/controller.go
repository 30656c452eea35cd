package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/hammamikhairi/redchef/internal/domain"
	"github.com/hammamikhairi/redchef/internal/logger"
)

// Listener receives a snapshot after every state change. Snapshots from
// concurrent changes may arrive out of order; compare Snapshot.Version.
type Listener func(Snapshot)

// Snapshot is a copy of the controller's state tagged with a version
// that increases by one on every change.
type Snapshot struct {
	State
	Version uint64
}

// Option configures the controller.
type Option func(*Controller)

// WithID overrides the generated session ID.
func WithID(id string) Option {
	return func(c *Controller) { c.id = id }
}

// WithListener registers a change listener at construction time.
func WithListener(fn Listener) Option {
	return func(c *Controller) { c.listeners = append(c.listeners, fn) }
}

// Controller owns the state of one session. All methods are safe for
// concurrent use; at most one recipe request is in flight at a time.
type Controller struct {
	svc domain.RecipeService
	log *logger.Logger
	id  string

	mu        sync.Mutex
	state     State
	version   uint64
	listeners []Listener
}

// New creates a controller for a fresh session backed by svc.
func New(svc domain.RecipeService, log *logger.Logger, opts ...Option) *Controller {
	c := &Controller{
		svc: svc,
		log: log,
		id:  uuid.NewString(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log.Debug("session %s created", c.id)
	return c
}

// ID returns the session identifier used in logs.
func (c *Controller) ID() string { return c.id }

// OnChange registers a listener called after every state change.
func (c *Controller) OnChange(fn Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// SetDraft mirrors the text currently being typed.
func (c *Controller) SetDraft(text string) {
	c.apply(func(s State) (State, error) { return s.WithDraft(text), nil })
}

// AddIngredient commits draft to the list. Whitespace-only input is
// silently ignored.
func (c *Controller) AddIngredient(draft string) Snapshot {
	snap, _ := c.apply(func(s State) (State, error) {
		next := s.AddIngredient(draft)
		if len(next.Ingredients) == len(s.Ingredients) {
			c.log.Debug("session %s: ignored blank ingredient", c.id)
		} else {
			c.log.Debug("session %s: added %q (%d total)", c.id, next.Ingredients[len(next.Ingredients)-1], len(next.Ingredients))
		}
		return next, nil
	})
	return snap
}

// RemoveIngredient deletes the entry at position i (0-based). Returns an
// error wrapping domain.ErrInvalidIndex when i is out of range.
func (c *Controller) RemoveIngredient(i int) (Snapshot, error) {
	return c.apply(func(s State) (State, error) {
		next, err := s.RemoveIngredient(i)
		if err != nil {
			c.log.Debug("session %s: %v", c.id, err)
			return s, err
		}
		c.log.Debug("session %s: removed %q at %d", c.id, s.Ingredients[i], i)
		return next, nil
	})
}

// ClearIngredients empties the ingredient list.
func (c *Controller) ClearIngredients() Snapshot {
	snap, _ := c.apply(func(s State) (State, error) {
		c.log.Debug("session %s: cleared %d ingredients", c.id, len(s.Ingredients))
		return s.ClearIngredients(), nil
	})
	return snap
}

// Submit sends the current ingredient list to the recipe service and
// blocks until the submission settles.
//
// While a submission is in flight, Submit returns the current snapshot
// and domain.ErrSubmitInFlight without doing anything. With an empty
// list it moves to StatusError without calling the service. Every other
// failure, including a panic inside the service, ends in StatusError;
// the returned error is nil in all of those cases and the snapshot
// carries the outcome.
func (c *Controller) Submit(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	if c.state.Loading() {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.log.Debug("session %s: submit ignored, request in flight", c.id)
		return snap, domain.ErrSubmitInFlight
	}
	next, send := c.state.BeginSubmit()
	c.commitLocked(next)
	snap := c.snapshotLocked()
	listeners := c.listeners
	c.mu.Unlock()

	notify(listeners, snap)

	if !send {
		c.log.Info("session %s: submit rejected: %v", c.id, snap.Cause())
		return snap, nil
	}

	c.log.Info("session %s: generating recipe for %d ingredients", c.id, len(snap.Ingredients))
	return c.generate(ctx, snap.Ingredients), nil
}

// generate performs the outbound call. The deferred block always moves
// the state out of StatusLoading, whatever the service does.
func (c *Controller) generate(ctx context.Context, ingredients []string) (final Snapshot) {
	var (
		recipe *domain.Recipe
		err    error
	)
	defer func() {
		if r := recover(); r != nil {
			recipe, err = nil, fmt.Errorf("recipe service panic: %v", r)
		}
		if err != nil {
			c.log.Error("session %s: generate recipe: %v", c.id, err)
		} else if recipe != nil {
			c.log.Info("session %s: got recipe %q (%d steps)", c.id, recipe.Name, len(recipe.Steps))
		}
		final, _ = c.apply(func(s State) (State, error) {
			return s.Resolve(recipe, err), nil
		})
	}()

	recipe, err = c.svc.Generate(ctx, ingredients)
	return
}

// apply runs fn against the current state under the lock, commits the
// result when fn succeeds and notifies listeners outside the lock.
func (c *Controller) apply(fn func(State) (State, error)) (Snapshot, error) {
	c.mu.Lock()
	next, err := fn(c.state)
	if err != nil {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, err
	}
	c.commitLocked(next)
	snap := c.snapshotLocked()
	listeners := c.listeners
	c.mu.Unlock()

	notify(listeners, snap)
	return snap, nil
}

func (c *Controller) commitLocked(next State) {
	if next.Status != c.state.Status {
		c.log.Debug("session %s: %s -> %s", c.id, c.state.Status, next.Status)
	}
	c.state = next
	c.version++
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{State: c.state.clone(), Version: c.version}
}

func notify(listeners []Listener, snap Snapshot) {
	for _, fn := range listeners {
		fn(snap)
	}
}
