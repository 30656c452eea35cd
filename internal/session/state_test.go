package session

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hammamikhairi/redchef/internal/domain"
)

func withIngredients(names ...string) State {
	var s State
	for _, n := range names {
		s = s.AddIngredient(n)
	}
	return s
}

func TestAddIngredient(t *testing.T) {
	tests := []struct {
		name   string
		drafts []string
		want   []string
	}{
		{"single", []string{"egg"}, []string{"egg"}},
		{"order preserved", []string{"egg", "milk", "flour"}, []string{"egg", "milk", "flour"}},
		{"duplicates kept", []string{"egg", "egg"}, []string{"egg", "egg"}},
		{"trimmed", []string{"  basil \t"}, []string{"basil"}},
		{"blank skipped", []string{"egg", "   ", "", "\n", "milk"}, []string{"egg", "milk"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := withIngredients(tt.drafts...)
			if diff := cmp.Diff(tt.want, got.Ingredients); diff != "" {
				t.Fatalf("ingredients mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAddIngredientResetsDraft(t *testing.T) {
	s := State{}.WithDraft("tomato")
	s = s.AddIngredient(s.Draft)
	if s.Draft != "" {
		t.Fatalf("expected empty draft after add, got %q", s.Draft)
	}
}

func TestAddBlankLeavesEverythingAlone(t *testing.T) {
	before := withIngredients("egg").WithDraft("   ")
	before = before.Resolve(nil, nil) // not loading: no-op
	after := before.AddIngredient(before.Draft)

	if diff := cmp.Diff(before, after, cmp.AllowUnexported(State{})); diff != "" {
		t.Fatalf("expected no change for blank draft (-before +after):\n%s", diff)
	}
	if after.Draft != "   " {
		t.Fatalf("expected draft to be kept, got %q", after.Draft)
	}
}

func TestAddDoesNotAliasReceiver(t *testing.T) {
	base := withIngredients("egg", "milk")
	a := base.AddIngredient("flour")
	b := base.AddIngredient("sugar")

	if a.Ingredients[2] != "flour" || b.Ingredients[2] != "sugar" {
		t.Fatalf("expected independent slices, got %v and %v", a.Ingredients, b.Ingredients)
	}
	if len(base.Ingredients) != 2 {
		t.Fatalf("expected receiver untouched, got %v", base.Ingredients)
	}
}

func TestRemoveIngredient(t *testing.T) {
	s := withIngredients("egg", "milk", "flour")

	got, err := s.RemoveIngredient(1)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if diff := cmp.Diff([]string{"egg", "flour"}, got.Ingredients); diff != "" {
		t.Fatalf("ingredients mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"egg", "milk", "flour"}, s.Ingredients); diff != "" {
		t.Fatalf("receiver was mutated (-want +got):\n%s", diff)
	}
}

func TestRemoveIsPositional(t *testing.T) {
	s := withIngredients("egg", "milk", "egg")

	got, err := s.RemoveIngredient(2)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if diff := cmp.Diff([]string{"egg", "milk"}, got.Ingredients); diff != "" {
		t.Fatalf("ingredients mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveOutOfRange(t *testing.T) {
	s := withIngredients("egg", "milk")

	first, err := s.RemoveIngredient(1)
	if err != nil {
		t.Fatalf("first remove: %v", err)
	}

	for _, idx := range []int{1, 2, -1} {
		got, err := first.RemoveIngredient(idx)
		if !errors.Is(err, domain.ErrInvalidIndex) {
			t.Fatalf("index %d: expected ErrInvalidIndex, got %v", idx, err)
		}
		if diff := cmp.Diff([]string{"egg"}, got.Ingredients); diff != "" {
			t.Fatalf("index %d: list changed (-want +got):\n%s", idx, diff)
		}
	}
}

func TestClearIngredientsKeepsResult(t *testing.T) {
	s, _ := withIngredients("egg").BeginSubmit()
	s = s.Resolve(&domain.Recipe{Name: "Omelette"}, nil)
	s = s.ClearIngredients()

	if len(s.Ingredients) != 0 {
		t.Fatalf("expected empty list, got %v", s.Ingredients)
	}
	if s.Status != domain.StatusResult {
		t.Fatalf("expected result to survive clear, got %s", s.Status)
	}
}

func TestBeginSubmit(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		s, send := State{}.BeginSubmit()
		if send {
			t.Fatal("expected no request for an empty list")
		}
		if s.Status != domain.StatusError || s.Message != domain.MsgNoIngredients {
			t.Fatalf("expected validation error, got %s %q", s.Status, s.Message)
		}
		if !errors.Is(s.Cause(), domain.ErrNoIngredients) {
			t.Fatalf("expected ErrNoIngredients cause, got %v", s.Cause())
		}
	})

	t.Run("clears previous error", func(t *testing.T) {
		s, _ := State{}.BeginSubmit()
		s = s.AddIngredient("egg")
		s, send := s.BeginSubmit()
		if !send || s.Status != domain.StatusLoading {
			t.Fatalf("expected loading, got %s (send=%v)", s.Status, send)
		}
		if s.Message != "" || s.Cause() != nil {
			t.Fatalf("expected error cleared, got %q / %v", s.Message, s.Cause())
		}
	})

	t.Run("clears previous result", func(t *testing.T) {
		s, _ := withIngredients("egg").BeginSubmit()
		s = s.Resolve(&domain.Recipe{Name: "Omelette"}, nil)
		s, send := s.BeginSubmit()
		if !send || s.Recipe != nil {
			t.Fatalf("expected recipe cleared on resubmit, got %+v (send=%v)", s.Recipe, send)
		}
	})

	t.Run("already loading", func(t *testing.T) {
		s, _ := withIngredients("egg").BeginSubmit()
		again, send := s.BeginSubmit()
		if send {
			t.Fatal("expected no second request while loading")
		}
		if again.Status != domain.StatusLoading {
			t.Fatalf("expected to stay loading, got %s", again.Status)
		}
	})
}

func TestResolve(t *testing.T) {
	loading, _ := withIngredients("egg", "milk").BeginSubmit()

	tests := []struct {
		name       string
		recipe     *domain.Recipe
		err        error
		wantStatus domain.SubmissionStatus
		wantMsg    string
	}{
		{"success", &domain.Recipe{Name: "Omelette", Steps: []string{"Beat eggs", "Cook"}}, nil, domain.StatusResult, ""},
		{"no steps", &domain.Recipe{Name: "Toast"}, nil, domain.StatusResult, ""},
		{"transport error", nil, errors.New("connection refused"), domain.StatusError, domain.MsgGenerationFailed},
		{"nil recipe", nil, nil, domain.StatusError, domain.MsgGenerationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := loading.Resolve(tt.recipe, tt.err)
			if got.Status != tt.wantStatus {
				t.Fatalf("expected %s, got %s", tt.wantStatus, got.Status)
			}
			if got.Message != tt.wantMsg {
				t.Fatalf("expected message %q, got %q", tt.wantMsg, got.Message)
			}
			if got.Loading() {
				t.Fatal("expected loading to end")
			}
			if diff := cmp.Diff([]string{"egg", "milk"}, got.Ingredients); diff != "" {
				t.Fatalf("ingredients changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveOutsideLoadingIsNoop(t *testing.T) {
	s := withIngredients("egg")
	got := s.Resolve(&domain.Recipe{Name: "Omelette"}, nil)
	if got.Status != domain.StatusIdle || got.Recipe != nil {
		t.Fatalf("expected idle without recipe, got %s %+v", got.Status, got.Recipe)
	}
}

func TestCanSubmit(t *testing.T) {
	if (State{}).CanSubmit() {
		t.Fatal("expected submit disabled for empty list")
	}
	s := withIngredients("egg")
	if !s.CanSubmit() {
		t.Fatal("expected submit enabled")
	}
	s, _ = s.BeginSubmit()
	if s.CanSubmit() {
		t.Fatal("expected submit disabled while loading")
	}
}
