package speech

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hammamikhairi/redchef/internal/domain"
)

func TestRecipeScript(t *testing.T) {
	got := RecipeScript(&domain.Recipe{
		Name:  "Blistered Tomato Spaghetti",
		Steps: []string{"Boil the pasta.", " Blister the tomatoes. "},
	})
	want := []string{
		"Blistered Tomato Spaghetti. 2 steps.",
		"Step 1. Boil the pasta.",
		"Step 2. Blister the tomatoes.",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("script mismatch (-want +got):\n%s", diff)
	}

	if got := RecipeScript(&domain.Recipe{Name: "Toast", Steps: []string{"Toast it."}}); got[0] != "Toast. One step." {
		t.Fatalf("single step intro: %q", got[0])
	}
	if RecipeScript(nil) != nil {
		t.Fatal("nil recipe should produce no script")
	}
}

func TestLineInvalidIndex(t *testing.T) {
	if got := LineInvalidIndex("7", 2); got != "No ingredient 7. Pick a number from 1 to 2." {
		t.Fatalf("unexpected line: %q", got)
	}
	if got := LineInvalidIndex("1", 0); got != "There's nothing to remove." {
		t.Fatalf("unexpected empty-list line: %q", got)
	}
}

func TestLineCookingIsAFiller(t *testing.T) {
	line := LineCooking()
	for _, f := range CookingFillers() {
		if f == line {
			return
		}
	}
	t.Fatalf("%q is not a known filler", line)
}
