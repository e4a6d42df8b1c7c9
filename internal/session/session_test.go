package session

import (
	"testing"

	"github.com/kingrea/diet-tracker/internal/catalog"
)

func todaysPlan(t *testing.T) *catalog.MealPlan {
	t.Helper()
	plan, ok := catalog.Default().ByID(2)
	if !ok {
		t.Fatalf("default plan 2 missing")
	}
	return &plan
}

func TestNewSessionIsEmpty(t *testing.T) {
	s := New()
	if s.ID == "" {
		t.Fatalf("expected session id")
	}
	if other := New(); other.ID == s.ID {
		t.Fatalf("session ids should differ, both %s", s.ID)
	}
	if got := s.Progress(todaysPlan(t)); got != 0 {
		t.Fatalf("empty session progress = %v, want 0", got)
	}
}

func TestProgressNilPlan(t *testing.T) {
	s := New()
	s.ToggleMeal("Breakfast")
	if got := s.Progress(nil); got != 0 {
		t.Fatalf("progress without plan = %v, want 0", got)
	}
	if got := s.Progress(&catalog.MealPlan{ID: 9}); got != 0 {
		t.Fatalf("progress for plan without meals = %v, want 0", got)
	}
}

func TestToggleMealProgress(t *testing.T) {
	s := New()
	plan := todaysPlan(t)
	if !s.ToggleMeal("Breakfast") {
		t.Fatalf("first toggle should mark complete")
	}
	if got := s.Progress(plan); got != 25 {
		t.Fatalf("progress = %v, want 25", got)
	}
	for _, name := range []string{"Lunch", "Snack", "Dinner"} {
		s.ToggleMeal(name)
	}
	if got := s.Progress(plan); got != 100 {
		t.Fatalf("progress = %v, want 100", got)
	}
	if s.ToggleMeal("Lunch") {
		t.Fatalf("second toggle should clear completion")
	}
	if s.MealCompleted("Lunch") {
		t.Fatalf("lunch should be incomplete")
	}
	if got := s.Progress(plan); got != 75 {
		t.Fatalf("progress = %v, want 75", got)
	}
}

func TestProgressKeepsFractions(t *testing.T) {
	s := New()
	plan := &catalog.MealPlan{ID: 3, Meals: []catalog.Meal{{Name: "A"}, {Name: "B"}, {Name: "C"}}}
	s.ToggleMeal("A")
	got := s.Progress(plan)
	if got < 33.33 || got > 33.34 {
		t.Fatalf("progress = %v, want ~33.33", got)
	}
}

func TestProgressIgnoresMealsOutsidePlan(t *testing.T) {
	s := New()
	s.ToggleMeal("Brunch")
	if got := s.CompletedCount(todaysPlan(t)); got != 0 {
		t.Fatalf("completed count = %d, want 0", got)
	}
}

func TestToggleIngredient(t *testing.T) {
	s := New()
	items := []string{"Honey", "Walnuts", "honey"}
	s.ToggleIngredient("Honey")
	if !s.IngredientChecked("Honey") || s.IngredientChecked("honey") {
		t.Fatalf("ingredient checks must match names exactly")
	}
	if got := s.CheckedCount(items); got != 1 {
		t.Fatalf("checked count = %d, want 1", got)
	}
	s.ToggleIngredient("Honey")
	if got := s.CheckedCount(items); got != 0 {
		t.Fatalf("checked count after untoggle = %d, want 0", got)
	}
}
