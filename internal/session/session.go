// Package session keeps the per-run toggle state of the tracker: which of
// today's meals are done and which shopping list items are checked off.
// Nothing here is persisted; a new run starts empty.
package session

import (
	"github.com/google/uuid"

	"github.com/kingrea/diet-tracker/internal/catalog"
)

// Session owns the completion and ingredient check maps for one view.
type Session struct {
	ID        string
	completed map[string]bool
	checked   map[string]bool
}

// New returns an empty session with a fresh identifier.
func New() *Session {
	return &Session{
		ID:        uuid.NewString(),
		completed: map[string]bool{},
		checked:   map[string]bool{},
	}
}

// ToggleMeal flips the completion flag for a meal and returns the new value.
func (s *Session) ToggleMeal(name string) bool {
	s.completed[name] = !s.completed[name]
	return s.completed[name]
}

// ToggleIngredient flips the check flag for an ingredient and returns the new value.
func (s *Session) ToggleIngredient(name string) bool {
	s.checked[name] = !s.checked[name]
	return s.checked[name]
}

// MealCompleted reports whether the meal is marked complete.
func (s *Session) MealCompleted(name string) bool {
	return s.completed[name]
}

// IngredientChecked reports whether the ingredient is checked off.
func (s *Session) IngredientChecked(name string) bool {
	return s.checked[name]
}

// CompletedCount counts the plan's meals marked complete.
func (s *Session) CompletedCount(plan *catalog.MealPlan) int {
	if plan == nil {
		return 0
	}
	count := 0
	for _, meal := range plan.Meals {
		if s.completed[meal.Name] {
			count++
		}
	}
	return count
}

// CheckedCount counts the items that are checked off.
func (s *Session) CheckedCount(items []string) int {
	count := 0
	for _, item := range items {
		if s.checked[item] {
			count++
		}
	}
	return count
}

// Progress is the percentage of the plan's meals marked complete, in
// [0, 100]. A nil plan or a plan without meals reports 0.
func (s *Session) Progress(plan *catalog.MealPlan) float64 {
	if plan == nil || len(plan.Meals) == 0 {
		return 0
	}
	return float64(s.CompletedCount(plan)) / float64(len(plan.Meals)) * 100
}
