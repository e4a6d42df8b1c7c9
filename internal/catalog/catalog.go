// Package catalog holds the static table of meal plans the tracker rotates
// through. A catalog is loaded once at startup and never mutated afterwards.
package catalog

import (
	"fmt"
	"strings"
)

// Meal is one entry on a day's plan.
type Meal struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Calories    int    `json:"calories" yaml:"calories"`
}

// MealPlan groups the meals for a single day with the ingredients they need.
type MealPlan struct {
	ID          int      `json:"id" yaml:"id"`
	Vegetarian  bool     `json:"vegetarian" yaml:"vegetarian"`
	Meals       []Meal   `json:"meals" yaml:"meals"`
	Ingredients []string `json:"ingredients" yaml:"ingredients"`
}

// Catalog is the ordered sequence of plans available for assignment.
type Catalog struct {
	Plans []MealPlan `json:"plans" yaml:"plans"`
}

// Clone returns a deep copy of the plan.
func (p MealPlan) Clone() MealPlan {
	clone := MealPlan{ID: p.ID, Vegetarian: p.Vegetarian}
	if len(p.Meals) > 0 {
		clone.Meals = make([]Meal, len(p.Meals))
		copy(clone.Meals, p.Meals)
	}
	if len(p.Ingredients) > 0 {
		clone.Ingredients = make([]string, len(p.Ingredients))
		copy(clone.Ingredients, p.Ingredients)
	}
	return clone
}

// TotalCalories sums the calories of every meal in the plan.
func (p MealPlan) TotalCalories() int {
	total := 0
	for _, meal := range p.Meals {
		total += meal.Calories
	}
	return total
}

// DietLabel is the short badge text shown next to the plan title.
func (p MealPlan) DietLabel() string {
	if p.Vegetarian {
		return "Veg"
	}
	return "Non-Veg"
}

// Validate ensures the plan is usable by the planner and the UI.
func (p MealPlan) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("plan id must be positive, got %d", p.ID)
	}
	if len(p.Meals) == 0 {
		return fmt.Errorf("plan %d: at least one meal is required", p.ID)
	}
	seen := map[string]struct{}{}
	for idx, meal := range p.Meals {
		if strings.TrimSpace(meal.Name) == "" {
			return fmt.Errorf("plan %d meal[%d]: name is required", p.ID, idx)
		}
		if meal.Calories < 0 {
			return fmt.Errorf("plan %d meal %s: calories must be >= 0", p.ID, meal.Name)
		}
		if _, exists := seen[meal.Name]; exists {
			return fmt.Errorf("plan %d: duplicate meal name %s", p.ID, meal.Name)
		}
		seen[meal.Name] = struct{}{}
	}
	for idx, ingredient := range p.Ingredients {
		if strings.TrimSpace(ingredient) == "" {
			return fmt.Errorf("plan %d ingredient[%d]: name is required", p.ID, idx)
		}
	}
	return nil
}

// normalized collapses duplicate ingredient names. Names are compared
// verbatim; "Honey" and "honey " stay distinct.
func (p MealPlan) normalized() MealPlan {
	clone := p.Clone()
	if len(clone.Ingredients) == 0 {
		return clone
	}
	seen := make(map[string]struct{}, len(clone.Ingredients))
	unique := clone.Ingredients[:0]
	for _, ingredient := range clone.Ingredients {
		if _, ok := seen[ingredient]; ok {
			continue
		}
		seen[ingredient] = struct{}{}
		unique = append(unique, ingredient)
	}
	clone.Ingredients = unique
	return clone
}

// Clone returns a deep copy of the catalog.
func (c Catalog) Clone() Catalog {
	if len(c.Plans) == 0 {
		return Catalog{}
	}
	out := Catalog{Plans: make([]MealPlan, len(c.Plans))}
	for i, plan := range c.Plans {
		out.Plans[i] = plan.Clone()
	}
	return out
}

// Validate checks every plan and rejects duplicate identifiers. An empty
// dietary subset is allowed here; the planner reports it when a day needs it.
func (c Catalog) Validate() error {
	seen := map[int]struct{}{}
	for idx, plan := range c.Plans {
		if err := plan.Validate(); err != nil {
			return fmt.Errorf("catalog plans[%d]: %w", idx, err)
		}
		if _, exists := seen[plan.ID]; exists {
			return fmt.Errorf("catalog: duplicate plan id %d", plan.ID)
		}
		seen[plan.ID] = struct{}{}
	}
	return nil
}

// Normalized clones the catalog, collapses duplicate ingredients, and
// validates the result.
func (c Catalog) Normalized() (Catalog, error) {
	out := Catalog{}
	if len(c.Plans) > 0 {
		out.Plans = make([]MealPlan, len(c.Plans))
		for i, plan := range c.Plans {
			out.Plans[i] = plan.normalized()
		}
	}
	if err := out.Validate(); err != nil {
		return Catalog{}, err
	}
	return out, nil
}

// Len reports the number of plans.
func (c Catalog) Len() int {
	return len(c.Plans)
}

// ByID looks up a plan by identifier.
func (c Catalog) ByID(id int) (MealPlan, bool) {
	for _, plan := range c.Plans {
		if plan.ID == id {
			return plan, true
		}
	}
	return MealPlan{}, false
}

// IDs returns plan identifiers in catalog order.
func (c Catalog) IDs() []int {
	ids := make([]int, 0, len(c.Plans))
	for _, plan := range c.Plans {
		ids = append(ids, plan.ID)
	}
	return ids
}

// Vegetarian returns the vegetarian plans in catalog order.
func (c Catalog) Vegetarian() []MealPlan {
	return c.filter(true)
}

// NonVegetarian returns the non-vegetarian plans in catalog order.
func (c Catalog) NonVegetarian() []MealPlan {
	return c.filter(false)
}

func (c Catalog) filter(vegetarian bool) []MealPlan {
	var out []MealPlan
	for _, plan := range c.Plans {
		if plan.Vegetarian == vegetarian {
			out = append(out, plan)
		}
	}
	return out
}

// Merge appends the plans of other catalogs after c, preserving order.
func Merge(parts ...Catalog) (Catalog, error) {
	var out Catalog
	for _, part := range parts {
		for _, plan := range part.Plans {
			out.Plans = append(out.Plans, plan.Clone())
		}
	}
	if err := out.Validate(); err != nil {
		return Catalog{}, err
	}
	return out, nil
}
