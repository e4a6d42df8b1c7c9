// Package planner maps calendar days onto catalog meal plans and builds the
// shopping list for the coming week.
//
// Assignment is a pure function of the date and the catalog: Monday and
// Saturday draw from the vegetarian plans, every other day from the
// non-vegetarian ones, and (day of month + month index) picks the entry.
package planner

import (
	"errors"
	"fmt"
	"time"

	"github.com/kingrea/diet-tracker/internal/catalog"
)

// ShoppingWindowDays is the number of days after the reference date covered
// by the shopping list.
const ShoppingWindowDays = 7

// ErrEmptySubset matches any EmptySubsetError via errors.Is.
var ErrEmptySubset = errors.New("planner: no plans in dietary subset")

// EmptySubsetError reports that the catalog has no plan for the dietary
// category a date requires.
type EmptySubsetError struct {
	Vegetarian bool
	Date       time.Time
}

func (e *EmptySubsetError) Error() string {
	kind := "non-vegetarian"
	if e.Vegetarian {
		kind = "vegetarian"
	}
	return fmt.Sprintf("planner: catalog has no %s plans for %s", kind, e.Date.Format("2006-01-02"))
}

// Is lets errors.Is(err, ErrEmptySubset) succeed.
func (e *EmptySubsetError) Is(target error) bool {
	return target == ErrEmptySubset
}

// DayAssignment pairs a date with the plan assigned to it.
type DayAssignment struct {
	Date time.Time
	Plan catalog.MealPlan
}

// IsVegDay reports whether the weekday (0 = Sunday) is a vegetarian day.
func IsVegDay(weekday int) bool {
	return weekday == 1 || weekday == 6
}

// AssignPlan picks the plan for date. The same date and catalog always give
// the same plan.
func AssignPlan(date time.Time, c catalog.Catalog) (catalog.MealPlan, error) {
	day := DayOf(date)
	veg := IsVegDay(day.Weekday)
	var subset []catalog.MealPlan
	if veg {
		subset = c.Vegetarian()
	} else {
		subset = c.NonVegetarian()
	}
	if len(subset) == 0 {
		return catalog.MealPlan{}, &EmptySubsetError{Vegetarian: veg, Date: date}
	}
	return subset[(day.DayOfMonth+day.MonthIndex)%len(subset)], nil
}

// Upcoming assigns a plan to each of the ShoppingWindowDays days after ref.
func Upcoming(ref time.Time, c catalog.Catalog) ([]DayAssignment, error) {
	days := make([]DayAssignment, 0, ShoppingWindowDays)
	for i := 1; i <= ShoppingWindowDays; i++ {
		date := AddDays(ref, i)
		plan, err := AssignPlan(date, c)
		if err != nil {
			return nil, err
		}
		days = append(days, DayAssignment{Date: date, Plan: plan})
	}
	return days, nil
}

// AggregateIngredients returns the union of ingredients for the days after
// ref, in first-seen order. Names are deduplicated by exact string match.
func AggregateIngredients(ref time.Time, c catalog.Catalog) ([]string, error) {
	days, err := Upcoming(ref, c)
	if err != nil {
		return nil, err
	}
	return unionIngredients(days), nil
}

func unionIngredients(days []DayAssignment) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, day := range days {
		for _, ingredient := range day.Plan.Ingredients {
			if _, ok := seen[ingredient]; ok {
				continue
			}
			seen[ingredient] = struct{}{}
			out = append(out, ingredient)
		}
	}
	return out
}

// Planner binds a catalog to a calendar so callers can ask about "today".
type Planner struct {
	catalog  catalog.Catalog
	calendar *Calendar
}

// Option customizes Planner construction.
type Option func(*Planner)

// WithCalendar overrides the system calendar.
func WithCalendar(cal *Calendar) Option {
	return func(p *Planner) {
		if cal != nil {
			p.calendar = cal
		}
	}
}

// New returns a planner over c.
func New(c catalog.Catalog, opts ...Option) *Planner {
	p := &Planner{catalog: c.Clone(), calendar: NewCalendar()}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Today returns the current day (noon anchor, calendar zone).
func (p *Planner) Today() time.Time {
	return p.calendar.Today()
}

// TodayPlan assigns the plan for the current day.
func (p *Planner) TodayPlan() (catalog.MealPlan, error) {
	return AssignPlan(p.Today(), p.catalog)
}

// ShoppingList aggregates ingredients for the days after today.
func (p *Planner) ShoppingList() ([]string, error) {
	return AggregateIngredients(p.Today(), p.catalog)
}

// Snapshot is everything the tracker view needs at startup.
type Snapshot struct {
	Date         time.Time
	Plan         catalog.MealPlan
	Week         []DayAssignment
	ShoppingList []string
}

// Snapshot computes today's plan, the upcoming week, and the shopping list in
// one pass.
func (p *Planner) Snapshot() (Snapshot, error) {
	today := p.Today()
	plan, err := AssignPlan(today, p.catalog)
	if err != nil {
		return Snapshot{Date: today}, err
	}
	week, err := Upcoming(today, p.catalog)
	if err != nil {
		return Snapshot{Date: today, Plan: plan}, err
	}
	return Snapshot{
		Date:         today,
		Plan:         plan,
		Week:         week,
		ShoppingList: unionIngredients(week),
	}, nil
}
