package tui

import (
	"fmt"
	"strings"

	"github.com/kingrea/diet-tracker/internal/planner"
)

// RenderSummary prints the plan and shopping list without the interactive
// view, for pipes and quick checks.
func RenderSummary(snap planner.Snapshot) string {
	plan := snap.Plan
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s\n",
		titleStyle.Render("Today's Meal Plan"),
		dietBadge(plan),
		detailStyle.Render(snap.Date.Format("Mon 2 Jan 2006")),
	)
	for _, meal := range plan.Meals {
		fmt.Fprintf(&b, "  %-10s %s (%d cal)\n", meal.Name, meal.Description, meal.Calories)
	}
	fmt.Fprintf(&b, "%s\n\n", totalStyle.Render(fmt.Sprintf("Total: %d cal", plan.TotalCalories())))
	fmt.Fprintf(&b, "%s\n", titleStyle.Render(fmt.Sprintf("Next %d Days Ingredients", planner.ShoppingWindowDays)))
	for _, item := range snap.ShoppingList {
		fmt.Fprintf(&b, "  - %s\n", item)
	}
	if line := weekLine(snap.Week); line != "" {
		fmt.Fprintf(&b, "\n%s\n", detailStyle.Render(line))
	}
	return b.String()
}
