package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/diet-tracker/internal/catalog"
	"github.com/kingrea/diet-tracker/internal/planner"
)

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7FB2FF"))
	panelStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#1E3A8A")).Padding(0, 1)
	panelFocusStyle = panelStyle.BorderForeground(lipgloss.Color("#5B8DEF"))
	vegBadgeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#15803D")).Padding(0, 1)
	meatBadgeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#B91C1C")).Padding(0, 1)
	mealStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#DBEAFE"))
	mealDoneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B8BC9")).Strikethrough(true)
	detailStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0AEC0"))
	totalStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7FB2FF"))
	chipStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#DBEAFE")).Background(lipgloss.Color("#1E3A8A")).Padding(0, 1)
	chipDoneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B8BC9")).Background(lipgloss.Color("#172554")).Padding(0, 1).Strikethrough(true)
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	footerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).MarginTop(1)
)

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 80
	}
	inner := max(24, width-4)
	if !a.loaded {
		return "Loading..."
	}
	var sections []string
	if a.err != nil {
		sections = append(sections, panelStyle.Width(inner).Render(a.renderError()))
	} else {
		sections = append(sections,
			a.panel(focusMeals, inner).Render(a.renderPlanPanel(inner-4)),
			a.panel(focusIngredients, inner).Render(a.renderIngredientsPanel(inner-4)),
		)
	}
	if logPanel := a.renderLogPanel(inner); logPanel != "" {
		sections = append(sections, logPanel)
	}
	sections = append(sections, a.help.View(a.keys))
	if a.statusMsg != "" {
		sections = append(sections, footerStyle.Render(a.statusMsg))
	}
	return strings.Join(sections, "\n")
}

func (a *App) panel(area focusArea, width int) lipgloss.Style {
	if a.focus == area {
		return panelFocusStyle.Width(width)
	}
	return panelStyle.Width(width)
}

func (a *App) renderError() string {
	lines := []string{
		errorStyle.Render("Configuration error"),
		a.err.Error(),
	}
	if a.config != nil && a.config.CatalogPath() != "" {
		lines = append(lines, detailStyle.Render(fmt.Sprintf("Catalog: %s", a.config.CatalogPath())))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderPlanPanel(width int) string {
	plan := a.snapshot.Plan
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("Today's Meal Plan"),
		"  ",
		dietBadge(plan),
		"  ",
		detailStyle.Render(a.snapshot.Date.Format("Mon 2 Jan 2006")),
	)
	pct := a.Progress()
	bar := fmt.Sprintf("%s %3.0f%%", a.progress.ViewAs(pct/100), pct)

	rows := make([]string, 0, len(plan.Meals))
	for i, meal := range plan.Meals {
		rows = append(rows, a.renderMeal(i, meal, width))
	}
	total := totalStyle.Render(fmt.Sprintf("Total: %d cal", plan.TotalCalories()))
	total = lipgloss.PlaceHorizontal(max(lipgloss.Width(total), width), lipgloss.Right, total)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		bar,
		"",
		strings.Join(rows, "\n"),
		"",
		total,
	)
}

func (a *App) renderMeal(idx int, meal catalog.Meal, width int) string {
	indicator := " "
	if a.focus == focusMeals && idx == a.mealCursor {
		indicator = ">"
	}
	check := "[ ]"
	style := mealStyle
	if a.session.MealCompleted(meal.Name) {
		check = "[x]"
		style = mealDoneStyle
	}
	line1 := fmt.Sprintf("%s %s %s", indicator, check, style.Bold(true).Render(meal.Name))
	line2 := detailStyle.Render(fmt.Sprintf("      %s · %d cal", meal.Description, meal.Calories))
	return lipgloss.NewStyle().Width(max(20, width)).Render(line1 + "\n" + line2)
}

func (a *App) renderIngredientsPanel(width int) string {
	items := a.snapshot.ShoppingList
	title := titleStyle.Render(fmt.Sprintf("Next %d Days Ingredients", planner.ShoppingWindowDays))
	count := detailStyle.Render(fmt.Sprintf("%d/%d checked", a.session.CheckedCount(items), len(items)))
	header := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", count)
	if len(items) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, detailStyle.Render("Nothing to buy."))
	}
	chips := make([]string, len(items))
	for i, item := range items {
		style := chipStyle
		if a.session.IngredientChecked(item) {
			style = chipDoneStyle
		}
		if a.focus == focusIngredients && i == a.ingredientCursor {
			style = style.Underline(true).Bold(true)
		}
		chips[i] = style.Render(item)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		wrapChips(chips, width),
		"",
		detailStyle.Render(weekLine(a.snapshot.Week)),
	)
}

// wrapChips lays rendered chips left to right, breaking rows at width.
func wrapChips(chips []string, width int) string {
	if width <= 0 {
		return strings.Join(chips, " ")
	}
	var rows []string
	var row []string
	rowWidth := 0
	for _, chip := range chips {
		w := lipgloss.Width(chip)
		if len(row) > 0 && rowWidth+1+w > width {
			rows = append(rows, strings.Join(row, " "))
			row = nil
			rowWidth = 0
		}
		if len(row) > 0 {
			rowWidth++
		}
		row = append(row, chip)
		rowWidth += w
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, " "))
	}
	return strings.Join(rows, "\n")
}

func weekLine(days []planner.DayAssignment) string {
	if len(days) == 0 {
		return ""
	}
	parts := make([]string, 0, len(days))
	for _, day := range days {
		parts = append(parts, fmt.Sprintf("%s #%d", day.Date.Format("Mon"), day.Plan.ID))
	}
	return "Week: " + strings.Join(parts, " · ")
}

func dietBadge(plan catalog.MealPlan) string {
	if plan.Vegetarian {
		return vegBadgeStyle.Render(plan.DietLabel())
	}
	return meatBadgeStyle.Render(plan.DietLabel())
}

func (a *App) renderLogPanel(width int) string {
	if a.logbook == nil || a.logLines <= 0 {
		return ""
	}
	lines, total := a.logbook.Tail(a.logLines)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("LOG · %s (%d)", fileName, total))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Width(width).
		Render(fmt.Sprintf("%s\n%s", head, body))
}
