package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/diet-tracker/internal/catalog"
	"github.com/kingrea/diet-tracker/internal/config"
	"github.com/kingrea/diet-tracker/internal/logbook"
	"github.com/kingrea/diet-tracker/internal/planner"
)

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

func TestInitAssignsTodaysPlan(t *testing.T) {
	// Saturday: vegetarian day.
	app := startedApp(t, time.Date(2021, time.April, 10, 9, 0, 0, 0, time.UTC))
	plan, ok := app.TodayPlan()
	if !ok {
		t.Fatalf("plan not loaded, err=%v", app.Err())
	}
	if plan.ID != 1 || !plan.Vegetarian {
		t.Fatalf("today plan = %+v, want vegetarian plan 1", plan)
	}
	want, err := planner.AggregateIngredients(time.Date(2021, time.April, 10, 0, 0, 0, 0, time.UTC), catalog.Default())
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	got := app.ShoppingList()
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("shopping list = %v, want %v", got, want)
	}
	if app.Progress() != 0 {
		t.Fatalf("fresh session progress = %v, want 0", app.Progress())
	}
}

func TestToggleMealsUpdatesProgress(t *testing.T) {
	app := startedApp(t, time.Date(2024, time.April, 10, 9, 0, 0, 0, time.UTC))
	app = sendKeys(t, app, keySpace)
	if !app.Session().MealCompleted("Breakfast") {
		t.Fatalf("breakfast should be complete after toggle")
	}
	if got := app.Progress(); got != 25 {
		t.Fatalf("progress = %v, want 25", got)
	}
	app = sendKeys(t, app, keyDown, keySpace, keyDown, keySpace, keyDown, keySpace)
	if got := app.Progress(); got != 100 {
		t.Fatalf("progress = %v, want 100", got)
	}
	app = sendKeys(t, app, keySpace)
	if app.Session().MealCompleted("Dinner") {
		t.Fatalf("dinner should toggle back to incomplete")
	}
	if got := app.Progress(); got != 75 {
		t.Fatalf("progress = %v, want 75", got)
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	app := startedApp(t, time.Date(2024, time.April, 10, 9, 0, 0, 0, time.UTC))
	for i := 0; i < 10; i++ {
		app = sendKeys(t, app, keyDown)
	}
	if app.mealCursor != 3 {
		t.Fatalf("meal cursor = %d, want 3", app.mealCursor)
	}
	app = sendKeys(t, app, keySpace)
	if !app.Session().MealCompleted("Dinner") {
		t.Fatalf("last meal should be toggled")
	}
}

func TestToggleIngredientAfterFocusSwitch(t *testing.T) {
	app := startedApp(t, time.Date(2024, time.April, 10, 9, 0, 0, 0, time.UTC))
	app = sendKeys(t, app, keyTab, keyRight, keySpace)
	items := app.ShoppingList()
	if len(items) < 2 {
		t.Fatalf("expected shopping list, got %v", items)
	}
	if !app.Session().IngredientChecked(items[1]) {
		t.Fatalf("expected %q checked", items[1])
	}
	if app.Session().MealCompleted("Breakfast") {
		t.Fatalf("ingredient toggle must not touch meals")
	}
	if app.Progress() != 0 {
		t.Fatalf("progress should stay 0, got %v", app.Progress())
	}
	app = sendKeys(t, app, keyTab, keySpace)
	if !app.Session().MealCompleted("Breakfast") {
		t.Fatalf("tab should return focus to meals")
	}
}

func TestEmptySubsetSurfacesAsError(t *testing.T) {
	meatOnly, err := catalog.Parse([]byte("plans:\n  - id: 2\n    meals: [{name: Dinner, calories: 500}]\n    ingredients: [Steak]\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	app := startedApp(t, time.Date(2021, time.April, 10, 9, 0, 0, 0, time.UTC), WithCatalog(meatOnly))
	if !errors.Is(app.Err(), planner.ErrEmptySubset) {
		t.Fatalf("expected ErrEmptySubset, got %v", app.Err())
	}
	if _, ok := app.TodayPlan(); ok {
		t.Fatalf("no plan should be available")
	}
	app = sendKeys(t, app, keySpace)
	if app.Progress() != 0 {
		t.Fatalf("progress = %v, want 0", app.Progress())
	}
	view := app.View()
	if !strings.Contains(view, "Configuration error") || !strings.Contains(view, "no vegetarian plans") {
		t.Fatalf("view missing error details:\n%s", view)
	}
}

func TestViewRendersPanels(t *testing.T) {
	app := startedApp(t, time.Date(2021, time.April, 10, 9, 0, 0, 0, time.UTC))
	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app = model.(*App)
	view := app.View()
	for _, want := range []string{
		"Today's Meal Plan",
		"Veg",
		"Vegan protein smoothie bowl",
		"Total: 1200 cal",
		"Next 7 Days Ingredients",
		"Greek yogurt",
		"LOG · tracker.log",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestViewBeforeLoad(t *testing.T) {
	app := newTestApp(t, time.Date(2021, time.April, 10, 9, 0, 0, 0, time.UTC))
	if got := app.View(); got != "Loading..." {
		t.Fatalf("view before load = %q", got)
	}
}

func TestTogglesAreLogged(t *testing.T) {
	app := startedApp(t, time.Date(2024, time.April, 10, 9, 0, 0, 0, time.UTC))
	app = sendKeys(t, app, keySpace)
	lines, _ := app.logbook.Tail(5)
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "Plan #2") || !strings.Contains(joined, "Meal · Breakfast done") {
		t.Fatalf("log missing entries:\n%s", joined)
	}
	if !strings.Contains(joined, "["+shortID(app.Session().ID)+"]") {
		t.Fatalf("log entries should carry the session tag:\n%s", joined)
	}
}

func TestQuitKey(t *testing.T) {
	app := startedApp(t, time.Date(2024, time.April, 10, 9, 0, 0, 0, time.UTC))
	_, cmd := app.Update(keyQuit)
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestNewAppWithConfigUsesCatalogFile(t *testing.T) {
	projectDir := t.TempDir()
	t.Setenv(config.EnvCatalog, "")
	t.Setenv(config.EnvTimezone, "")
	if err := config.InitDataDir(projectDir); err != nil {
		t.Fatalf("init: %v", err)
	}
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.SetCatalogPath(filepath.Join(projectDir, "missing.yaml"))
	if _, err := NewApp(cfg); err == nil {
		t.Fatalf("expected catalog load error")
	}
}

func newTestApp(t *testing.T, now time.Time, opts ...AppOption) *App {
	t.Helper()
	lb, err := logbook.New(filepath.Join(t.TempDir(), "logs", "tracker.log"))
	if err != nil {
		t.Fatalf("logbook: %v", err)
	}
	cal := planner.NewCalendar(
		planner.WithNow(func() time.Time { return now }),
		planner.WithLocation(time.UTC),
	)
	baseOpts := []AppOption{WithCalendar(cal), WithCatalog(catalog.Default()), WithLogbook(lb), WithLogPanel(4)}
	baseOpts = append(baseOpts, opts...)
	app, err := NewApp(nil, baseOpts...)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return app
}

func startedApp(t *testing.T, now time.Time, opts ...AppOption) *App {
	t.Helper()
	app := newTestApp(t, now, opts...)
	return runCommands(t, app, app.Init())
}

func sendKeys(t *testing.T, app *App, keys ...tea.KeyMsg) *App {
	t.Helper()
	for _, k := range keys {
		model, cmd := app.Update(k)
		app = runCommands(t, model, cmd)
	}
	return app
}

func runCommands(t *testing.T, model tea.Model, cmd tea.Cmd) *App {
	t.Helper()
	app, ok := model.(*App)
	if !ok {
		t.Fatalf("unexpected model type: %T", model)
	}
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			break
		}
		nextModel, nextCmd := app.Update(msg)
		var ok bool
		app, ok = nextModel.(*App)
		if !ok {
			t.Fatalf("unexpected model type: %T", nextModel)
		}
		cmd = nextCmd
	}
	return app
}
