// internal/tui/app.go
//
// This is the terminal view of the diet tracker. It uses bubbletea, which
// follows The Elm Architecture:
//
// 1. Model: the App struct (today's plan, shopping list, toggle state)
// 2. Update: reacts to key presses and the one-time plan load
// 3. View: renders the two panels to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen

package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/diet-tracker/internal/catalog"
	"github.com/kingrea/diet-tracker/internal/config"
	"github.com/kingrea/diet-tracker/internal/logbook"
	"github.com/kingrea/diet-tracker/internal/planner"
	"github.com/kingrea/diet-tracker/internal/session"
)

// focusArea is the panel receiving navigation keys
type focusArea int

const (
	focusMeals focusArea = iota
	focusIngredients
)

// planLoadedMsg carries the result of the one-time plan assignment.
type planLoadedMsg struct {
	snapshot planner.Snapshot
	err      error
}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithCalendar pins the calendar used to decide "today".
func WithCalendar(cal *planner.Calendar) AppOption {
	return func(a *App) {
		if cal != nil {
			a.calendar = cal
		}
	}
}

// WithCatalog replaces the configured catalog.
func WithCatalog(c catalog.Catalog) AppOption {
	return func(a *App) {
		clone := c.Clone()
		a.catalog = &clone
	}
}

// WithLogbook attaches an activity log.
func WithLogbook(lb *logbook.Logbook) AppOption {
	return func(a *App) {
		a.logbook = lb
	}
}

// WithLogPanel shows the last n log entries under the panels; 0 hides it.
func WithLogPanel(n int) AppOption {
	return func(a *App) {
		a.logLines = max(0, n)
	}
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	config   *config.Config
	catalog  *catalog.Catalog
	calendar *planner.Calendar
	planner  *planner.Planner
	session  *session.Session
	logbook  *logbook.Logbook

	snapshot planner.Snapshot
	loaded   bool
	err      error

	focus            focusArea
	mealCursor       int
	ingredientCursor int

	// UI components
	progress  progress.Model
	help      help.Model
	keys      keyMap
	statusMsg string
	logLines  int

	// Window size (we get this from bubbletea)
	width  int
	height int
}

// NewApp builds the tracker view. cfg may be nil, in which case the built-in
// catalog and the system calendar are used unless options say otherwise.
func NewApp(cfg *config.Config, opts ...AppOption) (*App, error) {
	bar := progress.New(
		progress.WithGradient("#5B8DEF", "#2B4FB8"),
		progress.WithoutPercentage(),
	)
	app := &App{
		config:   cfg,
		session:  session.New(),
		progress: bar,
		help:     help.New(),
		keys:     defaultKeyMap(),
	}
	if cfg != nil && cfg.ShowLog() {
		app.logLines = cfg.LogLines()
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	if app.catalog == nil {
		loaded, err := config.LoadCatalog(cfg)
		if err != nil {
			return nil, err
		}
		app.catalog = &loaded
	}
	if app.calendar == nil {
		app.calendar = planner.NewCalendar(planner.WithLocation(cfg.Location()))
	}
	app.planner = planner.New(*app.catalog, planner.WithCalendar(app.calendar))
	app.logbook = app.logbook.WithTag(shortID(app.session.ID))
	app.logInfo("Session opened · %d plan(s) in catalog", app.catalog.Len())
	return app, nil
}

// Session exposes the toggle state.
func (a *App) Session() *session.Session {
	return a.session
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return a.loadPlan()
}

func (a *App) loadPlan() tea.Cmd {
	p := a.planner
	return func() tea.Msg {
		snap, err := p.Snapshot()
		return planLoadedMsg{snapshot: snap, err: err}
	}
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.progress.Width = max(10, min(60, msg.Width-16))
		a.help.Width = msg.Width
		return a, nil

	case planLoadedMsg:
		return a, a.handlePlanLoaded(msg)

	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handlePlanLoaded(msg planLoadedMsg) tea.Cmd {
	a.snapshot = msg.snapshot
	a.loaded = true
	a.err = msg.err
	if msg.err != nil {
		var subsetErr *planner.EmptySubsetError
		if errors.As(msg.err, &subsetErr) {
			a.statusMsg = "Catalog is missing a dietary category; check the catalog file"
		} else {
			a.statusMsg = fmt.Sprintf("Plan assignment failed: %v", msg.err)
		}
		a.logError("Plan assignment failed: %v", msg.err)
		return nil
	}
	a.mealCursor = 0
	a.ingredientCursor = 0
	a.statusMsg = fmt.Sprintf("Plan #%d for %s", msg.snapshot.Plan.ID, msg.snapshot.Date.Format("Mon 2 Jan"))
	a.logInfo("Plan #%d (%s) assigned for %s · %d ingredient(s) for the next %d days",
		msg.snapshot.Plan.ID,
		msg.snapshot.Plan.DietLabel(),
		msg.snapshot.Date.Format("2006-01-02"),
		len(msg.snapshot.ShoppingList),
		planner.ShoppingWindowDays,
	)
	return nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.logInfo("Session closed · progress %.0f%%", a.Progress())
		return tea.Quit
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		return nil
	}
	if !a.loaded || a.err != nil {
		return nil
	}
	switch {
	case key.Matches(msg, a.keys.Focus):
		a.toggleFocus()
	case key.Matches(msg, a.keys.Up):
		a.moveCursor(-1)
	case key.Matches(msg, a.keys.Down):
		a.moveCursor(1)
	case key.Matches(msg, a.keys.Left):
		if a.focus == focusIngredients {
			a.moveCursor(-1)
		}
	case key.Matches(msg, a.keys.Right):
		if a.focus == focusIngredients {
			a.moveCursor(1)
		}
	case key.Matches(msg, a.keys.Toggle):
		a.toggleSelected()
	}
	return nil
}

func (a *App) toggleFocus() {
	if a.focus == focusMeals && len(a.snapshot.ShoppingList) > 0 {
		a.focus = focusIngredients
		return
	}
	a.focus = focusMeals
}

func (a *App) moveCursor(delta int) {
	switch a.focus {
	case focusMeals:
		a.mealCursor = clamp(a.mealCursor+delta, 0, len(a.snapshot.Plan.Meals)-1)
	case focusIngredients:
		a.ingredientCursor = clamp(a.ingredientCursor+delta, 0, len(a.snapshot.ShoppingList)-1)
	}
}

func (a *App) toggleSelected() {
	switch a.focus {
	case focusMeals:
		meals := a.snapshot.Plan.Meals
		if len(meals) == 0 {
			return
		}
		name := meals[a.mealCursor].Name
		done := a.session.ToggleMeal(name)
		a.statusMsg = fmt.Sprintf("%s %s · %.0f%% done", name, completionWord(done), a.Progress())
		a.logInfo("Meal · %s %s (progress %.0f%%)", name, completionWord(done), a.Progress())
	case focusIngredients:
		items := a.snapshot.ShoppingList
		if len(items) == 0 {
			return
		}
		name := items[a.ingredientCursor]
		checked := a.session.ToggleIngredient(name)
		word := "unchecked"
		if checked {
			word = "checked"
		}
		a.statusMsg = fmt.Sprintf("%s %s · %d/%d in basket", name, word, a.session.CheckedCount(items), len(items))
		a.logInfo("Ingredient · %s %s", name, word)
	}
}

// Progress returns today's completion percentage.
func (a *App) Progress() float64 {
	if !a.loaded || a.err != nil {
		return 0
	}
	return a.session.Progress(&a.snapshot.Plan)
}

// TodayPlan returns the assigned plan once loaded.
func (a *App) TodayPlan() (catalog.MealPlan, bool) {
	if !a.loaded || a.err != nil {
		return catalog.MealPlan{}, false
	}
	return a.snapshot.Plan, true
}

// ShoppingList returns the aggregated ingredients once loaded.
func (a *App) ShoppingList() []string {
	if !a.loaded || a.err != nil {
		return nil
	}
	return a.snapshot.ShoppingList
}

// Err returns the plan assignment error, if any.
func (a *App) Err() error {
	return a.err
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

func (a *App) logError(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Error(format, args...)
}

func completionWord(done bool) string {
	if done {
		return "done"
	}
	return "not done"
}

func shortID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
