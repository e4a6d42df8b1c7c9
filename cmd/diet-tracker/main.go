// cmd/diet-tracker/main.go
//
// This is the entry point for the diet tracker.
//
// Flow:
// 1. Prepare .diet-tracker/ in the project directory and load config
// 2. Load the meal plan catalog (configured file/dir or the built-in one)
// 3. Either print today's summary (-print), dump the catalog
//    (-export-catalog), or launch the TUI

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/diet-tracker/internal/catalog"
	"github.com/kingrea/diet-tracker/internal/config"
	"github.com/kingrea/diet-tracker/internal/logbook"
	"github.com/kingrea/diet-tracker/internal/planner"
	"github.com/kingrea/diet-tracker/internal/tui"
)

func main() {
	projectDir := flag.String("project", "", "path to the project directory (defaults to cwd)")
	catalogPath := flag.String("catalog", "", "meal plan catalog file or directory, relative to the current directory (overrides config)")
	dateFlag := flag.String("date", "", "treat this day (YYYY-MM-DD) as today")
	printOnly := flag.Bool("print", false, "print today's plan and shopping list instead of opening the TUI")
	exportCatalog := flag.Bool("export-catalog", false, "print the effective meal plan catalog as YAML and exit")
	flag.Parse()

	project := *projectDir
	if project == "" {
		var err error
		project, err = os.Getwd()
		if err != nil {
			die("determine working directory: %v", err)
		}
	}
	absoluteProject, err := filepath.Abs(project)
	if err != nil {
		die("resolve project dir: %v", err)
	}
	if err := config.InitDataDir(absoluteProject); err != nil {
		die("init %s: %v", config.DataDir, err)
	}
	cfg, err := config.NewConfig(absoluteProject)
	if err != nil {
		die("load config: %v", err)
	}
	if strings.TrimSpace(*catalogPath) != "" {
		path, err := flagPath(*catalogPath)
		if err != nil {
			die("resolve -catalog: %v", err)
		}
		cfg.SetCatalogPath(path)
	}

	if *exportCatalog {
		cat, err := config.LoadCatalog(cfg)
		if err != nil {
			die("%v", err)
		}
		data, err := catalog.Marshal(cat)
		if err != nil {
			die("%v", err)
		}
		os.Stdout.Write(data)
		return
	}

	calOpts := []planner.CalendarOption{planner.WithLocation(cfg.Location())}
	if strings.TrimSpace(*dateFlag) != "" {
		now, err := pinnedDate(*dateFlag, cfg.Location())
		if err != nil {
			die("parse -date: %v", err)
		}
		calOpts = append(calOpts, planner.WithNow(now))
	}
	calendar := planner.NewCalendar(calOpts...)

	if *printOnly {
		cat, err := config.LoadCatalog(cfg)
		if err != nil {
			die("%v", err)
		}
		snap, err := planner.New(cat, planner.WithCalendar(calendar)).Snapshot()
		if err != nil {
			die("%v", err)
		}
		fmt.Print(tui.RenderSummary(snap))
		return
	}

	loc := cfg.Location()
	lb, err := logbook.New(cfg.LogPath(), logbook.WithClock(func() time.Time { return time.Now().In(loc) }))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: activity log disabled: %v\n", err)
	}
	app, err := tui.NewApp(cfg, tui.WithCalendar(calendar), tui.WithLogbook(lb))
	if err != nil {
		die("%v", err)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		die("running TUI: %v", err)
	}
}

// flagPath resolves a command-line path against the working directory, not
// the project directory that config.yaml paths are relative to.
func flagPath(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}
	return filepath.Abs(trimmed)
}

// pinnedDate parses a YYYY-MM-DD day and pins the clock to its noon in loc.
func pinnedDate(raw string, loc *time.Location) (func() time.Time, error) {
	day, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	return planner.FixedDate(day.Year(), day.Month(), day.Day(), loc), nil
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
