// internal/config/config.go
//
// This package handles configuration and the .diet-tracker directory.
// Every project that runs the tracker gets a .diet-tracker/ folder holding
// config.yaml and the log file.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kingrea/diet-tracker/internal/catalog"
)

const (
	// DataDir is the name of the directory we create in each project
	DataDir = ".diet-tracker"

	// EnvCatalog overrides catalog.path.
	EnvCatalog = "DIET_TRACKER_CATALOG"
	// EnvTimezone overrides timezone.
	EnvTimezone = "DIET_TRACKER_TZ"

	defaultLogLines = 6
)

const defaultProjectConfigYAML = `# diet tracker configuration
version: 1

# Meal plan catalog. Leave path empty to use the built-in two-plan catalog.
# A file or a directory of *.yaml catalogs, relative to the project.
catalog:
  path: ""

# IANA zone used to decide which day "today" is. Empty means the system zone.
timezone: ""

display:
  show_log: true
  log_lines: 6
`

// CatalogConfig points at the meal plan catalog.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// DisplayConfig tunes the terminal view.
type DisplayConfig struct {
	ShowLog  bool `yaml:"show_log"`
	LogLines int  `yaml:"log_lines"`
}

// ProjectConfig models .diet-tracker/config.yaml.
type ProjectConfig struct {
	Version  int           `yaml:"version"`
	Catalog  CatalogConfig `yaml:"catalog"`
	Timezone string        `yaml:"timezone"`
	Display  DisplayConfig `yaml:"display"`
}

// Config holds the runtime configuration for the tracker.
type Config struct {
	// ProjectDir is the directory the tracker was started from
	ProjectDir string

	// DataProjectDir is ProjectDir/.diet-tracker
	DataProjectDir string

	Project ProjectConfig

	location *time.Location
}

// InitDataDir creates the .diet-tracker directory structure and a default
// config.yaml when none exists.
//
// .diet-tracker/
// ├── config.yaml
// └── logs/
func InitDataDir(projectDir string) error {
	dataDir := filepath.Join(projectDir, DataDir)
	if err := os.MkdirAll(filepath.Join(dataDir, "logs"), 0o755); err != nil {
		return fmt.Errorf("config: ensure data dir: %w", err)
	}
	return ensureProjectConfig(filepath.Join(dataDir, "config.yaml"))
}

// NewConfig loads project settings, then applies .env and environment
// overrides.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:     projectDir,
		DataProjectDir: filepath.Join(projectDir, DataDir),
		Project:        defaultProjectConfig(),
	}
	if err := loadDotEnv(projectDir); err != nil {
		return nil, err
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	if err := cfg.Project.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	loc, err := loadLocation(cfg.Project.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.location = loc
	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataProjectDir, "logs")
}

// LogPath returns the tracker log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.LogsDir(), "tracker.log")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.DataProjectDir, "config.yaml")
}

// CatalogPath returns the resolved catalog path, or "" for the built-in catalog.
func (c *Config) CatalogPath() string {
	return c.Project.Catalog.Path
}

// SetCatalogPath points the config at a different catalog, resolving
// relative paths against the project.
func (c *Config) SetCatalogPath(path string) {
	c.Project.Catalog.Path = resolvePath(c.ProjectDir, path)
}

// Location returns the time zone used to decide "today".
func (c *Config) Location() *time.Location {
	if c == nil || c.location == nil {
		return time.Local
	}
	return c.location
}

// ShowLog reports whether the log panel should render.
func (c *Config) ShowLog() bool {
	return c.Project.Display.ShowLog && c.Project.Display.LogLines > 0
}

// LogLines is how many log entries the log panel shows.
func (c *Config) LogLines() int {
	return c.Project.Display.LogLines
}

// LoadCatalog reads the configured catalog, falling back to the built-in one.
func LoadCatalog(c *Config) (catalog.Catalog, error) {
	if c == nil || strings.TrimSpace(c.CatalogPath()) == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.Load(c.CatalogPath())
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("config: load catalog: %w", err)
	}
	return cat, nil
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	parsed := defaultProjectConfig()
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize(c.ProjectDir)
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func (c *Config) applyEnv() {
	if value := strings.TrimSpace(os.Getenv(EnvCatalog)); value != "" {
		c.Project.Catalog.Path = resolvePath(c.ProjectDir, value)
	}
	if value := strings.TrimSpace(os.Getenv(EnvTimezone)); value != "" {
		c.Project.Timezone = value
	}
}

// loadDotEnv reads ProjectDir/.env without overriding variables that are
// already set. A missing file is fine.
func loadDotEnv(projectDir string) error {
	path := filepath.Join(projectDir, ".env")
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Display: DisplayConfig{
			ShowLog:  true,
			LogLines: defaultLogLines,
		},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
}

func (pc *ProjectConfig) normalize(base string) {
	pc.Catalog.Path = resolvePath(base, pc.Catalog.Path)
	pc.Timezone = strings.TrimSpace(pc.Timezone)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if pc.Display.LogLines < 0 {
		return fmt.Errorf("display.log_lines must be >= 0")
	}
	if _, err := loadLocation(pc.Timezone); err != nil {
		return err
	}
	return nil
}

func loadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", name, err)
	}
	return loc, nil
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0644)
}
