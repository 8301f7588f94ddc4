package internal

import (
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/mise/internal/menuscan"
)

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	Pantry PantryConfig      `yaml:"pantry"`
	SQLite SQLiteConfig      `yaml:"sqlite"`
	Menu   MenuConfig        `yaml:"menu"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Pantry.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	return c.Menu.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// PantryConfig holds the path to the recipe pantry directory.
type PantryConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the pantry configuration.
func (c *PantryConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// MenuConfig holds the tunable heuristics of the menu scanner.
type MenuConfig struct {
	AutoCategorize      bool    `yaml:"auto_categorize"`
	MaxDescriptionLines int     `yaml:"max_description_lines"`
	CategoryMaxLen      int     `yaml:"category_max_len"`
	UppercaseRatio      float64 `yaml:"uppercase_ratio"`
	ShortLineLen        int     `yaml:"short_line_len"`
}

// Validate validates the menu scanner configuration.
func (c *MenuConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.MaxDescriptionLines, validation.Required, validation.Min(1)),
		validation.Field(&c.CategoryMaxLen, validation.Required, validation.Min(1)),
		validation.Field(&c.UppercaseRatio, validation.Required, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&c.ShortLineLen, validation.Required, validation.Min(1)),
	)
}

// Options converts the configuration into scanner options.
func (c *MenuConfig) Options() menuscan.Options {
	return menuscan.Options{
		AutoCategorize:      c.AutoCategorize,
		MaxDescriptionLines: c.MaxDescriptionLines,
		CategoryMaxLen:      c.CategoryMaxLen,
		UppercaseRatio:      c.UppercaseRatio,
		ShortLineLen:        c.ShortLineLen,
	}
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	scan := menuscan.DefaultOptions()
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Pantry: PantryConfig{
			Path: "./pantry",
		},
		SQLite: SQLiteConfig{
			Path: "./mise.db",
		},
		Menu: MenuConfig{
			AutoCategorize:      scan.AutoCategorize,
			MaxDescriptionLines: scan.MaxDescriptionLines,
			CategoryMaxLen:      scan.CategoryMaxLen,
			UppercaseRatio:      scan.UppercaseRatio,
			ShortLineLen:        scan.ShortLineLen,
		},
	}
}
