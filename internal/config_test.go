package internal

import (
	"testing"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should pass: %v", err)
	}
}

func TestPantryConfig_PathRequired(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Pantry.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty pantry path should fail validation")
	}
}

func TestSQLiteConfig_PathRequired(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.SQLite.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty sqlite path should fail validation")
	}
}

func TestMenuConfig_RatioBounds(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Menu.UppercaseRatio = 1.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("uppercase ratio above 1 should fail validation")
	}
}

func TestMenuConfig_Options(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Menu.AutoCategorize = false
	cfg.Menu.MaxDescriptionLines = 5

	opts := cfg.Menu.Options()
	if opts.AutoCategorize {
		t.Error("auto categorize should carry over")
	}
	if opts.MaxDescriptionLines != 5 {
		t.Errorf("max description lines = %d, want 5", opts.MaxDescriptionLines)
	}
}

func TestFullConfig_MenuValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Menu.MaxDescriptionLines = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch menu error")
	}
}
