//go:build sqlite_fts5

package library

import (
	"strings"
	"testing"

	"github.com/starford/mise/internal/models"
)

func TestFTS5_TableExists(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM recipes_fts`).Scan(&count); err != nil {
		t.Fatalf("recipes_fts table missing: %v", err)
	}
}

func TestFTS5_SearchWithSnippet(t *testing.T) {
	db := testDB(t)
	r := sampleRecipe("r1", "Braised Short Ribs", "Main Courses")
	r.Instructions = []string{"Braise gently until impossibly tender."}
	if err := db.ReplaceSource("ribs.json", "f1", []models.Recipe{r}); err != nil {
		t.Fatalf("ReplaceSource: %v", err)
	}

	results, err := db.Search("impossibly", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].ID != "r1" {
		t.Errorf("id = %q", results[0].ID)
	}
	if !strings.Contains(results[0].Snippet, "<b>") {
		t.Errorf("snippet missing highlight markers: %q", results[0].Snippet)
	}
}

func TestFTS5_DeleteSourceRemovesFromFTS(t *testing.T) {
	db := testDB(t)
	r := sampleRecipe("r1", "Gone Soon", "")
	r.Instructions = []string{"vanishing content"}
	_ = db.ReplaceSource("gone.json", "g", []models.Recipe{r})
	_ = db.DeleteSource("gone.json")

	results, err := db.Search("vanishing", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected 0 results after delete, got %d", len(results))
	}
}
