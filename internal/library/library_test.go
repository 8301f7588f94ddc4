package library

import (
	"errors"
	"os"
	"testing"

	"github.com/starford/mise/internal/apperr"
	"github.com/starford/mise/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "mise-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleRecipe(id, title, category string) models.Recipe {
	r := models.Recipe{
		ID:       id,
		Title:    title,
		Category: category,
		Ingredients: []models.IngredientLine{
			{Raw: "2 cups flour", Ingredient: "flour", Quantity: models.Qty(2), Unit: "cups"},
		},
		Instructions: []string{"Mix everything."},
	}
	r.Finalize()
	return r
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM sources`).Scan(&count); err != nil {
		t.Fatalf("sources table missing: %v", err)
	}
	if err := db.conn.QueryRow(`SELECT count(*) FROM recipes`).Scan(&count); err != nil {
		t.Fatalf("recipes table missing: %v", err)
	}
}

func TestReplaceSourceAndGetChecksum(t *testing.T) {
	db := testDB(t)
	if err := db.ReplaceSource("soup.json", "abc123", []models.Recipe{sampleRecipe("r1", "Tomato Soup", "Soups")}); err != nil {
		t.Fatalf("ReplaceSource: %v", err)
	}
	cs, err := db.GetChecksum("soup.json")
	if err != nil {
		t.Fatalf("GetChecksum: %v", err)
	}
	if cs != "abc123" {
		t.Errorf("checksum = %q, want %q", cs, "abc123")
	}
}

func TestReplaceSourceSwapsRecipes(t *testing.T) {
	db := testDB(t)
	_ = db.ReplaceSource("multi.json", "1", []models.Recipe{
		sampleRecipe("r1", "First", ""),
		sampleRecipe("r2", "Second", ""),
	})
	// Re-import yields only one recipe; the stale row must go.
	_ = db.ReplaceSource("multi.json", "2", []models.Recipe{sampleRecipe("r3", "Third", "")})

	if _, err := db.GetRecipe("r1"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("stale recipe r1 still present: %v", err)
	}
	if _, err := db.GetRecipe("r3"); err != nil {
		t.Errorf("GetRecipe(r3): %v", err)
	}
	_, total, err := db.ListRecipes(10, 0, "", "")
	if err != nil {
		t.Fatalf("ListRecipes: %v", err)
	}
	if total != 1 {
		t.Errorf("total = %d, want 1", total)
	}
}

func TestDeleteSource(t *testing.T) {
	db := testDB(t)
	_ = db.ReplaceSource("del.json", "x", []models.Recipe{sampleRecipe("r1", "Bye", "")})

	if err := db.DeleteSource("del.json"); err != nil {
		t.Fatalf("DeleteSource: %v", err)
	}
	cs, _ := db.GetChecksum("del.json")
	if cs != "" {
		t.Errorf("deleted source still has checksum %q", cs)
	}
	if _, err := db.GetRecipe("r1"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("recipe should be gone with its source: %v", err)
	}
}

func TestGetChecksum_NotFound(t *testing.T) {
	db := testDB(t)
	cs, err := db.GetChecksum("nonexistent.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cs != "" {
		t.Errorf("expected empty checksum, got %q", cs)
	}
}

func TestGetRecipe_RoundTrip(t *testing.T) {
	db := testDB(t)
	src := sampleRecipe("r1", "Pancakes", "Breakfast")
	src.Tags = []string{"quick", "sweet"}
	_ = db.ReplaceSource("p.json", "1", []models.Recipe{src})

	got, err := db.GetRecipe("r1")
	if err != nil {
		t.Fatalf("GetRecipe: %v", err)
	}
	if got.Title != "Pancakes" || len(got.Ingredients) != 1 || len(got.Tags) != 2 {
		t.Errorf("round trip drift: %+v", got)
	}
	if got.Ingredients[0].Quantity == nil || *got.Ingredients[0].Quantity != 2 {
		t.Errorf("quantity = %v", got.Ingredients[0].Quantity)
	}
}

func TestListRecipes_FilterAndSort(t *testing.T) {
	db := testDB(t)
	_ = db.ReplaceSource("a.json", "1", []models.Recipe{
		sampleRecipe("r1", "Zucchini Bake", "Main Courses"),
		sampleRecipe("r2", "Apple Pie", "Desserts"),
		sampleRecipe("r3", "Brownies", "Desserts"),
	})

	desserts, total, err := db.ListRecipes(10, 0, "Desserts", "title")
	if err != nil {
		t.Fatalf("ListRecipes: %v", err)
	}
	if total != 2 || len(desserts) != 2 {
		t.Fatalf("total = %d len = %d, want 2/2", total, len(desserts))
	}
	if desserts[0].Title != "Apple Pie" || desserts[1].Title != "Brownies" {
		t.Errorf("title sort order wrong: %+v", desserts)
	}

	page, total, err := db.ListRecipes(2, 2, "", "title")
	if err != nil {
		t.Fatalf("ListRecipes page: %v", err)
	}
	if total != 3 || len(page) != 1 {
		t.Errorf("pagination: total = %d len = %d, want 3/1", total, len(page))
	}
}

func TestSearch_Basic(t *testing.T) {
	db := testDB(t)
	r := sampleRecipe("r1", "Search Me", "")
	r.Instructions = []string{"uniqueword appears here"}
	_ = db.ReplaceSource("s.json", "1", []models.Recipe{r})

	results, err := db.Search("uniqueword", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].ID != "r1" {
		t.Errorf("search results = %+v, want 1 hit for r1", results)
	}
}
