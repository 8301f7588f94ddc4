package importer

import (
	"errors"
	"strings"
	"testing"

	"github.com/starford/mise/internal/textdetect"
)

func newTestImporter() *Importer {
	return New(textdetect.New())
}

func TestImport_UnknownExtension(t *testing.T) {
	_, err := newTestImporter().Import("recipe.xyz", []byte("data"))
	if err == nil {
		t.Fatal("expected error for unknown extension")
	}
	var ufe *UnsupportedFormatError
	if !errors.As(err, &ufe) {
		t.Fatalf("error type = %T", err)
	}
	if !strings.Contains(err.Error(), "xyz") {
		t.Errorf("error should name the extension: %v", err)
	}
}

func TestImport_JSONWrappedRecipes(t *testing.T) {
	data := []byte(`{"recipes":[{"title":"X","ingredients":["1 g Salt"]}]}`)
	recipes, err := newTestImporter().Import("data.json", data)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(recipes) != 1 {
		t.Fatalf("len = %d, want 1", len(recipes))
	}
	r := recipes[0]
	if r.Title != "X" {
		t.Errorf("title = %q", r.Title)
	}
	if len(r.Ingredients) != 1 {
		t.Fatalf("ingredients = %d, want 1", len(r.Ingredients))
	}
	ing := r.Ingredients[0]
	if ing.Quantity == nil || *ing.Quantity != 1 || ing.Unit != "g" || ing.Ingredient != "Salt" {
		t.Errorf("ingredient = %+v", ing)
	}
	if r.ID == "" {
		t.Error("imported recipe must get a generated id")
	}
	if r.SourceFormat != "json" {
		t.Errorf("source format = %q", r.SourceFormat)
	}
}

func TestImport_JSONShapeSniffing(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"top-level array", `[{"title":"A","ingredients":["salt"]}]`},
		{"items key", `{"items":[{"title":"A","ingredients":["salt"]}]}`},
		{"data key", `{"data":[{"title":"A","ingredients":["salt"]}]}`},
		{"single wrapped", `{"recipe":{"title":"A","ingredients":["salt"]}}`},
		{"whole document", `{"title":"A","ingredients":["salt"]}`},
	}
	for _, c := range cases {
		recipes, err := newTestImporter().Import("f.json", []byte(c.doc))
		if err != nil {
			t.Errorf("%s: %v", c.name, err)
			continue
		}
		if len(recipes) != 1 || recipes[0].Title != "A" {
			t.Errorf("%s: recipes = %+v", c.name, recipes)
		}
	}
}

func TestImport_JSONInvalid(t *testing.T) {
	if _, err := newTestImporter().Import("bad.json", []byte("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestImport_JSONUntitledDropped(t *testing.T) {
	data := []byte(`{"recipes":[{"title":"Good","ingredients":["salt"]},{"ingredients":["pepper"]}]}`)
	recipes, err := newTestImporter().Import("data.json", data)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(recipes) != 1 || recipes[0].Title != "Good" {
		t.Errorf("untitled record must be silently dropped, got %+v", recipes)
	}
}

func TestImport_JSONTimes(t *testing.T) {
	data := []byte(`{"title":"Bread","ingredients":["flour"],"instructions":["Bake."],"prepTime":"PT20M","cookTime":"1 hour"}`)
	recipes, err := newTestImporter().Import("bread.json", data)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	r := recipes[0]
	if r.PrepTime != 20 || r.CookTime != 60 {
		t.Errorf("times = %d/%d, want 20/60", r.PrepTime, r.CookTime)
	}
	if r.TotalTime != 80 {
		t.Errorf("total = %d, want prep+cook", r.TotalTime)
	}
	if !r.IsComplete {
		t.Error("recipe with ingredients and instructions must be complete")
	}
}

func TestImport_Text(t *testing.T) {
	text := []byte(`Tomato Soup
A simple soup.

Ingredients:
- 2 cups tomatoes
- 1 tsp salt

Instructions:
1. Simmer tomatoes.
2. Season.
`)
	recipes, err := newTestImporter().Import("soup.txt", text)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(recipes) != 1 {
		t.Fatalf("len = %d, want 1", len(recipes))
	}
	r := recipes[0]
	if r.Title != "Tomato Soup" || len(r.Ingredients) != 2 || len(r.Instructions) != 2 {
		t.Errorf("recipe = %+v", r)
	}
	if r.Servings != 4 {
		t.Errorf("servings = %d, want default 4", r.Servings)
	}
}

func TestImport_CSVIngredientFallback(t *testing.T) {
	data := []byte("ingredient,amount\n2 cups flour\n1 tsp salt\n")
	recipes, err := newTestImporter().Import("pie_dough.csv", data)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(recipes) != 1 {
		t.Fatalf("len = %d, want 1", len(recipes))
	}
	r := recipes[0]
	if r.Title != "pie dough" {
		t.Errorf("title = %q, want file-derived name", r.Title)
	}
	if len(r.Ingredients) != 2 {
		t.Errorf("ingredients = %d, want 2", len(r.Ingredients))
	}
	if r.IsComplete {
		t.Error("ingredient-only recipe must not be complete")
	}
}

func TestImport_Idempotent(t *testing.T) {
	data := []byte(`{"recipes":[{
		"id": "fixed-id",
		"title": "Pancakes",
		"ingredients": [
			{"raw": "2 cups flour, sifted", "ingredient": "flour", "quantity": 2, "unit": "cups", "preparation": "sifted"}
		],
		"instructions": ["Mix.", "Fry."],
		"servings": 2,
		"prep_time": 10,
		"cook_time": 15,
		"tags": ["breakfast"]
	}]}`)

	first, err := newTestImporter().Import("p.json", data)
	if err != nil {
		t.Fatalf("first import: %v", err)
	}
	second, err := newTestImporter().Import("p.json", data)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}

	a, b := first[0], second[0]
	if a.ID != "fixed-id" || a.ID != b.ID {
		t.Errorf("ids = %q, %q", a.ID, b.ID)
	}
	if a.Title != b.Title || a.Servings != b.Servings || a.TotalTime != b.TotalTime {
		t.Error("scalar field drift between imports")
	}
	if len(a.Ingredients) != len(b.Ingredients) {
		t.Fatal("ingredient drift")
	}
	ia, ib := a.Ingredients[0], b.Ingredients[0]
	if ia.Raw != ib.Raw || ia.Ingredient != ib.Ingredient || ia.Preparation != ib.Preparation {
		t.Errorf("ingredient drift: %+v vs %+v", ia, ib)
	}
	if ia.Raw != "2 cups flour, sifted" || ia.Preparation != "sifted" {
		t.Errorf("canonical fields not preserved: %+v", ia)
	}
}
