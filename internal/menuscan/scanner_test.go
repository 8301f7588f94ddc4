package menuscan

import (
	"strings"
	"testing"
)

const sampleMenu = `APPETIZERS
Bruschetta - $8.99
Fresh tomatoes on toasted bread with basil
MAIN COURSES
Grilled Salmon  $24.99
Served with lemon butter sauce
`

func TestParse_SampleMenu(t *testing.T) {
	items := New(DefaultOptions()).Parse(sampleMenu)
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}

	b := items[0]
	if b.Name != "Bruschetta" {
		t.Errorf("name = %q", b.Name)
	}
	if b.Price == nil || *b.Price != 8.99 {
		t.Errorf("price = %v, want 8.99", b.Price)
	}
	if b.Category != "Appetizers" {
		t.Errorf("category = %q, want Appetizers", b.Category)
	}
	if b.Description != "Fresh tomatoes on toasted bread with basil" {
		t.Errorf("description = %q", b.Description)
	}

	s := items[1]
	if s.Name != "Grilled Salmon" {
		t.Errorf("name = %q", s.Name)
	}
	if s.Price == nil || *s.Price != 24.99 {
		t.Errorf("price = %v, want 24.99", s.Price)
	}
	if s.Category != "Main Courses" {
		t.Errorf("category = %q, want Main Courses", s.Category)
	}
	if s.Description != "Served with lemon butter sauce" {
		t.Errorf("description = %q", s.Description)
	}
	// "salmon" is not in the fish keyword list; only a literal "fish" hit
	// would tag the allergen.
	if len(s.Allergens) != 0 {
		t.Errorf("allergens = %v, want none", s.Allergens)
	}
	if len(s.DietaryInfo) != 0 {
		t.Errorf("dietary = %v, want none", s.DietaryInfo)
	}
}

func TestParse_ContinuationCap(t *testing.T) {
	menu := strings.Join([]string{
		"Pasta Primavera $12.00",
		"served with garden vegetables one",
		"tossed in a light olive oil two",
		"garnished with parmesan three",
		"topped with fresh basil four",
		"drizzled with truffle oil five",
	}, "\n")

	items := New(DefaultOptions()).Parse(menu)
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	desc := items[0].Description
	if !strings.HasSuffix(desc, "three") {
		t.Errorf("description should stop after 3 continuation lines, got %q", desc)
	}
	if strings.Contains(desc, "four") || strings.Contains(desc, "five") {
		t.Errorf("4th+ continuation lines must be dropped, got %q", desc)
	}
	if strings.Count(desc, " ") < 2 {
		t.Errorf("continuations joined with single spaces, got %q", desc)
	}
}

func TestParse_HeaderShapes(t *testing.T) {
	cases := []struct {
		line string
		want string
	}{
		{"# Desserts", "Desserts"},
		{"--- SOUPS ---", "Soups"},
		{"**Salads**", "Salads"},
		{"== BEVERAGES ==", "Beverages"},
		{"<Pizza>", "Pizza"},
		{"[Breakfast]", "Breakfast"},
		{"• SIDES", "Sides"},
		{"Cocktails:", "Cocktails"},
		{"SEAFOOD", "Seafood"},
	}
	s := New(DefaultOptions())
	for _, c := range cases {
		got, ok := s.categoryHeader(c.line)
		if !ok || got != c.want {
			t.Errorf("categoryHeader(%q) = %q, %v, want %q", c.line, got, ok, c.want)
		}
	}
}

func TestParse_HeaderNeverAnItem(t *testing.T) {
	items := New(DefaultOptions()).Parse("DESSERTS\nTiramisu $7.50\n")
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].Name != "Tiramisu" || items[0].Category != "Desserts" {
		t.Errorf("item = %+v", items[0])
	}
}

func TestParse_UnknownHeaderHeuristic(t *testing.T) {
	s := New(DefaultOptions())
	if _, ok := s.categoryHeader("HOUSE FAVORITES"); !ok {
		t.Error("short all-caps line should look like a category")
	}
	if _, ok := s.categoryHeader("Bruschetta with extra toppings and things:"); ok {
		t.Error("long mixed-case line must not be a category")
	}
}

func TestParse_CurrencyFormats(t *testing.T) {
	cases := []struct {
		line string
		want float64
	}{
		{"Fish & Chips £9.50", 9.5},
		{"Schnitzel 12,50 €", 12.5},
		{"Ramen ¥1200", 1200},
		{"Curry ₹350", 350},
		{"Steak 25 dollars", 25},
		{"Bibimbap 9000 won", 9000},
	}
	for _, c := range cases {
		got, ok := parsePrice(c.line)
		if !ok || got != c.want {
			t.Errorf("parsePrice(%q) = %v, %v, want %v", c.line, got, ok, c.want)
		}
	}
}

func TestParse_BulletItems(t *testing.T) {
	items := New(DefaultOptions()).Parse("• Caesar Salad $10\n- Greek Salad $11\n")
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Name != "Caesar Salad" || items[1].Name != "Greek Salad" {
		t.Errorf("names = %q, %q", items[0].Name, items[1].Name)
	}
}

func TestParse_PriceOnNextLine(t *testing.T) {
	items := New(DefaultOptions()).Parse("Margherita Pizza\n$14.00\n")
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1: %+v", len(items), items)
	}
	if items[0].Name != "Margherita Pizza" {
		t.Errorf("name = %q", items[0].Name)
	}
	if items[0].Price == nil || *items[0].Price != 14 {
		t.Errorf("price = %v, want 14", items[0].Price)
	}
}

func TestFinalize_DietaryAndAllergens(t *testing.T) {
	menu := "Vegan Buddha Bowl (GF) $13\nwith tofu, edamame and almond dressing\n"
	items := New(DefaultOptions()).Parse(menu)
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	it := items[0]
	if !hasString(it.DietaryInfo, "vegan") || !hasString(it.DietaryInfo, "gluten-free") {
		t.Errorf("dietary = %v", it.DietaryInfo)
	}
	if !hasString(it.Allergens, "soy") || !hasString(it.Allergens, "nuts") {
		t.Errorf("allergens = %v", it.Allergens)
	}
}

func TestFinalize_AutoCategory(t *testing.T) {
	items := New(DefaultOptions()).Parse("Lobster Bisque $9.00\n")
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	// "Soups" wins over "Seafood": rules are ordered, first match wins.
	if items[0].Category != "Soups" {
		t.Errorf("category = %q, want Soups", items[0].Category)
	}

	off := DefaultOptions()
	off.AutoCategorize = false
	items = New(off).Parse("Lobster Bisque $9.00\n")
	if items[0].Category != "Uncategorized" {
		t.Errorf("category = %q, want Uncategorized when auto-categorize is off", items[0].Category)
	}
}

func hasString(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
