package models

// UncategorizedCategory is the category assigned to menu items appearing
// before any detected section header.
const UncategorizedCategory = "Uncategorized"

// MenuItem is one dish recovered from raw menu text by the menu scanner.
// Price is nil when no price could be parsed from the source lines.
type MenuItem struct {
	Name        string   `json:"name"`
	Price       *float64 `json:"price"`
	Category    string   `json:"category"`
	Description string   `json:"description,omitempty"`
	Allergens   []string `json:"allergens"`
	DietaryInfo []string `json:"dietary_info"`
}

// HasAllergen reports whether the item was tagged with the given allergen.
func (m *MenuItem) HasAllergen(allergen string) bool {
	for _, a := range m.Allergens {
		if a == allergen {
			return true
		}
	}
	return false
}
