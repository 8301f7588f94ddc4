package units

import "strings"

// gramsPerUnit is the single source of truth for weight conversion. Cup
// weights differ by what is being measured, so cups are stored per category
// and resolved through resolveUnit. Milliliters are treated as grams, which
// is exact for water and close enough for doughs and batters.
var gramsPerUnit = map[string]float64{
	"g":          1,
	"kg":         1000,
	"oz":         28.35,
	"lb":         453.59,
	"ml":         1,
	"l":          1000,
	"tbsp":       15,
	"tsp":        5,
	"cup_flour":  120,
	"cup_sugar":  200,
	"cup_butter": 227,
	"cup_liquid": 240,
}

// unitAliases folds common spellings onto table keys.
var unitAliases = map[string]string{
	"gram":        "g",
	"grams":       "g",
	"kilogram":    "kg",
	"kilograms":   "kg",
	"ounce":       "oz",
	"ounces":      "oz",
	"pound":       "lb",
	"pounds":      "lb",
	"lbs":         "lb",
	"milliliter":  "ml",
	"milliliters": "ml",
	"liter":       "l",
	"liters":      "l",
	"tablespoon":  "tbsp",
	"tablespoons": "tbsp",
	"teaspoon":    "tsp",
	"teaspoons":   "tsp",
	"cups":        "cup",
}

// resolveUnit normalizes a unit token and resolves context-dependent cups
// against the ingredient category. Unknown units resolve to "" .
func resolveUnit(unit, category string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	if alias, ok := unitAliases[u]; ok {
		u = alias
	}
	if u == "cup" {
		switch strings.ToLower(category) {
		case "flour":
			u = "cup_flour"
		case "sugar":
			u = "cup_sugar"
		case "butter", "fat":
			u = "cup_butter"
		default:
			u = "cup_liquid"
		}
	}
	if _, ok := gramsPerUnit[u]; !ok {
		return ""
	}
	return u
}

// ToGrams converts amount in the given unit to grams. ok is false when the
// unit is not in the conversion table; callers are expected to keep the
// original value rather than fail.
func ToGrams(amount float64, unit, category string) (float64, bool) {
	u := resolveUnit(unit, category)
	if u == "" {
		return amount, false
	}
	return amount * gramsPerUnit[u], true
}

// FromGrams converts grams back to the given unit. Round-tripping through
// the same unit is exact; cross-unit rounding is not guaranteed.
func FromGrams(grams float64, unit, category string) (float64, bool) {
	u := resolveUnit(unit, category)
	if u == "" {
		return grams, false
	}
	return grams / gramsPerUnit[u], true
}
