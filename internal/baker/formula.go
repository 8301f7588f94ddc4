// Package baker maintains a baker's-percentage formula: every ingredient's
// weight expressed relative to a base ingredient at 100%. The formula is a
// user-facing editing tool, so unknown names, units, and scaling modes
// degrade with a logged warning instead of failing.
package baker

import (
	"log/slog"
	"strings"

	"github.com/starford/mise/internal/units"
)

// Ingredient is one entry of a formula.
type Ingredient struct {
	Name           string  `json:"name"`
	OriginalAmount float64 `json:"original_amount"`
	OriginalUnit   string  `json:"original_unit"`
	WeightInGrams  float64 `json:"weight_in_grams"`
	Percentage     float64 `json:"percentage"`
	Category       string  `json:"category,omitempty"`
	IsBase         bool    `json:"is_base"`
}

// Formula owns its ingredient map exclusively. Insertion order is kept for
// export; it plays no role in computation.
type Formula struct {
	ingredients map[string]*Ingredient
	order       []string
	base        string
	log         *slog.Logger
}

// NewFormula creates an empty formula. A nil logger falls back to the
// default slog logger.
func NewFormula(log *slog.Logger) *Formula {
	if log == nil {
		log = slog.Default()
	}
	return &Formula{
		ingredients: make(map[string]*Ingredient),
		log:         log,
	}
}

// SetBase stores name as the 100% reference and recomputes every other
// ingredient's percentage against it. At most one ingredient is the base at
// any time.
func (f *Formula) SetBase(name string, amount float64, unit string) {
	grams, ok := units.ToGrams(amount, unit, categoryForName(name))
	if !ok {
		f.log.Warn("baker: unknown unit, treating amount as grams",
			slog.String("ingredient", name), slog.String("unit", unit))
	}

	if prev, exists := f.ingredients[f.base]; exists {
		prev.IsBase = false
	}

	f.upsert(&Ingredient{
		Name:           name,
		OriginalAmount: amount,
		OriginalUnit:   unit,
		WeightInGrams:  grams,
		Percentage:     100,
		Category:       categoryForName(name),
		IsBase:         true,
	})
	f.base = name
	f.recompute()
}

// Add inserts an ingredient and computes its percentage against the base.
// Without a base the percentage is 0, which is a valid state, not an error.
func (f *Formula) Add(name string, amount float64, unit, category string) {
	if category == "" {
		category = categoryForName(name)
	}
	grams, ok := units.ToGrams(amount, unit, category)
	if !ok {
		f.log.Warn("baker: unknown unit, treating amount as grams",
			slog.String("ingredient", name), slog.String("unit", unit))
	}

	f.upsert(&Ingredient{
		Name:           name,
		OriginalAmount: amount,
		OriginalUnit:   unit,
		WeightInGrams:  grams,
		Percentage:     f.percentageOf(grams),
		Category:       category,
	})
}

// UpdatePercentage recomputes an ingredient's weight from a new percentage
// and back-converts to its original unit. Unknown names are a silent no-op
// with a warning: this is an interactive operation and must never halt the
// session.
func (f *Formula) UpdatePercentage(name string, percentage float64) {
	ing, ok := f.ingredients[name]
	if !ok {
		f.log.Warn("baker: unknown ingredient", slog.String("ingredient", name))
		return
	}
	base := f.baseWeight()
	if base == 0 {
		f.log.Warn("baker: no base ingredient set", slog.String("ingredient", name))
		return
	}
	ing.Percentage = percentage
	ing.WeightInGrams = percentage / 100 * base
	if amount, ok := units.FromGrams(ing.WeightInGrams, ing.OriginalUnit, ing.Category); ok {
		ing.OriginalAmount = amount
	} else {
		ing.OriginalAmount = ing.WeightInGrams
	}
}

// Ingredient returns a copy of the named entry.
func (f *Formula) Ingredient(name string) (Ingredient, bool) {
	ing, ok := f.ingredients[name]
	if !ok {
		return Ingredient{}, false
	}
	return *ing, true
}

// Ingredients returns copies of all entries in insertion order.
func (f *Formula) Ingredients() []Ingredient {
	out := make([]Ingredient, 0, len(f.order))
	for _, name := range f.order {
		out = append(out, *f.ingredients[name])
	}
	return out
}

// BaseWeight returns the base ingredient's weight in grams, 0 when no base
// is set.
func (f *Formula) BaseWeight() float64 { return f.baseWeight() }

func (f *Formula) upsert(ing *Ingredient) {
	if _, exists := f.ingredients[ing.Name]; !exists {
		f.order = append(f.order, ing.Name)
	}
	f.ingredients[ing.Name] = ing
}

func (f *Formula) baseWeight() float64 {
	if base, ok := f.ingredients[f.base]; ok {
		return base.WeightInGrams
	}
	return 0
}

func (f *Formula) percentageOf(grams float64) float64 {
	base := f.baseWeight()
	if base == 0 {
		return 0
	}
	return grams / base * 100
}

// recompute refreshes every percentage against the current base.
func (f *Formula) recompute() {
	for _, ing := range f.ingredients {
		ing.Percentage = f.percentageOf(ing.WeightInGrams)
	}
}

// categoryForName guesses the conversion category for context-dependent
// units (a cup of flour weighs less than a cup of sugar).
func categoryForName(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "flour"):
		return "flour"
	case strings.Contains(n, "sugar"):
		return "sugar"
	case strings.Contains(n, "butter"):
		return "butter"
	default:
		return ""
	}
}
