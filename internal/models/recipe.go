// Package models defines the domain types for Mise.
package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DefaultServings is assumed when an imported recipe carries no serving count.
const DefaultServings = 4

// IngredientLine is one normalized ingredient entry of a canonical recipe.
//
// Raw preserves the source phrasing ("2 cups flour, sifted") and is always
// non-empty once a line has been produced. Quantity is nil when the source
// carried no parseable amount ("salt to taste") — absence is explicit, never
// zero.
type IngredientLine struct {
	Raw         string   `json:"raw"`
	Ingredient  string   `json:"ingredient"`
	Quantity    *float64 `json:"quantity,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	Preparation string   `json:"preparation,omitempty"`
	Component   string   `json:"component,omitempty"`
}

// Qty is a convenience constructor for optional quantities.
func Qty(v float64) *float64 { return &v }

// Recipe is the canonical, format-independent recipe representation produced
// by the importer and consumed by every export path.
type Recipe struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description,omitempty"`
	Ingredients  []IngredientLine `json:"ingredients"`
	Instructions []string         `json:"instructions"`
	Servings     int              `json:"servings"`
	Category     string           `json:"category,omitempty"`
	Cuisine      string           `json:"cuisine,omitempty"`
	Difficulty   string           `json:"difficulty,omitempty"`
	PrepTime     int              `json:"prep_time"`
	CookTime     int              `json:"cook_time"`
	TotalTime    int              `json:"total_time"`
	Tags         []string         `json:"tags,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	SourceFile   string           `json:"source_file,omitempty"`
	SourceFormat string           `json:"source_format,omitempty"`
	ImportSource string           `json:"import_source,omitempty"`
	IsComplete   bool             `json:"is_complete"`
}

// Validate checks the invariants a canonical recipe must satisfy.
func (r *Recipe) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Servings, validation.Min(1)),
		validation.Field(&r.PrepTime, validation.Min(0)),
		validation.Field(&r.CookTime, validation.Min(0)),
		validation.Field(&r.TotalTime, validation.Min(0)),
	)
}

// Finalize fills derived fields: TotalTime defaults to PrepTime+CookTime when
// not independently supplied, and IsComplete is true iff both ingredients and
// instructions are non-empty.
func (r *Recipe) Finalize() {
	if r.Servings <= 0 {
		r.Servings = DefaultServings
	}
	if r.TotalTime == 0 {
		r.TotalTime = r.PrepTime + r.CookTime
	}
	r.IsComplete = len(r.Ingredients) > 0 && len(r.Instructions) > 0
}

// RecipeSummary is a lightweight representation returned by list operations.
type RecipeSummary struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Title     string    `json:"title"`
	Category  string    `json:"category,omitempty"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FileMetadata describes one importable file in the pantry.
type FileMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}
