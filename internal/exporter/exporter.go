// Package exporter serializes canonical recipes back to JSON, CSV, and
// plain-text documents. JSON is lossless; the CSV and text renderings keep
// ingredient raw lines intact so a re-import preserves every
// quantity/unit/name pairing.
package exporter

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/starford/mise/internal/models"
)

// separator divides recipes in the text rendering.
var separator = strings.Repeat("=", 50)

// jsonEnvelope is the wrapper written around a JSON export.
type jsonEnvelope struct {
	ExportedAt time.Time       `json:"exported_at"`
	Count      int             `json:"count"`
	Recipes    []models.Recipe `json:"recipes"`
}

// JSON renders recipes as a pretty-printed document with count and
// timestamp metadata.
func JSON(recipes []models.Recipe) ([]byte, error) {
	env := jsonEnvelope{
		ExportedAt: time.Now().UTC(),
		Count:      len(recipes),
		Recipes:    recipes,
	}
	out, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("exporter: marshal: %w", err)
	}
	return out, nil
}

// csvHeader is the column layout the CSV importer recognizes on re-import.
var csvHeader = []string{
	"title", "description", "servings", "category", "cuisine", "difficulty",
	"prep_time", "cook_time", "total_time", "tags", "ingredients", "instructions",
}

// CSV renders one row per recipe. Every field is quoted with internal
// quotes doubled; ingredients are joined by ";" and instructions by "|".
func CSV(recipes []models.Recipe) []byte {
	var b strings.Builder
	writeRow(&b, csvHeader)
	for _, r := range recipes {
		ingredients := make([]string, len(r.Ingredients))
		for i, ing := range r.Ingredients {
			ingredients[i] = ing.Raw
		}
		writeRow(&b, []string{
			r.Title,
			r.Description,
			fmt.Sprintf("%d", r.Servings),
			r.Category,
			r.Cuisine,
			r.Difficulty,
			fmt.Sprintf("%d", r.PrepTime),
			fmt.Sprintf("%d", r.CookTime),
			fmt.Sprintf("%d", r.TotalTime),
			strings.Join(r.Tags, ";"),
			strings.Join(ingredients, ";"),
			strings.Join(r.Instructions, "|"),
		})
	}
	return []byte(b.String())
}

func writeRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

// Text renders a numbered, human-readable document with a fixed separator
// between recipes.
func Text(recipes []models.Recipe) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "Recipe Collection (%d recipes)\n", len(recipes))
	fmt.Fprintf(&b, "Exported %s\n", time.Now().Format("2006-01-02 15:04"))

	for i, r := range recipes {
		b.WriteString(separator + "\n")
		fmt.Fprintf(&b, "%d. %s\n\n", i+1, r.Title)
		if r.Description != "" {
			b.WriteString(r.Description + "\n\n")
		}
		fmt.Fprintf(&b, "Servings: %d\n", r.Servings)
		if r.PrepTime > 0 {
			fmt.Fprintf(&b, "Prep time: %d minutes\n", r.PrepTime)
		}
		if r.CookTime > 0 {
			fmt.Fprintf(&b, "Cook time: %d minutes\n", r.CookTime)
		}
		if r.Category != "" {
			fmt.Fprintf(&b, "Category: %s\n", r.Category)
		}
		b.WriteString("\nIngredients:\n")
		for _, ing := range r.Ingredients {
			fmt.Fprintf(&b, "- %s\n", ing.Raw)
		}
		b.WriteString("\nInstructions:\n")
		for j, step := range r.Instructions {
			fmt.Fprintf(&b, "%d. %s\n", j+1, step)
		}
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
