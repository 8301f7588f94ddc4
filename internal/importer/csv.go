package importer

import (
	"encoding/csv"
	"math"
	"path/filepath"
	"strings"

	"github.com/starford/mise/internal/extract"
	"github.com/starford/mise/internal/models"
	"github.com/starford/mise/internal/timetext"
	"github.com/starford/mise/internal/units"
)

// importCSV handles three shapes of CSV input, in order: the exporter's own
// recipe-per-row layout (recognized by its header), recipe-shaped free text
// hiding in CSV lines (detector), and finally a bare ingredient list under a
// single recipe named after the file.
func (imp *Importer) importCSV(filename string, data []byte) ([]models.Recipe, error) {
	if recipes := imp.parseRecipeCSV(filename, data); len(recipes) > 0 {
		return recipes, nil
	}
	if recipes := imp.importText(filename, data, "csv"); len(recipes) > 0 {
		return recipes, nil
	}
	return []models.Recipe{imp.ingredientListFallback(filename, data)}, nil
}

// parseRecipeCSV reads the one-row-per-recipe layout written by the
// exporter: ingredients joined by ";", instructions joined by "|". Returns
// nil when the header does not match.
func (imp *Importer) parseRecipeCSV(filename string, data []byte) []models.Recipe {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil || len(rows) < 2 {
		return nil
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["title"]; !ok {
		return nil
	}
	if _, ok := cols["ingredients"]; !ok {
		return nil
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []models.Recipe
	for _, row := range rows[1:] {
		title := field(row, "title")
		if title == "" {
			continue
		}
		r := models.Recipe{
			Title:       title,
			Description: field(row, "description"),
			Category:    field(row, "category"),
			Cuisine:     field(row, "cuisine"),
			Difficulty:  field(row, "difficulty"),
			Servings:    intFromString(field(row, "servings")),
			PrepTime:    timetext.Minutes(field(row, "prep_time")),
			CookTime:    timetext.Minutes(field(row, "cook_time")),
			TotalTime:   timetext.Minutes(field(row, "total_time")),
		}
		for _, raw := range strings.Split(field(row, "ingredients"), ";") {
			if line, ok := extract.NormalizeIngredient(strings.TrimSpace(raw), ""); ok {
				r.Ingredients = append(r.Ingredients, line)
			}
		}
		for _, step := range strings.Split(field(row, "instructions"), "|") {
			if s := strings.TrimSpace(step); s != "" {
				r.Instructions = append(r.Instructions, s)
			}
		}
		if tags := field(row, "tags"); tags != "" {
			for _, tag := range strings.Split(tags, ";") {
				if t := strings.TrimSpace(tag); t != "" {
					r.Tags = append(r.Tags, t)
				}
			}
		}
		imp.stamp(&r, filename, "csv")
		out = append(out, r)
	}
	return out
}

// ingredientListFallback treats every line after the header as one
// ingredient of a single recipe named after the file.
func (imp *Importer) ingredientListFallback(filename string, data []byte) models.Recipe {
	base := filepath.Base(filename)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	r := models.Recipe{Title: strings.ReplaceAll(name, "_", " ")}
	lines := strings.Split(string(data), "\n")
	for i, raw := range lines {
		if i == 0 {
			continue // header row
		}
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		// A CSV row may carry quantity and unit in separate fields.
		line = strings.TrimSpace(strings.ReplaceAll(line, ",", " "))
		if ing, ok := extract.NormalizeIngredient(line, ""); ok {
			r.Ingredients = append(r.Ingredients, ing)
		}
	}
	imp.stamp(&r, filename, "csv")
	return r
}

func intFromString(s string) int {
	if q, ok := units.ParseQuantity(s); ok {
		return int(math.Round(q))
	}
	return 0
}
