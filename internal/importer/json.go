package importer

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/starford/mise/internal/extract"
	"github.com/starford/mise/internal/models"
	"github.com/starford/mise/internal/timetext"
	"github.com/starford/mise/internal/units"
)

// importJSON decodes data and maps every located recipe node through the
// canonical normalizer. Records without a title are dropped, not errors.
func (imp *Importer) importJSON(filename string, data []byte) ([]models.Recipe, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("importer: invalid JSON in %s: %w", filename, err)
	}

	nodes := locateRecipeNodes(doc)
	if len(nodes) == 0 {
		return nil, fmt.Errorf("importer: no recipes found in %s", filename)
	}

	var out []models.Recipe
	for _, node := range nodes {
		r := normalizeRecipe(node)
		if r == nil {
			continue
		}
		imp.stamp(r, filename, "json")
		out = append(out, *r)
	}
	return out, nil
}

// locateRecipeNodes applies the shape-sniffing rules in priority order: the
// document itself as an array, then the recipes/items/data/recipe wrapper
// keys, then the whole document as a single recipe. The first rule that
// produces nodes wins.
func locateRecipeNodes(doc any) []map[string]any {
	switch d := doc.(type) {
	case []any:
		return onlyMaps(d)
	case map[string]any:
		for _, key := range []string{"recipes", "items", "data"} {
			if arr, ok := d[key].([]any); ok {
				if nodes := onlyMaps(arr); len(nodes) > 0 {
					return nodes
				}
			}
		}
		if single, ok := d["recipe"].(map[string]any); ok {
			return []map[string]any{single}
		}
		return []map[string]any{d}
	}
	return nil
}

func onlyMaps(arr []any) []map[string]any {
	var out []map[string]any
	for _, v := range arr {
		if m, ok := v.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// normalizeRecipe maps a loosely structured node to a canonical recipe.
// Returns nil when the node has no usable title (callers filter).
func normalizeRecipe(node map[string]any) *models.Recipe {
	title := firstString(node, "title", "name")
	if title == "" {
		return nil
	}

	r := &models.Recipe{
		Title:        title,
		Description:  firstString(node, "description", "summary"),
		Ingredients:  extract.Ingredients(node),
		Instructions: extract.Instructions(node),
		Servings:     intField(node, "servings", "yield", "recipeYield"),
		Category:     firstString(node, "category", "recipeCategory"),
		Cuisine:      firstString(node, "cuisine", "recipeCuisine"),
		Difficulty:   firstString(node, "difficulty"),
		PrepTime:     minutesField(node, "prepTime", "prep_time"),
		CookTime:     minutesField(node, "cookTime", "cook_time"),
		TotalTime:    minutesField(node, "totalTime", "total_time"),
		Tags:         stringList(node, "tags", "keywords"),
		ID:           firstString(node, "id"),
	}
	if ts := firstString(node, "created_at", "createdAt", "datePublished"); ts != "" {
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			r.CreatedAt = parsed
		}
	}
	return r
}

func firstString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok {
			if t := strings.TrimSpace(s); t != "" {
				return t
			}
		}
	}
	return ""
}

func intField(m map[string]any, keys ...string) int {
	for _, key := range keys {
		switch v := m[key].(type) {
		case float64:
			return int(math.Round(v))
		case string:
			if q, ok := units.ParseQuantity(v); ok {
				return int(math.Round(q))
			}
		}
	}
	return 0
}

func minutesField(m map[string]any, keys ...string) int {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			if mins := timetext.Minutes(v); mins > 0 {
				return mins
			}
		}
	}
	return 0
}

func stringList(m map[string]any, keys ...string) []string {
	for _, key := range keys {
		switch v := m[key].(type) {
		case []any:
			var out []string
			for _, item := range v {
				if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
					out = append(out, strings.TrimSpace(s))
				}
			}
			if len(out) > 0 {
				return out
			}
		case string:
			if t := strings.TrimSpace(v); t != "" {
				parts := strings.Split(t, ",")
				var out []string
				for _, p := range parts {
					if pt := strings.TrimSpace(p); pt != "" {
						out = append(out, pt)
					}
				}
				return out
			}
		}
	}
	return nil
}
