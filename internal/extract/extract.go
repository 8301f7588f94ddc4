// Package extract recovers ordered ingredient and instruction lists from
// loosely structured recipe documents (decoded JSON of arbitrary shape, or
// plain strings). Extraction is driven by ordered key rules: the first rule
// that produces entries for a node wins, and already-consumed structure is
// never re-derived.
package extract

import (
	"fmt"
	"strings"

	"github.com/starford/mise/internal/models"
	"github.com/starford/mise/internal/units"
)

var (
	ingredientKeys  = []string{"ingredients", "recipeIngredient", "ingredientList", "items"}
	instructionKeys = []string{"instructions", "recipeInstructions", "steps", "directions", "method"}
	groupKeys       = []string{"components", "sections", "parts", "componentList"}

	rawFieldKeys  = []string{"raw", "original", "text", "line"}
	nameFieldKeys = []string{"name", "ingredient", "item"}
	textFieldKeys = []string{"text", "description", "content"}
)

// Ingredients walks node and returns every ingredient entry found beneath
// it, flattened into canonical lines in source order. Entries under a named
// grouping ("components", "sections", ...) carry the group's name as their
// component label.
func Ingredients(node any) []models.IngredientLine {
	return collectIngredients(node, "")
}

func collectIngredients(node any, component string) []models.IngredientLine {
	var out []models.IngredientLine

	switch n := node.(type) {
	case map[string]any:
		for _, key := range ingredientKeys {
			raw, ok := n[key]
			if !ok {
				continue
			}
			entries := asList(raw)
			if len(entries) == 0 {
				continue
			}
			for _, e := range entries {
				if line, ok := NormalizeIngredient(e, component); ok {
					out = append(out, line)
				}
			}
			break
		}
		out = append(out, collectGroups(n, component, collectIngredients)...)

	case []any:
		for _, item := range n {
			out = append(out, collectIngredients(item, component)...)
		}
	}
	return out
}

// Instructions walks node and returns its instruction steps in order,
// flattening arbitrarily nested arrays and objects (including schema.org
// itemListElement wrappers) and discarding empty results.
func Instructions(node any) []string {
	return collectInstructions(node, "")
}

func collectInstructions(node any, component string) []string {
	var out []string

	switch n := node.(type) {
	case map[string]any:
		for _, key := range instructionKeys {
			raw, ok := n[key]
			if !ok {
				continue
			}
			steps := flattenSteps(raw)
			if len(steps) == 0 {
				continue
			}
			out = append(out, steps...)
			break
		}
		out = append(out, collectGroups(n, component, collectInstructions)...)

	case []any:
		for _, item := range n {
			out = append(out, collectInstructions(item, component)...)
		}
	}
	return out
}

// collectGroups recurses into nested grouping keys, propagating the group's
// own name/title as the component label for everything beneath it.
func collectGroups[T any](n map[string]any, component string, collect func(any, string) []T) []T {
	var out []T
	for _, key := range groupKeys {
		groups, ok := n[key].([]any)
		if !ok {
			continue
		}
		for _, g := range groups {
			label := component
			if gm, ok := g.(map[string]any); ok {
				if name := firstString(gm, "name", "title"); name != "" {
					label = name
				}
			}
			out = append(out, collect(g, label)...)
		}
	}
	return out
}

// flattenSteps converts an instruction value of any recognized shape into an
// ordered list of step strings.
func flattenSteps(v any) []string {
	var out []string
	switch s := v.(type) {
	case string:
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	case []any:
		for _, item := range s {
			out = append(out, flattenSteps(item)...)
		}
	case map[string]any:
		// schema.org HowToSection nests steps under itemListElement.
		if nested, ok := s["itemListElement"]; ok {
			out = append(out, flattenSteps(nested)...)
			return out
		}
		if t := firstString(s, textFieldKeys...); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// NormalizeIngredient converts a raw entry (string, or object with
// quantity/unit/name/amount fields) into a canonical line. The raw text
// preference order is fixed: an explicit raw/original/text/line field always
// wins over a reconstruction, because source formatting carries information
// a reconstruction would lose. ok is false for unrecoverable entries, which
// callers drop.
func NormalizeIngredient(entry any, component string) (models.IngredientLine, bool) {
	switch e := entry.(type) {
	case string:
		return lineFromText(e, component)

	case map[string]any:
		line := models.IngredientLine{Component: component}
		if c := firstString(e, "component"); c != "" {
			line.Component = c
		}

		raw := firstString(e, rawFieldKeys...)
		name := firstString(e, nameFieldKeys...)
		qty, hasQty := quantityField(e)
		unit := firstString(e, "unit")

		if raw == "" {
			raw = joinParts(qty, hasQty, unit, name)
		}
		if raw == "" {
			return models.IngredientLine{}, false
		}
		line.Raw = raw

		parsed := units.SplitLine(raw)
		if name == "" {
			name = parsed.Remainder
		}
		if !hasQty && parsed.HasQuantity {
			qty, hasQty = parsed.Quantity, true
		}
		if unit == "" {
			unit = parsed.Unit
		}

		if prep := firstString(e, "preparation"); prep != "" {
			line.Ingredient = name
			line.Preparation = prep
		} else {
			line.Ingredient, line.Preparation = splitPreparation(name)
		}
		if hasQty {
			line.Quantity = models.Qty(qty)
		}
		line.Unit = unit
		return line, true
	}
	return models.IngredientLine{}, false
}

// lineFromText builds a canonical line from a plain ingredient string.
func lineFromText(text, component string) (models.IngredientLine, bool) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return models.IngredientLine{}, false
	}

	parsed := units.SplitLine(raw)
	line := models.IngredientLine{
		Raw:       raw,
		Unit:      parsed.Unit,
		Component: component,
	}
	if parsed.HasQuantity {
		line.Quantity = models.Qty(parsed.Quantity)
	}
	line.Ingredient, line.Preparation = splitPreparation(parsed.Remainder)
	return line, true
}

// splitPreparation separates "flour, sifted" into name and preparation.
func splitPreparation(name string) (string, string) {
	ingredient, prep, found := strings.Cut(name, ",")
	if !found {
		return strings.TrimSpace(name), ""
	}
	return strings.TrimSpace(ingredient), strings.TrimSpace(prep)
}

// joinParts synthesizes a raw line from structured fields.
func joinParts(qty float64, hasQty bool, unit, name string) string {
	var parts []string
	if hasQty {
		parts = append(parts, trimFloat(qty))
	}
	if unit != "" {
		parts = append(parts, unit)
	}
	if name != "" {
		parts = append(parts, name)
	}
	return strings.Join(parts, " ")
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%g", v)
	return s
}

// quantityField reads an explicit quantity/amount field of numeric or
// string type.
func quantityField(m map[string]any) (float64, bool) {
	for _, key := range []string{"quantity", "amount"} {
		v, ok := m[key]
		if !ok {
			continue
		}
		switch q := v.(type) {
		case float64:
			return q, true
		case int:
			return float64(q), true
		case string:
			if parsed, ok := units.ParseQuantity(q); ok {
				return parsed, true
			}
		}
	}
	return 0, false
}

// asList coerces a value into a list of entries; scalars become a
// single-entry list.
func asList(v any) []any {
	switch l := v.(type) {
	case []any:
		return l
	case nil:
		return nil
	default:
		return []any{v}
	}
}

// firstString returns the first non-empty string field among keys.
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
