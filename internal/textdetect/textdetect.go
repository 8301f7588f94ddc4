// Package textdetect is the default multi-recipe detector for plain-text
// input. It splits text into blocks at separator rules, then reads each
// block as title, metadata, and Ingredients/Instructions sections. Blocks
// with neither ingredients nor instructions are not recipes and yield
// nothing.
package textdetect

import (
	"regexp"
	"strings"

	"github.com/starford/mise/internal/extract"
	"github.com/starford/mise/internal/models"
	"github.com/starford/mise/internal/timetext"
	"github.com/starford/mise/internal/units"
)

var (
	separatorRe    = regexp.MustCompile(`^[=\-*_]{3,}$`)
	numberedRe     = regexp.MustCompile(`^\d+[.)]\s*`)
	ingredientsRe  = regexp.MustCompile(`(?i)^ingredients\s*:?\s*$`)
	instructionsRe = regexp.MustCompile(`(?i)^(instructions|directions|method|steps)\s*:?\s*$`)
	metadataRe     = regexp.MustCompile(`(?i)^(servings|serves|prep time|cook time|total time|category|cuisine|difficulty|description)\s*:\s*(.+)$`)
)

// Detector is the shipped implementation of the importer's text detector.
type Detector struct{}

// New creates a detector.
func New() *Detector { return &Detector{} }

// Detect returns every recipe-shaped block found in text, in order.
func (d *Detector) Detect(text string) []models.Recipe {
	var recipes []models.Recipe
	for _, block := range splitBlocks(text) {
		if r := parseBlock(block); r != nil {
			recipes = append(recipes, *r)
		}
	}
	return recipes
}

// splitBlocks divides text at separator lines (===, ---, ...).
func splitBlocks(text string) [][]string {
	var blocks [][]string
	var current []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if separatorRe.MatchString(line) {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

// parseBlock reads one block as a recipe. Returns nil when the block has no
// title or no ingredient/instruction content.
func parseBlock(lines []string) *models.Recipe {
	r := &models.Recipe{}
	section := ""
	var descParts []string

	for _, line := range lines {
		if line == "" {
			continue
		}

		if ingredientsRe.MatchString(line) {
			section = "ingredients"
			continue
		}
		if instructionsRe.MatchString(line) {
			section = "instructions"
			continue
		}
		if m := metadataRe.FindStringSubmatch(line); m != nil && section == "" {
			applyMetadata(r, strings.ToLower(m[1]), strings.TrimSpace(m[2]))
			continue
		}

		switch section {
		case "ingredients":
			cleaned := strings.TrimLeft(line, "-•*◦▪ \t")
			if ing, ok := extract.NormalizeIngredient(cleaned, ""); ok {
				r.Ingredients = append(r.Ingredients, ing)
			}
		case "instructions":
			step := strings.TrimSpace(numberedRe.ReplaceAllString(line, ""))
			if step != "" {
				r.Instructions = append(r.Instructions, step)
			}
		default:
			if r.Title == "" {
				r.Title = strings.TrimSpace(numberedRe.ReplaceAllString(line, ""))
				continue
			}
			descParts = append(descParts, line)
		}
	}

	if r.Title == "" || (len(r.Ingredients) == 0 && len(r.Instructions) == 0) {
		return nil
	}
	if r.Description == "" && len(descParts) > 0 {
		r.Description = strings.Join(descParts, " ")
	}
	return r
}

// applyMetadata fills a recipe field from a "key: value" line.
func applyMetadata(r *models.Recipe, key, value string) {
	switch key {
	case "servings", "serves":
		if q, ok := units.ParseQuantity(value); ok {
			r.Servings = int(q)
		}
	case "prep time":
		r.PrepTime = timetext.Minutes(value)
	case "cook time":
		r.CookTime = timetext.Minutes(value)
	case "total time":
		r.TotalTime = timetext.Minutes(value)
	case "category":
		r.Category = value
	case "cuisine":
		r.Cuisine = value
	case "difficulty":
		r.Difficulty = value
	case "description":
		r.Description = value
	}
}
