// Package units parses quantity tokens from free-text ingredient lines and
// holds the shared gram-conversion table used by every weight-aware component.
package units

import (
	"regexp"
	"strconv"
	"strings"
)

// vulgarFractions maps unicode fraction glyphs to their decimal values.
var vulgarFractions = map[rune]float64{
	'¼': 0.25,
	'½': 0.5,
	'¾': 0.75,
	'⅓': 1.0 / 3.0,
	'⅔': 2.0 / 3.0,
	'⅛': 0.125,
	'⅜': 0.375,
	'⅝': 0.625,
	'⅞': 0.875,
}

// quantitySpanRe matches the leading run of characters that can form a
// quantity: digits, whitespace, slashes, separators, and fraction glyphs.
var quantitySpanRe = regexp.MustCompile(`^[\d\s/.,¼½¾⅓⅔⅛⅜⅝⅞-]+`)

// ParseFraction converts a single quantity token to its decimal value.
// It recognizes unicode vulgar fractions, "a/b" fractions, and plain
// decimals with either a dot or a comma separator. ok is false when the
// token is none of these.
func ParseFraction(token string) (float64, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, false
	}

	if r := []rune(token); len(r) == 1 {
		if v, ok := vulgarFractions[r[0]]; ok {
			return v, true
		}
	}

	if num, den, found := strings.Cut(token, "/"); found {
		n, errN := strconv.ParseFloat(strings.TrimSpace(num), 64)
		d, errD := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if errN == nil && errD == nil && d != 0 {
			return n / d, true
		}
		return 0, false
	}

	// Locale decimal: accept "1,5" as well as "1.5".
	normalized := strings.ReplaceAll(token, ",", ".")
	if v, err := strconv.ParseFloat(normalized, 64); err == nil {
		return v, true
	}
	return 0, false
}

// ParseQuantity extracts the leading quantity from free text and returns its
// decimal value. Compound quantities sum their tokens, so "1 ½ cups" yields
// 1.5. ok is false when no token of the leading span parses — the caller
// must treat that as absence, not zero.
func ParseQuantity(text string) (float64, bool) {
	span := quantitySpanRe.FindString(text)
	if span == "" {
		return 0, false
	}

	var total float64
	parsed := false
	for _, token := range strings.Fields(span) {
		if v, ok := ParseFraction(token); ok {
			total += v
			parsed = true
		}
	}
	if !parsed {
		return 0, false
	}
	return total, true
}

// Line is the result of splitting a raw ingredient line into its parts.
type Line struct {
	Remainder   string
	Quantity    float64
	HasQuantity bool
	Unit        string
}

// SplitLine consumes a leading quantity span and the single word after it as
// a unit token, returning whatever remains as the ingredient text. When no
// quantity matches, Remainder equals the trimmed input and the line is
// treated as ingredient-name-only.
func SplitLine(line string) Line {
	trimmed := strings.TrimSpace(line)

	span := quantitySpanRe.FindString(trimmed)
	qty, ok := ParseQuantity(trimmed)
	if !ok {
		return Line{Remainder: trimmed}
	}

	rest := strings.TrimSpace(trimmed[len(span):])
	word, remainder, _ := strings.Cut(rest, " ")

	return Line{
		Remainder:   strings.TrimSpace(remainder),
		Quantity:    qty,
		HasQuantity: true,
		Unit:        word,
	}
}
