// Package menuscan recovers structured menu items from raw menu text. The
// scanner is a single-pass, line-oriented state machine: each line is
// classified as a category header, an item start, a description
// continuation, or noise, with the current category and the in-progress item
// carried as explicit state.
package menuscan

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/starford/mise/internal/models"
)

// Options tune the scanner's heuristics. The zero value is not usable;
// start from DefaultOptions.
type Options struct {
	// AutoCategorize assigns a category via keyword rules to items still
	// uncategorized at finalization.
	AutoCategorize bool
	// MaxDescriptionLines caps how many continuation lines an item accepts;
	// further candidates are silently dropped.
	MaxDescriptionLines int
	// CategoryMaxLen is the length cap for the looks-like-a-category check.
	CategoryMaxLen int
	// UppercaseRatio is the minimum fraction of uppercase letters for the
	// looks-like-a-category check.
	UppercaseRatio float64
	// ShortLineLen is the cut-off below which a line may be a bare item
	// name completed by the following line.
	ShortLineLen int
}

// DefaultOptions returns the tuning used when the caller has no opinion.
func DefaultOptions() Options {
	return Options{
		AutoCategorize:      true,
		MaxDescriptionLines: 3,
		CategoryMaxLen:      30,
		UppercaseRatio:      0.5,
		ShortLineLen:        50,
	}
}

// Scanner parses raw menu text into menu items.
type Scanner struct {
	opts Options
}

// New creates a scanner with the given options.
func New(opts Options) *Scanner {
	if opts.MaxDescriptionLines <= 0 {
		opts.MaxDescriptionLines = 3
	}
	if opts.CategoryMaxLen <= 0 {
		opts.CategoryMaxLen = 30
	}
	if opts.UppercaseRatio <= 0 {
		opts.UppercaseRatio = 0.5
	}
	if opts.ShortLineLen <= 0 {
		opts.ShortLineLen = 50
	}
	return &Scanner{opts: opts}
}

// state is the per-parse mutable state threaded through the line loop.
type state struct {
	category string
	item     *models.MenuItem
	cont     int
	items    []models.MenuItem
}

// Parse scans text line by line and returns the finalized items in source
// order. The header check always runs before the item check, so a line can
// never be both.
func (s *Scanner) Parse(text string) []models.MenuItem {
	st := &state{category: models.UncategorizedCategory}
	lines := strings.Split(text, "\n")

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		next := ""
		if i+1 < len(lines) {
			next = strings.TrimSpace(lines[i+1])
		}

		if name, ok := s.categoryHeader(line); ok {
			s.flush(st)
			st.category = name
			st.cont = 0
			continue
		}

		// Price-bearing and bulleted lines always start an item; they can
		// never satisfy the continuation conditions.
		_, hasPrice := parsePrice(line)
		if hasPrice || startsWithBullet(line) {
			s.startItem(st, line)
			continue
		}

		// With an item open, a qualifying description line wins over the
		// weaker item-start heuristics.
		if st.item != nil && s.isContinuation(line) {
			if st.cont < s.opts.MaxDescriptionLines {
				if st.item.Description != "" {
					st.item.Description += " "
				}
				st.item.Description += line
				st.cont++
			}
			continue
		}

		if s.weakItemStart(line, next) {
			s.startItem(st, line)
			continue
		}
		// Anything else is noise.
	}

	s.flush(st)
	return st.items
}

// startItem flushes the previous item and opens a new one from line. A line
// that is a bare price with no name attaches its price to the open item
// instead (price-on-next-line layout).
func (s *Scanner) startItem(st *state, line string) {
	name, desc, price := extractItem(line)
	if name == "" {
		if st.item != nil && st.item.Price == nil && price != nil {
			st.item.Price = price
		}
		return
	}
	s.flush(st)
	st.item = &models.MenuItem{
		Name:        name,
		Price:       price,
		Category:    st.category,
		Description: desc,
	}
	st.cont = 0
}

// flush finalizes the in-progress item, enriching it with dietary tags,
// allergens, and (optionally) an auto-assigned category.
func (s *Scanner) flush(st *state) {
	if st.item == nil {
		return
	}
	it := *st.item
	text := strings.ToLower(it.Name + " " + it.Description)

	it.DietaryInfo = []string{}
	for _, d := range dietaryPatterns {
		if d.re.MatchString(text) {
			it.DietaryInfo = append(it.DietaryInfo, d.tag)
		}
	}

	it.Allergens = []string{}
	for _, g := range allergenGroups {
		for _, kw := range g.keywords {
			if containsWord(text, kw) {
				it.Allergens = append(it.Allergens, g.name)
				break
			}
		}
	}

	if s.opts.AutoCategorize && it.Category == models.UncategorizedCategory {
		it.Category = autoCategory(text)
	}

	st.items = append(st.items, it)
	st.item = nil
	st.cont = 0
}

// categoryHeader reports whether line is a section header and returns the
// canonical category name. A structural match alone is not enough: the
// captured text must be a known category or must look like one (short,
// priceless, mostly uppercase).
func (s *Scanner) categoryHeader(line string) (string, bool) {
	for _, re := range headerPatterns {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		candidate := strings.TrimSpace(m[1])
		if candidate == "" {
			continue
		}
		if canonical, ok := knownCategories[strings.ToLower(candidate)]; ok {
			return canonical, true
		}
		if s.looksLikeCategory(candidate) {
			return titleCase(candidate), true
		}
	}
	return "", false
}

// looksLikeCategory applies the tunable header heuristic.
func (s *Scanner) looksLikeCategory(text string) bool {
	if len([]rune(text)) > s.opts.CategoryMaxLen {
		return false
	}
	if _, ok := parsePrice(text); ok {
		return false
	}
	letters, uppers := 0, 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				uppers++
			}
		}
	}
	return letters > 0 && float64(uppers)/float64(letters) > s.opts.UppercaseRatio
}

// weakItemStart covers the item heuristics that yield to an open item's
// description: name-then-description layout, food-preparation keywords, and
// price-on-next-line layout.
func (s *Scanner) weakItemStart(line, next string) bool {
	_, nextHasPrice := parsePrice(next)

	if len([]rune(line)) < s.opts.ShortLineLen && next != "" &&
		len([]rune(next)) > len([]rune(line)) && !nextHasPrice {
		return true
	}
	if containsAnyKeyword(line, foodPrepKeywords) {
		return true
	}
	if nextHasPrice && !containsAnyKeyword(next, foodPrepKeywords) {
		return true
	}
	return false
}

// isContinuation reports whether line extends the open item's description.
func (s *Scanner) isContinuation(line string) bool {
	n := len([]rune(line))
	if n < 10 || n > 200 {
		return false
	}
	if startsWithBullet(line) {
		return false
	}
	if _, ok := parsePrice(line); ok {
		return false
	}
	if containsAnyKeyword(line, descriptiveKeywords) {
		return true
	}
	first := []rune(line)[0]
	return unicode.IsLower(first)
}

// extractItem splits an item line into name, same-line description, and
// price. The bullet glyph and price span are stripped before the name is
// truncated at the first description separator.
func extractItem(line string) (string, string, *float64) {
	price, span := findPrice(line)

	rest := line
	if span != "" {
		rest = strings.Replace(rest, span, "", 1)
	}
	rest = strings.TrimLeft(rest, bulletGlyphs+" \t")

	name := rest
	desc := ""
	sepIdx := -1
	sepLen := 0
	for _, sep := range descriptionSeparators {
		if idx := strings.Index(rest, sep); idx >= 0 && (sepIdx < 0 || idx < sepIdx) {
			sepIdx, sepLen = idx, len(sep)
		}
	}
	if sepIdx >= 0 {
		name = rest[:sepIdx]
		desc = strings.TrimSpace(rest[sepIdx+sepLen:])
	}

	name = strings.Trim(name, " \t-–—|/:,.")
	return name, desc, price
}

// parsePrice returns the first price found in line.
func parsePrice(line string) (float64, bool) {
	v, span := findPrice(line)
	return valueOrZero(v), span != ""
}

// findPrice returns the parsed price and the exact span it occupied.
func findPrice(line string) (*float64, string) {
	for _, re := range pricePatterns {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		for _, g := range m[1:] {
			if g == "" {
				continue
			}
			v, err := strconv.ParseFloat(strings.ReplaceAll(g, ",", "."), 64)
			if err != nil {
				continue
			}
			return &v, m[0]
		}
	}
	return nil, ""
}

// autoCategory assigns a category by the first matching keyword rule.
func autoCategory(text string) string {
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.category
			}
		}
	}
	return defaultAutoCategory
}

func startsWithBullet(line string) bool {
	if line == "" {
		return false
	}
	return strings.ContainsRune(bulletGlyphs, []rune(line)[0])
}

func containsAnyKeyword(line string, keywords []string) bool {
	lower := strings.ToLower(line)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// containsWord reports a whole-word, case-insensitive keyword hit.
func containsWord(text, word string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !unicode.IsLetter(rune(text[start-1]))
		afterOK := end == len(text) || !unicode.IsLetter(rune(text[end]))
		if beforeOK && afterOK {
			return true
		}
		idx = end
	}
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// titleCase converts SECTION NAMES to Section Names.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
