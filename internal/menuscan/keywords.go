package menuscan

import "regexp"

// The lists in this file are tuning data, not logic: the scanner consults
// them but never depends on their contents, so they can be adjusted without
// touching the state machine.

// knownCategories maps a normalized (lowercased) section name to its
// canonical display form.
var knownCategories = map[string]string{
	"appetizers":    "Appetizers",
	"appetizer":     "Appetizers",
	"starters":      "Starters",
	"small plates":  "Small Plates",
	"soups":         "Soups",
	"soup":          "Soups",
	"salads":        "Salads",
	"salad":         "Salads",
	"main courses":  "Main Courses",
	"main course":   "Main Courses",
	"mains":         "Mains",
	"entrees":       "Entrees",
	"entrées":       "Entrees",
	"pasta":         "Pasta",
	"pizza":         "Pizza",
	"burgers":       "Burgers",
	"sandwiches":    "Sandwiches",
	"wraps":         "Wraps",
	"tacos":         "Tacos",
	"sushi":         "Sushi",
	"from the grill": "From the Grill",
	"seafood":       "Seafood",
	"steaks":        "Steaks",
	"sides":         "Sides",
	"side dishes":   "Side Dishes",
	"desserts":      "Desserts",
	"dessert":       "Desserts",
	"sweets":        "Sweets",
	"pastries":      "Pastries",
	"beverages":     "Beverages",
	"drinks":        "Drinks",
	"cocktails":     "Cocktails",
	"mocktails":     "Mocktails",
	"wine":          "Wine",
	"beer":          "Beer",
	"spirits":       "Spirits",
	"coffee":        "Coffee",
	"tea":           "Tea",
	"smoothies":     "Smoothies",
	"juices":        "Juices",
	"breakfast":     "Breakfast",
	"brunch":        "Brunch",
	"lunch":         "Lunch",
	"dinner":        "Dinner",
	"specials":      "Specials",
	"kids menu":     "Kids Menu",
	"vegan":         "Vegan",
	"vegetarian":    "Vegetarian",
}

// headerPatterns are the structural shapes a category header can take.
// Each pattern captures the candidate section name in group 1.
var headerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^#{1,6}\s+(.+)$`),          // markdown header
	regexp.MustCompile(`^-{2,}\s*(.+?)\s*-{2,}$`),  // --- Section ---
	regexp.MustCompile(`^\*\*(.+?)\*\*$`),          // **Section**
	regexp.MustCompile(`^={2,}\s*(.+?)\s*={2,}$`),  // == Section ==
	regexp.MustCompile(`^<(.+?)>$`),                // <Section>
	regexp.MustCompile(`^\[(.+?)\]$`),              // [Section]
	regexp.MustCompile(`^•\s*([A-Z][A-Z\s&'-]+)$`), // • SECTION
	regexp.MustCompile(`^([^:]+):$`),               // Section:
	regexp.MustCompile(`^([A-Z][A-Z\s&'’-]+)$`),    // ALL CAPS line
}

// pricePatterns cover the currency and layout formats a menu price can use.
// Group 1 (or the first non-empty group) holds the numeric part.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\s*(\d+(?:[.,]\d{1,2})?)`),
	regexp.MustCompile(`£\s*(\d+(?:[.,]\d{1,2})?)`),
	regexp.MustCompile(`€\s*(\d+(?:[.,]\d{1,2})?)`),
	regexp.MustCompile(`(\d+(?:[.,]\d{1,2})?)\s*€`),
	regexp.MustCompile(`¥\s*(\d+(?:[.,]\d{1,2})?)`),
	regexp.MustCompile(`₹\s*(\d+(?:[.,]\d{1,2})?)`),
	regexp.MustCompile(`₩\s*(\d+(?:[.,]\d{1,2})?)|(\d+(?:[.,]\d{1,2})?)\s*won\b`),
	regexp.MustCompile(`(?i)(\d+(?:[.,]\d{1,2})?)\s*dollars?\b`),
	regexp.MustCompile(`(?i)(\d+(?:[.,]\d{1,2})?)\s*pounds?\b`),
	regexp.MustCompile(`(?i)(\d+(?:[.,]\d{1,2})?)\s*euros?\b`),
	regexp.MustCompile(`(?i)(\d+(?:[.,]\d{1,2})?)\s*(?:yen|rupees?)\b`),
}

// bulletGlyphs start an item line.
const bulletGlyphs = "-•●◦▪*→➤○"

// descriptionSeparators split an item line into name and same-line
// description. Checked in order; the earliest occurrence wins.
var descriptionSeparators = []string{" - ", " – ", " — ", " | ", " / ", ": "}

// foodPrepKeywords mark a line as a likely dish name.
var foodPrepKeywords = []string{
	"grilled", "fried", "baked", "roasted", "sauteed", "sautéed",
	"braised", "steamed", "smoked", "seared", "poached", "stuffed",
	"marinated", "glazed", "crusted", "served with", "topped with",
}

// descriptiveKeywords mark a line as a likely description continuation.
var descriptiveKeywords = []string{
	"served", "topped", "fresh", "homemade", "house", "organic", "locally",
	"drizzled", "tossed", "accompanied", "garnished", "infused", "seasoned",
	"creamy", "tender", "rich", "savory", "delicate", "with a side",
}

// dietaryPatterns extract dietary tags from an item's name and description.
// Evaluated in order so output tags are deterministic.
var dietaryPatterns = []struct {
	tag string
	re  *regexp.Regexp
}{
	{"vegetarian", regexp.MustCompile(`(?i)\bvegetarian\b|\(v\)`)},
	{"vegan", regexp.MustCompile(`(?i)\bvegan\b|\(vg\)`)},
	{"gluten-free", regexp.MustCompile(`(?i)\bgluten[\s-]?free\b|\(gf\)`)},
	{"dairy-free", regexp.MustCompile(`(?i)\bdairy[\s-]?free\b|\(df\)`)},
	{"nut-free", regexp.MustCompile(`(?i)\bnut[\s-]?free\b`)},
	{"keto", regexp.MustCompile(`(?i)\bketo\b`)},
	{"paleo", regexp.MustCompile(`(?i)\bpaleo\b`)},
	{"low-carb", regexp.MustCompile(`(?i)\blow[\s-]?carb\b`)},
}

// allergenGroups map an allergen tag to its trigger keywords. Matches are
// literal keyword hits only: "salmon" does not trigger the fish group
// unless the word "fish" itself appears.
var allergenGroups = []struct {
	name     string
	keywords []string
}{
	{"dairy", []string{"milk", "cheese", "cream", "yogurt", "mozzarella", "parmesan", "ricotta", "custard"}},
	{"nuts", []string{"almond", "cashew", "walnut", "pecan", "pistachio", "hazelnut", "peanut"}},
	{"shellfish", []string{"shrimp", "crab", "lobster", "prawn", "scallop", "clam", "mussel", "oyster"}},
	{"fish", []string{"fish", "anchovy", "anchovies", "tuna", "cod", "halibut", "sardine"}},
	{"eggs", []string{"egg", "eggs", "mayo", "mayonnaise", "aioli", "meringue"}},
	{"soy", []string{"soy", "tofu", "edamame", "miso", "tempeh"}},
	{"wheat", []string{"wheat", "bread", "bun", "pasta", "noodle", "crouton", "tortilla"}},
	{"gluten", []string{"gluten", "flour", "barley", "rye", "breaded", "battered"}},
}

// categoryRules assign a category to an uncategorized item; evaluated in
// order, first match wins.
var categoryRules = []struct {
	category string
	keywords []string
}{
	{"Appetizers", []string{"appetizer", "starter", "bruschetta", "spring roll", "wings", "dip"}},
	{"Soups", []string{"soup", "bisque", "chowder", "broth"}},
	{"Salads", []string{"salad", "greens", "caesar"}},
	{"Pasta", []string{"pasta", "spaghetti", "lasagna", "ravioli", "risotto", "gnocchi"}},
	{"Pizza", []string{"pizza", "calzone", "flatbread"}},
	{"Burgers & Sandwiches", []string{"burger", "sandwich", "wrap", "panini", "sub"}},
	{"Seafood", []string{"salmon", "shrimp", "fish", "tuna", "lobster", "crab", "scallop", "seafood"}},
	{"Desserts", []string{"cake", "ice cream", "chocolate", "pie", "tiramisu", "cheesecake", "brownie", "sorbet"}},
	{"Breakfast", []string{"pancake", "waffle", "omelet", "omelette", "benedict", "french toast"}},
	{"Beverages", []string{"coffee", "tea", "latte", "espresso", "juice", "smoothie", "soda", "lemonade"}},
	{"Cocktails", []string{"wine", "beer", "cocktail", "martini", "margarita", "whiskey", "vodka"}},
}

// defaultAutoCategory is used when no category rule matches.
const defaultAutoCategory = "Main Courses"
