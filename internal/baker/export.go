package baker

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Export formats.
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatReadable = "readable"
)

// Export renders the formula in the given format. Ingredients appear in
// insertion order.
func (f *Formula) Export(format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(f.Ingredients(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("baker: marshal: %w", err)
		}
		return out, nil

	case FormatCSV:
		var b strings.Builder
		b.WriteString("Ingredient,Percentage,Category,Weight(g)\n")
		for _, ing := range f.Ingredients() {
			fmt.Fprintf(&b, "%s,%.1f,%s,%.1f\n",
				ing.Name, ing.Percentage, ing.Category, ing.WeightInGrams)
		}
		return []byte(b.String()), nil

	case FormatReadable:
		var b strings.Builder
		fmt.Fprintf(&b, "%-20s %10s %12s\n", "Ingredient", "Percent", "Weight (g)")
		b.WriteString(strings.Repeat("-", 44) + "\n")
		for _, ing := range f.Ingredients() {
			marker := " "
			if ing.IsBase {
				marker = "*"
			}
			fmt.Fprintf(&b, "%-20s %9.1f%% %12.1f %s\n",
				ing.Name, ing.Percentage, ing.WeightInGrams, marker)
		}
		return []byte(b.String()), nil

	default:
		return nil, fmt.Errorf("baker: unknown export format %q", format)
	}
}
