package baker

import (
	"fmt"
	"strings"
)

// Issue severities.
const (
	SeverityWarning    = "warning"
	SeveritySuggestion = "suggestion"
)

// Issue is one advisory finding from Validate.
type Issue struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Validate applies bread-baking heuristics: hydration between 50% and 85%,
// salt between 1.5% and 3%, yeast between 0.5% and 3%. The thresholds are
// domain rules of thumb, and findings never block scaling or export.
func (f *Formula) Validate() []Issue {
	var issues []Issue

	flourPct := f.percentageByMatch("flour")
	waterPct := f.percentageByMatch("water")
	saltPct := f.percentageByMatch("salt")
	yeastPct := f.percentageByMatch("yeast")

	if flourPct > 0 && waterPct > 0 {
		hydration := waterPct / flourPct * 100
		if hydration < 50 {
			issues = append(issues, Issue{SeverityWarning,
				fmt.Sprintf("hydration %.1f%% is very low; dough will be stiff", hydration)})
		} else if hydration > 85 {
			issues = append(issues, Issue{SeverityWarning,
				fmt.Sprintf("hydration %.1f%% is very high; dough will be slack", hydration)})
		}
	}

	if saltPct > 0 {
		if saltPct < 1.5 {
			issues = append(issues, Issue{SeverityWarning,
				fmt.Sprintf("salt %.1f%% is below the typical 1.5-3%% range", saltPct)})
		} else if saltPct > 3 {
			issues = append(issues, Issue{SeverityWarning,
				fmt.Sprintf("salt %.1f%% is above the typical 1.5-3%% range", saltPct)})
		}
	}

	if yeastPct > 0 {
		if yeastPct < 0.5 {
			issues = append(issues, Issue{SeveritySuggestion,
				fmt.Sprintf("yeast %.1f%% is low; consider a longer fermentation", yeastPct)})
		} else if yeastPct > 3 {
			issues = append(issues, Issue{SeverityWarning,
				fmt.Sprintf("yeast %.1f%% is high; flavor may suffer", yeastPct)})
		}
	}

	return issues
}

// percentageByMatch sums percentages of ingredients whose name contains
// match.
func (f *Formula) percentageByMatch(match string) float64 {
	var total float64
	for _, ing := range f.ingredients {
		if strings.Contains(strings.ToLower(ing.Name), match) {
			total += ing.Percentage
		}
	}
	return total
}
