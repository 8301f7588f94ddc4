package baker

import (
	"log/slog"

	"github.com/starford/mise/internal/units"
)

// Scaling modes accepted by Scale.
const (
	ScaleFactor       = "factor"
	ScaleTargetAmount = "target_amount"
	ScaleBatchCount   = "batch_count"
	ScalePercentage   = "percentage"
)

// ScaledIngredient is one entry of a scaled formula. The source formula is
// never mutated by scaling.
type ScaledIngredient struct {
	Ingredient
	ScaledWeight float64 `json:"scaled_weight"`
	ScaledAmount float64 `json:"scaled_amount"`
}

// Scale produces a scaled copy of the formula. The four modes are:
//
//   - factor: value is a direct multiplier
//   - target_amount: value is the desired base weight in targetUnit
//   - batch_count: value is a direct multiplier (distinct label only)
//   - percentage: value of 150 means scale to 1.5x
//
// Unknown modes return nil with a logged warning, never an error: scaling
// is driven by user input and a bad mode must not halt the session.
func (f *Formula) Scale(mode string, value float64, targetUnit string) map[string]ScaledIngredient {
	var multiplier float64

	switch mode {
	case ScaleFactor, ScaleBatchCount:
		multiplier = value
	case ScaleTargetAmount:
		base := f.baseWeight()
		if base == 0 {
			f.log.Warn("baker: cannot scale to target amount without a base")
			return nil
		}
		target, ok := units.ToGrams(value, targetUnit, "flour")
		if !ok {
			f.log.Warn("baker: unknown target unit, treating as grams",
				slog.String("unit", targetUnit))
		}
		multiplier = target / base
	case ScalePercentage:
		multiplier = value / 100
	default:
		f.log.Warn("baker: unknown scaling mode", slog.String("mode", mode))
		return nil
	}

	out := make(map[string]ScaledIngredient, len(f.ingredients))
	for name, ing := range f.ingredients {
		scaledWeight := ing.WeightInGrams * multiplier
		scaledAmount := scaledWeight
		if amount, ok := units.FromGrams(scaledWeight, ing.OriginalUnit, ing.Category); ok {
			scaledAmount = amount
		}
		out[name] = ScaledIngredient{
			Ingredient:   *ing,
			ScaledWeight: scaledWeight,
			ScaledAmount: scaledAmount,
		}
	}
	return out
}
