package batch

import (
	"math"

	"github.com/RsrRuso/cocktailsop-sub017/internal/inventory"
)

// ScaledIngredient is one recipe line already scaled to the target
// batch size, expressed in milliliters.
type ScaledIngredient struct {
	IngredientName string  `json:"ingredient_name"`
	ScaledAmountMl float64 `json:"scaled_amount_ml"`
}

// LineResult is the whole-bottle consumption of one scaled line.
// Bottles and leftover stay 0 when the spirit is unmatched or its
// bottle size is unknown.
type LineResult struct {
	IngredientName string  `json:"ingredient_name"`
	ScaledAmountMl float64 `json:"scaled_amount_ml"`
	BottleSizeMl   float64 `json:"bottle_size_ml"`
	Bottles        int     `json:"bottles"`
	LeftoverMl     float64 `json:"leftover_ml"`
}

// ProductionPlan aggregates a scaled batch: how many whole bottles
// get pulled from the shelf and how much partial bottle remains.
type ProductionPlan struct {
	Ingredients     []LineResult `json:"ingredients"`
	TotalMl         float64      `json:"total_ml"`
	TotalBottles    int          `json:"total_bottles"`
	TotalLeftoverMl float64      `json:"total_leftover_ml"`
}

// ScaleProduction resolves each scaled ingredient against the spirit
// list and splits its volume into whole bottles plus leftover.
// Invariant per line: bottles*bottleSizeMl + leftoverMl == scaledMl.
func ScaleProduction(scaled []ScaledIngredient, spirits []inventory.Item) *ProductionPlan {
	plan := &ProductionPlan{Ingredients: make([]LineResult, 0, len(scaled))}

	for _, ing := range scaled {
		line := LineResult{
			IngredientName: ing.IngredientName,
			ScaledAmountMl: ing.ScaledAmountMl,
		}

		if ing.ScaledAmountMl > 0 {
			plan.TotalMl += ing.ScaledAmountMl

			item := inventory.Match(ing.IngredientName, spirits)
			if item != nil && item.BottleSizeMl != nil && *item.BottleSizeMl > 0 {
				size := *item.BottleSizeMl
				line.BottleSizeMl = size
				line.Bottles = int(math.Floor(ing.ScaledAmountMl / size))
				line.LeftoverMl = math.Mod(ing.ScaledAmountMl, size)

				plan.TotalBottles += line.Bottles
				plan.TotalLeftoverMl += line.LeftoverMl
			}
		}

		plan.Ingredients = append(plan.Ingredients, line)
	}

	return plan
}
