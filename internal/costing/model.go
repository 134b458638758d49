package costing

import "github.com/RsrRuso/cocktailsop-sub017/internal/units"

// Ingredient is one recipe line as entered by the user. Quantity is
// non-negative; the unit must come from the supported UnitCode set.
type Ingredient struct {
	Name               string         `json:"ingredient_name"`
	Qty                float64        `json:"qty"`
	Unit               units.UnitCode `json:"unit"`
	BottleSizeOverride *float64       `json:"bottle_size_override,omitempty"`
}

// CostLine is the derived per-ingredient breakdown row. Never persisted.
// An unmatched ingredient keeps its row with CostPerMl = 0 so the caller
// can see the gap instead of a silently shrunken total.
type CostLine struct {
	IngredientName  string         `json:"ingredient_name"`
	Qty             float64        `json:"qty"`
	Unit            units.UnitCode `json:"unit"`
	CostPerMl       float64        `json:"cost_per_ml"`
	IngredientCost  float64        `json:"ingredient_cost"`
	PercentOfTotal  float64        `json:"percent_of_total"`
	ServesPerBottle int            `json:"serves_per_bottle"`
	BottleSize      float64        `json:"bottle_size"`
}

// Summary aggregates a recipe costing run.
type Summary struct {
	TotalCost      float64    `json:"total_cost"`
	CostPerServe   float64    `json:"cost_per_serve"`
	TotalVolumeMl  float64    `json:"total_volume_ml"`
	SuggestedPrice float64    `json:"suggested_price"`
	Breakdown      []CostLine `json:"breakdown"`
}

// FoodCostPercent is the cost of one serve as a percentage of a
// hypothetical selling price. 0 when the price is 0.
func (s *Summary) FoodCostPercent(price float64) float64 {
	if price == 0 {
		return 0
	}
	return s.CostPerServe / price * 100
}

// ProfitAmount is the absolute margin per serve at the given price.
func (s *Summary) ProfitAmount(price float64) float64 {
	return price - s.CostPerServe
}

// ProfitMargin is ProfitAmount as a percentage of the price. 0 when
// the price is 0.
func (s *Summary) ProfitMargin(price float64) float64 {
	if price == 0 {
		return 0
	}
	return s.ProfitAmount(price) / price * 100
}
