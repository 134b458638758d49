package costing

import (
	"math"
	"testing"

	"github.com/RsrRuso/cocktailsop-sub017/internal/inventory"
	"github.com/RsrRuso/cocktailsop-sub017/internal/units"
)

func ml(v float64) *float64 { return &v }

func approx(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestComputeSingleIngredient(t *testing.T) {
	// 30ml draw against a 700ml bottle costing 20.
	calc := NewCalculator(0, 0)

	inv := []inventory.Item{{ID: "1", Name: "Vodka", UnitCost: 20, BottleSizeMl: ml(700)}}
	ings := []Ingredient{{Name: "Vodka", Qty: 30, Unit: units.Ml}}

	s := calc.Compute(ings, inv, 1)

	line := s.Breakdown[0]
	if !approx(line.CostPerMl, 0.02857, 0.0001) {
		t.Fatalf("costPerMl = %v, want ≈0.02857", line.CostPerMl)
	}
	if !approx(line.IngredientCost, 0.857, 0.001) {
		t.Fatalf("ingredientCost = %v, want ≈0.857", line.IngredientCost)
	}
	if line.ServesPerBottle != 23 {
		t.Fatalf("servesPerBottle = %d, want 23", line.ServesPerBottle)
	}
	if !approx(line.PercentOfTotal, 100, 0.01) {
		t.Fatalf("single line should carry 100%% of total, got %v", line.PercentOfTotal)
	}
}

func TestComputeAggregates(t *testing.T) {
	calc := NewCalculator(0, 0)

	inv := []inventory.Item{
		{ID: "1", Name: "Vodka", UnitCost: 20, BottleSizeMl: ml(700)},
		{ID: "2", Name: "Gin", UnitCost: 20, BottleSizeMl: ml(700)},
	}
	ings := []Ingredient{
		{Name: "Vodka", Qty: 30, Unit: units.Ml},
		{Name: "Gin", Qty: 60, Unit: units.Ml},
	}

	s := calc.Compute(ings, inv, 1)

	if !approx(s.TotalCost, 2.571, 0.001) {
		t.Fatalf("totalCost = %v, want ≈2.571", s.TotalCost)
	}
	if !approx(s.CostPerServe, 2.571, 0.001) {
		t.Fatalf("costPerServe = %v, want ≈2.571", s.CostPerServe)
	}
	if !approx(s.FoodCostPercent(10), 25.71, 0.01) {
		t.Fatalf("foodCostPercent(10) = %v, want ≈25.71", s.FoodCostPercent(10))
	}
	if s.TotalVolumeMl != 90 {
		t.Fatalf("totalVolumeMl = %v, want 90", s.TotalVolumeMl)
	}

	var sumCost, sumPercent float64
	for _, line := range s.Breakdown {
		sumCost += line.IngredientCost
		sumPercent += line.PercentOfTotal
	}
	if !approx(sumCost, s.TotalCost, 1e-9) {
		t.Fatalf("breakdown costs sum to %v, total is %v", sumCost, s.TotalCost)
	}
	if !approx(sumPercent, 100, 0.01) {
		t.Fatalf("percentOfTotal sums to %v, want ≈100", sumPercent)
	}
}

func TestComputeUnmatchedIngredientStaysVisible(t *testing.T) {
	calc := NewCalculator(0, 0)

	inv := []inventory.Item{{ID: "1", Name: "Vodka", UnitCost: 20, BottleSizeMl: ml(700)}}
	ings := []Ingredient{
		{Name: "Vodka", Qty: 30, Unit: units.Ml},
		{Name: "Yuzu Juice", Qty: 15, Unit: units.Ml},
	}

	s := calc.Compute(ings, inv, 1)

	if len(s.Breakdown) != 2 {
		t.Fatalf("unmatched ingredient must stay in breakdown, got %d lines", len(s.Breakdown))
	}
	yuzu := s.Breakdown[1]
	if yuzu.CostPerMl != 0 || yuzu.IngredientCost != 0 {
		t.Fatalf("unmatched line should cost 0, got %+v", yuzu)
	}
}

func TestComputeZeroCostRecipe(t *testing.T) {
	calc := NewCalculator(0, 0)

	ings := []Ingredient{
		{Name: "Water", Qty: 30, Unit: units.Ml},
		{Name: "Ice", Qty: 50, Unit: units.Gram},
	}

	s := calc.Compute(ings, nil, 2)

	if s.TotalCost != 0 {
		t.Fatalf("totalCost = %v, want 0", s.TotalCost)
	}
	for _, line := range s.Breakdown {
		if line.PercentOfTotal != 0 {
			t.Fatalf("percentOfTotal must be 0 when totalCost is 0, got %v", line.PercentOfTotal)
		}
	}
}

func TestComputeBottleSizeResolutionOrder(t *testing.T) {
	calc := NewCalculator(0, 0)

	inv := []inventory.Item{{ID: "1", Name: "Rum", UnitCost: 35, BottleSizeMl: ml(1000)}}

	// Line override beats the inventory bottle size.
	override := []Ingredient{{Name: "Rum", Qty: 50, Unit: units.Ml, BottleSizeOverride: ml(500)}}
	if got := calc.Compute(override, inv, 1).Breakdown[0].BottleSize; got != 500 {
		t.Fatalf("override bottle size = %v, want 500", got)
	}

	// Inventory bottle size beats the default.
	plain := []Ingredient{{Name: "Rum", Qty: 50, Unit: units.Ml}}
	if got := calc.Compute(plain, inv, 1).Breakdown[0].BottleSize; got != 1000 {
		t.Fatalf("inventory bottle size = %v, want 1000", got)
	}

	// Nothing known: fall back to the configured default.
	noSize := []inventory.Item{{ID: "1", Name: "Rum", UnitCost: 35}}
	if got := calc.Compute(plain, noSize, 1).Breakdown[0].BottleSize; got != DefaultBottleMl {
		t.Fatalf("default bottle size = %v, want %v", got, DefaultBottleMl)
	}
}

func TestComputeExplicitZeroBottleSize(t *testing.T) {
	calc := NewCalculator(0, 0)

	// An inventory record that says the container is 0ml is a statement,
	// not an omission: the line zeroes out instead of picking up the
	// default container size.
	inv := []inventory.Item{{ID: "1", Name: "Vodka", UnitCost: 20, BottleSizeMl: ml(0)}}
	ings := []Ingredient{{Name: "Vodka", Qty: 30, Unit: units.Ml}}

	line := calc.Compute(ings, inv, 1).Breakdown[0]
	if line.BottleSize != 0 {
		t.Fatalf("bottleSize = %v, want 0", line.BottleSize)
	}
	if line.CostPerMl != 0 || line.IngredientCost != 0 {
		t.Fatalf("zero-size line must cost 0, got %+v", line)
	}
	if line.ServesPerBottle != 0 {
		t.Fatalf("servesPerBottle = %d, want 0", line.ServesPerBottle)
	}

	// Same rule on the line override, even with a sized inventory record.
	sized := []inventory.Item{{ID: "1", Name: "Vodka", UnitCost: 20, BottleSizeMl: ml(700)}}
	zeroed := []Ingredient{{Name: "Vodka", Qty: 30, Unit: units.Ml, BottleSizeOverride: ml(0)}}
	if got := calc.Compute(zeroed, sized, 1).Breakdown[0]; got.BottleSize != 0 || got.IngredientCost != 0 {
		t.Fatalf("zero override must zero the line, got %+v", got)
	}

	// Pieces: a container declared to hold 0 pieces cannot price a count.
	box := []inventory.Item{{ID: "2", Name: "Olives", UnitCost: 10, BottleSizeMl: ml(0)}}
	pieces := []Ingredient{{Name: "Olives", Qty: 3, Unit: units.Piece}}
	if got := calc.Compute(pieces, box, 1).Breakdown[0].IngredientCost; got != 0 {
		t.Fatalf("piece cost with zero-piece container = %v, want 0", got)
	}
}

func TestComputeYieldFloor(t *testing.T) {
	calc := NewCalculator(0, 0)
	inv := []inventory.Item{{ID: "1", Name: "Vodka", UnitCost: 20, BottleSizeMl: ml(700)}}
	ings := []Ingredient{{Name: "Vodka", Qty: 30, Unit: units.Ml}}

	zero := calc.Compute(ings, inv, 0)
	one := calc.Compute(ings, inv, 1)
	if zero.CostPerServe != one.CostPerServe {
		t.Fatalf("yieldQty 0 must count as 1 serve")
	}
}

func TestSuggestedPriceHonorsRatio(t *testing.T) {
	calc := NewCalculator(0.25, 0)
	inv := []inventory.Item{{ID: "1", Name: "Vodka", UnitCost: 20, BottleSizeMl: ml(700)}}
	ings := []Ingredient{{Name: "Vodka", Qty: 70, Unit: units.Ml}}

	s := calc.Compute(ings, inv, 1)

	if !approx(s.SuggestedPrice*0.25, s.CostPerServe, 1e-9) {
		t.Fatalf("suggestedPrice*ratio = %v, want %v", s.SuggestedPrice*0.25, s.CostPerServe)
	}
}

func TestPricingGuards(t *testing.T) {
	s := &Summary{CostPerServe: 2.5}

	if s.FoodCostPercent(0) != 0 {
		t.Fatal("foodCostPercent(0) must be 0")
	}
	if s.ProfitMargin(0) != 0 {
		t.Fatal("profitMargin(0) must be 0")
	}
	if s.ProfitAmount(10) != 7.5 {
		t.Fatalf("profitAmount(10) = %v, want 7.5", s.ProfitAmount(10))
	}
}

func TestComputePieceLines(t *testing.T) {
	calc := NewCalculator(0, 0)

	// A 50-piece box of garnish olives costing 10 → 0.2 per piece.
	inv := []inventory.Item{{ID: "1", Name: "Olives", UnitCost: 10, BottleSizeMl: ml(50)}}
	ings := []Ingredient{{Name: "Olives", Qty: 3, Unit: units.Piece}}

	s := calc.Compute(ings, inv, 1)

	if !approx(s.Breakdown[0].IngredientCost, 0.6, 1e-9) {
		t.Fatalf("piece cost = %v, want 0.6", s.Breakdown[0].IngredientCost)
	}
	if s.TotalVolumeMl != 0 {
		t.Fatalf("piece lines carry no volume, got %v", s.TotalVolumeMl)
	}

	// Unmatched piece line degrades to zero cost, not an error.
	none := calc.Compute([]Ingredient{{Name: "Umbrella", Qty: 1, Unit: units.Piece}}, inv, 1)
	if none.Breakdown[0].IngredientCost != 0 {
		t.Fatalf("unmatched piece cost = %v, want 0", none.Breakdown[0].IngredientCost)
	}
}
