package costing

import (
	"math"

	"github.com/RsrRuso/cocktailsop-sub017/internal/inventory"
	"github.com/RsrRuso/cocktailsop-sub017/internal/units"
)

const (
	// DefaultTargetFoodCostRatio is the house policy for suggested
	// pricing: cost per serve should be 28% of the menu price.
	DefaultTargetFoodCostRatio = 0.28

	// DefaultBottleMl applies when neither the recipe line nor the
	// inventory item says how big the container is.
	DefaultBottleMl = 700
)

// Calculator derives cost, margin and pricing metrics for a recipe
// against an inventory snapshot. Pure business logic, no I/O.
type Calculator struct {
	targetFoodCostRatio float64
	defaultBottleMl     float64
}

// NewCalculator builds a Calculator. Zero or negative arguments fall
// back to the package defaults, so NewCalculator(0, 0) is the house
// configuration.
func NewCalculator(targetFoodCostRatio, defaultBottleMl float64) *Calculator {
	if targetFoodCostRatio <= 0 {
		targetFoodCostRatio = DefaultTargetFoodCostRatio
	}
	if defaultBottleMl <= 0 {
		defaultBottleMl = DefaultBottleMl
	}
	return &Calculator{
		targetFoodCostRatio: targetFoodCostRatio,
		defaultBottleMl:     defaultBottleMl,
	}
}

// Compute walks the recipe lines, resolves each against the inventory
// snapshot, and aggregates the summary.
//
// Guards: bottleSize 0 or unmatched item → the line costs 0 but stays
// in the breakdown; yieldQty below 1 counts as 1 serve.
func (c *Calculator) Compute(ingredients []Ingredient, inv []inventory.Item, yieldQty float64) *Summary {
	summary := &Summary{Breakdown: make([]CostLine, 0, len(ingredients))}

	for _, ing := range ingredients {
		line := c.costLine(ing, inv)
		summary.TotalCost += line.IngredientCost
		if units.Normalize(string(ing.Unit)) != units.Piece {
			summary.TotalVolumeMl += units.ToMl(ing.Qty, ing.Unit)
		}
		summary.Breakdown = append(summary.Breakdown, line)
	}

	for i := range summary.Breakdown {
		if summary.TotalCost > 0 {
			summary.Breakdown[i].PercentOfTotal =
				summary.Breakdown[i].IngredientCost / summary.TotalCost * 100
		}
	}

	serves := math.Max(yieldQty, 1)
	summary.CostPerServe = summary.TotalCost / serves
	summary.SuggestedPrice = summary.CostPerServe / c.targetFoodCostRatio

	return summary
}

func (c *Calculator) costLine(ing Ingredient, inv []inventory.Item) CostLine {
	line := CostLine{
		IngredientName: ing.Name,
		Qty:            ing.Qty,
		Unit:           ing.Unit,
	}

	item := inventory.Match(ing.Name, inv)

	if units.Normalize(string(ing.Unit)) == units.Piece {
		// Piece lines are counts, not volumes. Cost is derivable only
		// when a matched item carries a unit cost; the container size
		// then means pieces per container, defaulting to a single piece.
		line.IngredientCost = c.pieceCost(ing, item)
		return line
	}

	qtyMl := units.ToMl(ing.Qty, ing.Unit)

	var itemSize *float64
	if item != nil {
		itemSize = item.BottleSizeMl
	}
	bottleSize := resolveBottleSize(ing.BottleSizeOverride, itemSize, c.defaultBottleMl)
	line.BottleSize = bottleSize

	if item != nil && bottleSize != 0 {
		line.CostPerMl = item.UnitCost / bottleSize
	}
	line.IngredientCost = qtyMl * line.CostPerMl

	if qtyMl > 0 {
		line.ServesPerBottle = int(math.Floor(bottleSize / qtyMl))
	}

	return line
}

func (c *Calculator) pieceCost(ing Ingredient, item *inventory.Item) float64 {
	if item == nil || item.UnitCost <= 0 || ing.Qty < 0 {
		return 0
	}

	piecesPerContainer := resolveBottleSize(ing.BottleSizeOverride, item.BottleSizeMl, 1)
	if piecesPerContainer <= 0 {
		return 0
	}

	return ing.Qty * (item.UnitCost / piecesPerContainer)
}

// resolveBottleSize picks the container size: line override first, then
// the inventory record, then the fallback. A pointer that is present
// wins even when it holds 0, so an explicit zero zeroes the line
// instead of silently picking up the fallback. Negatives coerce to 0.
func resolveBottleSize(override, itemSize *float64, fallback float64) float64 {
	size := fallback
	switch {
	case override != nil:
		size = *override
	case itemSize != nil:
		size = *itemSize
	}
	if size < 0 {
		size = 0
	}
	return size
}
