package inventory

import (
	"math"
	"strings"

	"github.com/RsrRuso/cocktailsop-sub017/internal/units"
)

// bottleDenominated decides whether TotalStock counts whole bottles or
// raw milliliters. The only signal is the free-text BaseUnit label:
// containment of "bottle", or equality with the short forms below.
// Anything else is treated as milliliters, a known fragility kept
// until the inventory record grows a typed stock unit.
func bottleDenominated(baseUnit string) bool {
	u := strings.ToLower(strings.TrimSpace(baseUnit))
	if strings.Contains(u, "bottle") {
		return true
	}
	switch u {
	case "bot", "btl", "btls":
		return true
	}
	return false
}

// TotalServesFromStock computes how many servings the current stock of
// one ingredient supports, given the recipe's per-serve draw.
// Always a non-negative integer; 0 whenever the per-serve draw is 0.
func TotalServesFromStock(qty float64, unit units.UnitCode, item Item, bottleSizeMl float64) int {
	if item.TotalStock == nil || *item.TotalStock <= 0 {
		return 0
	}
	stock := *item.TotalStock

	if units.Normalize(string(unit)) == units.Piece {
		perServe := qty
		if perServe <= 0 {
			perServe = 1
		}
		return int(math.Floor(stock / perServe))
	}

	qtyMl := units.ToMl(qty, unit)
	if qtyMl <= 0 {
		return 0
	}

	if bottleDenominated(item.BaseUnit) {
		return int(math.Floor((stock * bottleSizeMl) / qtyMl))
	}

	return int(math.Floor(stock / qtyMl))
}
