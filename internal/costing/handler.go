package costing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RsrRuso/cocktailsop-sub017/internal/inventory"
	"github.com/RsrRuso/cocktailsop-sub017/internal/units"
)

type Handler struct {
	cache           *Cache
	defaultBottleMl float64
}

func NewHandler(cache *Cache, defaultBottleMl float64) *Handler {
	if defaultBottleMl <= 0 {
		defaultBottleMl = DefaultBottleMl
	}
	return &Handler{cache: cache, defaultBottleMl: defaultBottleMl}
}

type computeRequest struct {
	Ingredients  []Ingredient     `json:"ingredients"`
	Inventory    []inventory.Item `json:"inventory"`
	YieldQty     float64          `json:"yield_qty"`
	SellingPrice *float64         `json:"selling_price,omitempty"`
}

// --------------------------------------------------
// POST /costing/compute
// --------------------------------------------------
func (h *Handler) Compute(c *gin.Context) {
	var req computeRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if len(req.Ingredients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredients are required"})
		return
	}

	summary := h.cache.Compute(req.Ingredients, req.Inventory, req.YieldQty)

	resp := gin.H{
		"summary":       summary,
		"unknown_units": unknownUnits(req.Ingredients),
	}

	if req.SellingPrice != nil {
		p := *req.SellingPrice
		resp["pricing"] = gin.H{
			"selling_price":     p,
			"food_cost_percent": summary.FoodCostPercent(p),
			"profit_amount":     summary.ProfitAmount(p),
			"profit_margin":     summary.ProfitMargin(p),
		}
	}

	c.JSON(http.StatusOK, resp)
}

// --------------------------------------------------
// POST /costing/yield
// --------------------------------------------------
func (h *Handler) Yield(c *gin.Context) {
	var req struct {
		Ingredients []Ingredient     `json:"ingredients"`
		Inventory   []inventory.Item `json:"inventory"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if len(req.Ingredients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredients are required"})
		return
	}

	type yieldLine struct {
		IngredientName string `json:"ingredient_name"`
		Matched        bool   `json:"matched"`
		Serves         int    `json:"serves"`
	}

	lines := make([]yieldLine, 0, len(req.Ingredients))
	totalServes := 0
	limited := false

	for _, ing := range req.Ingredients {
		line := yieldLine{IngredientName: ing.Name}

		if item := inventory.Match(ing.Name, req.Inventory); item != nil {
			line.Matched = true

			bottleSize := resolveBottleSize(ing.BottleSizeOverride, item.BottleSizeMl, h.defaultBottleMl)

			line.Serves = inventory.TotalServesFromStock(ing.Qty, ing.Unit, *item, bottleSize)

			// The tightest matched ingredient bounds the whole recipe.
			if !limited || line.Serves < totalServes {
				totalServes = line.Serves
				limited = true
			}
		}

		lines = append(lines, line)
	}

	c.JSON(http.StatusOK, gin.H{
		"ingredients":  lines,
		"total_serves": totalServes,
	})
}

// --------------------------------------------------
// POST /costing/invalidate
// --------------------------------------------------
func (h *Handler) Invalidate(c *gin.Context) {
	h.cache.Invalidate()
	c.JSON(http.StatusOK, gin.H{"status": "invalidated"})
}

func unknownUnits(ingredients []Ingredient) []string {
	seen := map[units.UnitCode]bool{}
	out := make([]string, 0)
	for _, ing := range ingredients {
		code := units.Normalize(string(ing.Unit))
		if !units.Known(code) && !seen[code] {
			seen[code] = true
			out = append(out, string(code))
		}
	}
	return out
}
