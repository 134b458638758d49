package inventory

// Item is one row of the inventory snapshot the costing engine works
// against. UnitCost is the price of one full bottle/container in the
// workspace base currency; formatting is the caller's concern.
type Item struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	UnitCost     float64  `json:"unit_cost"`
	BottleSizeMl *float64 `json:"bottle_size_ml,omitempty"`
	BaseUnit     string   `json:"base_unit,omitempty"`
	TotalStock   *float64 `json:"total_stock,omitempty"`
}
