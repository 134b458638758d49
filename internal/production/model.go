package production

import "time"

// Status is the freshness classification of a sub-recipe's batches.
// It is derived from wall-clock time on every read and never stored.
type Status string

const (
	StatusFresh        Status = "fresh"
	StatusExpiringSoon Status = "expiring-soon"
	StatusExpired      Status = "expired"
)

// ExpiringSoonWindow is how far ahead a batch expiration counts as
// "expiring-soon". The boundary is inclusive: expiring in exactly 72h
// is soon, not fresh.
const ExpiringSoonWindow = 72 * time.Hour

// Batch is one production event for a sub-recipe. Immutable once
// created except for quantity, expiration and notes edits.
type Batch struct {
	ID                 string     `json:"id"`
	SubRecipeID        string     `json:"sub_recipe_id"`
	QuantityProducedMl float64    `json:"quantity_produced_ml"`
	ProducedByUserID   string     `json:"produced_by_user_id"`
	ProducedByName     string     `json:"produced_by_name"`
	ProductionDate     time.Time  `json:"production_date"`
	ExpirationDate     *time.Time `json:"expiration_date,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	GroupID            string     `json:"group_id,omitempty"`
}

// LossRecord is a durable loss entry, written together with its batch
// and read back by the reconciliation view through the shared GroupID.
type LossRecord struct {
	ID             string    `json:"id"`
	GroupID        string    `json:"group_id"`
	IngredientName string    `json:"ingredient_name"`
	LossAmountMl   float64   `json:"loss_amount_ml"`
	LossReason     string    `json:"loss_reason"`
	Notes          string    `json:"notes,omitempty"`
	RecordedAt     time.Time `json:"recorded_at"`
}

// BatchPatch is a partial batch edit. Only the three mutable fields
// are exposed; nil means leave as-is.
type BatchPatch struct {
	QuantityProducedMl *float64   `json:"quantity_produced_ml,omitempty"`
	ExpirationDate     *time.Time `json:"expiration_date,omitempty"`
	Notes              *string    `json:"notes,omitempty"`
}

// RecipeProduction is the per-sub-recipe grouping of all batches.
type RecipeProduction struct {
	SubRecipeID        string     `json:"sub_recipe_id"`
	TotalProducedMl    float64    `json:"total_produced_ml"`
	Batches            []Batch    `json:"batches"`
	EarliestExpiration *time.Time `json:"earliest_expiration,omitempty"`
	LatestExpiration   *time.Time `json:"latest_expiration,omitempty"`
	Status             Status     `json:"status"`
}

// StatusOf classifies a batch list against the given instant: expired
// if any expiration is strictly before now, else expiring-soon if any
// falls within [now, now+72h], else fresh. Batches without an
// expiration date never influence the result.
func StatusOf(batches []Batch, now time.Time) Status {
	soon := false
	limit := now.Add(ExpiringSoonWindow)

	for _, b := range batches {
		if b.ExpirationDate == nil {
			continue
		}
		exp := *b.ExpirationDate
		if exp.Before(now) {
			return StatusExpired
		}
		if !exp.After(limit) {
			soon = true
		}
	}

	if soon {
		return StatusExpiringSoon
	}
	return StatusFresh
}
