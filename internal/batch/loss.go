package batch

import "github.com/google/uuid"

// LossEntry is one spillage/loss line a user attaches to a batch
// before submitting it. Drafts live in memory; on submission they are
// persisted alongside the production batch.
type LossEntry struct {
	ID             string  `json:"id"`
	IngredientName string  `json:"ingredient_name"`
	LossAmountMl   float64 `json:"loss_amount_ml"`
	LossReason     string  `json:"loss_reason"`
	Notes          string  `json:"notes"`
}

// LossPatch is a partial update to a draft entry. Nil fields are left
// untouched.
type LossPatch struct {
	IngredientName *string  `json:"ingredient_name,omitempty"`
	LossAmountMl   *float64 `json:"loss_amount_ml,omitempty"`
	LossReason     *string  `json:"loss_reason,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
}

// LossDraft is the client-side loss ledger for one batch in progress.
// It does not validate ingredient names against the recipe; the
// reconciliation view resolves names later.
type LossDraft struct {
	entries []LossEntry
}

func NewLossDraft() *LossDraft {
	return &LossDraft{}
}

// Add appends an entry, assigning an ID when missing and coercing a
// negative loss amount to 0.
func (d *LossDraft) Add(e LossEntry) LossEntry {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.LossAmountMl < 0 {
		e.LossAmountMl = 0
	}
	d.entries = append(d.entries, e)
	return e
}

// Update applies a patch to the entry with the given ID. Returns false
// when no such entry exists.
func (d *LossDraft) Update(id string, patch LossPatch) bool {
	for i := range d.entries {
		if d.entries[i].ID != id {
			continue
		}
		if patch.IngredientName != nil {
			d.entries[i].IngredientName = *patch.IngredientName
		}
		if patch.LossAmountMl != nil {
			amount := *patch.LossAmountMl
			if amount < 0 {
				amount = 0
			}
			d.entries[i].LossAmountMl = amount
		}
		if patch.LossReason != nil {
			d.entries[i].LossReason = *patch.LossReason
		}
		if patch.Notes != nil {
			d.entries[i].Notes = *patch.Notes
		}
		return true
	}
	return false
}

// Remove deletes the entry with the given ID. Returns false when no
// such entry exists.
func (d *LossDraft) Remove(id string) bool {
	for i := range d.entries {
		if d.entries[i].ID == id {
			d.entries = append(d.entries[:i], d.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Total sums the recorded loss volume.
func (d *LossDraft) Total() float64 {
	var total float64
	for _, e := range d.entries {
		total += e.LossAmountMl
	}
	return total
}

// Entries returns a copy of the draft list in insertion order.
func (d *LossDraft) Entries() []LossEntry {
	out := make([]LossEntry, len(d.entries))
	copy(out, d.entries)
	return out
}
