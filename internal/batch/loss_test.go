package batch

import "testing"

func strp(s string) *string { return &s }

func TestLossDraftAddAndTotal(t *testing.T) {
	d := NewLossDraft()

	d.Add(LossEntry{IngredientName: "Vodka", LossAmountMl: 50, LossReason: "spillage"})
	d.Add(LossEntry{IngredientName: "Gin", LossAmountMl: 30, LossReason: "breakage"})

	if got := d.Total(); got != 80 {
		t.Fatalf("total = %v, want 80", got)
	}
	if len(d.Entries()) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(d.Entries()))
	}
}

func TestLossDraftAssignsIDs(t *testing.T) {
	d := NewLossDraft()
	e := d.Add(LossEntry{IngredientName: "Vodka", LossAmountMl: 10})
	if e.ID == "" {
		t.Fatal("Add should assign an ID")
	}
}

func TestLossDraftCoercesNegativeAmounts(t *testing.T) {
	d := NewLossDraft()
	e := d.Add(LossEntry{IngredientName: "Vodka", LossAmountMl: -5})
	if e.LossAmountMl != 0 {
		t.Fatalf("negative loss should coerce to 0, got %v", e.LossAmountMl)
	}

	amount := -20.0
	d.Update(e.ID, LossPatch{LossAmountMl: &amount})
	if d.Total() != 0 {
		t.Fatalf("negative patch should coerce to 0, total %v", d.Total())
	}
}

func TestLossDraftUpdate(t *testing.T) {
	d := NewLossDraft()
	e := d.Add(LossEntry{IngredientName: "Vodka", LossAmountMl: 10, LossReason: "spillage"})

	ok := d.Update(e.ID, LossPatch{LossReason: strp("training-waste"), Notes: strp("staff demo")})
	if !ok {
		t.Fatal("Update should find the entry")
	}

	got := d.Entries()[0]
	if got.LossReason != "training-waste" || got.Notes != "staff demo" {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.IngredientName != "Vodka" {
		t.Fatal("untouched fields must survive a patch")
	}

	if d.Update("missing", LossPatch{}) {
		t.Fatal("Update on unknown ID should report false")
	}
}

func TestLossDraftRemove(t *testing.T) {
	d := NewLossDraft()
	a := d.Add(LossEntry{IngredientName: "Vodka", LossAmountMl: 10})
	d.Add(LossEntry{IngredientName: "Gin", LossAmountMl: 20})

	if !d.Remove(a.ID) {
		t.Fatal("Remove should find the entry")
	}
	if d.Total() != 20 {
		t.Fatalf("total after remove = %v, want 20", d.Total())
	}
	if d.Remove(a.ID) {
		t.Fatal("second Remove should report false")
	}
}
