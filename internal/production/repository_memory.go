package production

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// InMemoryRepository backs service tests and local development runs.
type InMemoryRepository struct {
	mu      sync.RWMutex
	batches map[string]Batch
	losses  map[string]LossRecord
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		batches: make(map[string]Batch),
		losses:  make(map[string]LossRecord),
	}
}

func (r *InMemoryRepository) CreateBatch(_ context.Context, b *Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	r.batches[b.ID] = *b
	return nil
}

func (r *InMemoryRepository) GetBatch(_ context.Context, id string) (*Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.batches[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (r *InMemoryRepository) ListBatches(_ context.Context, f Filter) ([]Batch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Batch, 0, len(r.batches))
	for _, b := range r.batches {
		if f.SubRecipeID != "" && b.SubRecipeID != f.SubRecipeID {
			continue
		}
		if f.GroupID != "" && b.GroupID != f.GroupID {
			continue
		}
		out = append(out, b)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ProductionDate.Before(out[j].ProductionDate)
	})
	return out, nil
}

func (r *InMemoryRepository) UpdateBatch(_ context.Context, id string, patch BatchPatch) (*Batch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.batches[id]
	if !ok {
		return nil, ErrNotFound
	}

	if patch.QuantityProducedMl != nil {
		b.QuantityProducedMl = *patch.QuantityProducedMl
	}
	if patch.ExpirationDate != nil {
		exp := *patch.ExpirationDate
		b.ExpirationDate = &exp
	}
	if patch.Notes != nil {
		b.Notes = *patch.Notes
	}

	r.batches[id] = b
	return &b, nil
}

func (r *InMemoryRepository) DeleteBatch(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.batches[id]; !ok {
		return ErrNotFound
	}
	delete(r.batches, id)
	return nil
}

func (r *InMemoryRepository) SubmitProduction(_ context.Context, b *Batch, losses []LossRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	r.batches[b.ID] = *b

	for i := range losses {
		if losses[i].ID == "" {
			losses[i].ID = uuid.New().String()
		}
		r.losses[losses[i].ID] = losses[i]
	}
	return nil
}

func (r *InMemoryRepository) ListLosses(_ context.Context, groupID string) ([]LossRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]LossRecord, 0)
	for _, l := range r.losses {
		if groupID != "" && l.GroupID != groupID {
			continue
		}
		out = append(out, l)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].RecordedAt.Before(out[j].RecordedAt)
	})
	return out, nil
}
