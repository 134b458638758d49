package production

import (
	"context"
	"errors"
)

// ErrNotFound is returned for reads and edits of a batch that does
// not exist.
var ErrNotFound = errors.New("production batch not found")

// Filter narrows batch listings. Zero values mean "no constraint".
type Filter struct {
	SubRecipeID string
	GroupID     string
}

// Repository defines the data-access contract for production and loss
// ledgers. Service depends ONLY on this interface.
type Repository interface {
	CreateBatch(ctx context.Context, b *Batch) error
	GetBatch(ctx context.Context, id string) (*Batch, error)
	ListBatches(ctx context.Context, f Filter) ([]Batch, error)
	UpdateBatch(ctx context.Context, id string, patch BatchPatch) (*Batch, error)
	DeleteBatch(ctx context.Context, id string) error

	// SubmitProduction writes a batch and its loss records as one
	// atomic unit: either everything lands or nothing does.
	SubmitProduction(ctx context.Context, b *Batch, losses []LossRecord) error

	ListLosses(ctx context.Context, groupID string) ([]LossRecord, error)
}
