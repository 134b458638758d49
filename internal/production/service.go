package production

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/RsrRuso/cocktailsop-sub017/internal/batch"
)

// opTimeout bounds every store call so a slow database surfaces as an
// error instead of a hung request.
const opTimeout = 10 * time.Second

var ErrMissingSubRecipe = errors.New("sub_recipe_id is required")

// Service owns the production and loss ledgers. Writes are independent
// CRUD operations except SubmitProduction, which lands the batch and
// its loss records in one transaction.
type Service struct {
	repo Repository

	// allowedLossReasons is the externally owned enumeration. Empty
	// means "accept anything": the owner has not pinned the list.
	allowedLossReasons map[string]bool
}

func NewService(repo Repository, lossReasons []string) *Service {
	allowed := make(map[string]bool, len(lossReasons))
	for _, r := range lossReasons {
		allowed[r] = true
	}
	return &Service{repo: repo, allowedLossReasons: allowed}
}

func (s *Service) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, opTimeout)
}

// --------------------------------------------------
// BATCH CRUD
// --------------------------------------------------

// CreateBatch records one production event. Negative quantities coerce
// to 0 per the engine-wide numeric policy; a missing production date
// defaults to now, a missing group to a fresh one.
func (s *Service) CreateBatch(ctx context.Context, b *Batch) error {
	if b.SubRecipeID == "" {
		return ErrMissingSubRecipe
	}
	if b.QuantityProducedMl < 0 {
		b.QuantityProducedMl = 0
	}
	if b.ProductionDate.IsZero() {
		b.ProductionDate = time.Now().UTC()
	}
	if b.GroupID == "" {
		b.GroupID = uuid.New().String()
	}

	ctx, cancel := s.bounded(ctx)
	defer cancel()
	return s.repo.CreateBatch(ctx, b)
}

func (s *Service) GetBatch(ctx context.Context, id string) (*Batch, error) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()
	return s.repo.GetBatch(ctx, id)
}

func (s *Service) ListBatches(ctx context.Context, f Filter) ([]Batch, error) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()
	return s.repo.ListBatches(ctx, f)
}

func (s *Service) UpdateBatch(ctx context.Context, id string, patch BatchPatch) (*Batch, error) {
	if patch.QuantityProducedMl != nil && *patch.QuantityProducedMl < 0 {
		zero := 0.0
		patch.QuantityProducedMl = &zero
	}

	ctx, cancel := s.bounded(ctx)
	defer cancel()
	return s.repo.UpdateBatch(ctx, id, patch)
}

func (s *Service) DeleteBatch(ctx context.Context, id string) error {
	ctx, cancel := s.bounded(ctx)
	defer cancel()
	return s.repo.DeleteBatch(ctx, id)
}

// --------------------------------------------------
// SUBMISSION (batch + losses, atomic)
// --------------------------------------------------

// SubmitProduction persists a batch together with the loss drafts
// accumulated for it. The batch and every loss record share one group
// ID so the reconciliation view can read them back as a unit.
func (s *Service) SubmitProduction(ctx context.Context, b *Batch, drafts []batch.LossEntry) error {
	if b.SubRecipeID == "" {
		return ErrMissingSubRecipe
	}
	if b.QuantityProducedMl < 0 {
		b.QuantityProducedMl = 0
	}
	if b.ProductionDate.IsZero() {
		b.ProductionDate = time.Now().UTC()
	}
	if b.GroupID == "" {
		b.GroupID = uuid.New().String()
	}

	now := time.Now().UTC()
	losses := make([]LossRecord, 0, len(drafts))
	for _, d := range drafts {
		if len(s.allowedLossReasons) > 0 && !s.allowedLossReasons[d.LossReason] {
			return fmt.Errorf("unknown loss reason %q", d.LossReason)
		}
		amount := d.LossAmountMl
		if amount < 0 {
			amount = 0
		}
		losses = append(losses, LossRecord{
			ID:             d.ID,
			GroupID:        b.GroupID,
			IngredientName: d.IngredientName,
			LossAmountMl:   amount,
			LossReason:     d.LossReason,
			Notes:          d.Notes,
			RecordedAt:     now,
		})
	}

	ctx, cancel := s.bounded(ctx)
	defer cancel()
	return s.repo.SubmitProduction(ctx, b, losses)
}

func (s *Service) ListLosses(ctx context.Context, groupID string) ([]LossRecord, error) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()
	return s.repo.ListLosses(ctx, groupID)
}

// --------------------------------------------------
// DERIVED AGGREGATES
// --------------------------------------------------

// TotalProduced sums quantity over every batch of one sub-recipe.
func (s *Service) TotalProduced(ctx context.Context, subRecipeID string) (float64, error) {
	batches, err := s.ListBatches(ctx, Filter{SubRecipeID: subRecipeID})
	if err != nil {
		return 0, err
	}

	var total float64
	for _, b := range batches {
		total += b.QuantityProducedMl
	}
	return total, nil
}

// ProductionsByRecipe groups every batch by sub-recipe, carrying the
// produced total, the batch list, the expiration envelope and the
// freshness status as of now.
func (s *Service) ProductionsByRecipe(ctx context.Context, now time.Time) ([]RecipeProduction, error) {
	batches, err := s.ListBatches(ctx, Filter{})
	if err != nil {
		return nil, err
	}

	groups := make(map[string]*RecipeProduction)
	for _, b := range batches {
		g, ok := groups[b.SubRecipeID]
		if !ok {
			g = &RecipeProduction{SubRecipeID: b.SubRecipeID}
			groups[b.SubRecipeID] = g
		}

		g.TotalProducedMl += b.QuantityProducedMl
		g.Batches = append(g.Batches, b)

		if b.ExpirationDate != nil {
			exp := *b.ExpirationDate
			if g.EarliestExpiration == nil || exp.Before(*g.EarliestExpiration) {
				g.EarliestExpiration = &exp
			}
			if g.LatestExpiration == nil || exp.After(*g.LatestExpiration) {
				g.LatestExpiration = &exp
			}
		}
	}

	out := make([]RecipeProduction, 0, len(groups))
	for _, g := range groups {
		g.Status = StatusOf(g.Batches, now)
		out = append(out, *g)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].SubRecipeID < out[j].SubRecipeID
	})
	return out, nil
}

// ExpirationStatus recomputes the freshness of one sub-recipe's
// batches against the given instant.
func (s *Service) ExpirationStatus(ctx context.Context, subRecipeID string, now time.Time) (Status, error) {
	batches, err := s.ListBatches(ctx, Filter{SubRecipeID: subRecipeID})
	if err != nil {
		return "", err
	}
	return StatusOf(batches, now), nil
}
