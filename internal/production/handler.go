package production

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RsrRuso/cocktailsop-sub017/internal/batch"
	"github.com/RsrRuso/cocktailsop-sub017/internal/inventory"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type submitRequest struct {
	SubRecipeID        string            `json:"sub_recipe_id"`
	QuantityProducedMl float64           `json:"quantity_produced_ml"`
	ProducedByUserID   string            `json:"produced_by_user_id"`
	ProducedByName     string            `json:"produced_by_name"`
	ProductionDate     *time.Time        `json:"production_date,omitempty"`
	ExpirationDate     *time.Time        `json:"expiration_date,omitempty"`
	Notes              string            `json:"notes,omitempty"`
	Losses             []batch.LossEntry `json:"losses,omitempty"`
}

// --------------------------------------------------
// POST /batches - create batch, losses land atomically
// --------------------------------------------------
func (h *Handler) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	b := &Batch{
		SubRecipeID:        req.SubRecipeID,
		QuantityProducedMl: req.QuantityProducedMl,
		ProducedByUserID:   req.ProducedByUserID,
		ProducedByName:     req.ProducedByName,
		ExpirationDate:     req.ExpirationDate,
		Notes:              req.Notes,
	}
	if req.ProductionDate != nil {
		b.ProductionDate = *req.ProductionDate
	}

	// Request losses pass through a draft so they pick up IDs and the
	// negative-amount coercion before anything touches the store.
	draft := batch.NewLossDraft()
	for _, l := range req.Losses {
		draft.Add(l)
	}

	if err := h.service.SubmitProduction(c.Request.Context(), b, draft.Entries()); err != nil {
		if errors.Is(err, ErrMissingSubRecipe) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"batch": b, "total_loss_ml": draft.Total()})
}

// --------------------------------------------------
// GET /batches?sub_recipe_id=&group_id=
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	f := Filter{
		SubRecipeID: c.Query("sub_recipe_id"),
		GroupID:     c.Query("group_id"),
	}

	batches, err := h.service.ListBatches(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"batches": batches})
}

// --------------------------------------------------
// GET /batches/summary
// --------------------------------------------------
func (h *Handler) Summary(c *gin.Context) {
	groups, err := h.service.ProductionsByRecipe(c.Request.Context(), time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": groups})
}

// --------------------------------------------------
// GET /batches/:id
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	b, err := h.service.GetBatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, b)
}

// --------------------------------------------------
// PUT /batches/:id - quantity/expiration/notes only
// --------------------------------------------------
func (h *Handler) Update(c *gin.Context) {
	var patch BatchPatch
	if err := c.BindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	b, err := h.service.UpdateBatch(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, b)
}

// --------------------------------------------------
// DELETE /batches/:id
// --------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.DeleteBatch(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// --------------------------------------------------
// GET /losses?group_id=
// --------------------------------------------------
func (h *Handler) Losses(c *gin.Context) {
	losses, err := h.service.ListLosses(c.Request.Context(), c.Query("group_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"losses": losses})
}

// --------------------------------------------------
// POST /batches/scale - pure computation, no writes
// --------------------------------------------------
func (h *Handler) Scale(c *gin.Context) {
	var req struct {
		ScaledIngredients []batch.ScaledIngredient `json:"scaled_ingredients"`
		Spirits           []inventory.Item         `json:"spirits"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if len(req.ScaledIngredients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scaled_ingredients are required"})
		return
	}

	c.JSON(http.StatusOK, batch.ScaleProduction(req.ScaledIngredients, req.Spirits))
}
